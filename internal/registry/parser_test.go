package registry

import "testing"

func TestParseNameNoArgs(t *testing.T) {
	kind, args, err := parseName("RSI")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "RSI" {
		t.Fatalf("kind = %q, want RSI", kind)
	}
	if args != nil {
		t.Fatalf("args = %v, want nil", args)
	}
}

func TestParseNameWithArgs(t *testing.T) {
	kind, args, err := parseName("MACD(12,26,9)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "MACD" {
		t.Fatalf("kind = %q, want MACD", kind)
	}
	if len(args) != 3 || args[0].number != 12 || args[1].number != 26 || args[2].number != 9 {
		t.Fatalf("args = %+v", args)
	}
}

func TestParseNameArrayArgs(t *testing.T) {
	kind, args, err := parseName("GMMA([3,5,8],[30,35,40])")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "GMMA" {
		t.Fatalf("kind = %q, want GMMA", kind)
	}
	if len(args) != 2 || !args[0].isArray || !args[1].isArray {
		t.Fatalf("args = %+v", args)
	}
	if len(args[0].array) != 3 || args[0].array[1] != 5 {
		t.Fatalf("args[0].array = %v", args[0].array)
	}
	if len(args[1].array) != 3 || args[1].array[2] != 40 {
		t.Fatalf("args[1].array = %v", args[1].array)
	}
}

func TestParseNameEmpty(t *testing.T) {
	if _, _, err := parseName(""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, _, err := parseName("   "); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestParseNameUnbalancedParens(t *testing.T) {
	if _, _, err := parseName("RSI(14"); err == nil {
		t.Fatal("expected error for unbalanced parens")
	}
}

func TestParseNameMissingKind(t *testing.T) {
	if _, _, err := parseName("(14)"); err == nil {
		t.Fatal("expected error for missing kind")
	}
}

func TestParseNameUnbalancedBrackets(t *testing.T) {
	if _, _, err := parseName("GMMA([3,5,8],[30,35,40)"); err == nil {
		t.Fatal("expected error for unbalanced brackets")
	}
}

func TestParseNameEmptyParens(t *testing.T) {
	kind, args, err := parseName("RSI()")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "RSI" || args != nil {
		t.Fatalf("kind=%q args=%v", kind, args)
	}
}

func TestParseNameWhitespaceTolerant(t *testing.T) {
	kind, args, err := parseName("MACD( 12 , 26 , 9 )")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if kind != "MACD" || len(args) != 3 {
		t.Fatalf("kind=%q args=%v", kind, args)
	}
}

func TestParseArgNonNumeric(t *testing.T) {
	if _, err := parseArg("abc"); err == nil {
		t.Fatal("expected error for non-numeric argument")
	}
}

func TestParseArgNonIntegerArrayElement(t *testing.T) {
	if _, err := parseArg("[1,2.5,3]"); err == nil {
		t.Fatal("expected error for non-integer array element")
	}
}
