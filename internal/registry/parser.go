package registry

import (
	"strconv"
	"strings"

	"github.com/ridopark/stoxcore/internal/models"
)

// rawArg is one parsed positional argument before it is bound against a
// schema: either a decimal number or a bracketed list of integers.
type rawArg struct {
	isArray bool
	number  float64
	array   []int
}

// parseName is a small top-down parser for "Kind" or "Kind(arg1, arg2, …)".
// Whitespace inside the parens is tolerated; arguments are split on
// top-level commas (commas inside a bracketed array don't count).
func parseName(spec string) (kind string, args []rawArg, err error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return "", nil, models.NewCoreError(models.IndicatorParseError, "empty indicator name")
	}

	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return spec, nil, nil
	}
	if !strings.HasSuffix(spec, ")") {
		return "", nil, models.NewCoreError(models.IndicatorParseError, "unbalanced parentheses in %q", spec)
	}
	kind = strings.TrimSpace(spec[:open])
	if kind == "" {
		return "", nil, models.NewCoreError(models.IndicatorParseError, "missing indicator kind in %q", spec)
	}
	inner := spec[open+1 : len(spec)-1]
	if strings.TrimSpace(inner) == "" {
		return kind, nil, nil
	}

	tokens, err := splitTopLevel(inner)
	if err != nil {
		return "", nil, err
	}
	args = make([]rawArg, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		arg, perr := parseArg(tok)
		if perr != nil {
			return "", nil, perr
		}
		args = append(args, arg)
	}
	return kind, args, nil
}

// splitTopLevel splits on commas that are not nested inside brackets,
// failing on unbalanced brackets.
func splitTopLevel(s string) ([]string, error) {
	var tokens []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return nil, models.NewCoreError(models.IndicatorParseError, "unbalanced brackets in %q", s)
			}
		case ',':
			if depth == 0 {
				tokens = append(tokens, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, models.NewCoreError(models.IndicatorParseError, "unbalanced brackets in %q", s)
	}
	tokens = append(tokens, s[start:])
	return tokens, nil
}

func parseArg(tok string) (rawArg, error) {
	if strings.HasPrefix(tok, "[") {
		if !strings.HasSuffix(tok, "]") {
			return rawArg{}, models.NewCoreError(models.IndicatorParseError, "unbalanced brackets in %q", tok)
		}
		inner := strings.TrimSpace(tok[1 : len(tok)-1])
		if inner == "" {
			return rawArg{isArray: true, array: nil}, nil
		}
		parts := strings.Split(inner, ",")
		arr := make([]int, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			n, err := strconv.Atoi(p)
			if err != nil {
				return rawArg{}, models.NewCoreError(models.IndicatorParseError, "non-integer array element %q", p)
			}
			arr = append(arr, n)
		}
		return rawArg{isArray: true, array: arr}, nil
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return rawArg{}, models.NewCoreError(models.IndicatorParseError, "non-numeric argument %q", tok)
	}
	return rawArg{number: f}, nil
}
