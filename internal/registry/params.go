package registry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ridopark/stoxcore/internal/models"
)

// boundArg is a rawArg after it has been matched against a ParamDef,
// defaulted where the caller omitted a trailing argument.
type boundArg struct {
	k      Kind
	def    ParamDef
	number float64
	array  []int
}

// kind returns the indicator kind this argument belongs to, for error
// messages raised against a single boundArg without the surrounding
// schema in scope.
func (b boundArg) kind() Kind { return b.k }

// bind binds positional raw arguments against an indicator's parameter
// schema: missing trailing arguments take their schema default, extra
// arguments are a parameter error, and a type mismatch (number where an
// array was required, or vice versa) is a parse error.
func bind(kind Kind, schema []ParamDef, args []rawArg) ([]boundArg, error) {
	if len(args) > len(schema) {
		return nil, models.NewCoreError(models.IndicatorParamError,
			"%s takes at most %d argument(s), got %d", kind, len(schema), len(args))
	}
	bound := make([]boundArg, len(schema))
	for i, def := range schema {
		if i >= len(args) {
			bound[i] = boundArg{k: kind, def: def, number: def.DefaultNumber, array: def.DefaultArray}
			continue
		}
		a := args[i]
		if def.Type == ParamIntArray && !a.isArray {
			return nil, models.NewCoreError(models.IndicatorParseError,
				"%s argument %d (%s) expects an array like [a,b,c]", kind, i+1, def.Name)
		}
		if def.Type == ParamNumber && a.isArray {
			return nil, models.NewCoreError(models.IndicatorParseError,
				"%s argument %d (%s) expects a number", kind, i+1, def.Name)
		}
		bound[i] = boundArg{k: kind, def: def, number: a.number, array: a.array}
	}
	return bound, nil
}

// period validates and returns a bound numeric argument as an integer
// period, requiring it to be >= 1.
func period(kind Kind, bound []boundArg, i int) (int, error) {
	v := bound[i].number
	p := int(v)
	if float64(p) != v || p < 1 {
		return 0, models.NewCoreError(models.IndicatorParamError,
			"%s parameter %q must be a positive integer, got %v", kind, bound[i].def.Name, v)
	}
	return p, nil
}

// positive validates a bound numeric argument is strictly greater than
// zero (Bollinger's k, Chandelier's multiplier, the Kalman variances).
func positive(kind Kind, bound []boundArg, i int) (float64, error) {
	v := bound[i].number
	if v <= 0 {
		return 0, models.NewCoreError(models.IndicatorParamError,
			"%s parameter %q must be > 0, got %v", kind, bound[i].def.Name, v)
	}
	return v, nil
}

// unitInterval validates a bound numeric argument lies in (0,1] (Parabolic
// SAR's step and max acceleration).
func unitInterval(kind Kind, bound []boundArg, i int) (float64, error) {
	v := bound[i].number
	if v <= 0 || v > 1 {
		return 0, models.NewCoreError(models.IndicatorParamError,
			"%s parameter %q must be in (0,1], got %v", kind, bound[i].def.Name, v)
	}
	return v, nil
}

// intArray validates a bound array argument is non-empty and every
// element is a positive period.
func intArray(kind Kind, bound []boundArg, i int) ([]int, error) {
	arr := bound[i].array
	if len(arr) == 0 {
		return nil, models.NewCoreError(models.IndicatorParamError,
			"%s parameter %q must be a non-empty array", kind, bound[i].def.Name)
	}
	for _, p := range arr {
		if p < 1 {
			return nil, models.NewCoreError(models.IndicatorParamError,
				"%s parameter %q elements must be positive, got %d", kind, bound[i].def.Name, p)
		}
	}
	return arr, nil
}

// canonicalArgs renders the bound arguments back to their textual form,
// trimming trailing arguments that equal their schema default so the
// canonical name is the shortest string that reproduces the invocation.
func canonicalArgs(bound []boundArg) []string {
	last := -1
	for i, b := range bound {
		if !argEqualsDefault(b) {
			last = i
		}
	}
	out := make([]string, 0, last+1)
	for i := 0; i <= last; i++ {
		out = append(out, formatArg(bound[i]))
	}
	return out
}

func argEqualsDefault(b boundArg) bool {
	if b.def.Type == ParamIntArray {
		return intArrayEqual(b.array, b.def.DefaultArray)
	}
	return b.number == b.def.DefaultNumber
}

func intArrayEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func formatArg(b boundArg) string {
	if b.def.Type == ParamIntArray {
		parts := make([]string, len(b.array))
		for i, v := range b.array {
			parts[i] = strconv.Itoa(v)
		}
		return "[" + strings.Join(parts, ",") + "]"
	}
	if b.number == float64(int64(b.number)) {
		return strconv.FormatInt(int64(b.number), 10)
	}
	return strconv.FormatFloat(b.number, 'g', -1, 64)
}

// canonicalName renders "Kind" or "Kind(arg1,arg2,...)" from bound args.
func canonicalName(kind Kind, bound []boundArg) string {
	args := canonicalArgs(bound)
	if len(args) == 0 {
		return string(kind)
	}
	return fmt.Sprintf("%s(%s)", kind, strings.Join(args, ","))
}
