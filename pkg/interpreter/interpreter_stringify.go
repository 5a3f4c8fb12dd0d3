package interpreter

import (
	"strconv"
	"strings"

	"rover/interpreter-go/pkg/runtime"
)

// placeholderText is what printf writes for a {} argument. Only scalars
// have a printed form.
func placeholderText(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		return formatFloat(v.Val)
	case runtime.StringValue:
		return v.Val
	default:
		return "INVALID"
	}
}

// formatFloat uses six significant digits, switching to exponent form for
// large and small magnitudes.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}

// Inspect renders any value for display. Strings are quoted and arrays are
// shown element by element.
func Inspect(val runtime.Value) string {
	switch v := val.(type) {
	case runtime.IntegerValue:
		return strconv.FormatInt(v.Val, 10)
	case runtime.FloatValue:
		return formatFloat(v.Val)
	case runtime.StringValue:
		return strconv.Quote(v.Val)
	case *runtime.ArrayValue:
		parts := make([]string, 0, len(v.Elements))
		for _, el := range v.Elements {
			parts = append(parts, Inspect(el))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case runtime.NoValue:
		return "<no value>"
	default:
		return "<unknown>"
	}
}
