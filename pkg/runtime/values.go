package runtime

// Kind identifies the runtime value category.
type Kind int

const (
	KindNoValue Kind = iota
	KindInteger
	KindFloat
	KindString
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNoValue:
		return "no value"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Value is implemented by every runtime value.
type Value interface {
	Kind() Kind
}

type IntegerValue struct {
	Val int64
}

func (v IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (v FloatValue) Kind() Kind { return KindFloat }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind { return KindString }

// ArrayValue is mutated in place by element assignment, push and pop. Reads
// hand out copies (see Copy) so two bindings never share elements.
type ArrayValue struct {
	Elements []Value
}

func (v *ArrayValue) Kind() Kind { return KindArray }

// NoValue is the result of expressions that produce nothing, such as printf
// or an expression that failed in best-effort mode.
type NoValue struct{}

func (NoValue) Kind() Kind { return KindNoValue }

// NewArray builds an array from the given elements.
func NewArray(elements ...Value) *ArrayValue {
	return &ArrayValue{Elements: elements}
}

// Copy returns a deep copy of v. Scalars are returned as-is.
func Copy(v Value) Value {
	arr, ok := v.(*ArrayValue)
	if !ok || arr == nil {
		return v
	}
	out := make([]Value, len(arr.Elements))
	for i, el := range arr.Elements {
		out[i] = Copy(el)
	}
	return &ArrayValue{Elements: out}
}

// Truthy reports whether v counts as true in a condition: nonzero numbers and
// non-empty strings. Arrays and NoValue are false.
func Truthy(v Value) bool {
	switch val := v.(type) {
	case IntegerValue:
		return val.Val != 0
	case FloatValue:
		return val.Val != 0
	case StringValue:
		return val.Val != ""
	default:
		return false
	}
}

// Bool converts a Go boolean into rover's integer 1/0.
func Bool(b bool) IntegerValue {
	if b {
		return IntegerValue{Val: 1}
	}
	return IntegerValue{Val: 0}
}
