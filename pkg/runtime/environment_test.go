package runtime

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEnvironmentShadowing(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("x", IntegerValue{Val: 1}, false)

	inner := global.Extend()
	inner.Define("x", IntegerValue{Val: 2}, false)

	got, err := inner.Get("x")
	if err != nil {
		t.Fatalf("inner Get: %v", err)
	}
	if got != (IntegerValue{Val: 2}) {
		t.Fatalf("expected inner binding, got %#v", got)
	}
	got, _ = global.Get("x")
	if got != (IntegerValue{Val: 1}) {
		t.Fatalf("expected outer binding untouched, got %#v", got)
	}
	if inner.Parent() != global {
		t.Fatalf("Parent() should return the enclosing scope")
	}
}

func TestEnvironmentAssignWalksOutward(t *testing.T) {
	global := NewEnvironment(nil)
	global.Define("count", IntegerValue{Val: 0}, false)
	inner := global.Extend().Extend()

	if err := inner.Assign("count", IntegerValue{Val: 5}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	got, _ := global.Get("count")
	if got != (IntegerValue{Val: 5}) {
		t.Fatalf("expected outer binding updated, got %#v", got)
	}
	if len(inner.Keys()) != 0 {
		t.Fatalf("assignment must not create a local binding")
	}
}

func TestEnvironmentErrors(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("limit", IntegerValue{Val: 3}, true)

	if _, err := env.Get("missing"); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("Get missing: expected ErrUndefinedVariable, got %v", err)
	}
	if err := env.Assign("missing", IntegerValue{}); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("Assign missing: expected ErrUndefinedVariable, got %v", err)
	}
	err := env.Extend().Assign("limit", IntegerValue{Val: 4})
	if !errors.Is(err, ErrConstAssignment) {
		t.Fatalf("Assign const: expected ErrConstAssignment, got %v", err)
	}
	if err.Error() != "cannot assign to constant 'limit'" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	got, _ := env.Get("limit")
	if got != (IntegerValue{Val: 3}) {
		t.Fatalf("const binding changed: %#v", got)
	}
}

func TestEnvironmentRedefineOverwrites(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", IntegerValue{Val: 1}, true)
	env.Define("a", StringValue{Val: "s"}, false)

	b, ok := env.Lookup("a")
	if !ok || b.Const {
		t.Fatalf("expected a mutable binding, got %#v", b)
	}
	if err := env.Assign("a", IntegerValue{Val: 9}); err != nil {
		t.Fatalf("Assign after redefinition: %v", err)
	}
}

func TestEnvironmentGetReturnsCopies(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NewArray(IntegerValue{Val: 1}, NewArray(IntegerValue{Val: 2})), false)

	got, err := env.Get("a")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	arr := got.(*ArrayValue)
	arr.Elements[0] = IntegerValue{Val: 99}
	arr.Elements[1].(*ArrayValue).Elements[0] = IntegerValue{Val: 99}

	again, _ := env.Get("a")
	want := NewArray(IntegerValue{Val: 1}, NewArray(IntegerValue{Val: 2}))
	if diff := cmp.Diff(want, again); diff != "" {
		t.Fatalf("stored array was aliased (-want +got):\n%s", diff)
	}
}

func TestEnvironmentKeysAndSnapshot(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("b", IntegerValue{Val: 2}, false)
	env.Define("a", FloatValue{Val: 1.5}, true)
	env.Extend().Define("hidden", IntegerValue{}, false)

	if diff := cmp.Diff([]string{"a", "b"}, env.Keys()); diff != "" {
		t.Fatalf("Keys mismatch (-want +got):\n%s", diff)
	}
	snap := env.Snapshot()
	want := map[string]Value{"a": FloatValue{Val: 1.5}, "b": IntegerValue{Val: 2}}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Fatalf("Snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		value Value
		want  bool
	}{
		{IntegerValue{Val: 0}, false},
		{IntegerValue{Val: -3}, true},
		{FloatValue{Val: 0}, false},
		{FloatValue{Val: 0.25}, true},
		{StringValue{Val: ""}, false},
		{StringValue{Val: "x"}, true},
		{NewArray(IntegerValue{Val: 1}), false},
		{NoValue{}, false},
	}
	for _, tc := range cases {
		if got := Truthy(tc.value); got != tc.want {
			t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
