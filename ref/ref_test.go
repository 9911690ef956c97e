// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ref_test

import (
	"errors"
	"testing"

	"github.com/jref-go/jref/ast"
	"github.com/jref-go/jref/ref"
)

func mustObject(t *testing.T, ms ...ast.Member) *ast.Object {
	t.Helper()
	o, err := ast.NewObject(ms...)
	if err != nil {
		t.Fatalf("NewObject: unexpected error: %v", err)
	}
	return o
}

func mustValue(t *testing.T, e ref.Expr) ast.Value {
	t.Helper()
	v, err := e.Value()
	if err != nil {
		t.Fatalf("Value: unexpected error: %v", err)
	}
	return v
}

func format(t *testing.T, v ast.Value) string {
	t.Helper()
	s, err := ast.Format(v, false)
	if err != nil {
		t.Fatalf("Format: unexpected error: %v", err)
	}
	return s
}

func TestValueUnwrap(t *testing.T) {
	r := ref.To(ast.Integer(42))
	v := mustValue(t, r)
	if z, ok := v.(ast.Integer); !ok || z != 42 {
		t.Errorf("Value: got %v, want 42", v)
	}

	// Nested references unwrap through the chain.
	outer := ref.To(ref.To(ast.String("deep")))
	if got := format(t, mustValue(t, outer)); got != `"deep"` {
		t.Errorf("chained Value: got %s, want \"deep\"", got)
	}
}

func TestAppendSimplifies(t *testing.T) {
	obj := mustObject(t, ast.Field("life", ast.Integer(42)))
	r := ref.To(obj)
	if err := r.Append(ast.String("life")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if got := format(t, mustValue(t, r)); got != "42" {
		t.Errorf("Value: got %s, want 42", got)
	}
}

func TestAppendAbstract(t *testing.T) {
	r := ref.New(ref.HeadRoot)
	if err := r.Append(ast.String("key")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len: got %d, want 1", r.Len())
	}
	if v := mustValue(t, r); v != ast.Value(r) {
		t.Errorf("Value of abstract reference: got %v, want itself", v)
	}
	if got := format(t, r); got != `$["key"]` {
		t.Errorf("format: got %s, want $[\"key\"]", got)
	}
}

func TestSetParent(t *testing.T) {
	obj := mustObject(t, ast.Field("k", ast.Integer(5)))
	r := ref.New(ref.HeadLocal)
	if err := r.Append(ast.String("k")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if got := format(t, r); got != `@["k"]` {
		t.Errorf("before binding: got %s, want @[\"k\"]", got)
	}
	if err := r.SetParent(obj); err != nil {
		t.Fatalf("SetParent: unexpected error: %v", err)
	}
	if got := format(t, mustValue(t, r)); got != "5" {
		t.Errorf("after binding: got %s, want 5", got)
	}
}

func TestSetParentIgnoresRoot(t *testing.T) {
	r := ref.New(ref.HeadRoot)
	if err := r.SetParent(ast.Integer(1)); err != nil {
		t.Fatalf("SetParent: unexpected error: %v", err)
	}
	if r.Head() != ref.HeadRoot {
		t.Errorf("Head: got %v, want HeadRoot", r.Head())
	}
}

func TestSetRoot(t *testing.T) {
	doc := mustObject(t, ast.Field("key", ast.Integer(2)))
	r := ref.New(ref.HeadRoot)
	if err := r.Append(ast.String("key")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if err := r.SetRoot(doc); err != nil {
		t.Fatalf("SetRoot: unexpected error: %v", err)
	}
	if got := format(t, mustValue(t, r)); got != "2" {
		t.Errorf("Value: got %s, want 2", got)
	}
}

// SetRoot reaches references nested in the tail, and the outer reference
// consumes the accessors they resolve into.
func TestSetRootThroughTail(t *testing.T) {
	doc := mustObject(t, ast.Field("key", ast.Integer(2)))
	arr := ast.NewArray(ast.Integer(10), ast.Integer(20), ast.Integer(30))

	inner := ref.New(ref.HeadRoot)
	if err := inner.Append(ast.String("key")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	outer := ref.To(arr)
	if err := outer.Append(inner); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if outer.Len() != 1 {
		t.Fatalf("Len before root binding: got %d, want 1", outer.Len())
	}

	if err := outer.SetRoot(doc); err != nil {
		t.Fatalf("SetRoot: unexpected error: %v", err)
	}
	if got := format(t, mustValue(t, outer)); got != "30" {
		t.Errorf("Value: got %s, want 30", got)
	}
}

func TestSimplifyErrors(t *testing.T) {
	arr := ast.NewArray(ast.Integer(1), ast.Integer(2))

	var rerr *ast.RangeError
	r := ref.To(arr)
	if err := r.Append(ast.Integer(7)); !errors.As(err, &rerr) {
		t.Errorf("Append(7): got error %v, want RangeError", err)
	}

	var derr *ast.DomainError
	r = ref.To(arr)
	if err := r.Append(ast.String("x")); !errors.As(err, &derr) {
		t.Errorf("Append(x): got error %v, want DomainError", err)
	}
}

// A reference accessor that cannot make progress leaves the expression
// residual instead of spinning.
func TestSimplifyStalls(t *testing.T) {
	pending := ref.To(ast.NewArray(ast.Integer(9)))
	root := ref.New(ref.HeadRoot)
	if err := root.Append(ast.String("x")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if err := pending.Append(root); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}

	outer := ref.To(ast.NewArray(ast.Integer(1)))
	if err := outer.Append(pending); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if got := format(t, outer); got != `[1][[9][$["x"]]]` {
		t.Errorf("residual: got %s", got)
	}
}

// A self-referential chain resolves to the node itself rather than
// recursing forever.
func TestValueSelfReference(t *testing.T) {
	inner := ref.New(ref.HeadLocal)
	if err := inner.Append(ast.String("a")); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	obj := mustObject(t, ast.Field("a", inner))
	if err := inner.SetParent(obj); err != nil {
		t.Fatalf("SetParent: unexpected error: %v", err)
	}
	v, err := inner.Value()
	if err != nil {
		t.Fatalf("Value: unexpected error: %v", err)
	}
	if v.Kind() != ast.KindRef {
		t.Errorf("Value: got kind %v, want reference", v.Kind())
	}
}

func TestSetProjection(t *testing.T) {
	obj := mustObject(t,
		ast.Field("a", ast.Integer(1)),
		ast.Field("b", ast.Integer(2)),
		ast.Field("c", ast.Integer(3)),
	)
	elem := func(key string) *ref.Ref {
		e := ref.New(ref.HeadAccessor)
		if err := e.Append(ast.String(key)); err != nil {
			t.Fatalf("Append: unexpected error: %v", err)
		}
		return e
	}
	set := ref.NewSet([]*ref.Ref{elem("b"), elem("c"), elem("a")})
	if got := format(t, set); got != `{["b"], ["c"], ["a"]}` {
		t.Errorf("accessor set: got %s", got)
	}

	r := ref.To(obj)
	if err := r.Append(set); err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	v := mustValue(t, r)
	if v.Kind() != ast.KindArray {
		t.Fatalf("Value: got kind %v, want array", v.Kind())
	}
	if got := format(t, v); got != "[2, 3, 1]" {
		t.Errorf("projection: got %s, want [2, 3, 1]", got)
	}
}

func TestSetFanOut(t *testing.T) {
	arrs := ast.NewArray(
		ast.NewArray(ast.Integer(1)),
		ast.NewArray(ast.Integer(2)),
	)
	elem := func(i int) *ref.Ref {
		e := ref.New(ref.HeadAccessor)
		if err := e.Append(ast.Integer(i)); err != nil {
			t.Fatalf("Append: unexpected error: %v", err)
		}
		return e
	}
	set := ref.NewSet([]*ref.Ref{elem(1), elem(0)})

	r := ref.To(arrs)
	if err := r.Append(set); err != nil {
		t.Fatalf("Append set: unexpected error: %v", err)
	}
	// A further accessor maps across the set elements, not into the
	// projected array.
	if err := r.Append(ast.Integer(0)); err != nil {
		t.Fatalf("Append index: unexpected error: %v", err)
	}
	if got := format(t, mustValue(t, r)); got != "[2, 1]" {
		t.Errorf("fan-out: got %s, want [2, 1]", got)
	}
}

func TestRefTouchCycle(t *testing.T) {
	r := ref.New(ref.HeadLocal)
	obj := mustObject(t, ast.Field("self", r))
	if err := r.SetParent(obj); err != nil {
		t.Fatalf("SetParent: unexpected error: %v", err)
	}
	obj.Touch()
	if _, err := ast.Format(obj, false); !errors.Is(err, ast.ErrLooped) {
		t.Errorf("Format: got error %v, want ErrLooped", err)
	}
}
