// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ast_test

import (
	"errors"
	"testing"

	"github.com/jref-go/jref/ast"
)

func setToggles(t *testing.T, symmetric, negative bool) {
	t.Helper()
	oldSym, oldNeg := ast.SymmetricIndexing, ast.NegativeIndexing
	ast.SymmetricIndexing, ast.NegativeIndexing = symmetric, negative
	t.Cleanup(func() {
		ast.SymmetricIndexing, ast.NegativeIndexing = oldSym, oldNeg
	})
}

func TestArrayAt(t *testing.T) {
	arr := ast.NewArray(ast.Integer(10), ast.Integer(20), ast.Integer(30))

	v, err := arr.At(1)
	if err != nil {
		t.Fatalf("At(1): unexpected error: %v", err)
	}
	if z := v.(ast.Integer); z != 20 {
		t.Errorf("At(1): got %v, want 20", z)
	}

	var rerr *ast.RangeError
	if _, err := arr.At(3); !errors.As(err, &rerr) {
		t.Errorf("At(3): got error %v, want RangeError", err)
	}
	if _, err := arr.At(-1); !errors.As(err, &rerr) {
		t.Errorf("At(-1) without negative indexing: got error %v, want RangeError", err)
	}
}

func TestNegativeIndexing(t *testing.T) {
	setToggles(t, false, true)
	arr := ast.NewArray(ast.Integer(10), ast.Integer(20), ast.Integer(30))

	v, err := arr.At(-1)
	if err != nil {
		t.Fatalf("At(-1): unexpected error: %v", err)
	}
	last, err := arr.At(arr.Len() - 1)
	if err != nil {
		t.Fatalf("At(len-1): unexpected error: %v", err)
	}
	if !ast.Equal(v, last) {
		t.Errorf("At(-1): got %v, want %v", v, last)
	}

	var rerr *ast.RangeError
	if _, err := arr.At(-4); !errors.As(err, &rerr) {
		t.Errorf("At(-4): got error %v, want RangeError", err)
	}
}

func TestObjectAt(t *testing.T) {
	obj := mustObject(t, ast.Field("a", ast.Integer(1)))

	v, err := obj.At("a")
	if err != nil {
		t.Fatalf("At(a): unexpected error: %v", err)
	}
	if z := v.(ast.Integer); z != 1 {
		t.Errorf("At(a): got %v, want 1", z)
	}

	var rerr *ast.RangeError
	if _, err := obj.At("b"); !errors.As(err, &rerr) {
		t.Errorf("At(b): got error %v, want RangeError", err)
	}
}

func TestBy(t *testing.T) {
	arr := ast.NewArray(ast.Integer(10), ast.Integer(20))
	obj := mustObject(t, ast.Field("k", ast.Integer(5)))

	t.Run("ArrayByInteger", func(t *testing.T) {
		v, err := arr.By(ast.Integer(0))
		if err != nil {
			t.Fatalf("By: unexpected error: %v", err)
		}
		if z := v.(ast.Integer); z != 10 {
			t.Errorf("By: got %v, want 10", z)
		}
	})
	t.Run("ObjectByString", func(t *testing.T) {
		v, err := obj.By(ast.String("k"))
		if err != nil {
			t.Fatalf("By: unexpected error: %v", err)
		}
		if z := v.(ast.Integer); z != 5 {
			t.Errorf("By: got %v, want 5", z)
		}
	})
	t.Run("Incompatible", func(t *testing.T) {
		tests := []struct {
			base, accessor ast.Value
		}{
			{ast.Null{}, ast.Integer(0)},
			{ast.Bool(true), ast.Integer(0)},
			{ast.RealFromFloat(1), ast.Integer(0)},
			{arr, ast.String("k")},
			{obj, ast.Integer(0)},
			{ast.Integer(0), arr},  // symmetric indexing off
			{ast.String("k"), obj}, // symmetric indexing off
		}
		for _, tc := range tests {
			var derr *ast.DomainError
			if _, err := tc.base.By(tc.accessor); !errors.As(err, &derr) {
				t.Errorf("%v.By(%v): got error %v, want DomainError",
					tc.base.Kind(), tc.accessor.Kind(), err)
			}
		}
	})
}

func TestSymmetricIndexing(t *testing.T) {
	setToggles(t, true, false)
	arr := ast.NewArray(ast.Integer(10), ast.Integer(20))
	obj := mustObject(t, ast.Field("k", ast.Integer(5)))

	v, err := ast.Integer(1).By(arr)
	if err != nil {
		t.Fatalf("integer.By(array): unexpected error: %v", err)
	}
	w, err := arr.At(1)
	if err != nil {
		t.Fatalf("At(1): unexpected error: %v", err)
	}
	if !ast.Equal(v, w) {
		t.Errorf("integer.By(array): got %v, want %v", v, w)
	}

	v, err = ast.String("k").By(obj)
	if err != nil {
		t.Fatalf("string.By(object): unexpected error: %v", err)
	}
	if z := v.(ast.Integer); z != 5 {
		t.Errorf("string.By(object): got %v, want 5", z)
	}

	// Symmetry does not legitimize mismatched operands.
	var derr *ast.DomainError
	if _, err := ast.Integer(0).By(obj); !errors.As(err, &derr) {
		t.Errorf("integer.By(object): got error %v, want DomainError", err)
	}
	if _, err := ast.String("k").By(arr); !errors.As(err, &derr) {
		t.Errorf("string.By(array): got error %v, want DomainError", err)
	}
}
