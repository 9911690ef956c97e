// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ref

import (
	"errors"
	"fmt"

	"github.com/jref-go/jref/ast"
)

// ErrRecursiveArg is reported when a function argument is a bare "@" with
// no accessors, which could only resolve to the call itself.
var ErrRecursiveArg = errors.New("recursive function")

// A Func is a named call with a list of argument values. Calls are
// abstract by default and stay symbolic; only the built-in names size, min,
// and max reduce when Value is requested.
type Func struct {
	Ref

	name string
	args []ast.Value
}

// NewFunc constructs a function call with the given name and no arguments.
func NewFunc(name string) *Func {
	f := &Func{name: name}
	f.headKind = HeadRoot
	return f
}

// Name returns the name of the call.
func (f *Func) Name() string { return f.name }

// SetArgs installs the argument list. It reports ErrRecursiveArg for an
// argument that is a bare local reference.
func (f *Func) SetArgs(args []ast.Value) error {
	for _, arg := range args {
		if e, ok := arg.(Expr); ok && e.Len() == 0 && e.Head() == HeadLocal {
			return ErrRecursiveArg
		}
	}
	f.args = args
	return nil
}

func (f *Func) Touch() {
	if f.touched {
		f.looped = true
		return
	}
	f.touched = true
	for _, arg := range f.args {
		arg.Touch()
	}
	f.touched = false
}

// SetParent binds local references among the arguments to the enclosing
// container and reduces them in place.
func (f *Func) SetParent(parent ast.Value) error {
	for i, arg := range f.args {
		e, ok := arg.(Expr)
		if !ok {
			continue
		}
		if err := e.SetParent(parent); err != nil {
			return err
		}
		v, err := e.Value()
		if err != nil {
			return err
		}
		f.args[i] = v
	}
	return nil
}

func (f *Func) SetRoot(root ast.Value) error {
	for _, arg := range f.args {
		if e, ok := arg.(Expr); ok {
			if err := e.SetRoot(root); err != nil {
				return err
			}
		}
	}
	return nil
}

// Value evaluates the built-in calls; any other name stays symbolic.
//
//	size(x)  length of an array or object argument; with zero or several
//	         arguments, the arity of the call
//	min(x…)  least of the integer items; a single array argument folds
//	         over its items
//	max(x…)  greatest, same argument conventions as min
//
// A reference argument is first asked for its reduced value; if it is
// still symbolic the whole call stays symbolic.
func (f *Func) Value() (ast.Value, error) {
	if len(f.tail) > 0 {
		return f, nil
	}
	switch f.name {
	case "size":
		return f.evalSize()
	case "min", "max":
		return f.evalFold(f.name == "max")
	}
	return f, nil
}

func (f *Func) evalSize() (ast.Value, error) {
	if len(f.args) != 1 {
		return ast.Integer(len(f.args)), nil
	}
	v, err := deref(f.args[0])
	if err != nil {
		return nil, err
	}
	f.args[0] = v
	switch t := v.(type) {
	case *ast.Array:
		return ast.Integer(t.Len()), nil
	case *ast.Object:
		return ast.Integer(t.Len()), nil
	}
	return f, nil
}

func (f *Func) evalFold(isMax bool) (ast.Value, error) {
	items := f.args
	if len(f.args) == 1 {
		v, err := deref(f.args[0])
		if err != nil {
			return nil, err
		}
		f.args[0] = v
		if v.Kind() == ast.KindRef {
			return f, nil
		}
		if arr, ok := v.(*ast.Array); ok {
			items = make([]ast.Value, arr.Len())
			for i := range items {
				items[i] = arr.Index(i)
			}
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("cannot compute %s() of an empty array", f.name)
	}
	var best ast.Integer
	for i, item := range items {
		v, err := deref(item)
		if err != nil {
			return nil, err
		}
		if v.Kind() == ast.KindRef {
			return f, nil
		}
		z, ok := v.(ast.Integer)
		if !ok {
			return nil, fmt.Errorf("cannot compute %s() of a %v", f.name, v.Kind())
		}
		if i == 0 || (isMax && z > best) || (!isMax && z < best) {
			best = z
		}
	}
	return best, nil
}

// deref reduces a symbolic argument to its current value.
func deref(v ast.Value) (ast.Value, error) {
	if e, ok := v.(Expr); ok {
		return e.Value()
	}
	return v, nil
}

func (f *Func) Indented(int, bool) (string, error) {
	if f.looped {
		return "", ast.ErrLooped
	}
	if f.touched {
		f.looped = true
		return "", ast.ErrLooped
	}
	f.touched = true
	defer func() { f.touched = false }()

	var body string
	for i, arg := range f.args {
		if i > 0 {
			body += ", "
		}
		as, err := arg.Indented(0, false)
		if err != nil {
			return "", err
		}
		body += as
	}
	tail, err := tailString(f.tail)
	if err != nil {
		return "", err
	}
	return f.name + "(" + body + ")" + tail, nil
}
