// Copyright (C) 2024 The jref Authors. All Rights Reserved.

// Package ref implements symbolic references: deferred lookup chains over
// the ast value algebra that bind to their surrounding context when it
// becomes known and then rewrite themselves into the most-reduced form.
//
// A reference is a head plus an ordered tail of accessors. The head may be
// a concrete value, the enclosing container ("@", bound by SetParent), the
// outermost document ("$", bound by SetRoot), or a placeholder supplied
// later when the reference is used as a set element. Simplification
// consumes tail accessors against a concrete head until the reference
// either fully reduces to a plain value or stalls on a symbolic dependency.
package ref

import (
	"fmt"

	"github.com/creachadair/mds/mapset"
	"github.com/jref-go/jref/ast"
)

// A HeadKind identifies what the head of a reference is bound to.
type HeadKind byte

const (
	HeadValue    HeadKind = iota // a concrete value
	HeadLocal                    // the enclosing container ("@")
	HeadRoot                     // the outermost document ("$")
	HeadAccessor                 // supplied by SetParent when used in a set
)

// An Expr is a symbolic value: a reference, a set projection, or a named
// function call. All Expr implementations are also ast values, so symbolic
// residuals can live inside a value tree.
type Expr interface {
	ast.Value

	// Head reports what the head is currently bound to.
	Head() HeadKind

	// Len reports the number of pending tail accessors.
	Len() int

	// Append adds one accessor to the tail, simplifying immediately when
	// the expression is concrete.
	Append(accessor ast.Value) error

	// SetParent binds a local or accessor head to the enclosing container
	// and simplifies. It is a no-op on root or already-bound heads.
	SetParent(parent ast.Value) error

	// SetRoot binds root heads, recursively through tails, set elements,
	// and function arguments, and simplifies.
	SetRoot(root ast.Value) error

	// Value returns the most-reduced form of the expression: a plain value
	// when fully reduced, otherwise the expression itself.
	Value() (ast.Value, error)
}

// A Ref is a plain reference: a head plus a tail of pending accessors.
type Ref struct {
	touched, looped bool
	headKind        HeadKind
	head            ast.Value
	tail            []ast.Value
}

// New constructs an empty reference with the given head kind.
func New(kind HeadKind) *Ref { return &Ref{headKind: kind} }

// To constructs a reference bound to the concrete value head.
func To(head ast.Value) *Ref { return &Ref{headKind: HeadValue, head: head} }

func (r *Ref) Kind() ast.Kind { return ast.KindRef }
func (r *Ref) Compact() bool  { return true }
func (r *Ref) Empty() bool    { return true }

func (r *Ref) Head() HeadKind { return r.headKind }
func (r *Ref) Len() int       { return len(r.tail) }

func (r *Ref) By(accessor ast.Value) (ast.Value, error) {
	return nil, &ast.DomainError{Base: ast.KindRef, Accessor: accessor.Kind()}
}

func (r *Ref) Touch() {
	if r.touched {
		r.looped = true
		return
	}
	r.touched = true
	if r.headKind == HeadValue {
		r.head.Touch()
	}
	for _, a := range r.tail {
		a.Touch()
	}
	r.touched = false
}

// Append adds one accessor to the tail. If the reference was concrete
// before the append, it is simplified immediately.
func (r *Ref) Append(accessor ast.Value) error {
	abstract := r.headKind != HeadValue || len(r.tail) > 0
	r.tail = append(r.tail, accessor)
	if abstract {
		return nil
	}
	return r.simplify()
}

// SetParent binds a local or accessor head to parent and simplifies.
func (r *Ref) SetParent(parent ast.Value) error {
	if r.headKind == HeadLocal || r.headKind == HeadAccessor {
		r.head = parent
		r.headKind = HeadValue
		return r.simplify()
	}
	return nil
}

// SetRoot propagates root through the tail accessors, then binds a root
// head to root. Simplification re-runs even when the head was already
// bound, so accessors that resolved during propagation are consumed.
func (r *Ref) SetRoot(root ast.Value) error {
	for _, a := range r.tail {
		if e, ok := a.(Expr); ok {
			if err := e.SetRoot(root); err != nil {
				return err
			}
		}
	}
	if r.headKind == HeadRoot {
		r.head = root
		r.headKind = HeadValue
	}
	if r.headKind == HeadValue {
		return r.simplify()
	}
	return nil
}

// Value returns the most-reduced form of r: with a bound head and no
// pending accessors it unwraps to the head value, chasing through nested
// expressions; otherwise it returns r itself. A chase that revisits a node
// stops and leaves the reference symbolic.
func (r *Ref) Value() (ast.Value, error) {
	if len(r.tail) > 0 || r.headKind != HeadValue {
		return r, nil
	}
	seen := mapset.New[ast.Value](r)
	cur := r.head
	for {
		if seen.Has(cur) {
			return cur, nil
		}
		seen.Add(cur)
		switch t := cur.(type) {
		case *Ref:
			if len(t.tail) > 0 || t.headKind != HeadValue {
				return t, nil
			}
			cur = t.head
		case Expr:
			next, err := t.Value()
			if err != nil {
				return nil, err
			}
			if next == cur {
				return cur, nil
			}
			cur = next
		default:
			return cur, nil
		}
	}
}

// simplify consumes tail accessors while the head is a concrete value.
// Each step either pops the front accessor, resolves it in place, or stops
// on a symbolic dependency; an indexing failure surfaces with the
// partially-reduced state left observable.
func (r *Ref) simplify() error {
	for r.headKind == HeadValue && len(r.tail) > 0 {
		accessor := r.tail[0]

		// A reference head absorbs the accessor into its own tail,
		// collapsing chains of references.
		if head, ok := r.head.(Expr); ok {
			r.tail = r.tail[1:]
			if err := head.Append(accessor); err != nil {
				return err
			}
			v, err := head.Value()
			if err != nil {
				return err
			}
			r.head = v
			continue
		}

		switch t := accessor.(type) {
		case *Ref:
			if t.headKind == HeadRoot {
				return nil // cannot reduce without a root binding
			}
			if err := t.SetParent(r.head); err != nil {
				return err
			}
			v, err := t.Value()
			if err != nil {
				return err
			}
			if v == accessor {
				return nil // stalled on a symbolic dependency
			}
			r.tail[0] = v
		case *Set:
			if err := t.SetParent(r.head); err != nil {
				return err
			}
			r.head = t
			r.tail = r.tail[1:]
		case *Func:
			return nil // deferred until Value is requested
		default:
			if accessor.Kind() == ast.KindRef {
				return fmt.Errorf("unsupported accessor type %T", accessor)
			}
			next, err := r.head.By(accessor)
			if err != nil {
				return err
			}
			r.head = next
			r.tail = r.tail[1:]
		}
	}
	return nil
}

func (r *Ref) Indented(level int, pretty bool) (string, error) {
	if r.looped {
		return "", ast.ErrLooped
	}
	if r.touched {
		r.looped = true
		return "", ast.ErrLooped
	}
	r.touched = true
	defer func() { r.touched = false }()

	var head string
	switch r.headKind {
	case HeadValue:
		s, err := r.head.Indented(level, pretty)
		if err != nil {
			return "", err
		}
		head = s
	case HeadLocal:
		head = "@"
	case HeadRoot:
		head = "$"
	}
	tail, err := tailString(r.tail)
	if err != nil {
		return "", err
	}
	return head + tail, nil
}

// tailString renders pending accessors: bracketed, except for sets which
// carry their own brackets.
func tailString(tail []ast.Value) (string, error) {
	var out string
	for _, a := range tail {
		s, err := a.Indented(0, false)
		if err != nil {
			return "", err
		}
		if _, ok := a.(*Set); ok {
			out += s
		} else {
			out += "[" + s + "]"
		}
	}
	return out, nil
}
