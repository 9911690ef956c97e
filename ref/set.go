// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ref

import (
	"github.com/jref-go/jref/ast"
)

// A Set projects one head across several sub-paths, yielding an array of
// the individual results. A set written as "{...}" inside a tail and a
// bracketed multi-index both start as accessor sets, rendered in braces.
// SetParent binds a set and switches it to inline rendering in brackets;
// only a bound set collapses to an array in Value.
type Set struct {
	Ref

	inline bool
	elems  []*Ref
}

// NewSet constructs a set of the given element references.
func NewSet(elems []*Ref) *Set {
	s := &Set{elems: elems}
	s.headKind = HeadAccessor
	return s
}

// Elements returns the element references of s.
func (s *Set) Elements() []*Ref { return s.elems }

func (s *Set) Touch() {
	if s.touched {
		s.looped = true
		return
	}
	s.touched = true
	for _, e := range s.elems {
		e.Touch()
	}
	s.touched = false
}

// Append adds the accessor to every element of the set.
func (s *Set) Append(accessor ast.Value) error {
	for _, e := range s.elems {
		if err := e.Append(accessor); err != nil {
			return err
		}
	}
	return nil
}

// SetParent projects the parent across every element and switches the set
// to inline rendering.
func (s *Set) SetParent(parent ast.Value) error {
	for _, e := range s.elems {
		if err := e.SetParent(parent); err != nil {
			return err
		}
	}
	s.inline = true
	return nil
}

func (s *Set) SetRoot(root ast.Value) error {
	for _, e := range s.elems {
		if err := e.SetRoot(root); err != nil {
			return err
		}
	}
	return nil
}

// Value collapses a bound set whose elements have all reduced to plain
// values into an array of those values. Until then the set itself is
// returned.
func (s *Set) Value() (ast.Value, error) {
	if !s.inline || len(s.tail) > 0 {
		return s, nil
	}
	vs := make([]ast.Value, len(s.elems))
	for i, e := range s.elems {
		v, err := e.Value()
		if err != nil {
			return nil, err
		}
		if v.Kind() == ast.KindRef {
			return s, nil
		}
		vs[i] = v
	}
	return ast.NewArray(vs...), nil
}

func (s *Set) Indented(int, bool) (string, error) {
	if s.looped {
		return "", ast.ErrLooped
	}
	if s.touched {
		s.looped = true
		return "", ast.ErrLooped
	}
	s.touched = true
	defer func() { s.touched = false }()

	var body string
	for i, e := range s.elems {
		if i > 0 {
			body += ", "
		}
		es, err := e.Indented(0, false)
		if err != nil {
			return "", err
		}
		body += es
	}
	if s.inline {
		body = "[" + body + "]"
	} else {
		body = "{" + body + "}"
	}
	tail, err := tailString(s.tail)
	if err != nil {
		return "", err
	}
	return body + tail, nil
}
