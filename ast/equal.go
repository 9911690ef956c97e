// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ast

// Equal reports whether a and b have the same shape: the same kind, and
// recursively equal contents. Reals compare by their textual form. Symbolic
// references compare by their rendered text.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case Null:
		return true
	case Bool:
		return t == b.(Bool)
	case Integer:
		return t == b.(Integer)
	case Real:
		return t.text == b.(Real).text
	case String:
		return t == b.(String)
	case *Array:
		u := b.(*Array)
		if t.Len() != u.Len() {
			return false
		}
		for i, v := range t.values {
			if !Equal(v, u.values[i]) {
				return false
			}
		}
		return true
	case *Object:
		u := b.(*Object)
		if t.Len() != u.Len() {
			return false
		}
		for i, m := range t.members {
			if m.Key != u.members[i].Key || !Equal(m.Value, u.members[i].Value) {
				return false
			}
		}
		return true
	default:
		as, aerr := Format(a, false)
		bs, berr := Format(b, false)
		return aerr == nil && berr == nil && as == bs
	}
}
