// Copyright (C) 2024 The jref Authors. All Rights Reserved.

// Package ast defines the JSON value algebra: a tagged family of value
// types, ordered containers with cycle detection, and the indexing and
// formatting primitives shared by the parser and the reference engine.
package ast

// A Kind identifies the variant of a Value.
type Kind byte

// Constants defining the valid Kind values. KindRef is reserved for the
// symbolic reference variants implemented outside this package.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindReal
	KindString
	KindArray
	KindObject
	KindRef
)

var kindStr = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindInt:    "integer",
	KindReal:   "real",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
	KindRef:    "reference",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return "invalid"
	}
	return kindStr[v]
}

// A Value is an arbitrary JSON value.
//
// Values may share structure: the reference engine replaces container slots
// with values observed elsewhere in the same tree, so a Value can be owned
// by multiple parents and may (through self references) form a cycle. Touch
// and the looped flag consulted by Indented keep recursive traversals from
// diverging on such cycles.
type Value interface {
	// Kind reports the variant of the value.
	Kind() Kind

	// Compact reports whether the value is consistently rendered on a
	// single line regardless of the pretty-print flag.
	Compact() bool

	// Empty reports whether the value has no nested children. Scalars are
	// trivially empty.
	Empty() bool

	// Touch recursively visits the value, marking any node reachable from
	// itself as looped.
	Touch()

	// Indented renders the value at the given indentation level. It reports
	// ErrLooped for a value the cycle guard has flagged.
	Indented(level int, pretty bool) (string, error)

	// By evaluates the value by the given accessor, the dynamic lookup used
	// while simplifying references.
	By(accessor Value) (Value, error)
}

// Null represents the null constant.
type Null struct{}

func (Null) Kind() Kind    { return KindNull }
func (Null) Compact() bool { return true }
func (Null) Empty() bool   { return true }
func (Null) Touch()        {}

// A Bool is a Boolean constant, true or false.
type Bool bool

func (Bool) Kind() Kind    { return KindBool }
func (Bool) Compact() bool { return true }
func (Bool) Empty() bool   { return true }
func (Bool) Touch()        {}

// An Integer is a 32-bit signed integer value.
type Integer int32

func (Integer) Kind() Kind    { return KindInt }
func (Integer) Compact() bool { return true }
func (Integer) Empty() bool   { return true }
func (Integer) Touch()        {}

// Int returns the value as a native int, for use as an array index.
func (z Integer) Int() int { return int(z) }

// A Real is a 32-bit floating-point value together with the textual form it
// originated from. The text is authoritative for output, so a number parsed
// from source and printed back yields the original text.
type Real struct {
	value float32
	text  string
}

func (Real) Kind() Kind    { return KindReal }
func (Real) Compact() bool { return true }
func (Real) Empty() bool   { return true }
func (Real) Touch()        {}

// Float32 returns the numeric value of r.
func (r Real) Float32() float32 { return r.value }

// Text returns the textual form of r. It is never empty.
func (r Real) Text() string { return r.text }

// A String is a string value. It holds the decoded (unescaped) text.
type String string

func (String) Kind() Kind    { return KindString }
func (String) Compact() bool { return true }
func (String) Empty() bool   { return true }
func (String) Touch()        {}

// Key returns the value as an object key.
func (s String) Key() string { return string(s) }

// An Array is an ordered sequence of values.
type Array struct {
	touched, looped bool
	values          []Value
}

// NewArray constructs an array of the given values.
func NewArray(vs ...Value) *Array {
	a := &Array{values: vs}
	a.Touch()
	return a
}

func (a *Array) Kind() Kind { return KindArray }

// Len reports the number of elements of a.
func (a *Array) Len() int { return len(a.values) }

// Index returns the i-th element of a. The index must be in range.
func (a *Array) Index(i int) Value { return a.values[i] }

// SetIndex replaces the i-th element of a. The index must be in range.
func (a *Array) SetIndex(i int, v Value) { a.values[i] = v }

func (a *Array) Empty() bool { return len(a.values) == 0 }

func (a *Array) Compact() bool { return len(a.values) == 0 }

func (a *Array) Touch() {
	if a.touched {
		a.looped = true
		return
	}
	a.touched = true
	for _, v := range a.values {
		v.Touch()
	}
	a.touched = false
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, value Value) Member { return Member{Key: key, Value: value} }

// An Object is an ordered collection of key-value members with a key
// position index for constant-time lookup.
type Object struct {
	touched, looped bool
	members         []Member
	index           map[string]int
}

// NewObject constructs an object of the given members. It reports a
// DuplicateKeyError if two members share a key.
func NewObject(ms ...Member) (*Object, error) {
	o := &Object{members: ms, index: make(map[string]int, len(ms))}
	for i, m := range ms {
		if _, ok := o.index[m.Key]; ok {
			return nil, DuplicateKeyError(m.Key)
		}
		o.index[m.Key] = i
	}
	o.Touch()
	return o, nil
}

func (o *Object) Kind() Kind { return KindObject }

// Len reports the number of members of o.
func (o *Object) Len() int { return len(o.members) }

// Member returns the i-th member of o. The index must be in range.
func (o *Object) Member(i int) Member { return o.members[i] }

// SetIndex replaces the value of the i-th member of o. The index must be in
// range.
func (o *Object) SetIndex(i int, v Value) { o.members[i].Value = v }

// Keys returns the member keys of o in order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.members))
	for i, m := range o.members {
		keys[i] = m.Key
	}
	return keys
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	if i, ok := o.index[key]; ok {
		return &o.members[i]
	}
	return nil
}

func (o *Object) Empty() bool { return len(o.members) == 0 }

func (o *Object) Compact() bool {
	if len(o.members) == 0 {
		return true
	}
	if len(o.members) != 1 {
		return false
	}
	if o.touched {
		return false // re-entered through a cycle
	}
	o.touched = true
	defer func() { o.touched = false }()
	v := o.members[0].Value
	return v.Compact() && v.Empty()
}

func (o *Object) Touch() {
	if o.touched {
		o.looped = true
		return
	}
	o.touched = true
	for _, m := range o.members {
		m.Value.Touch()
	}
	o.touched = false
}
