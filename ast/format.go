// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ast

import (
	"strconv"
	"strings"

	"github.com/jref-go/jref/internal/escape"

	"go4.org/mem"
)

// Format renders v as text consistent with the input grammar. In pretty
// mode, non-compact containers are split across lines and indented with
// tabs, one level per nesting depth.
func Format(v Value, pretty bool) (string, error) {
	return v.Indented(0, pretty)
}

// Quote encodes s as a JSON string value. The contents are escaped and
// double quotation marks are added.
func Quote(s string) string {
	return `"` + string(escape.Quote(mem.S(s))) + `"`
}

func (Null) Indented(int, bool) (string, error) { return "null", nil }

func (b Bool) Indented(int, bool) (string, error) {
	if b {
		return "true", nil
	}
	return "false", nil
}

func (z Integer) Indented(int, bool) (string, error) {
	return strconv.FormatInt(int64(z), 10), nil
}

func (r Real) Indented(int, bool) (string, error) { return r.text, nil }

func (s String) Indented(int, bool) (string, error) { return Quote(string(s)), nil }

func (a *Array) Indented(level int, pretty bool) (string, error) {
	if a.looped {
		return "", ErrLooped
	}
	if a.touched {
		a.looped = true
		return "", ErrLooped
	}
	pretty = pretty && !a.Compact()
	a.touched = true
	defer func() { a.touched = false }()

	return formatSeq('[', ']', len(a.values), level, pretty,
		func(i, nested int, pretty bool) (string, error) {
			return a.values[i].Indented(nested, pretty)
		})
}

func (o *Object) Indented(level int, pretty bool) (string, error) {
	if o.looped {
		return "", ErrLooped
	}
	if o.touched {
		o.looped = true
		return "", ErrLooped
	}
	pretty = pretty && !o.Compact()
	o.touched = true
	defer func() { o.touched = false }()

	return formatSeq('{', '}', len(o.members), level, pretty,
		func(i, nested int, pretty bool) (string, error) {
			m := o.members[i]
			v, err := m.Value.Indented(nested, pretty)
			if err != nil {
				return "", err
			}
			return Quote(m.Key) + ": " + v, nil
		})
}

// formatSeq renders a bracketed sequence of n items. In pretty mode each
// item goes on its own line indented one level deeper, with the closing
// bracket on its own line at the starting level.
func formatSeq(open, close byte, n, level int, pretty bool, item func(i, nested int, pretty bool) (string, error)) (string, error) {
	var sb strings.Builder
	sb.WriteByte(open)

	nested := level
	var indent string
	if pretty {
		nested++
		indent = strings.Repeat("\t", level)
		sb.WriteByte('\n')
	}
	for i := 0; i < n; i++ {
		if i > 0 {
			if pretty {
				sb.WriteString(",\n")
			} else {
				sb.WriteString(", ")
			}
		}
		if pretty {
			sb.WriteString(indent)
			sb.WriteByte('\t')
		}
		s, err := item(i, nested, pretty)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	if pretty {
		sb.WriteString("\n")
		sb.WriteString(indent)
	}
	sb.WriteByte(close)
	return sb.String(), nil
}
