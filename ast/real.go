// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseReal constructs a Real from its textual form, which is preserved for
// output.
func ParseReal(text string) (Real, error) {
	f, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return Real{}, fmt.Errorf("invalid real %q: %w", text, err)
	}
	return Real{value: float32(f), text: text}, nil
}

// RealFromFloat constructs a Real from a binary float. Since no original
// text exists, a canonical form is fabricated from the shortest decimal
// representation of f.
func RealFromFloat(f float32) Real {
	text := strconv.FormatFloat(float64(f), 'f', -1, 32)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return Real{value: f, text: text}
}
