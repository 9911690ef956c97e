// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package escape

import (
	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

// Quote encodes a string to escape characters for inclusion in a JSON string.
// The named escapes are applied; all other bytes, UTF-8 sequences included,
// pass through verbatim, making Quote the exact inverse of Unquote.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len())
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			buf = append(buf, '\\', b)
		case b < ' ' && controlEsc[b] != 0:
			buf = append(buf, '\\', controlEsc[b])
		default:
			buf = append(buf, b)
		}
	}
	return buf
}
