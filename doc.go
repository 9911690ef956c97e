// Copyright (C) 2024 The jref Authors. All Rights Reserved.

// Package jref implements a JSON value model with a path-expression
// sublanguage. Beyond plain JSON, the parser's dynamic mode accepts dotted
// keys, bracket indices, set projections, and named function calls, and
// builds lazy symbolic references that stay unresolved until enough context
// is known, then simplify in place.
//
// The root package holds the character scanner and the parser. Package ast
// defines the value algebra and formatting; package ref implements the
// reference engine that dynamic expressions reduce through.
//
// # Expressions
//
// A path expression selects through a value. "$" binds to the outermost
// document, "@" to the immediately enclosing container, and a bare
// identifier k is sugar for $.k:
//
//	{"life":42}.life                      => 42
//	[10,20,30,40,50][3]                   => 40
//	{"a":1, "b":2, "c":3}{.b, .c, .a}     => [2, 3, 1]
//	[1,2,3,4][$.key]                      => [1, 2, 3, 4][$["key"]]
//
// The last result is residual: without a root binding, "$" cannot reduce.
// Use Eval to bind a parsed document and reduce the rest of the way.
package jref
