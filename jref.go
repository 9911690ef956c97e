// Copyright (C) 2024 The jref Authors. All Rights Reserved.

package jref

import (
	"fmt"
	"io"
	"os"

	"github.com/jref-go/jref/ast"
	"github.com/jref-go/jref/ref"
)

// Parse parses a single strict JSON value from r.
func Parse(r io.Reader) (ast.Value, error) {
	return NewParser(NewScanner(r)).ParseAll(false)
}

// ParseString parses a single strict JSON value from s.
func ParseString(s string) (ast.Value, error) {
	return NewParser(NewScannerString(s)).ParseAll(false)
}

// ParseFile parses a single strict JSON value from the file at path. The
// file handle is closed before ParseFile returns.
func ParseFile(path string) (ast.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ParseExpr parses a dynamic path expression from s. The result is either a
// plain value or a residual symbolic expression awaiting a root binding.
func ParseExpr(s string) (ast.Value, error) {
	return NewParser(NewScannerString(s)).ParseAll(true)
}

// Eval parses expr as a dynamic path expression, binds its "$" references
// to doc, and returns the most-reduced result.
func Eval(doc ast.Value, expr string) (ast.Value, error) {
	v, err := ParseExpr(expr)
	if err != nil {
		return v, err
	}
	e, ok := v.(ref.Expr)
	if !ok {
		return v, nil
	}
	if err := e.SetRoot(doc); err != nil {
		return v, err
	}
	return e.Value()
}
