// Copyright (C) 2024 The jref Authors. All Rights Reserved.

// Program jref evaluates a path expression against a JSON or YAML document
// and prints the result.
//
// Usage:
//
//	jref [-pretty] <doc-file> <path-expression>
//
// The expression grammar extends JSON with "$" (the document), "@" (the
// enclosing container), dotted keys, bracket indices, set projections, and
// function calls. A result that still depends on unresolved context is
// printed in its residual symbolic form.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/jref-go/jref"
	"github.com/jref-go/jref/ast"
)

var (
	pretty    = flag.Bool("pretty", false, "Indent output with tabs, one level per nesting depth")
	symmetric = flag.Bool("symmetric", false, "Enable symmetric indexing (a[i] == i[a])")
	negative  = flag.Bool("negative", false, "Enable negative array indexing")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <doc-file> <path-expression>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	ast.SymmetricIndexing = *symmetric
	ast.NegativeIndexing = *negative

	doc, err := loadDocument(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	result, err := jref.Eval(doc, flag.Arg(1))
	if err != nil {
		fail(err)
	}
	text, err := ast.Format(result, *pretty)
	if err != nil {
		fail(err)
	}
	fmt.Println(text)
}

// loadDocument reads the document at path: YAML by extension, strict JSON
// otherwise.
func loadDocument(path string) (ast.Value, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read document: %w", err)
		}
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		return ast.ToValue(v)
	}
	return jref.ParseFile(path)
}

func fail(err error) {
	msg := fmt.Sprintf("jref: %v", err)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		msg = color.RedString("%s", msg)
	}
	fmt.Fprintln(os.Stderr, msg)
	os.Exit(2)
}
