// Package syntaxtest provides syntax level test utilities.
package syntaxtest

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"

	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
)

// FailHandler returns a [syntax.ErrorHandler] that handles syntax errors by failing
// the enclosing test.
//
// It may be called from the scanner goroutine so it uses Errorf rather than Fatalf.
func FailHandler(tb testing.TB) syntax.ErrorHandler {
	tb.Helper()

	return func(pos syntax.Position, msg string) {
		tb.Errorf("%s: %s", pos, msg)
	}
}

// Parse parses src, failing the test on any syntax error.
func Parse(tb testing.TB, name, src string) ast.Stmt {
	tb.Helper()

	p, err := parser.New(name, strings.NewReader(src), FailHandler(tb))
	if err != nil {
		tb.Fatalf("could not create parser: %v", err)
	}

	stmt, err := p.Parse()
	if err != nil {
		tb.Fatalf("could not parse %s: %v", name, err)
	}

	return stmt
}

// Collector gathers syntax errors reported through its [syntax.ErrorHandler].
//
// The scanner reports errors from its own goroutine, so a Collector is safe
// for concurrent use.
type Collector struct {
	diagnostics []syntax.Diagnostic
	mu          sync.Mutex
}

// Handler returns a [syntax.ErrorHandler] that records every error in c.
func (c *Collector) Handler() syntax.ErrorHandler {
	return func(pos syntax.Position, msg string) {
		c.mu.Lock()
		defer c.mu.Unlock()

		c.diagnostics = append(c.diagnostics, syntax.Diagnostic{Msg: msg, Position: pos})
	}
}

// Diagnostics returns a copy of the collected diagnostics, sorted by position.
func (c *Collector) Diagnostics() []syntax.Diagnostic {
	c.mu.Lock()
	defer c.mu.Unlock()

	diags := slices.Clone(c.diagnostics)
	slices.SortStableFunc(diags, func(a, b syntax.Diagnostic) int {
		return syntax.ComparePosition(a.Position, b.Position)
	})

	return diags
}

// String renders every collected diagnostic, one per line, in position order.
func (c *Collector) String() string {
	var s strings.Builder
	for _, diag := range c.Diagnostics() {
		s.WriteString(diag.String())
	}

	return s.String()
}

// AllFilesWithExtension returns an iterator over all filepaths under
// root with the matching extension, recursively.
//
// A call to AllFilesWithExtension like this:
//
//	for file, err := range AllFilesWithExtension(".", ".go") {
//	    // Loop body
//	}
//
// Is roughly equivalent to the following in bash:
//
//	for file in **/*.go; do { # stuff }; done
func AllFilesWithExtension(root, ext string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				yield("", walkErr)
				return walkErr
			}

			if d.Type().IsRegular() && filepath.Ext(d.Name()) == ext {
				if !yield(path, nil) {
					return fs.SkipAll
				}
			}

			return nil
		})
		// handle the error returned by WalkDir itself
		if err != nil {
			yield("", err)
		}
	}
}
