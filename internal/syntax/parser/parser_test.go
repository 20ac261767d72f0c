package parser_test

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
	"go.followtheprocess.codes/dims/internal/syntax/printer"
	"go.followtheprocess.codes/dims/internal/syntax/syntaxtest"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
	"go.uber.org/goleak"
)

var update = flag.Bool("update", false, "Update testdata")

// TestValid parses every valid program and compares the canonical printed
// form of the tree against want.dims.
func TestValid(t *testing.T) {
	// Force colour for diffs but only locally
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "valid", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.dims")
			test.True(t, ok, test.Context("%s missing src.dims", file))

			want, ok := archive.Read("want.dims")
			test.True(t, ok, test.Context("%s missing want.dims", file))

			p, err := parser.New(name, strings.NewReader(src), syntaxtest.FailHandler(t))
			test.Ok(t, err)

			stmt, err := p.Parse()
			test.Ok(t, err)

			got := printer.Stmt(stmt)

			if *update {
				test.Ok(t, archive.Write("want.dims", got))
				test.Ok(t, txtar.DumpFile(file, archive))

				return
			}

			test.Diff(t, got, want)

			// The canonical form must itself parse back to the same thing
			p, err = parser.New(name, strings.NewReader(got), syntaxtest.FailHandler(t))
			test.Ok(t, err)

			reparsed, err := p.Parse()
			test.Ok(t, err)

			test.Diff(t, printer.Stmt(reparsed), got)
		})
	}
}

// TestInvalid is the primary test for invalid syntax. It does much the same as TestValid
// but instead of failing tests if a syntax error is encountered, it fails if there are not any.
//
// Additionally, the errors are compared against a reference.
func TestInvalid(t *testing.T) {
	// Force colour for diffs but only locally
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "invalid", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.dims")
			test.True(t, ok, test.Context("%s missing src.dims", file))

			want, ok := archive.Read("errors.txt")
			test.True(t, ok, test.Context("%s missing errors.txt", file))

			collector := &syntaxtest.Collector{}

			p, err := parser.New(name, strings.NewReader(src), collector.Handler())
			test.Ok(t, err)

			stmt, err := p.Parse()
			test.Err(t, err, test.Context("Parse() failed to return an error given invalid syntax"))
			test.True(t, stmt == nil, test.Context("Parse() returned a tree alongside an error"))

			got := collector.String()

			if *update {
				test.Ok(t, archive.Write("errors.txt", got))
				test.Ok(t, txtar.DumpFile(file, archive))

				return
			}

			test.Diff(t, got, want)
		})
	}
}

func TestParseTree(t *testing.T) {
	tests := []struct {
		check func(tb testing.TB, stmt ast.Stmt) // Assertions on the parsed tree
		name  string                             // Name of the test case
		src   string                             // Source to parse
	}{
		{
			name: "empty program is skip",
			src:  "",
			check: func(tb testing.TB, stmt ast.Stmt) {
				_, ok := stmt.(*ast.Skip)
				test.True(tb, ok, test.Context("got %T, expected *ast.Skip", stmt))
			},
		},
		{
			name: "single statement is not wrapped",
			src:  "int x;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				decl, ok := stmt.(*ast.Declaration)
				test.True(tb, ok, test.Context("got %T, expected *ast.Declaration", stmt))
				test.Equal(tb, decl.Name, "x")
				test.Equal(tb, decl.Type, ast.TypeInt)
			},
		},
		{
			name: "sequence folds right",
			src:  "int a;\nint b;\nint c;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				outer, ok := stmt.(*ast.Sequence)
				test.True(tb, ok, test.Context("got %T, expected *ast.Sequence", stmt))

				line, err := outer.Line()
				test.Ok(tb, err)
				test.Equal(tb, line, 1)

				_, ok = outer.First.(*ast.Declaration)
				test.True(tb, ok, test.Context("first was %T", outer.First))

				inner, ok := outer.Second.(*ast.Sequence)
				test.True(tb, ok, test.Context("second was %T", outer.Second))

				line, err = inner.Line()
				test.Ok(tb, err)
				test.Equal(tb, line, 2)
			},
		},
		{
			name: "subtraction is left associative",
			src:  "print 1 - 2 - 3;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				expr := stmt.(*ast.Print).Value.(*ast.BinaryOp)
				test.Equal(tb, expr.Op, ast.Sub)

				left, ok := expr.Left.(*ast.BinaryOp)
				test.True(tb, ok, test.Context("left was %T, expected *ast.BinaryOp", expr.Left))
				test.Equal(tb, left.Op, ast.Sub)

				right, ok := expr.Right.(*ast.IntLiteral)
				test.True(tb, ok, test.Context("right was %T, expected *ast.IntLiteral", expr.Right))
				test.Equal(tb, right.Value, 3)
			},
		},
		{
			name: "unary binds tighter than binary",
			src:  "print -x * 2;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				expr := stmt.(*ast.Print).Value.(*ast.BinaryOp)
				test.Equal(tb, expr.Op, ast.Mul)

				neg, ok := expr.Left.(*ast.UnaryOp)
				test.True(tb, ok, test.Context("left was %T, expected *ast.UnaryOp", expr.Left))
				test.Equal(tb, neg.Op, ast.Negate)
			},
		},
		{
			name: "or binds loosest",
			src:  "print a = b || c < d;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				expr := stmt.(*ast.Print).Value.(*ast.BinaryOp)
				test.Equal(tb, expr.Op, ast.Or)
				test.Equal(tb, expr.Left.(*ast.BinaryOp).Op, ast.Equal)
				test.Equal(tb, expr.Right.(*ast.BinaryOp).Op, ast.LessThan)
			},
		},
		{
			name: "missing else is skip",
			src:  "if (true) then print 1; endif",
			check: func(tb testing.TB, stmt ast.Stmt) {
				ifStmt := stmt.(*ast.If)
				_, ok := ifStmt.Else.(*ast.Skip)
				test.True(tb, ok, test.Context("else was %T, expected *ast.Skip", ifStmt.Else))
			},
		},
		{
			name: "expression lines",
			src:  "int x;\nx :=\n  1\n  +\n  2;",
			check: func(tb testing.TB, stmt ast.Stmt) {
				assign := stmt.(*ast.Sequence).Second.(*ast.Assignment)

				line, err := assign.Line()
				test.Ok(tb, err)
				test.Equal(tb, line, 2)

				sum := assign.Value.(*ast.BinaryOp)
				test.Equal(tb, sum.Line(), 4)
				test.Equal(tb, sum.Left.Line(), 3)
				test.Equal(tb, sum.Right.Line(), 5)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			p, err := parser.New(tt.name, strings.NewReader(tt.src), syntaxtest.FailHandler(t))
			test.Ok(t, err)

			stmt, err := p.Parse()
			test.Ok(t, err)

			tt.check(t, stmt)
		})
	}
}

func TestNilHandler(t *testing.T) {
	defer goleak.VerifyNone(t)

	p, err := parser.New("nil", strings.NewReader("int x; @"), nil)
	test.Ok(t, err)

	_, err = p.Parse()
	test.Err(t, err)
}

func BenchmarkParser(b *testing.B) {
	file := filepath.Join("testdata", "valid", "nested.txtar")

	archive, err := txtar.ParseFile(file)
	test.Ok(b, err)

	src, ok := archive.Read("src.dims")
	test.True(b, ok, test.Context("%s missing src.dims", file))

	for b.Loop() {
		p, err := parser.New(file, strings.NewReader(src), nil)
		test.Ok(b, err)

		_, err = p.Parse()
		test.Ok(b, err)
	}
}

func FuzzParser(f *testing.F) {
	// Get all the .dims source from testdata for the corpus
	pattern := filepath.Join("testdata", "*", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(f, err)

	for _, file := range files {
		archive, err := txtar.ParseFile(file)
		test.Ok(f, err)

		src, ok := archive.Read("src.dims")
		test.True(f, ok, test.Context("%s missing src.dims", file))

		f.Add(src)
	}

	f.Fuzz(func(t *testing.T, src string) {
		// Property: The parser always drains the scanner, the fuzz driver's own
		// goroutines are already running when the target is called
		defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

		collector := &syntaxtest.Collector{}

		p, err := parser.New("fuzz", strings.NewReader(src), collector.Handler())
		test.Ok(t, err)

		// Property: The parser never panics or loops indefinitely
		stmt, err := p.Parse()
		if err != nil {
			// Property: A failed parse returns no tree
			test.True(t, stmt == nil, test.Context("Parse() returned a tree alongside an error"))
			return
		}

		// Property: A successful parse reports no errors
		test.Equal(t, collector.String(), "")

		// Property: The printed form of a parsed program parses to the same thing
		printed := printer.Stmt(stmt)

		p, err = parser.New("fuzz", strings.NewReader(printed), syntaxtest.FailHandler(t))
		test.Ok(t, err)

		reparsed, err := p.Parse()
		test.Ok(t, err, test.Context("printed program failed to parse:\n%s", printed))

		test.Diff(t, printer.Stmt(reparsed), printed)
	})
}
