package interpreter_test

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/interpreter"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
	"go.followtheprocess.codes/dims/internal/syntax/syntaxtest"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
	"go.uber.org/goleak"
)

var update = flag.Bool("update", false, "Update testdata")

// checked parses and checks src, failing the test if either fails.
func checked(tb testing.TB, name, src string) ast.Stmt {
	tb.Helper()

	stmt := syntaxtest.Parse(tb, name, src)

	result, err := checker.Check(stmt, env.New[*checker.Fact]())
	if err != nil {
		tb.Fatalf("%s did not check: %v\n%v", name, err, result.Diagnostics)
	}

	return stmt
}

func TestRun(t *testing.T) {
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "*.txtar")
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

			want, ok := archive.Read("stdout.txt")
			test.True(t, ok, test.Context("%s missing stdout.txt", file))

			stmt := checked(t, name, src)

			stdout := &bytes.Buffer{}
			err = interpreter.New(stdout).Run(t.Context(), stmt, env.New[*interpreter.Val]())
			test.Ok(t, err)

			if *update {
				test.Ok(t, archive.Write("stdout.txt", stdout.String()))
				test.Ok(t, txtar.DumpFile(file, archive))

				return
			}

			test.Diff(t, stdout.String(), want)
		})
	}
}

func TestRunOutput(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Program to run
		want string // Expected stdout
	}{
		{
			name: "while false",
			src:  "while (false) do skip; endwhile",
			want: "",
		},
		{
			name: "addition",
			src:  "int x; x := 3; print x + 4;",
			want: "7\n",
		},
		{
			name: "or",
			src:  "bool b; b := true || false; print b;",
			want: "true\n",
		},
		{
			name: "else branch",
			src:  "if (1 < 0) then print 1; else print 2; endif",
			want: "2\n",
		},
		{
			name: "branch declarations are discarded",
			src:  "if (true) then int x; x := 1; endif if (true) then int x; x := 2; print x; endif",
			want: "2\n",
		},
		{
			name: "loop body sees loop environment",
			src:  "int i; i := 0; int total; total := 0; while (i < 4) do total := total + i; i := i + 1; endwhile print total;",
			want: "6\n",
		},
		{
			name: "equality is structural",
			src:  "print (1 + 1) = 2; print (1 < 2) = true;",
			want: "true\ntrue\n",
		},
		{
			name: "negative literal arithmetic",
			src:  "print -(2 * 3) - -1;",
			want: "-5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			stmt := checked(t, tt.name, tt.src)

			stdout := &bytes.Buffer{}
			err := interpreter.New(stdout).Run(t.Context(), stmt, env.New[*interpreter.Val]())
			test.Ok(t, err)

			test.Diff(t, stdout.String(), tt.want)
		})
	}
}

func TestRunFaults(t *testing.T) {
	tests := []struct {
		name string // Name of the test case
		src  string // Program to run, these are not checked first
		want string // Expected error message
	}{
		{
			name: "unbound variable",
			src:  "print x;",
			want: "internal invariant violated: Line 1: use of unbound variable 'x'",
		},
		{
			name: "unset variable",
			src:  "int x;\nprint x;",
			want: "internal invariant violated: Line 2: use of unset variable 'x'",
		},
		{
			name: "wrong kind",
			src:  "print 1 + true;",
			want: "internal invariant violated: Line 1: expected an int value but got bool",
		},
		{
			name: "wrong kind condition",
			src:  "if (1) then skip; endif",
			want: "internal invariant violated: Line 1: expected a bool value but got int",
		},
		{
			name: "unbound assignment",
			src:  "\nx := 1;",
			want: `internal invariant violated: Line 2: assignment to 'x': assignment to unbound name: "x"`,
		},
		{
			name: "duplicate declaration",
			src:  "int x;\nbool x;",
			want: `internal invariant violated: Line 2: declaration of 'x': duplicate binding: "x" is already bound in this scope`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			stmt := syntaxtest.Parse(t, tt.name, tt.src)

			err := interpreter.New(&bytes.Buffer{}).Run(t.Context(), stmt, env.New[*interpreter.Val]())
			test.Err(t, err)
			test.True(t, errors.Is(err, interpreter.ErrInvariant), test.Context("error %v does not wrap ErrInvariant", err))

			var fault *interpreter.Fault
			test.True(t, errors.As(err, &fault), test.Context("error %v does not wrap a *Fault", err))

			test.Equal(t, err.Error(), tt.want)
		})
	}
}

func TestWhileBodyDeclaration(t *testing.T) {
	defer goleak.VerifyNone(t)

	// The checker gives the loop body a scope but the interpreter does not, so this
	// is accepted and then fails on the second iteration
	src := "int i;\ni := 0;\nwhile (i < 2) do\n    int y;\n    i := i + 1;\nendwhile\n"
	stmt := checked(t, "while", src)

	err := interpreter.New(&bytes.Buffer{}).Run(t.Context(), stmt, env.New[*interpreter.Val]())
	test.Err(t, err)
	test.True(t, errors.Is(err, interpreter.ErrInvariant), test.Context("error %v does not wrap ErrInvariant", err))

	var fault *interpreter.Fault
	test.True(t, errors.As(err, &fault), test.Context("error %v does not wrap a *Fault", err))
	test.Equal(t, fault.Line, 4)
}

func TestBranchAssignmentFaults(t *testing.T) {
	defer goleak.VerifyNone(t)

	// The checker marks x assigned even though the branch never runs
	stmt := checked(t, "branch", "int x;\nif (false) then x := 1; endif\nprint x;\n")

	err := interpreter.New(&bytes.Buffer{}).Run(t.Context(), stmt, env.New[*interpreter.Val]())
	test.Err(t, err)
	test.Equal(t, err.Error(), "internal invariant violated: Line 3: use of unset variable 'x'")
}

func TestOrEvaluatesBothOperands(t *testing.T) {
	defer goleak.VerifyNone(t)

	// The left operand alone decides the result, so only evaluating the right
	// one can reach the unset b
	stmt := checked(t, "or", "bool b;\nif (false) then b := true; endif\nprint true || b;\n")

	stdout := &bytes.Buffer{}

	err := interpreter.New(stdout).Run(t.Context(), stmt, env.New[*interpreter.Val]())
	test.Err(t, err)
	test.True(t, errors.Is(err, interpreter.ErrInvariant), test.Context("error %v does not wrap ErrInvariant", err))

	var fault *interpreter.Fault
	test.True(t, errors.As(err, &fault), test.Context("error %v does not wrap a *Fault", err))
	test.Equal(t, fault.Line, 3)
	test.Equal(t, fault.Msg, "use of unset variable 'b'")
	test.Equal(t, stdout.String(), "")
}

func TestRunPersistsTopLevel(t *testing.T) {
	defer goleak.VerifyNone(t)

	values := env.New[*interpreter.Val]()
	stdout := &bytes.Buffer{}
	interp := interpreter.New(stdout)

	test.Ok(t, interp.Run(t.Context(), syntaxtest.Parse(t, "first", "int x; x := 41;"), values))
	test.Ok(t, interp.Run(t.Context(), syntaxtest.Parse(t, "second", "x := x + 1; print x;"), values))

	test.Equal(t, stdout.String(), "42\n")

	x, ok := values.Lookup("x")
	test.True(t, ok)
	test.Equal(t, *x, interpreter.IntVal(42))
}

func TestRunCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)

	stmt := checked(t, "forever", "while (true) do skip; endwhile")

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	err := interpreter.New(&bytes.Buffer{}).Run(ctx, stmt, env.New[*interpreter.Val]())
	test.Err(t, err)
	test.True(t, errors.Is(err, context.Canceled), test.Context("got %v, expected context.Canceled", err))
	test.False(t, errors.Is(err, interpreter.ErrInvariant))
}

// failWriter is an io.Writer that always fails.
type failWriter struct{}

func (failWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRunWriteError(t *testing.T) {
	defer goleak.VerifyNone(t)

	stmt := checked(t, "write", "print 1;")

	err := interpreter.New(failWriter{}).Run(t.Context(), stmt, env.New[*interpreter.Val]())
	test.Err(t, err)
	test.False(t, errors.Is(err, interpreter.ErrInvariant))
	test.Equal(t, err.Error(), "could not write program output: disk full")
}

func TestVal(t *testing.T) {
	tests := []struct {
		name string          // Name of the test case
		want string          // Expected String()
		val  interpreter.Val // Value under test
	}{
		{name: "zero int", val: interpreter.IntVal(0), want: "0"},
		{name: "negative int", val: interpreter.IntVal(-12), want: "-12"},
		{name: "true", val: interpreter.BoolVal(true), want: "true"},
		{name: "false", val: interpreter.BoolVal(false), want: "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.val.String(), tt.want)
		})
	}

	// Zero int and false must not compare equal
	test.True(t, interpreter.IntVal(0) != interpreter.BoolVal(false))
	test.Equal(t, interpreter.BoolKind.String(), "bool")
}

func FuzzAcceptedPrograms(f *testing.F) {
	pattern := filepath.Join("testdata", "*.txtar")
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
		// Loops may never terminate and have a known scoping gap, leave them out
		if strings.Contains(src, "while") {
			t.Skip()
		}

		p, err := parser.New("fuzz", strings.NewReader(src), nil)
		test.Ok(t, err)

		stmt, err := p.Parse()
		if err != nil {
			return
		}

		if _, err = checker.Check(stmt, env.New[*checker.Fact]()); err != nil {
			return
		}

		err = interpreter.New(&bytes.Buffer{}).Run(t.Context(), stmt, env.New[*interpreter.Val]())
		if err == nil {
			return
		}

		// Property: The only way an accepted program can fail is by reading a variable
		// the checker thought was assigned in an if branch
		var fault *interpreter.Fault
		test.True(t, errors.As(err, &fault), test.Context("accepted program failed with %v", err))
		test.True(
			t,
			strings.HasPrefix(fault.Msg, "use of unset variable"),
			test.Context("accepted program faulted: %v\n%s", err, src),
		)
	})
}
