package dims_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.followtheprocess.codes/dims/internal/dims"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestTestPass(t *testing.T) {
	defer goleak.VerifyNone(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := dims.New(false, "test", os.Stdin, stdout, stderr)

	options := dims.TestOptions{
		Path:    filepath.Join("testdata", "test", "pass"),
		Timeout: dims.DefaultTestTimeout,
	}

	err := app.Test(t.Context(), options)
	test.Ok(t, err)

	for _, name := range []string{"branch_scope", "factorial", "operand_types"} {
		archive := filepath.Join("testdata", "test", "pass", name+".txtar")
		test.True(t, strings.Contains(stdout.String(), "Success: "+archive), test.Context("%s not reported as passing:\n%s", archive, stdout))
	}

	test.Diff(t, stderr.String(), "")
}

func TestTestFail(t *testing.T) {
	defer goleak.VerifyNone(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := dims.New(false, "test", os.Stdin, stdout, stderr)

	options := dims.TestOptions{
		Path:    filepath.Join("testdata", "test", "fail"),
		Timeout: 100 * time.Millisecond,
	}

	err := app.Test(t.Context(), options)
	test.Err(t, err)
	test.Equal(t, err.Error(), "7 of 7 test(s) failed")

	got := stderr.String()

	reasons := []string{
		"must contain exactly one of stdout.txt or diagnostics.txt",
		"syntax errors:",
		"diagnostics mismatch",
		"stdout mismatch",
		"program was rejected:",
		"timed out after 100ms",
		"runtime error:",
	}

	for _, reason := range reasons {
		test.True(t, strings.Contains(got, reason), test.Context("failure %q not reported:\n%s", reason, got))
	}
}

func TestTestEmpty(t *testing.T) {
	app := dims.New(false, "test", os.Stdin, &bytes.Buffer{}, &bytes.Buffer{})

	err := app.Test(t.Context(), dims.TestOptions{Path: t.TempDir(), Timeout: time.Second})
	test.Err(t, err)
}

func TestTestOptionsValidate(t *testing.T) {
	test.Ok(t, dims.TestOptions{Timeout: time.Second}.Validate())
	test.Err(t, dims.TestOptions{}.Validate())
	test.Err(t, dims.TestOptions{Timeout: -time.Second}.Validate())
}
