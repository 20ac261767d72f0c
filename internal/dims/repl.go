package dims

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.followtheprocess.codes/dims/internal/checker"
	"go.followtheprocess.codes/dims/internal/env"
	"go.followtheprocess.codes/dims/internal/interpreter"
	"go.followtheprocess.codes/dims/internal/syntax"
	"go.followtheprocess.codes/dims/internal/syntax/ast"
	"go.followtheprocess.codes/dims/internal/syntax/parser"
	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/msg"
)

// REPL prompts and commands.
const (
	promptMain = "dims> "
	promptCont = "  ... "

	commandQuit = ":quit"
	commandEnv  = ":env"
	commandHelp = ":help"

	historyFile = ".dims_history"
)

// bannerStyle is the style used for the REPL banner.
const bannerStyle = hue.Cyan | hue.Bold

const replHelp = `Enter statements to check and run them, e.g. 'int x; x := 1; print x;'

Declarations and assignments persist between inputs. Input that does not
check is discarded without changing anything.

Commands:
  :env    list the variables in scope
  :help   show this help
  :quit   exit (as does Ctrl-D)
`

// ReplOptions are the options passed to the repl subcommand.
type ReplOptions struct {
	// History is the path of the file used to persist input history, if empty
	// the history is kept in the user's home directory.
	History string

	// NoHistory disables saving and loading history.
	NoHistory bool

	// Debug enables debug logging.
	Debug bool
}

// LineReader reads lines of input from the user, it is implemented by [liner.State].
type LineReader interface {
	// Prompt shows prompt and returns the line entered, it returns io.EOF
	// when there is no more input.
	Prompt(prompt string) (string, error)
}

// Repl implements the repl subcommand.
func (a App) Repl(ctx context.Context, handler syntax.ErrorHandler, options ReplOptions) error {
	logger := a.logger.Prefixed("repl")

	state := liner.NewLiner()
	defer state.Close()

	state.SetCtrlCAborts(true)

	history := options.History
	if history == "" && !options.NoHistory {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("could not locate home directory for history: %w", err)
		}

		history = filepath.Join(home, historyFile)
	}

	if !options.NoHistory {
		if f, err := os.Open(history); err == nil {
			if _, err := state.ReadHistory(f); err != nil {
				logger.Debug("Could not read history", slog.String("file", history), slog.Any("error", err))
			}

			f.Close()
		}

		defer func() {
			f, err := os.Create(history)
			if err != nil {
				logger.Debug("Could not save history", slog.String("file", history), slog.Any("error", err))
				return
			}
			defer f.Close()

			if _, err := state.WriteHistory(f); err != nil {
				logger.Debug("Could not save history", slog.String("file", history), slog.Any("error", err))
			}
		}()
	}

	fmt.Fprintf(a.stdout, "%s %s, type %s for help\n", bannerStyle.Text("dims"), a.version, commandHelp)

	return a.repl(ctx, logger, state, handler, state.AppendHistory)
}

// ReadEvalPrint runs the loop over reader without terminal handling or history.
func (a App) ReadEvalPrint(ctx context.Context, reader LineReader, handler syntax.ErrorHandler) error {
	return a.repl(ctx, a.logger.Prefixed("repl"), reader, handler, func(string) {})
}

// repl is the read-eval-print loop, separated from the terminal handling in
// [App.Repl] so it can be driven by any [LineReader].
func (a App) repl(ctx context.Context, logger *log.Logger, reader LineReader, handler syntax.ErrorHandler, remember func(string)) error {
	session := a.NewSession(handler)

	// The session ends with :quit or EOF, an interrupt only ever stops the
	// program that is running when it arrives
	ctx = context.WithoutCancel(ctx)

	for {
		src, err := readChunk(reader)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.stdout)
				return nil
			}

			return fmt.Errorf("could not read input: %w", err)
		}

		input := strings.TrimSpace(src)

		switch input {
		case "":
			continue
		case commandQuit:
			return nil
		case commandHelp:
			fmt.Fprint(a.stdout, replHelp)
			continue
		case commandEnv:
			session.Describe(a.stdout)
			continue
		}

		if strings.HasPrefix(input, ":") {
			msg.Fwarn(a.stderr, "unknown command %s, type %s for help", input, commandHelp)
			continue
		}

		remember(strings.ReplaceAll(input, "\n", " "))

		running, stop := signal.NotifyContext(ctx, os.Interrupt)
		err = session.Eval(running, src)
		stop()

		switch {
		case err == nil:
		case errors.Is(err, parser.ErrParse), errors.Is(err, checker.ErrCheck):
			// Already reported in detail
			logger.Debug("Input rejected", slog.Any("error", err))
		case errors.Is(err, context.Canceled):
			msg.Fwarn(a.stderr, "interrupted")
		default:
			msg.Ferror(a.stderr, "%v", err)
		}
	}
}

// readChunk reads lines until they form something worth evaluating, showing a
// continuation prompt while the input so far is an unfinished statement.
func readChunk(reader LineReader) (string, error) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}

		line, err := reader.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				// Evaluate what we have, the error will be reported
				return b.String(), nil
			}

			return "", err
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !Incomplete(src) {
			return src, nil
		}
	}
}

// Incomplete reports whether src is an unfinished program, one whose only problems
// are that it ends too early.
func Incomplete(src string) bool {
	buffer := &syntax.Buffer{}

	p, err := parser.New("input", strings.NewReader(src), buffer.Handler())
	if err != nil {
		return false
	}

	if _, err := p.Parse(); err == nil {
		return false
	}

	incomplete := false

	buffer.Flush(func(_ syntax.Position, msg string) {
		if strings.HasSuffix(msg, "got EOF") {
			incomplete = true
		}
	})

	return incomplete
}

// Session is a persistent interactive session, declarations and assignments
// made by one call to [Session.Eval] are visible to the next.
type Session struct {
	facts   *env.Env[*checker.Fact]    // What the checker knows
	values  *env.Env[*interpreter.Val] // What the program holds
	interp  *interpreter.Interpreter   // Runs accepted input
	handler syntax.ErrorHandler        // Syntax errors go here
	stderr  io.Writer                  // Check diagnostics go here
	inputs  int                        // Number of inputs so far, for naming
}

// NewSession returns a new, empty [Session] that prints program output to the
// app's stdout.
func (a App) NewSession(handler syntax.ErrorHandler) *Session {
	return &Session{
		facts:   env.New[*checker.Fact](),
		values:  env.New[*interpreter.Val](),
		interp:  interpreter.New(a.stdout),
		handler: handler,
		stderr:  a.stderr,
	}
}

// Eval parses, checks and runs src.
//
// Input that fails to parse or check changes nothing, it is checked against a
// copy of the session's facts which only replaces them once the check succeeds.
func (s *Session) Eval(ctx context.Context, src string) error {
	s.inputs++
	name := fmt.Sprintf("input:%d", s.inputs)

	stmt, err := s.parse(name, src)
	if err != nil {
		return err
	}

	facts := s.facts.Clone((*checker.Fact).Clone)

	result, err := checker.Check(stmt, facts)
	if err != nil {
		for _, diag := range result.Diagnostics {
			fmt.Fprintf(s.stderr, "%s: %s\n", pathStyle.Text(name), diag)
		}

		return err
	}

	s.facts = facts

	return s.interp.Run(ctx, stmt, s.values)
}

func (s *Session) parse(name, src string) (ast.Stmt, error) {
	buffer := &syntax.Buffer{}
	defer buffer.Flush(s.handler)

	p, err := parser.New(name, strings.NewReader(src), buffer.Handler())
	if err != nil {
		return nil, fmt.Errorf("could not initialise the parser: %w", err)
	}

	return p.Parse()
}

// Describe writes every variable in scope with its type and current value.
func (s *Session) Describe(w io.Writer) {
	names := s.facts.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, dimmed.Text("no variables declared"))
		return
	}

	for _, name := range names {
		fact, _ := s.facts.Lookup(name)

		value := dimmed.Text("unset")
		if val, ok := s.values.Lookup(name); ok && val != nil {
			value = val.String()
		}

		fmt.Fprintf(w, "%s %s = %s\n", fact.Type, name, value)
	}
}
