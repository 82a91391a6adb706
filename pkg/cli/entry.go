// Package cli is the command-line host: it runs script files, drives the
// REPL, and maps interpreter outcomes to process exit codes.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/funvibe/golox/internal/config"
	"github.com/funvibe/golox/internal/vm"
)

const Version = "0.1.0"

// Exit codes follow the BSD sysexits convention.
const (
	ExitOK      = 0
	ExitUsage   = 64
	ExitCompile = 65
	ExitData    = 70 // runtime error
	ExitNoInput = 74
)

// App bundles the streams the host talks to, so tests can capture them.
type App struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func NewApp() *App {
	return &App{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Entry parses the arguments and runs a file or the REPL. It returns the
// process exit code.
func Entry(args []string) int {
	return NewApp().Run(args)
}

func (a *App) Run(args []string) int {
	var file string
	opts := a.loadOptions()

	for _, arg := range args {
		switch {
		case arg == "--version" || arg == "-v":
			fmt.Fprintf(a.Stdout, "golox %s\n", Version)
			return ExitOK
		case arg == "--help" || arg == "-h":
			a.usage()
			return ExitOK
		case arg == "--trace":
			opts.TraceExecution = true
		case arg == "--disasm":
			opts.DisassembleChunks = true
		case strings.HasPrefix(arg, "--file="):
			file = strings.TrimPrefix(arg, "--file=")
		case arg == "--file" || arg == "-f":
			fmt.Fprintln(a.Stderr, "Error: --file requires a value, use --file=<path>")
			return ExitUsage
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(a.Stderr, "Error: unknown flag %s\n", arg)
			a.usage()
			return ExitUsage
		default:
			// bare argument is treated as the script path
			file = arg
		}
	}

	if file != "" {
		return a.runFile(file, opts)
	}
	return a.repl(opts)
}

func (a *App) usage() {
	fmt.Fprintf(a.Stdout, `Usage: golox [flags] [--file=<path>]

Without a file, golox starts a REPL.

Flags:
  --file=<path>   execute the script at <path>
  --trace         dump the stack and each instruction before execution
  --disasm        print compiled bytecode before running it
  --version, -v   print the version
  --help, -h      print this help
`)
}

func (a *App) loadOptions() config.Options {
	opts := config.Default()

	wd, err := os.Getwd()
	if err != nil {
		return opts
	}
	path, err := config.Find(wd)
	if err != nil || path == "" {
		return opts
	}
	loaded, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Warning: %s\n", err)
		return opts
	}
	return loaded
}

func (a *App) newInterp(opts config.Options) *vm.Interp {
	interp := vm.NewInterp()
	interp.SetOutput(a.Stdout)
	interp.SetErrOutput(a.Stderr)
	interp.SetTrace(opts.TraceExecution)
	interp.SetDisassemble(opts.DisassembleChunks)
	return interp
}

func (a *App) runFile(path string, opts config.Options) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(a.Stderr, "Error: could not read %s: %s\n", path, err)
		return ExitNoInput
	}

	interp := a.newInterp(opts)
	return a.report(interp.Interpret(string(source)))
}

func (a *App) report(err error) int {
	if err == nil {
		return ExitOK
	}

	var compileErr *vm.CompileError
	if errors.As(err, &compileErr) {
		// individual diagnostics were already written while compiling
		return ExitCompile
	}

	fmt.Fprintln(a.Stderr, err)
	return ExitData
}

// repl reads one line at a time and interprets it. Globals and interned
// strings persist across lines because the Interp is shared.
func (a *App) repl(opts config.Options) int {
	interactive := false
	if f, ok := a.Stdout.(*os.File); ok {
		interactive = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	if interactive {
		fmt.Fprintf(a.Stdout, "golox %s (type 'exit' to quit)\n", Version)
	}

	interp := a.newInterp(opts)
	scanner := bufio.NewScanner(a.Stdin)

	for {
		if interactive {
			fmt.Fprint(a.Stdout, opts.Prompt)
		}

		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(a.Stdout)
			}
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" {
			break
		}

		if err := interp.Interpret(line); err != nil {
			var runtimeErr *vm.RuntimeError
			if errors.As(err, &runtimeErr) {
				fmt.Fprintln(a.Stderr, runtimeErr)
			}
			// compile diagnostics were already written; keep the REPL alive
		}
	}

	return ExitOK
}
