// Command lox is the entry point for the tree-walking Lox interpreter.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/marcuscaisey/lox/interpreter"
	"github.com/marcuscaisey/lox/parser"
	"github.com/marcuscaisey/lox/resolver"
)

var bold = color.New(color.Bold)

func main() {
	switch len(os.Args) {
	case 1:
		if err := runREPL(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 2:
		if err := runFile(os.Args[1]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [script]\n", path.Base(os.Args[0]))
		os.Exit(2)
	}
}

// run parses, resolves, and executes src against in, reporting the first
// diagnostic from whichever phase finds a problem.
func run(src string, in *interpreter.Interpreter) error {
	stmts, err := parser.Parse(src)
	if err != nil {
		return err
	}
	depths, err := resolver.Resolve(stmts)
	if err != nil {
		return err
	}
	return in.Interpret(stmts, depths)
}

func runFile(name string) error {
	src, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	if err := run(string(src), interpreter.New()); err != nil {
		return err
	}
	return nil
}

// runREPL reads one line at a time until a blank line or EOF, running each
// in the same Interpreter so that declarations accumulate across lines.
func runREPL() error {
	cfg := &readline.Config{Prompt: "> "}
	if homeDir, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = path.Join(homeDir, ".lox_history")
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return fallbackREPL()
	}
	defer rl.Close()

	printBanner()

	in := interpreter.New()
	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if line == "" {
			return nil
		}
		if err := run(line, in); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

// printBanner writes a short, decorative welcome message to stderr. It has
// no bearing on the required diagnostic or print output, which always go
// out undecorated.
func printBanner() {
	const title = "Lox"
	bold.Fprintln(os.Stderr, title)
	fmt.Fprintln(os.Stderr, strings.Repeat("-", runewidth.StringWidth(title)))
}

// fallbackREPL is used when readline can't be initialised (e.g. stdin isn't
// a terminal), so that piping a script on stdin still works.
func fallbackREPL() error {
	in := interpreter.New()
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}
		if err := run(line, in); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
	return scanner.Err()
}
