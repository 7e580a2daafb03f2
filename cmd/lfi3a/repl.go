package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"github.com/peterh/liner"

	"github.com/zakarialaoui10/lfi3a/pkg/interpreter"
	"github.com/zakarialaoui10/lfi3a/pkg/parser"
)

const (
	historyFile = ".lfi3a_history"
	promptMain  = "lfi3a> "
	promptCont  = "...... "
)

const replHelp = `Commands:
  :help   show this help
  :quit   leave the session
  :reset  forget every variable and function
  :vars   list variables
  :funcs  list functions`

// replSession evaluates REPL inputs against one persistent interpreter.
type replSession struct {
	interp *interpreter.Interpreter
	stdout io.Writer
	stderr io.Writer
}

func newReplSession(opts options, stdout, stderr io.Writer) *replSession {
	return &replSession{
		interp: interpreter.NewWithOptions(interpreter.Options{
			Stdout:       stdout,
			MaxCallDepth: callDepth(opts, nil),
		}),
		stdout: stdout,
		stderr: stderr,
	}
}

// handle evaluates one complete input. It returns false once the session
// should end.
func (s *replSession) handle(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, ":") {
		return s.command(trimmed)
	}

	program, err := parser.ParseSource(input)
	if err != nil {
		fmt.Fprintf(s.stderr, "Error: %v\n", err)
		return true
	}
	val, err := s.interp.EvaluateProgram(program)
	if err != nil {
		fmt.Fprintf(s.stderr, "Error: %v\n", err)
		return true
	}
	if val != nil {
		fmt.Fprintln(s.stdout, val.Text())
	}
	return true
}

func (s *replSession) command(cmd string) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return false
	case ":help":
		fmt.Fprintln(s.stdout, replHelp)
	case ":reset":
		s.interp.Reset()
		fmt.Fprintln(s.stdout, "environment cleared")
	case ":vars":
		env := s.interp.Environment()
		for _, name := range env.Keys() {
			val, _ := env.Lookup(name)
			fmt.Fprintf(s.stdout, "%s = %s\n", name, val.Text())
		}
	case ":funcs":
		env := s.interp.Environment()
		for _, name := range env.FunctionNames() {
			decl, _ := env.LookupFunction(name)
			fmt.Fprintf(s.stdout, "%s(%s)\n", name, strings.Join(decl.Params, ", "))
		}
	default:
		fmt.Fprintf(s.stderr, "unknown command %s. Type :help for a list.\n", cmd)
	}
	return true
}

func runRepl(opts options, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "%s. Type :help for commands.\n", cliToolVersion)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetMultiLineMode(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			if _, err := ln.ReadHistory(f); err != nil {
				log.Warnf("reading history %s: %v", histPath, err)
			}
			_ = f.Close()
		}
	} else {
		log.Warnf("history disabled: %v", err)
	}
	defer func() {
		if histPath == "" {
			return
		}
		f, err := os.Create(histPath)
		if err != nil {
			log.Warnf("writing history %s: %v", histPath, err)
			return
		}
		_, _ = ln.WriteHistory(f)
		_ = f.Close()
	}()

	session := newReplSession(opts, stdout, stderr)
	for {
		code, ok := readUntilComplete(ln, promptMain, promptCont)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		if strings.TrimSpace(code) != "" {
			ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		}
		if !session.handle(code) {
			return 0
		}
	}
}

// readUntilComplete keeps prompting for continuation lines while the input
// parses as incomplete.
func readUntilComplete(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			if b.Len() > 0 && errors.Is(err, liner.ErrPromptAborted) {
				return "", true
			}
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") || !needsMoreInput(src) {
			return src, true
		}
	}
}

func needsMoreInput(src string) bool {
	_, err := parser.ParseSource(src)
	return err != nil && parser.IsIncomplete(err)
}
