package interpreter

import (
	"io"
	"os"

	"fortio.org/log"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

// DefaultMaxCallDepth bounds language-level recursion so that runaway
// programs fail with a CallDepthError instead of exhausting the Go stack.
const DefaultMaxCallDepth = 10000

// Options configures an Interpreter.
type Options struct {
	// Stdout receives kteb output. Defaults to os.Stdout.
	Stdout io.Writer
	// MaxCallDepth limits nested calls; zero selects DefaultMaxCallDepth and a
	// negative value disables the limit.
	MaxCallDepth int
}

// Interpreter is a tree-walking evaluator over a single flat environment.
// It is not safe for concurrent use.
type Interpreter struct {
	env          *runtime.Environment
	stdout       io.Writer
	maxCallDepth int
	depth        int
}

// New returns an interpreter writing to os.Stdout.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an interpreter configured by opts.
func NewWithOptions(opts Options) *Interpreter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	maxDepth := opts.MaxCallDepth
	if maxDepth == 0 {
		maxDepth = DefaultMaxCallDepth
	}
	return &Interpreter{
		env:          runtime.NewEnvironment(),
		stdout:       stdout,
		maxCallDepth: maxDepth,
	}
}

// Environment exposes the interpreter's variable store and function table.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Reset discards every variable and function.
func (i *Interpreter) Reset() {
	i.env = runtime.NewEnvironment()
	i.depth = 0
}

// Run executes a parsed program. A top-level rje3 stops the program without
// error; any runtime fault aborts it.
// Expression statements such as `f();` are skipped.
func (i *Interpreter) Run(program []*ast.Node) error {
	for _, stmt := range program {
		if err := i.execute(stmt); err != nil {
			if _, ok := err.(returnSignal); ok {
				log.LogVf("top-level return, stopping")
				return nil
			}
			return err
		}
	}
	return nil
}

// EvaluateProgram is the interactive entry point. Unlike Run it evaluates
// top-level expression statements and returns the value of the final one
// (nil when the last statement is not an expression). State persists across
// calls, which is what the REPL relies on.
func (i *Interpreter) EvaluateProgram(program []*ast.Node) (runtime.Value, error) {
	var last runtime.Value
	for _, stmt := range program {
		val, err := i.executeTopLevel(stmt)
		if err != nil {
			if ret, ok := err.(returnSignal); ok {
				log.LogVf("top-level return, stopping")
				return ret.value, nil
			}
			return nil, err
		}
		last = val
	}
	return last, nil
}

func (i *Interpreter) executeTopLevel(stmt *ast.Node) (runtime.Value, error) {
	if stmt != nil && stmt.Type.IsExpression() {
		return i.evaluate(stmt)
	}
	return nil, i.execute(stmt)
}

// child returns the required child at idx of node.
func child(node *ast.Node, idx int) (*ast.Node, error) {
	c := node.Child(idx)
	if c == nil {
		return nil, &InvalidNodeError{Type: node.Type, Reason: "missing required child"}
	}
	return c, nil
}
