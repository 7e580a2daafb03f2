package interpreter

import (
	"errors"
	"fmt"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

// ErrRuntime is wrapped by every runtime fault, so callers can tell evaluation
// failures apart from output errors with errors.Is.
var ErrRuntime = errors.New("runtime error")

type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("Undefined variable '%s'", e.Name)
}

func (e *UndefinedVariableError) Unwrap() error { return ErrRuntime }

type UndefinedFunctionError struct {
	Name string
}

func (e *UndefinedFunctionError) Error() string {
	return fmt.Sprintf("Undefined function '%s'", e.Name)
}

func (e *UndefinedFunctionError) Unwrap() error { return ErrRuntime }

type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "Division by zero" }

func (e *DivisionByZeroError) Unwrap() error { return ErrRuntime }

// ConversionError reports a non-numeric operand reaching an operator that
// needs a number.
type ConversionError struct {
	Operator string
	Operand  string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("Invalid numeric operand '%s' for '%s'", e.Operand, e.Operator)
}

func (e *ConversionError) Unwrap() error { return ErrRuntime }

type CallDepthError struct {
	Function string
	Limit    int
}

func (e *CallDepthError) Error() string {
	return fmt.Sprintf("Maximum call depth of %d exceeded calling '%s'", e.Limit, e.Function)
}

func (e *CallDepthError) Unwrap() error { return ErrRuntime }

// InvalidNodeError reports a tree the evaluator cannot run: a missing child,
// a statement in expression position, or an unknown operator.
type InvalidNodeError struct {
	Type   ast.NodeType
	Reason string
}

func (e *InvalidNodeError) Error() string {
	if e.Type == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Reason)
}

func (e *InvalidNodeError) Unwrap() error { return ErrRuntime }

// returnSignal unwinds blocks and loops up to the enclosing call.
type returnSignal struct {
	value runtime.Value
}

func (r returnSignal) Error() string {
	return "return"
}
