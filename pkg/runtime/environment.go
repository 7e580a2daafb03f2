package runtime

import (
	"fmt"
	"sort"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
)

// Environment is the single flat store of an interpreter: variables plus the
// function table. There are no nested scopes; calls isolate themselves by
// taking a Snapshot of the variables and restoring it on the way out.
type Environment struct {
	values    map[string]Value
	functions map[string]*ast.Node
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{
		values:    make(map[string]Value),
		functions: make(map[string]*ast.Node),
	}
}

// Define binds or overwrites a variable.
func (e *Environment) Define(name string, value Value) {
	e.values[name] = value
}

// Lookup returns the variable bound to name.
func (e *Environment) Lookup(name string) (Value, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Get retrieves a variable, failing when it is unbound.
func (e *Environment) Get(name string) (Value, error) {
	if v, ok := e.values[name]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("Undefined variable '%s'", name)
}

// Snapshot returns a copy of the current variable bindings.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Restore replaces the variable bindings with a previously taken snapshot.
// The function table is left untouched.
func (e *Environment) Restore(snapshot map[string]Value) {
	values := make(map[string]Value, len(snapshot))
	for k, v := range snapshot {
		values[k] = v
	}
	e.values = values
}

// Keys returns the variable names in sorted order.
func (e *Environment) Keys() []string {
	return sortedKeys(e.values)
}

// DefineFunction registers decl under its name, replacing any earlier declaration.
func (e *Environment) DefineFunction(decl *ast.Node) {
	e.functions[decl.Value] = decl
}

// LookupFunction returns the declaration registered under name.
func (e *Environment) LookupFunction(name string) (*ast.Node, bool) {
	decl, ok := e.functions[name]
	return decl, ok
}

// FunctionNames returns the declared function names in sorted order.
func (e *Environment) FunctionNames() []string {
	return sortedKeys(e.functions)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
