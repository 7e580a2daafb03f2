package interpreter

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/log"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

// execute runs a statement. A rje3 surfaces as a returnSignal error that every
// enclosing block, loop and if hands back unchanged until a call consumes it.
// An expression in statement position is skipped without being evaluated.
func (i *Interpreter) execute(node *ast.Node) error {
	if node == nil {
		return &InvalidNodeError{Reason: "missing statement"}
	}
	log.LogVf("execute %s %s at %d:%d", node.Type, node.Value, node.Span.Start.Line, node.Span.Start.Column)
	switch node.Type {
	case ast.NodeVarDecl, ast.NodeAssignment:
		return i.executeBinding(node)
	case ast.NodePrint:
		return i.executePrint(node)
	case ast.NodeIf:
		return i.executeIf(node)
	case ast.NodeWhile:
		return i.executeWhile(node)
	case ast.NodeFor:
		return i.executeFor(node)
	case ast.NodeFunctionDecl:
		if node.Body == nil {
			return &InvalidNodeError{Type: node.Type, Reason: "missing body"}
		}
		i.env.DefineFunction(node)
		return nil
	case ast.NodeReturn:
		return i.executeReturn(node)
	case ast.NodeBlock:
		for _, stmt := range node.Children {
			if err := i.execute(stmt); err != nil {
				return err
			}
		}
		return nil
	default:
		if node.Type.IsExpression() {
			log.LogVf("skipping expression statement %s", node.Type)
			return nil
		}
		return &InvalidNodeError{Type: node.Type, Reason: "unsupported statement"}
	}
}

func (i *Interpreter) executeBinding(node *ast.Node) error {
	init, err := child(node, 0)
	if err != nil {
		return err
	}
	val, err := i.evaluate(init)
	if err != nil {
		return err
	}
	i.env.Define(node.Value, val)
	return nil
}

func (i *Interpreter) executePrint(node *ast.Node) error {
	parts := make([]string, 0, len(node.Children))
	for _, arg := range node.Children {
		val, err := i.evaluate(arg)
		if err != nil {
			return err
		}
		parts = append(parts, val.Text())
	}
	if _, err := io.WriteString(i.stdout, strings.Join(parts, " ")+"\n"); err != nil {
		return fmt.Errorf("kteb: %w", err)
	}
	return nil
}

func (i *Interpreter) condition(node *ast.Node) (bool, error) {
	val, err := i.evaluate(node)
	if err != nil {
		return false, err
	}
	return runtime.IsTruthy(val), nil
}

func (i *Interpreter) executeIf(node *ast.Node) error {
	cond, err := child(node, 0)
	if err != nil {
		return err
	}
	then, err := child(node, 1)
	if err != nil {
		return err
	}
	ok, err := i.condition(cond)
	if err != nil {
		return err
	}
	if ok {
		return i.execute(then)
	}
	for _, alt := range node.Children[2:] {
		switch alt.Type {
		case ast.NodeIf:
			altCond, err := child(alt, 0)
			if err != nil {
				return err
			}
			altBody, err := child(alt, 1)
			if err != nil {
				return err
			}
			matched, err := i.condition(altCond)
			if err != nil {
				return err
			}
			if matched {
				return i.execute(altBody)
			}
		case ast.NodeBlock:
			return i.execute(alt)
		}
	}
	return nil
}

func (i *Interpreter) executeWhile(node *ast.Node) error {
	cond, err := child(node, 0)
	if err != nil {
		return err
	}
	body, err := child(node, 1)
	if err != nil {
		return err
	}
	for {
		ok, err := i.condition(cond)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := i.execute(body); err != nil {
			return err
		}
	}
}

// executeFor runs init once, then body and increment while cond holds. The
// increment is evaluated as an expression, never executed as a statement.
func (i *Interpreter) executeFor(node *ast.Node) error {
	parts := make([]*ast.Node, 4)
	for idx := range parts {
		c, err := child(node, idx)
		if err != nil {
			return err
		}
		parts[idx] = c
	}
	init, cond, increment, body := parts[0], parts[1], parts[2], parts[3]

	if err := i.execute(init); err != nil {
		return err
	}
	for {
		ok, err := i.condition(cond)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if err := i.execute(body); err != nil {
			return err
		}
		if _, err := i.evaluate(increment); err != nil {
			return err
		}
	}
}

func (i *Interpreter) executeReturn(node *ast.Node) error {
	var result runtime.Value = runtime.Zero
	if len(node.Children) > 0 {
		val, err := i.evaluate(node.Children[0])
		if err != nil {
			return err
		}
		result = val
	}
	return returnSignal{value: result}
}
