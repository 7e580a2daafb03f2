package interpreter

import (
	"fortio.org/log"

	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

func (i *Interpreter) evaluate(node *ast.Node) (runtime.Value, error) {
	if node == nil {
		return nil, &InvalidNodeError{Reason: "missing expression"}
	}
	switch node.Type {
	case ast.NodeNumber:
		lit, err := runtime.NumberLiteral(node.Value)
		if err != nil {
			return nil, &InvalidNodeError{Type: node.Type, Reason: err.Error()}
		}
		return lit, nil
	case ast.NodeString:
		return runtime.StringValue{Val: node.Value}, nil
	case ast.NodeBoolean:
		return runtime.Bool(node.Value == runtime.TrueText), nil
	case ast.NodeIdentifier:
		val, ok := i.env.Lookup(node.Value)
		if !ok {
			return nil, &UndefinedVariableError{Name: node.Value}
		}
		return val, nil
	case ast.NodeBinaryOp:
		return i.evaluateBinary(node)
	case ast.NodeUnaryOp:
		return i.evaluateUnary(node)
	case ast.NodeCall:
		return i.evaluateCall(node)
	default:
		return nil, &InvalidNodeError{Type: node.Type, Reason: "cannot be evaluated as an expression"}
	}
}

func (i *Interpreter) evaluateBinary(node *ast.Node) (runtime.Value, error) {
	leftNode, err := child(node, 0)
	if err != nil {
		return nil, err
	}
	rightNode, err := child(node, 1)
	if err != nil {
		return nil, err
	}
	left, err := i.evaluate(leftNode)
	if err != nil {
		return nil, err
	}
	right, err := i.evaluate(rightNode)
	if err != nil {
		return nil, err
	}
	return applyBinaryOperator(node.Op, left, right)
}

func (i *Interpreter) evaluateUnary(node *ast.Node) (runtime.Value, error) {
	operandNode, err := child(node, 0)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "-":
		operand, err := i.evaluate(operandNode)
		if err != nil {
			return nil, err
		}
		val, err := toNumber("-", operand)
		if err != nil {
			return nil, err
		}
		return runtime.Number(-val), nil
	case ast.OpPostIncrement:
		if operandNode.Type != ast.NodeIdentifier {
			return nil, &InvalidNodeError{Type: node.Type, Reason: "'++' requires a variable operand"}
		}
		operand, err := i.evaluate(operandNode)
		if err != nil {
			return nil, err
		}
		val, err := toNumber("++", operand)
		if err != nil {
			return nil, err
		}
		i.env.Define(operandNode.Value, runtime.Integer(val+1))
		return runtime.Number(val), nil
	default:
		return nil, &InvalidNodeError{Type: node.Type, Reason: "unknown operator '" + node.Op + "'"}
	}
}

// evaluateCall runs a user function against the shared store. Every variable
// binding made while the call is active, including argument side effects and
// parameter bindings, is rolled back when it finishes. Declarations made in
// the body stay in the function table.
func (i *Interpreter) evaluateCall(node *ast.Node) (runtime.Value, error) {
	decl, ok := i.env.LookupFunction(node.Value)
	if !ok {
		return nil, &UndefinedFunctionError{Name: node.Value}
	}
	if i.maxCallDepth > 0 && i.depth >= i.maxCallDepth {
		return nil, &CallDepthError{Function: node.Value, Limit: i.maxCallDepth}
	}

	snapshot := i.env.Snapshot()
	i.depth++
	defer func() {
		i.depth--
		i.env.Restore(snapshot)
	}()

	// Arguments beyond the parameter list are never evaluated.
	args := make([]runtime.Value, min(len(decl.Params), len(node.Children)))
	for idx := range args {
		val, err := i.evaluate(node.Children[idx])
		if err != nil {
			return nil, err
		}
		args[idx] = val
	}
	for idx, val := range args {
		i.env.Define(decl.Params[idx], val)
	}

	log.LogVf("call %s(%d args) depth=%d", node.Value, len(args), i.depth)
	err := i.execute(decl.Body)
	if err == nil {
		return runtime.Zero, nil
	}
	if ret, ok := err.(returnSignal); ok {
		return ret.value, nil
	}
	return nil, err
}
