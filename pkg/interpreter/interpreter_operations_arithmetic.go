package interpreter

import (
	"github.com/zakarialaoui10/lfi3a/pkg/runtime"
)

// toNumber coerces a value for an operator that needs a number. Numbers are
// re-read from their text like any other value.
func toNumber(op string, v runtime.Value) (float64, error) {
	val, ok := runtime.ParseNumber(v.Text())
	if !ok {
		return 0, &ConversionError{Operator: op, Operand: v.Text()}
	}
	return val, nil
}

func numericOperands(op string, left, right runtime.Value) (float64, float64, error) {
	l, err := toNumber(op, left)
	if err != nil {
		return 0, 0, err
	}
	r, err := toNumber(op, right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func applyBinaryOperator(op string, left, right runtime.Value) (runtime.Value, error) {
	switch op {
	case "+":
		return applyAddition(left, right), nil
	case "-", "*", "/":
		return applyArithmetic(op, left, right)
	case "==":
		return runtime.Bool(left.Text() == right.Text()), nil
	case "!=":
		return runtime.Bool(left.Text() != right.Text()), nil
	case "<", ">", "<=", ">=":
		return applyComparison(op, left, right)
	case "w":
		return runtime.Bool(runtime.IsTruthy(left) && runtime.IsTruthy(right)), nil
	case "wla":
		return runtime.Bool(runtime.IsTruthy(left) || runtime.IsTruthy(right)), nil
	default:
		return nil, &InvalidNodeError{Reason: "unknown operator '" + op + "'"}
	}
}

// applyAddition adds when both operands are numeric and concatenates their
// texts otherwise.
func applyAddition(left, right runtime.Value) runtime.Value {
	l, r, err := numericOperands("+", left, right)
	if err != nil {
		return runtime.StringValue{Val: left.Text() + right.Text()}
	}
	return runtime.Number(l + r)
}

func applyArithmetic(op string, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numericOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	switch op {
	case "-":
		return runtime.Number(l - r), nil
	case "*":
		return runtime.Number(l * r), nil
	default:
		if r == 0 {
			return nil, &DivisionByZeroError{}
		}
		return runtime.Number(l / r), nil
	}
}

func applyComparison(op string, left, right runtime.Value) (runtime.Value, error) {
	l, r, err := numericOperands(op, left, right)
	if err != nil {
		return nil, err
	}
	var result bool
	switch op {
	case "<":
		result = l < r
	case ">":
		result = l > r
	case "<=":
		result = l <= r
	default:
		result = l >= r
	}
	return runtime.Bool(result), nil
}
