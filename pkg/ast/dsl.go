package ast

// Literal and identifier helpers.

func Num(text string) *Node {
	return &Node{Type: NodeNumber, Value: text}
}

func Str(value string) *Node {
	return &Node{Type: NodeString, Value: value}
}

// Bool builds a boolean literal; the value is the keyword spelling.
func Bool(value bool) *Node {
	if value {
		return &Node{Type: NodeBoolean, Value: "s7i7"}
	}
	return &Node{Type: NodeBoolean, Value: "ghalat"}
}

func ID(name string) *Node {
	return &Node{Type: NodeIdentifier, Value: name}
}

// Expression helpers.

func Bin(op string, left, right *Node) *Node {
	return &Node{Type: NodeBinaryOp, Op: op, Children: []*Node{left, right}}
}

func Neg(operand *Node) *Node {
	return &Node{Type: NodeUnaryOp, Op: "-", Children: []*Node{operand}}
}

func PostInc(operand *Node) *Node {
	return &Node{Type: NodeUnaryOp, Op: OpPostIncrement, Children: []*Node{operand}}
}

func Call(name string, args ...*Node) *Node {
	return &Node{Type: NodeCall, Value: name, Children: args}
}

// Statement helpers.

func VarDecl(name string, init *Node) *Node {
	return &Node{Type: NodeVarDecl, Value: name, Children: []*Node{init}}
}

func Assign(name string, value *Node) *Node {
	return &Node{Type: NodeAssignment, Value: name, Children: []*Node{value}}
}

func Print(args ...*Node) *Node {
	return &Node{Type: NodePrint, Children: args}
}

func Block(stmts ...*Node) *Node {
	return &Node{Type: NodeBlock, Children: stmts}
}

// If builds an if node; alternatives are elseif nodes (from ElseIf) optionally
// followed by a trailing else Block.
func If(cond, then *Node, alternatives ...*Node) *Node {
	children := append([]*Node{cond, then}, alternatives...)
	return &Node{Type: NodeIf, Children: children}
}

func ElseIf(cond, block *Node) *Node {
	return &Node{Type: NodeIf, Children: []*Node{cond, block}}
}

func While(cond, body *Node) *Node {
	return &Node{Type: NodeWhile, Children: []*Node{cond, body}}
}

func For(init, cond, increment, body *Node) *Node {
	return &Node{Type: NodeFor, Children: []*Node{init, cond, increment, body}}
}

func Fn(name string, params []string, body *Node) *Node {
	return &Node{Type: NodeFunctionDecl, Value: name, Params: params, Body: body}
}

func Ret(value *Node) *Node {
	if value == nil {
		return &Node{Type: NodeReturn}
	}
	return &Node{Type: NodeReturn, Children: []*Node{value}}
}
