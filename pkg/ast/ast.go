package ast

type NodeType string

const (
	NodeNumber       NodeType = "Number"
	NodeString       NodeType = "String"
	NodeBoolean      NodeType = "Boolean"
	NodeIdentifier   NodeType = "Identifier"
	NodeBinaryOp     NodeType = "BinaryOp"
	NodeUnaryOp      NodeType = "UnaryOp"
	NodeCall         NodeType = "Call"
	NodeVarDecl      NodeType = "VarDecl"
	NodeAssignment   NodeType = "Assignment"
	NodePrint        NodeType = "Print"
	NodeIf           NodeType = "If"
	NodeWhile        NodeType = "While"
	NodeFor          NodeType = "For"
	NodeFunctionDecl NodeType = "FunctionDecl"
	NodeReturn       NodeType = "Return"
	NodeBlock        NodeType = "Block"
)

// IsExpression reports whether nodes of this type produce a value.
func (t NodeType) IsExpression() bool {
	switch t {
	case NodeNumber, NodeString, NodeBoolean, NodeIdentifier, NodeBinaryOp, NodeUnaryOp, NodeCall:
		return true
	default:
		return false
	}
}

// Operator spelling for the post-increment unary node.
const OpPostIncrement = "post++"

type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type Span struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is the single tagged AST node. Which fields are meaningful depends on
// Type, and the position of each child is significant:
//
//	VarDecl, Assignment  Children[0] initializer, Value target name
//	Print                Children are the printed arguments
//	If                   [cond, then, (If{cond, block})*, (Block)?]
//	While                [cond, body]
//	For                  [init, cond, increment, body]
//	Call                 Value callee, Children arguments
//	FunctionDecl         Value name, Params, Body
//	Return               [] or [expr]
//	UnaryOp, BinaryOp    Op operator, Children operands
type Node struct {
	Type     NodeType `json:"type"`
	Value    string   `json:"value,omitempty"`
	Op       string   `json:"op,omitempty"`
	Children []*Node  `json:"children,omitempty"`
	Params   []string `json:"params,omitempty"`
	Body     *Node    `json:"body,omitempty"`
	Span     Span     `json:"span"`
}

// Child returns the i-th child or nil when absent.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Walk visits n and its descendants depth-first, stopping a branch when fn returns false.
func Walk(n *Node, fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, child := range n.Children {
		Walk(child, fn)
	}
	Walk(n.Body, fn)
}
