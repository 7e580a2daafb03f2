package parser

import (
	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
)

// Binary precedence levels, lowest first. Each level parses the next one as
// its operands and folds left.
var (
	equalityOperators       = []lexer.Kind{lexer.EqEq, lexer.NotEq}
	comparisonOperators     = []lexer.Kind{lexer.Lt, lexer.Gt, lexer.Le, lexer.Ge}
	additiveOperators       = []lexer.Kind{lexer.Plus, lexer.Minus}
	multiplicativeOperators = []lexer.Kind{lexer.Star, lexer.Slash}
)

func (p *Parser) expression() (*ast.Node, error) {
	return p.logicalOr()
}

func (p *Parser) logicalOr() (*ast.Node, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.elseAhead() {
		op := p.advance()
		right, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (*ast.Node, error) {
	return p.binaryLevel([]lexer.Kind{lexer.W}, p.equality)
}

func (p *Parser) equality() (*ast.Node, error) {
	return p.binaryLevel(equalityOperators, p.comparison)
}

func (p *Parser) comparison() (*ast.Node, error) {
	return p.binaryLevel(comparisonOperators, p.addition)
}

func (p *Parser) addition() (*ast.Node, error) {
	return p.binaryLevel(additiveOperators, p.multiplication)
}

func (p *Parser) multiplication() (*ast.Node, error) {
	return p.binaryLevel(multiplicativeOperators, p.unary)
}

func (p *Parser) binaryLevel(operators []lexer.Kind, operand func() (*ast.Node, error)) (*ast.Node, error) {
	expr, err := operand()
	if err != nil {
		return nil, err
	}
	for p.checkAny(operators) {
		op := p.advance()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		expr = binary(op, expr, right)
	}
	return expr, nil
}

func (p *Parser) checkAny(kinds []lexer.Kind) bool {
	current := p.peek().Kind
	for _, kind := range kinds {
		if current == kind {
			return true
		}
	}
	return false
}

func binary(op lexer.Token, left, right *ast.Node) *ast.Node {
	return &ast.Node{
		Type:     ast.NodeBinaryOp,
		Op:       op.Text,
		Children: []*ast.Node{left, right},
		Span:     ast.Span{Start: left.Span.Start, End: right.Span.End},
	}
}

func (p *Parser) unary() (*ast.Node, error) {
	if p.check(lexer.Minus) {
		start := p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return p.finish(&ast.Node{Type: ast.NodeUnaryOp, Op: "-", Children: []*ast.Node{operand}}, start), nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (*ast.Node, error) {
	start := p.peek()
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PlusPlus) {
		expr = p.finish(&ast.Node{Type: ast.NodeUnaryOp, Op: ast.OpPostIncrement, Children: []*ast.Node{expr}}, start)
	}
	return expr, nil
}

func (p *Parser) primary() (*ast.Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case lexer.Number:
		p.advance()
		return p.finish(&ast.Node{Type: ast.NodeNumber, Value: tok.Text}, tok), nil
	case lexer.String:
		p.advance()
		return p.finish(&ast.Node{Type: ast.NodeString, Value: tok.Text}, tok), nil
	case lexer.S7i7, lexer.Ghalat:
		p.advance()
		return p.finish(&ast.Node{Type: ast.NodeBoolean, Value: tok.Text}, tok), nil
	case lexer.Kalla:
		p.advance()
		name, err := p.consume(lexer.Ident, "Expected function name after kalla")
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.LParen, "Expected '(' after function name"); err != nil {
			return nil, err
		}
		return p.call(name, tok)
	case lexer.Ident:
		p.advance()
		if p.match(lexer.LParen) {
			return p.call(tok, tok)
		}
		return p.finish(&ast.Node{Type: ast.NodeIdentifier, Value: tok.Text}, tok), nil
	case lexer.LParen:
		p.advance()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RParen, "Expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	default:
		return nil, unexpectedTokenError(tok)
	}
}

// call parses the argument list of a call whose '(' has been consumed.
func (p *Parser) call(name, start lexer.Token) (*ast.Node, error) {
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after function arguments"); err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeCall, Value: name.Text, Children: args}, start), nil
}

// arguments parses a possibly empty comma-separated expression list, stopping
// before the closing parenthesis.
func (p *Parser) arguments() ([]*ast.Node, error) {
	if p.check(lexer.RParen) {
		return nil, nil
	}
	var args []*ast.Node
	for {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(lexer.Comma) {
			return args, nil
		}
	}
}
