package parser

import (
	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
)

// statement dispatches on the leading keyword. It returns nil when only
// separators remain before the end of input.
func (p *Parser) statement() (*ast.Node, error) {
	p.skipSemicolons()
	switch p.peek().Kind {
	case lexer.End:
		return nil, nil
	case lexer.Dir:
		return p.varDeclaration()
	case lexer.Kteb:
		return p.printStatement()
	case lexer.Ila:
		return p.ifStatement()
	case lexer.Ma7ad:
		return p.whileStatement()
	case lexer.Kol:
		return p.forStatement()
	case lexer.Dalla:
		return p.functionDeclaration()
	case lexer.Rje3:
		return p.returnStatement()
	case lexer.LBrace:
		p.advance()
		return p.block()
	default:
		return p.assignmentOrExpression()
	}
}

func (p *Parser) varDeclaration() (*ast.Node, error) {
	start, err := p.consume(lexer.Dir, "Expected 'dir'")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.Ident, "Expected variable name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Equal, "Expected '=' in variable declaration"); err != nil {
		return nil, err
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeVarDecl, Value: name.Text, Children: []*ast.Node{value}}, start), nil
}

func (p *Parser) printStatement() (*ast.Node, error) {
	start, err := p.consume(lexer.Kteb, "Expected 'kteb'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LParen, "Expected '(' after kteb"); err != nil {
		return nil, err
	}
	args, err := p.arguments()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after kteb arguments"); err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodePrint, Children: args}, start), nil
}

// conditionalBlock parses "( expr ) { ... }" as used by ila, wila and ma7ad.
func (p *Parser) conditionalBlock(keyword, blockName string) (*ast.Node, *ast.Node, error) {
	if _, err := p.consume(lexer.LParen, "Expected '(' after "+keyword); err != nil {
		return nil, nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after condition"); err != nil {
		return nil, nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' for "+blockName+" block"); err != nil {
		return nil, nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, nil, err
	}
	return cond, body, nil
}

func (p *Parser) ifStatement() (*ast.Node, error) {
	start, err := p.consume(lexer.Ila, "Expected 'ila'")
	if err != nil {
		return nil, err
	}
	cond, then, err := p.conditionalBlock("ila", "if")
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Type: ast.NodeIf, Children: []*ast.Node{cond, then}}

	for p.check(lexer.Wila) {
		clauseStart := p.advance()
		clauseCond, clauseBody, err := p.conditionalBlock("wila", "wila")
		if err != nil {
			return nil, err
		}
		clause := p.finish(&ast.Node{Type: ast.NodeIf, Children: []*ast.Node{clauseCond, clauseBody}}, clauseStart)
		node.Children = append(node.Children, clause)
	}

	if p.elseAhead() {
		p.advance()
		if _, err := p.consume(lexer.LBrace, "Expected '{' for else block"); err != nil {
			return nil, err
		}
		elseBlock, err := p.block()
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, elseBlock)
	}
	return p.finish(node, start), nil
}

func (p *Parser) whileStatement() (*ast.Node, error) {
	start, err := p.consume(lexer.Ma7ad, "Expected 'ma7ad'")
	if err != nil {
		return nil, err
	}
	cond, body, err := p.conditionalBlock("ma7ad", "while")
	if err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeWhile, Children: []*ast.Node{cond, body}}, start), nil
}

func (p *Parser) forStatement() (*ast.Node, error) {
	start, err := p.consume(lexer.Kol, "Expected 'kol'")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LParen, "Expected '(' after kol"); err != nil {
		return nil, err
	}

	var init *ast.Node
	if p.check(lexer.Dir) {
		init, err = p.varDeclaration()
	} else {
		init, err = p.assignmentOrExpression()
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after for init"); err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon, "Expected ';' after for condition"); err != nil {
		return nil, err
	}

	increment, err := p.assignmentOrExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after for clauses"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' for for block"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeFor, Children: []*ast.Node{init, cond, increment, body}}, start), nil
}

func (p *Parser) functionDeclaration() (*ast.Node, error) {
	start, err := p.consume(lexer.Dalla, "Expected 'dalla'")
	if err != nil {
		return nil, err
	}
	name, err := p.consume(lexer.Ident, "Expected function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LParen, "Expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []string
	if !p.check(lexer.RParen) {
		for {
			param, err := p.consume(lexer.Ident, "Expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, param.Text)
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RParen, "Expected ')' after parameters"); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LBrace, "Expected '{' for function body"); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeFunctionDecl, Value: name.Text, Params: params, Body: body}, start), nil
}

func (p *Parser) returnStatement() (*ast.Node, error) {
	start, err := p.consume(lexer.Rje3, "Expected 'rje3'")
	if err != nil {
		return nil, err
	}
	node := &ast.Node{Type: ast.NodeReturn}
	if !p.check(lexer.Semicolon) && !p.check(lexer.RBrace) && !p.check(lexer.End) {
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		node.Children = []*ast.Node{value}
	}
	return p.finish(node, start), nil
}

// block parses statements up to and including the closing brace. The opening
// brace has already been consumed by the caller.
func (p *Parser) block() (*ast.Node, error) {
	start := p.previous()
	node := &ast.Node{Type: ast.NodeBlock}
	for !p.check(lexer.RBrace) && !p.check(lexer.End) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			node.Children = append(node.Children, stmt)
		}
		p.skipSemicolons()
	}
	if _, err := p.consume(lexer.RBrace, "Expected '}' after block"); err != nil {
		return nil, err
	}
	return p.finish(node, start), nil
}

func (p *Parser) assignmentOrExpression() (*ast.Node, error) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if !p.check(lexer.Equal) {
		return expr, nil
	}
	eq := p.advance()
	if expr.Type != ast.NodeIdentifier {
		return nil, &ParseError{Message: "Invalid assignment target", Token: eq}
	}
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	return p.finish(&ast.Node{Type: ast.NodeAssignment, Value: expr.Value, Children: []*ast.Node{value}}, start), nil
}
