package parser

import (
	"github.com/zakarialaoui10/lfi3a/pkg/ast"
	"github.com/zakarialaoui10/lfi3a/pkg/lexer"
)

// Parser is a recursive-descent parser over a lexed token stream.
type Parser struct {
	tokens []lexer.Token
	pos    int
}

// New constructs a parser. A missing End terminator is appended.
func New(tokens []lexer.Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != lexer.End {
		tokens = append(append([]lexer.Token(nil), tokens...), lexer.Token{Kind: lexer.End})
	}
	return &Parser{tokens: tokens}
}

// Parse parses a whole token stream into top-level statements.
func Parse(tokens []lexer.Token) ([]*ast.Node, error) {
	return New(tokens).ParseProgram()
}

// ParseSource lexes and parses src.
func ParseSource(src string) ([]*ast.Node, error) {
	return Parse(lexer.Tokenize(src))
}

// ParseProgram parses statements until end of input. The first error aborts
// parsing and no statements are returned.
func (p *Parser) ParseProgram() ([]*ast.Node, error) {
	var nodes []*ast.Node
	for !p.check(lexer.End) {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		if stmt != nil {
			nodes = append(nodes, stmt)
		}
		p.skipSemicolons()
	}
	return nodes, nil
}

func (p *Parser) peek() lexer.Token {
	if p.pos < len(p.tokens) {
		return p.tokens[p.pos]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peekNext() lexer.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, message string) (lexer.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return lexer.Token{}, expectationError(message, p.peek())
}

func (p *Parser) skipSemicolons() {
	for p.match(lexer.Semicolon) {
	}
}

// elseAhead implements the wla heuristic: wla introduces an else clause (or a
// logical-or) only when the token after it is not the w keyword.
func (p *Parser) elseAhead() bool {
	return p.check(lexer.Wla) && p.peekNext().Kind != lexer.W
}

func position(tok lexer.Token) ast.Position {
	return ast.Position{Line: tok.Pos.Line, Column: tok.Pos.Column}
}

// finish stamps node with a span from start to the last consumed token.
func (p *Parser) finish(node *ast.Node, start lexer.Token) *ast.Node {
	node.Span = ast.Span{Start: position(start), End: position(p.previous())}
	return node
}
