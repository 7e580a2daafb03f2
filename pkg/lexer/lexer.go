package lexer

import (
	"strings"
	"unicode/utf8"
)

// Lexer walks source text and produces tokens. It never fails: characters it
// does not recognise become Unknown tokens.
type Lexer struct {
	src    string
	pos    int
	line   int
	column int
}

// New returns a lexer positioned at the start of src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, column: 1}
}

// Tokenize lexes src into a token slice terminated by a single End token.
func Tokenize(src string) []Token {
	return New(src).Tokenize()
}

// Tokenize consumes the remaining input.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		l.skipTrivia()
		if l.atEnd() {
			break
		}
		tokens = append(tokens, l.next())
	}
	return append(tokens, Token{Kind: End, Pos: l.position()})
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peek(offset int) byte {
	if l.pos+offset < len(l.src) {
		return l.src[l.pos+offset]
	}
	return 0
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.column}
}

// advance consumes one rune and returns it.
func (l *Lexer) advance() rune {
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r
}

func (l *Lexer) skipTrivia() {
	for !l.atEnd() {
		c := l.peek(0)
		switch {
		case isSpace(c):
			l.advance()
		case c == '/' && l.peek(1) == '/':
			for !l.atEnd() && l.peek(0) != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) next() Token {
	start := l.position()
	c := l.peek(0)
	switch {
	case c == '"':
		return l.string(start)
	case isAlpha(c) || c == '_':
		return l.identifier(start)
	case isDigit(c):
		return l.number(start)
	}

	l.advance()
	tok := func(kind Kind, text string) Token {
		return Token{Kind: kind, Text: text, Pos: start}
	}
	// two consumes the second byte of a two-character operator when it matches.
	two := func(second byte) bool {
		if l.peek(0) == second {
			l.advance()
			return true
		}
		return false
	}
	switch c {
	case '(':
		return tok(LParen, "(")
	case ')':
		return tok(RParen, ")")
	case '{':
		return tok(LBrace, "{")
	case '}':
		return tok(RBrace, "}")
	case ';':
		return tok(Semicolon, ";")
	case ',':
		return tok(Comma, ",")
	case '+':
		if two('+') {
			return tok(PlusPlus, "++")
		}
		return tok(Plus, "+")
	case '-':
		return tok(Minus, "-")
	case '*':
		return tok(Star, "*")
	case '/':
		return tok(Slash, "/")
	case '=':
		if two('=') {
			return tok(EqEq, "==")
		}
		return tok(Equal, "=")
	case '!':
		if two('=') {
			return tok(NotEq, "!=")
		}
		return tok(Unknown, "!")
	case '<':
		if two('=') {
			return tok(Le, "<=")
		}
		return tok(Lt, "<")
	case '>':
		if two('=') {
			return tok(Ge, ">=")
		}
		return tok(Gt, ">")
	}
	// advance already consumed a whole rune; report it verbatim.
	return tok(Unknown, l.src[start.Offset:l.pos])
}

func (l *Lexer) string(start Position) Token {
	l.advance() // opening quote
	var b strings.Builder
	// Source bytes are copied as-is so invalid UTF-8 survives.
	for !l.atEnd() && l.peek(0) != '"' {
		from := l.pos
		if l.advance() != '\\' {
			b.WriteString(l.src[from:l.pos])
			continue
		}
		if l.atEnd() {
			break
		}
		from = l.pos
		switch l.advance() {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		default:
			b.WriteString(l.src[from:l.pos])
		}
	}
	if !l.atEnd() {
		l.advance() // closing quote
	}
	return Token{Kind: String, Text: b.String(), Pos: start}
}

func (l *Lexer) identifier(start Position) Token {
	for !l.atEnd() && (isAlnum(l.peek(0)) || l.peek(0) == '_') {
		l.advance()
	}
	word := l.src[start.Offset:l.pos]
	return Token{Kind: LookupKeyword(word), Text: word, Pos: start}
}

func (l *Lexer) number(start Position) Token {
	for isDigit(l.peek(0)) {
		l.advance()
	}
	if l.peek(0) == '.' && isDigit(l.peek(1)) {
		l.advance()
		for isDigit(l.peek(0)) {
			l.advance()
		}
	}
	return Token{Kind: Number, Text: l.src[start.Offset:l.pos], Pos: start}
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isAlnum(c byte) bool { return isAlpha(c) || isDigit(c) }
