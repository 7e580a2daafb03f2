package lexer

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

const (
	Ident Kind = iota
	String
	Number

	// Keywords.
	Dir
	Kteb
	Ila
	Wila
	Wla
	Ma7ad
	Kol
	Dalla
	Kalla
	Rje3
	S7i7
	Ghalat
	W

	// Operators and punctuation.
	LParen
	RParen
	LBrace
	RBrace
	Semicolon
	Comma
	Equal
	Plus
	Minus
	Star
	Slash
	EqEq
	NotEq
	Lt
	Gt
	Le
	Ge
	PlusPlus

	End
	Unknown
)

var kindNames = map[Kind]string{
	Ident:     "identifier",
	String:    "string",
	Number:    "number",
	Dir:       "dir",
	Kteb:      "kteb",
	Ila:       "ila",
	Wila:      "wila",
	Wla:       "wla",
	Ma7ad:     "ma7ad",
	Kol:       "kol",
	Dalla:     "dalla",
	Kalla:     "kalla",
	Rje3:      "rje3",
	S7i7:      "s7i7",
	Ghalat:    "ghalat",
	W:         "w",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	Semicolon: ";",
	Comma:     ",",
	Equal:     "=",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	EqEq:      "==",
	NotEq:     "!=",
	Lt:        "<",
	Gt:        ">",
	Le:        "<=",
	Ge:        ">=",
	PlusPlus:  "++",
	End:       "end of input",
	Unknown:   "unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// MarshalText renders kinds by name in JSON token dumps.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"dir":    Dir,
	"kteb":   Kteb,
	"ila":    Ila,
	"wila":   Wila,
	"wla":    Wla,
	"ma7ad":  Ma7ad,
	"kol":    Kol,
	"dalla":  Dalla,
	"kalla":  Kalla,
	"rje3":   Rje3,
	"s7i7":   S7i7,
	"ghalat": Ghalat,
	"w":      W,
}

// LookupKeyword reports the keyword kind for word, or Ident.
func LookupKeyword(word string) Kind {
	if kind, ok := keywords[word]; ok {
		return kind
	}
	return Ident
}

// Position is a 1-based line/column location plus the byte offset into the source.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexeme. String tokens carry their unescaped contents.
type Token struct {
	Kind Kind     `json:"kind"`
	Text string   `json:"text"`
	Pos  Position `json:"pos"`
}

func (t Token) String() string {
	if t.Kind == End {
		return "<end>"
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}
