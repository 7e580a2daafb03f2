package lexer

import (
	"reflect"
	"testing"
)

func kindsOf(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func textsOf(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}

func TestTokenizeEmptySourceYieldsEnd(t *testing.T) {
	for _, src := range []string{"", "   \n\t", "// only a comment"} {
		tokens := Tokenize(src)
		if len(tokens) != 1 || tokens[0].Kind != End {
			t.Fatalf("Tokenize(%q) = %v, want single End token", src, tokens)
		}
	}
}

func TestTokenizeKeywordsAndIdentifiers(t *testing.T) {
	tokens := Tokenize("dir kteb ila wila wla ma7ad kol dalla kalla rje3 s7i7 ghalat w wx _tmp x1")
	want := []Kind{Dir, Kteb, Ila, Wila, Wla, Ma7ad, Kol, Dalla, Kalla, Rje3, S7i7, Ghalat, W, Ident, Ident, Ident, End}
	if got := kindsOf(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeOperatorsLongestMatch(t *testing.T) {
	tokens := Tokenize("( ) { } ; , = == != < > <= >= + ++ - * / !")
	want := []Kind{LParen, RParen, LBrace, RBrace, Semicolon, Comma, Equal, EqEq, NotEq, Lt, Gt, Le, Ge, Plus, PlusPlus, Minus, Star, Slash, Unknown, End}
	if got := kindsOf(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if tokens[18].Text != "!" {
		t.Fatalf("lone bang text = %q", tokens[18].Text)
	}
}

func TestTokenizeAdjacentOperators(t *testing.T) {
	tokens := Tokenize("i++<=3")
	want := []string{"i", "++", "<=", "3", ""}
	if got := textsOf(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("texts = %v, want %v", got, want)
	}
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src   string
		texts []string
		kinds []Kind
	}{
		{"42", []string{"42", ""}, []Kind{Number, End}},
		{"3.14", []string{"3.14", ""}, []Kind{Number, End}},
		{"007", []string{"007", ""}, []Kind{Number, End}},
		{"3.", []string{"3", ".", ""}, []Kind{Number, Unknown, End}},
		{"1.2.3", []string{"1.2", ".", "3", ""}, []Kind{Number, Unknown, Number, End}},
	}
	for _, tc := range cases {
		tokens := Tokenize(tc.src)
		if got := textsOf(tokens); !reflect.DeepEqual(got, tc.texts) {
			t.Fatalf("Tokenize(%q) texts = %v, want %v", tc.src, got, tc.texts)
		}
		if got := kindsOf(tokens); !reflect.DeepEqual(got, tc.kinds) {
			t.Fatalf("Tokenize(%q) kinds = %v, want %v", tc.src, got, tc.kinds)
		}
	}
}

func TestTokenizeStringEscapes(t *testing.T) {
	tokens := Tokenize(`"a\nb\tc\\d\"e\qf"`)
	if tokens[0].Kind != String {
		t.Fatalf("expected string token, got %v", tokens[0])
	}
	if want := "a\nb\tc\\d\"eqf"; tokens[0].Text != want {
		t.Fatalf("string text = %q, want %q", tokens[0].Text, want)
	}
}

func TestTokenizeStringKeepsRawBytes(t *testing.T) {
	tokens := Tokenize("kteb(\"a\xffb\\\xfeé\");")
	if tokens[2].Kind != String {
		t.Fatalf("expected string token, got %v", tokens[2])
	}
	if want := "a\xffb\xfeé"; tokens[2].Text != want {
		t.Fatalf("string text = %q, want %q", tokens[2].Text, want)
	}
	if tokens[3].Kind != RParen {
		t.Fatalf("expected ')' after string, got %v", tokens[3])
	}
}

func TestTokenizeUnterminatedString(t *testing.T) {
	tokens := Tokenize(`"open`)
	if len(tokens) != 2 || tokens[0].Kind != String || tokens[0].Text != "open" {
		t.Fatalf("unexpected tokens %v", tokens)
	}
}

func TestTokenizeSkipsConsecutiveComments(t *testing.T) {
	src := "// first\n// second\n   // third\nkteb(1) // trailing\n"
	want := []Kind{Kteb, LParen, Number, RParen, End}
	if got := kindsOf(Tokenize(src)); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeSingleSlashIsOperator(t *testing.T) {
	want := []Kind{Number, Slash, Number, End}
	if got := kindsOf(Tokenize("6 / 2")); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestTokenizeUnknownRunes(t *testing.T) {
	tokens := Tokenize("x @ é")
	want := []Kind{Ident, Unknown, Unknown, End}
	if got := kindsOf(tokens); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	if tokens[2].Text != "é" {
		t.Fatalf("unknown rune text = %q", tokens[2].Text)
	}
}

func TestTokenizePositions(t *testing.T) {
	tokens := Tokenize("dir x = 1;\n  kteb(x)")
	kteb := tokens[5]
	if kteb.Kind != Kteb {
		t.Fatalf("expected kteb at index 5, got %v", kteb)
	}
	if kteb.Pos.Line != 2 || kteb.Pos.Column != 3 {
		t.Fatalf("kteb position = %s, want 2:3", kteb.Pos)
	}
	end := tokens[len(tokens)-1]
	if end.Kind != End || end.Pos.Line != 2 {
		t.Fatalf("end token = %v at %s", end, end.Pos)
	}
}

func TestKindMarshalText(t *testing.T) {
	text, err := PlusPlus.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	if string(text) != "++" {
		t.Fatalf("MarshalText = %q", text)
	}
}
