package lexer

import "testing"

func TestNextTokenOperators(t *testing.T) {
	input := `let mut x = 3 + 4 * 2 -> <> => .. ... == != <= >= && ||`
	want := []TokenType{
		LET, MUT, IDENT, ASSIGN, NUMBER, PLUS, NUMBER, STAR, NUMBER,
		ARROW, UNDIRECTED, FATARROW, DOTDOT, ELLIPSIS, EQ, NEQ, LTE, GTE, AND, OR, EOF,
	}
	l := New(input)
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Fatalf("token[%d] = %v, want %v (literal %q)", i, tok.Type, tt, tok.Literal)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		want  TokenType
		lit   string
	}{
		{"123", NUMBER, "123"},
		{"1.5", NUMBER, "1.5"},
		{"1.5e10", NUMBER, "1.5e10"},
		{"3i", IMAGINARY, "3"},
	}
	for _, c := range cases {
		tok := New(c.input).NextToken()
		if tok.Type != c.want || tok.Literal != c.lit {
			t.Errorf("lex(%q) = {%v %q}, want {%v %q}", c.input, tok.Type, tok.Literal, c.want, c.lit)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	tok := New(`"hello\nworld"`).NextToken()
	if tok.Type != STRING || tok.Literal != "hello\nworld" {
		t.Errorf("got %v %q", tok.Type, tok.Literal)
	}
}

func TestKeywordsNotIdentifiers(t *testing.T) {
	l := New("let mut do while for in try catch throw match generate yield return rec self import export")
	want := []TokenType{LET, MUT, DO, WHILE, FOR, IN, TRY, CATCH, THROW, MATCH, GENERATE, YIELD, RETURN, REC, SELF, IMPORT, EXPORT}
	for i, tt := range want {
		tok := l.NextToken()
		if tok.Type != tt {
			t.Errorf("token[%d] = %v, want %v", i, tok.Type, tt)
		}
	}
}

// if/piecewise are NOT keywords (spec 4.4.4): they lex as ordinary
// identifiers so if(c, t, e) parses like any other call expression.
func TestIfPiecewiseAreIdentifiers(t *testing.T) {
	l := New("if piecewise")
	for _, name := range []string{"if", "piecewise"} {
		tok := l.NextToken()
		if tok.Type != IDENT || tok.Literal != name {
			t.Errorf("got %v %q, want IDENT %q", tok.Type, tok.Literal, name)
		}
	}
}

func TestComments(t *testing.T) {
	l := New("1 // line comment\n2 /* block */ 3")
	want := []string{"1", "2", "3"}
	for _, w := range want {
		tok := l.NextToken()
		if tok.Literal != w {
			t.Errorf("got %q, want %q", tok.Literal, w)
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("x\ny")
	first := l.NextToken()
	second := l.NextToken()
	if first.Pos.Line != 1 {
		t.Errorf("first.Line = %d, want 1", first.Pos.Line)
	}
	if second.Pos.Line != 2 {
		t.Errorf("second.Line = %d, want 2", second.Pos.Line)
	}
}
