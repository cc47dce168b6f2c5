package lexer

import "testing"

func TestNextToken_Arithmetic(t *testing.T) {
	input := "1 + 2"

	tests := []struct {
		kind Kind
		text string
	}{
		{LiteralInt, "1"},
		{Plus, "+"},
		{LiteralInt, "2"},
		{Eof, ""},
	}

	l := New("main.sfl", input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d]: kind wrong. expected=%q, got=%q", i, tt.kind, tok.Kind)
		}
		if tt.kind != Eof && tok.Text != tt.text {
			t.Fatalf("tests[%d]: text wrong. expected=%q, got=%q", i, tt.text, tok.Text)
		}
	}
}

func TestNextToken_LetAbstraction(t *testing.T) {
	input := `let id = \x -> x in id`

	tests := []Kind{KwLet, Name, Assign, Backslash, Name, Arrow, Name, KwIn, Name, Eof}

	l := New("main.sfl", input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Kind != want {
			t.Fatalf("tests[%d]: expected=%q, got=%q (%q)", i, want, tok.Kind, tok.Text)
		}
	}
}

func TestNextToken_Keywords(t *testing.T) {
	input := "if then else let in def true false"
	want := []Kind{KwIf, KwThen, KwElse, KwLet, KwIn, KwDef, LiteralBool, LiteralBool, Eof}

	l := New("main.sfl", input)
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("tests[%d]: expected=%q, got=%q", i, k, tok.Kind)
		}
	}
}

func TestNextToken_Comments(t *testing.T) {
	input := "1 # this is a comment\n+ 2"
	want := []Kind{LiteralInt, Plus, LiteralInt, Eof}

	l := New("main.sfl", input)
	for i, k := range want {
		tok := l.NextToken()
		if tok.Kind != k {
			t.Fatalf("tests[%d]: expected=%q, got=%q", i, k, tok.Kind)
		}
	}
}

func TestNumber_SecondDotIsLocalizedError(t *testing.T) {
	l := New("main.sfl", "1.2.3")
	tok := l.NextToken()
	if tok.Kind != Error {
		t.Fatalf("expected Error kind, got %q", tok.Kind)
	}
	if len(l.Errors) != 1 {
		t.Fatalf("expected 1 recorded lexical error, got %d", len(l.Errors))
	}
	// lexing continues: the next token should still be reachable.
	next := l.NextToken()
	if next.Kind != Eof {
		t.Fatalf("expected lexer to recover to Eof, got %q", next.Kind)
	}
}

func TestNextToken_UnexpectedCharacterContinues(t *testing.T) {
	l := New("main.sfl", "1 @ 2")
	first := l.NextToken()
	if first.Kind != LiteralInt {
		t.Fatalf("expected LiteralInt, got %q", first.Kind)
	}
	bad := l.NextToken()
	if bad.Kind != Error {
		t.Fatalf("expected Error, got %q", bad.Kind)
	}
	rest := l.NextToken()
	if rest.Kind != LiteralInt || rest.Text != "2" {
		t.Fatalf("expected lexer to recover and emit '2', got %q %q", rest.Kind, rest.Text)
	}
}

func TestEofAlwaysAppended(t *testing.T) {
	toks := Lex("main.sfl", "")
	if len(toks) != 1 || toks[0].Kind != Eof {
		t.Fatalf("expected exactly one Eof token for empty input, got %v", toks)
	}
}

// TestTokenRoundTrip is property P1 from spec.md §8: concatenating the
// lexemes of all non-Eof tokens reproduces the non-comment,
// non-whitespace content of the source.
func TestTokenRoundTrip(t *testing.T) {
	input := "let k = \\x -> \\y -> x in k 7 9"
	toks := Lex("main.sfl", input)

	var rebuilt string
	for _, tok := range toks {
		if tok.Kind == Eof {
			continue
		}
		rebuilt += tok.Text
	}

	want := "letk=\\x->\\y->xink79"
	if rebuilt != want {
		t.Fatalf("round-trip mismatch: got %q want %q", rebuilt, want)
	}
}

func TestSpansNeverCrossNewline(t *testing.T) {
	input := "1\n+\n2"
	src := []rune(input)
	toks := Lex("main.sfl", input)
	for _, tok := range toks {
		if tok.Kind == Eof {
			continue
		}
		for _, r := range src[tok.Span.Begin:tok.Span.End] {
			if r == '\n' {
				t.Fatalf("token %q spans a newline: %+v", tok.Text, tok.Span)
			}
		}
	}
	if toks[0].Span.Line != 1 || toks[1].Span.Line != 2 || toks[2].Span.Line != 3 {
		t.Fatalf("expected tokens on consecutive lines, got %+v", toks)
	}
}
