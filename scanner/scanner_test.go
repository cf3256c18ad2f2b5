package scanner_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/marcuscaisey/lox/scanner"
	"github.com/marcuscaisey/lox/token"
)

func TestScanEndsWithEof(t *testing.T) {
	tokens, err := scanner.Scan(`print "hi";`)
	if err != nil {
		t.Fatalf("Scan returned error: %s", err)
	}
	if len(tokens) == 0 {
		t.Fatal("Scan returned no tokens")
	}
	if got := tokens[len(tokens)-1].Type; got != token.Eof {
		t.Errorf("last token type = %s, want %s", got, token.Eof)
	}
}

func TestScanTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Type
	}{
		{"punctuation", `(){},.;:+-*/%`, []token.Type{
			token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
			token.Comma, token.Dot, token.Semicolon, token.Colon,
			token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Eof,
		}},
		{"two char operators", `! != = == < <= > >=`, []token.Type{
			token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
			token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
		}},
		{"keywords", "and class else false fun for if nil or print return super this true var while", []token.Type{
			token.And, token.Class, token.Else, token.False, token.Fun, token.For, token.If,
			token.Nil, token.Or, token.Print, token.Return, token.Super, token.This, token.True,
			token.Var, token.While, token.Eof,
		}},
		{"number", "123 3.14", []token.Type{token.Number, token.Number, token.Eof}},
		{"string", `"hello world"`, []token.Type{token.String, token.Eof}},
		{"identifier", "foo _bar baz123", []token.Type{token.Identifier, token.Identifier, token.Identifier, token.Eof}},
		{"line comment", "1 // a comment\n2", []token.Type{token.Number, token.Number, token.Eof}},
		{"block comment", "1 /* a\nmultiline\ncomment */ 2", []token.Type{token.Number, token.Number, token.Eof}},
		{"string with newline", "\"a\nb\"", []token.Type{token.String, token.Eof}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := scanner.Scan(tt.src)
			if err != nil {
				t.Fatalf("Scan returned error: %s", err)
			}
			var got []token.Type
			for _, tok := range tokens {
				got = append(got, tok.Type)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("token types mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScanLiterals(t *testing.T) {
	tokens, err := scanner.Scan(`123.5 "hi" foo`)
	if err != nil {
		t.Fatalf("Scan returned error: %s", err)
	}
	if got, want := tokens[0].Literal, 123.5; got != want {
		t.Errorf("number literal = %v, want %v", got, want)
	}
	if got, want := tokens[1].Literal, "hi"; got != want {
		t.Errorf("string literal = %v, want %v", got, want)
	}
	if got, want := tokens[2].Literal, "foo"; got != want {
		t.Errorf("identifier literal = %v, want %v", got, want)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.Scan(`"unterminated`)
	if err == nil {
		t.Fatal("Scan returned no error for an unterminated string")
	}
	if !strings.Contains(err.Error(), "lex-error") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "lex-error")
	}
}

func TestScanUnterminatedBlockComment(t *testing.T) {
	_, err := scanner.Scan(`/* unterminated`)
	if err == nil {
		t.Fatal("Scan returned no error for an unterminated block comment")
	}
	if !strings.Contains(err.Error(), "lex-error") {
		t.Errorf("error = %q, want it to contain %q", err.Error(), "lex-error")
	}
}

// Block comments do not nest: the first "*/" closes the comment, leaving a
// dangling "*/" behind as ordinary tokens.
func TestBlockCommentsDoNotNest(t *testing.T) {
	tokens, err := scanner.Scan(`/* /* */ */ 1`)
	if err != nil {
		t.Fatalf("Scan returned error: %s", err)
	}
	var types []token.Type
	for _, tok := range tokens {
		types = append(types, tok.Type)
	}
	want := []token.Type{token.Star, token.Slash, token.Number, token.Eof}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := scanner.Scan("@")
	if err == nil {
		t.Fatal("Scan returned no error for an unexpected character")
	}
}
