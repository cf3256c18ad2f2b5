// Package token defines the lexical tokens produced by the scanner and
// consumed by the parser.
package token

import "fmt"

// Type identifies the kind of a token.
type Type int

const (
	Illegal Type = iota
	Eof

	Number
	String
	Identifier

	And
	Class
	Else
	False
	Fun
	For
	If
	Nil
	Or
	Print
	Return
	Super
	This
	True
	Var
	While

	LeftParen
	RightParen
	LeftBrace
	RightBrace
	LeftBrack
	RightBrack
	Comma
	Dot
	Semicolon
	Colon
	Plus
	Minus
	Star
	Slash
	Percent
	Bang
	BangEqual
	Equal
	EqualEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var typeStrings = [...]string{
	Illegal: "illegal", Eof: "EOF",
	Number: "number", String: "string", Identifier: "identifier",
	And: "and", Class: "class", Else: "else", False: "false", Fun: "fun", For: "for",
	If: "if", Nil: "nil", Or: "or", Print: "print", Return: "return", Super: "super",
	This: "this", True: "true", Var: "var", While: "while",
	LeftParen: "(", RightParen: ")", LeftBrace: "{", RightBrace: "}",
	LeftBrack: "[", RightBrack: "]", Comma: ",", Dot: ".", Semicolon: ";", Colon: ":",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Percent: "%",
	Bang: "!", BangEqual: "!=", Equal: "=", EqualEqual: "==",
	Less: "<", LessEqual: "<=", Greater: ">", GreaterEqual: ">=",
}

// String returns the name of the token type, as it appears in diagnostics.
func (t Type) String() string {
	if int(t) < 0 || int(t) >= len(typeStrings) {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return typeStrings[t]
}

// Keywords maps a reserved identifier lexeme to its keyword token type.
var Keywords = map[string]Type{
	"and": And, "class": Class, "else": Else, "false": False, "fun": Fun,
	"for": For, "if": If, "nil": Nil, "or": Or, "print": Print, "return": Return,
	"super": Super, "this": This, "true": True, "var": Var, "while": While,
}

// Position is a 1-based line, 0-based column location within a source file.
type Position struct {
	Line   int
	Column int
}

// Compare returns -1, 0, or 1 depending on whether p sorts before, at, or
// after other.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Column != other.Column {
		if p.Column < other.Column {
			return -1
		}
		return 1
	}
	return 0
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token is a single lexical unit: its kind, the raw source text it spans,
// any decoded literal payload, and its start position.
//
// Literal holds the decoded payload for Number (float64) and String (the
// unquoted text) tokens, and the name for Identifier tokens; it is nil for
// everything else.
type Token struct {
	Type    Type
	Lexeme  string
	Literal any
	Start   Position
	End     Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.Type, t.Lexeme)
}
