// Package token defines the token types for the LeapCalc expression language.
package token

import (
	"fmt"
	"strings"
)

// TokenType represents the type of a lexical token.
//
//nolint:revive // Accept stutter as token.TokenType is clear and widely used
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // identifier
	NUMBER // 123, 45.67

	// Operators
	PLUS   // +
	MINUS  // -
	STAR   // *
	SLASH  // /
	LPAREN // (
	RPAREN // )

	// Keywords
	AND
	OR
	NOT
	TRUE
	FALSE
)

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

// tokenNames maps token types to their string representations.
var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	PLUS:   "+",
	MINUS:  "-",
	STAR:   "*",
	SLASH:  "/",
	LPAREN: "(",
	RPAREN: ")",

	AND:   "AND",
	OR:    "OR",
	NOT:   "NOT",
	TRUE:  "TRUE",
	FALSE: "FALSE",
}

// keywords maps upper-cased identifier spellings to keyword token types.
// Keyword matching is case-insensitive; AND, and, And all lex to AND.
var keywords = map[string]TokenType{
	"AND":   AND,
	"OR":    OR,
	"NOT":   NOT,
	"TRUE":  TRUE,
	"FALSE": FALSE,
}

// LookupIdent returns the keyword token type for an identifier spelling,
// or IDENT if the spelling is not a keyword.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[strings.ToUpper(ident)]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a language keyword.
func (t TokenType) IsKeyword() bool {
	switch t {
	case AND, OR, NOT, TRUE, FALSE:
		return true
	}
	return false
}

// Token represents a lexical token with its position in the input.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}
