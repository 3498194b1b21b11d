package expr_test

import (
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexerTokenTypes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{
			name:  "arithmetic operators",
			input: "a + b * c / d - e",
			want: []token.TokenType{
				token.IDENT, token.PLUS, token.IDENT, token.STAR, token.IDENT,
				token.SLASH, token.IDENT, token.MINUS, token.IDENT, token.EOF,
			},
		},
		{
			name:  "parenthesized group",
			input: "(a+b)/(c-2)",
			want: []token.TokenType{
				token.LPAREN, token.IDENT, token.PLUS, token.IDENT, token.RPAREN,
				token.SLASH,
				token.LPAREN, token.IDENT, token.MINUS, token.NUMBER, token.RPAREN,
				token.EOF,
			},
		},
		{
			name:  "boolean keywords are case-insensitive",
			input: "x and (y OR z) Not true false",
			want: []token.TokenType{
				token.IDENT, token.AND, token.LPAREN, token.IDENT, token.OR,
				token.IDENT, token.RPAREN, token.NOT, token.TRUE, token.FALSE,
				token.EOF,
			},
		},
		{
			name:  "decimal number",
			input: "3.25 * 4",
			want:  []token.TokenType{token.NUMBER, token.STAR, token.NUMBER, token.EOF},
		},
		{
			name:  "empty input",
			input: "   \t\n  ",
			want:  []token.TokenType{token.EOF},
		},
		{
			name:  "illegal character",
			input: "a ? b",
			want:  []token.TokenType{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := expr.Tokenize(tt.input)
			require.Len(t, tokens, len(tt.want))
			for i, tok := range tokens {
				assert.Equal(t, tt.want[i], tok.Type, "token %d", i)
			}
		})
	}
}

func TestLexerLiterals(t *testing.T) {
	tokens := expr.Tokenize("price_usd + 12.5")
	require.Len(t, tokens, 4)
	assert.Equal(t, "price_usd", tokens[0].Literal)
	assert.Equal(t, "12.5", tokens[2].Literal)
}

func TestLexerPositions(t *testing.T) {
	tokens := expr.Tokenize("a +\nbb")
	require.Len(t, tokens, 4)

	assert.Equal(t, 1, tokens[0].Pos.Line)
	assert.Equal(t, 1, tokens[0].Pos.Column)
	assert.Equal(t, 1, tokens[1].Pos.Line)
	assert.Equal(t, 3, tokens[1].Pos.Column)
	assert.Equal(t, 2, tokens[2].Pos.Line)
	assert.Equal(t, 1, tokens[2].Pos.Column)
	assert.Equal(t, 4, tokens[2].Pos.Offset)
}

func TestLexerDotWithoutDigitIsIllegal(t *testing.T) {
	tokens := expr.Tokenize("1 . 2")
	require.Len(t, tokens, 4)
	assert.Equal(t, token.NUMBER, tokens[0].Type)
	assert.Equal(t, token.ILLEGAL, tokens[1].Type)
	assert.Equal(t, token.NUMBER, tokens[2].Type)
}
