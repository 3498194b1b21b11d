package expr_test

import (
	"errors"
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- Precedence Tests ----------

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // fully parenthesized render
	}{
		{
			name:  "multiplication binds tighter than addition",
			input: "a + b * c",
			want:  "(a + (b * c))",
		},
		{
			name:  "division binds tighter than subtraction",
			input: "a - b / c",
			want:  "(a - (b / c))",
		},
		{
			name:  "additive operators are left-associative",
			input: "a - b + c",
			want:  "((a - b) + c)",
		},
		{
			name:  "multiplicative operators are left-associative",
			input: "a / b * c",
			want:  "((a / b) * c)",
		},
		{
			name:  "parentheses override precedence",
			input: "(a + b) * c",
			want:  "((a + b) * c)",
		},
		{
			name:  "adjacent groups are not stripped",
			input: "(a+b)+(c+d)",
			want:  "((a + b) + (c + d))",
		},
		{
			name:  "AND binds tighter than OR",
			input: "x OR y AND z",
			want:  "(x OR (y AND z))",
		},
		{
			name:  "NOT binds tighter than AND",
			input: "NOT x AND y",
			want:  "(NOT x AND y)",
		},
		{
			name:  "NOT of a group",
			input: "NOT (x OR y)",
			want:  "NOT (x OR y)",
		},
		{
			name:  "unary minus",
			input: "-a * b",
			want:  "(-a * b)",
		},
		{
			name:  "double negation",
			input: "NOT NOT x",
			want:  "NOT NOT x",
		},
		{
			name:  "nested groups",
			input: "((a + b)) / (c - 2)",
			want:  "((a + b) / (c - 2))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := expr.Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, node.String())
		})
	}
}

// ---------- Structure Tests ----------

func TestParseTreeShape(t *testing.T) {
	node, err := expr.Parse("a + b * c")
	require.NoError(t, err)

	add, ok := node.(*expr.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, add.Op)

	left, ok := add.Left.(*expr.VariableRef)
	require.True(t, ok)
	assert.Equal(t, "a", left.Name)

	mul, ok := add.Right.(*expr.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, mul.Op)
}

func TestParseGroupKeepsParenNode(t *testing.T) {
	node, err := expr.Parse("(a + b) * c")
	require.NoError(t, err)

	mul, ok := node.(*expr.BinaryExpr)
	require.True(t, ok)

	group, ok := mul.Left.(*expr.ParenExpr)
	require.True(t, ok)
	_, ok = group.Expr.(*expr.BinaryExpr)
	assert.True(t, ok)
}

func TestParseBooleanLiterals(t *testing.T) {
	node, err := expr.Parse("true AND FALSE")
	require.NoError(t, err)

	and, ok := node.(*expr.BinaryExpr)
	require.True(t, ok)

	lit, ok := and.Left.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, expr.Boolean(true), lit.Value)

	lit, ok = and.Right.(*expr.Literal)
	require.True(t, ok)
	assert.Equal(t, expr.Boolean(false), lit.Value)
}

// ---------- Error Tests ----------

func TestParseEmptyExpression(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := expr.Parse(input)
		require.Error(t, err)

		var emptyErr *expr.EmptyExpressionError
		assert.ErrorAs(t, err, &emptyErr, "input %q", input)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "missing right operand", input: "a +"},
		{name: "missing closing paren", input: "(a + b"},
		{name: "empty group", input: "()"},
		{name: "stray operator", input: "* a"},
		{name: "trailing input", input: "a + b c"},
		{name: "unbalanced closing paren", input: "a + b)"},
		{name: "illegal character", input: "a $ b"},
		{name: "NOT without operand", input: "x AND NOT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.Parse(tt.input)
			require.Error(t, err)

			var emptyErr *expr.EmptyExpressionError
			assert.False(t, errors.As(err, &emptyErr), "non-empty input must not report empty expression")
		})
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := expr.Parse("a + b c")
	require.Error(t, err)

	var parseErr *expr.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Pos.Line)
	assert.Equal(t, 7, parseErr.Pos.Column)
}

func TestMustParsePanicsOnError(t *testing.T) {
	assert.Panics(t, func() { expr.MustParse("a +") })
	assert.NotPanics(t, func() { expr.MustParse("a + b") })
}
