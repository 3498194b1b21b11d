package expr_test

import (
	"testing"

	"github.com/leapstack-labs/leapcalc/pkg/expr"
	"github.com/leapstack-labs/leapcalc/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arithmeticContext() *expr.Context {
	ctx := expr.NewContext()
	ctx.Bind("a", expr.Number(10))
	ctx.Bind("b", expr.Number(5))
	ctx.Bind("c", expr.Number(7))
	return ctx
}

func booleanContext() *expr.Context {
	ctx := expr.NewContext()
	ctx.Bind("x", expr.Boolean(true))
	ctx.Bind("y", expr.Boolean(false))
	ctx.Bind("z", expr.Boolean(true))
	return ctx
}

func TestEvalArithmetic(t *testing.T) {
	ctx := arithmeticContext()

	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{name: "literal", input: "42", want: 42},
		{name: "variable", input: "a", want: 10},
		{name: "precedence", input: "a + b * c", want: 45},
		{name: "grouped division", input: "(a+b)/(c-2)", want: 3},
		{name: "left-assoc subtraction", input: "a - b - c", want: -2},
		{name: "unary minus", input: "-b + a", want: 5},
		{name: "decimal", input: "b * 1.5", want: 7.5},
		{name: "nested groups", input: "((a - b) * (c + 3)) / b", want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expr.EvalString(tt.input, ctx)
			require.NoError(t, err)
			assert.Equal(t, expr.Number(tt.want), got)
		})
	}
}

func TestEvalBoolean(t *testing.T) {
	ctx := booleanContext()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "and with group", input: "x AND (y OR z)", want: true},
		{name: "or with negation", input: "(x AND y) OR (NOT z)", want: false},
		{name: "not literal", input: "NOT FALSE", want: true},
		{name: "precedence", input: "y OR x AND z", want: true},
		{name: "double negation", input: "NOT NOT y", want: false},
		{name: "case insensitive keywords", input: "x and not y", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expr.EvalString(tt.input, ctx)
			require.NoError(t, err)
			assert.Equal(t, expr.Boolean(tt.want), got)
		})
	}
}

func TestEvalIsDeterministic(t *testing.T) {
	ctx := arithmeticContext()
	node := expr.MustParse("(a + b) * c - a / b")

	first, err := expr.Eval(node, ctx)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := expr.Eval(node, ctx)
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestEvalUndefinedVariable(t *testing.T) {
	ctx := arithmeticContext()

	_, err := expr.EvalString("a + missing", ctx)
	require.Error(t, err)

	var undefErr *expr.UndefinedVariableError
	require.ErrorAs(t, err, &undefErr)
	assert.Equal(t, "missing", undefErr.Name)
}

func TestEvalDivisionByZero(t *testing.T) {
	ctx := arithmeticContext()
	ctx.Bind("zero", expr.Number(0))

	tests := []struct {
		name  string
		input string
	}{
		{name: "literal divisor", input: "a / 0"},
		{name: "variable divisor", input: "a / zero"},
		{name: "divisor evaluates to zero", input: "a / (b - 5)"},
		{name: "zero numerator still fails", input: "0 / 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.EvalString(tt.input, ctx)
			require.Error(t, err)

			var divErr *expr.DivisionByZeroError
			assert.ErrorAs(t, err, &divErr)
		})
	}
}

func TestEvalTypeErrors(t *testing.T) {
	ctx := expr.NewContext()
	ctx.Bind("n", expr.Number(3))
	ctx.Bind("p", expr.Boolean(true))

	tests := []struct {
		name  string
		input string
	}{
		{name: "AND on number", input: "n AND p"},
		{name: "plus on boolean", input: "p + 1"},
		{name: "NOT on number", input: "NOT n"},
		{name: "minus on boolean", input: "-p"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := expr.EvalString(tt.input, ctx)
			require.Error(t, err)

			var typeErr *expr.TypeError
			assert.ErrorAs(t, err, &typeErr)
		})
	}
}

// Both operands are always evaluated: a bound TRUE on the left of OR does
// not rescue an unbound name on the right.
func TestEvalNoShortCircuit(t *testing.T) {
	ctx := booleanContext()

	_, err := expr.EvalString("x OR nope", ctx)
	var undefErr *expr.UndefinedVariableError
	require.ErrorAs(t, err, &undefErr)

	_, err = expr.EvalString("y AND nope", ctx)
	require.ErrorAs(t, err, &undefErr)
}

func TestEvalMatchesManualTree(t *testing.T) {
	ctx := arithmeticContext()

	manual := &expr.BinaryExpr{
		Left: &expr.VariableRef{Name: "a"},
		Op:   token.PLUS,
		Right: &expr.BinaryExpr{
			Left:  &expr.VariableRef{Name: "b"},
			Op:    token.STAR,
			Right: &expr.VariableRef{Name: "c"},
		},
	}

	fromManual, err := expr.Eval(manual, ctx)
	require.NoError(t, err)

	fromParse, err := expr.EvalString("a + b * c", ctx)
	require.NoError(t, err)

	assert.Equal(t, fromManual, fromParse)
	assert.Equal(t, expr.Number(45), fromParse)
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3.5", expr.Number(3.5).String())
	assert.Equal(t, "42", expr.Number(42).String())
	assert.Equal(t, "TRUE", expr.Boolean(true).String())
	assert.Equal(t, "FALSE", expr.Boolean(false).String())
}

func TestContextBindings(t *testing.T) {
	ctx := expr.NewContext()
	ctx.Bind("a", expr.Number(1))
	ctx.Bind("b", expr.Boolean(true))

	assert.Equal(t, []string{"a", "b"}, ctx.Names())
	assert.Equal(t, 2, ctx.Len())

	// Mutating the returned copy must not affect the context.
	bindings := ctx.Bindings()
	bindings["a"] = expr.Number(99)
	got, err := ctx.Resolve("a")
	require.NoError(t, err)
	assert.Equal(t, expr.Number(1), got)

	assert.True(t, ctx.Unbind("b"))
	assert.False(t, ctx.Unbind("b"))
	_, err = ctx.Resolve("b")
	assert.Error(t, err)

	ctx.SetBindings(map[string]expr.Value{"z": expr.Number(7)})
	assert.Equal(t, []string{"z"}, ctx.Names())
}
