package expr

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Eval recursively evaluates an expression tree against a context.
// Evaluation is deterministic and side-effect free: repeated calls with
// an unchanged context yield identical results. Both operands of AND and
// OR are always evaluated; there is no short-circuiting.
func Eval(node Expr, ctx *Context) (Value, error) {
	switch n := node.(type) {
	case *Literal:
		return n.Value, nil

	case *VariableRef:
		return ctx.Resolve(n.Name)

	case *ParenExpr:
		return Eval(n.Expr, ctx)

	case *UnaryExpr:
		return evalUnary(n, ctx)

	case *BinaryExpr:
		return evalBinary(n, ctx)

	default:
		return Value{}, fmt.Errorf("unsupported expression node %T", node)
	}
}

// EvalString parses and evaluates expression text in one step.
func EvalString(input string, ctx *Context) (Value, error) {
	node, err := Parse(input)
	if err != nil {
		return Value{}, err
	}
	return Eval(node, ctx)
}

func evalUnary(n *UnaryExpr, ctx *Context) (Value, error) {
	operand, err := Eval(n.Expr, ctx)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case token.NOT:
		if operand.Kind != KindBool {
			return Value{}, &TypeError{Op: n.Op, Want: KindBool, Got: operand.Kind}
		}
		return Boolean(!operand.Bool), nil

	case token.MINUS:
		if operand.Kind != KindNumber {
			return Value{}, &TypeError{Op: n.Op, Want: KindNumber, Got: operand.Kind}
		}
		return Number(-operand.Num), nil

	default:
		return Value{}, fmt.Errorf("unsupported unary operator %s", n.Op)
	}
}

func evalBinary(n *BinaryExpr, ctx *Context) (Value, error) {
	left, err := Eval(n.Left, ctx)
	if err != nil {
		return Value{}, err
	}
	right, err := Eval(n.Right, ctx)
	if err != nil {
		return Value{}, err
	}

	switch n.Op {
	case token.AND, token.OR:
		if left.Kind != KindBool {
			return Value{}, &TypeError{Op: n.Op, Want: KindBool, Got: left.Kind}
		}
		if right.Kind != KindBool {
			return Value{}, &TypeError{Op: n.Op, Want: KindBool, Got: right.Kind}
		}
		if n.Op == token.AND {
			return Boolean(left.Bool && right.Bool), nil
		}
		return Boolean(left.Bool || right.Bool), nil

	case token.PLUS, token.MINUS, token.STAR, token.SLASH:
		if left.Kind != KindNumber {
			return Value{}, &TypeError{Op: n.Op, Want: KindNumber, Got: left.Kind}
		}
		if right.Kind != KindNumber {
			return Value{}, &TypeError{Op: n.Op, Want: KindNumber, Got: right.Kind}
		}
		switch n.Op {
		case token.PLUS:
			return Number(left.Num + right.Num), nil
		case token.MINUS:
			return Number(left.Num - right.Num), nil
		case token.STAR:
			return Number(left.Num * right.Num), nil
		default:
			if right.Num == 0 {
				return Value{}, &DivisionByZeroError{}
			}
			return Number(left.Num / right.Num), nil
		}

	default:
		return Value{}, fmt.Errorf("unsupported binary operator %s", n.Op)
	}
}
