package expr

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// String renders the literal value.
func (l *Literal) String() string {
	return l.Value.String()
}

// String renders the variable name.
func (v *VariableRef) String() string {
	return v.Name
}

// String renders a unary expression. NOT keeps a space before its
// operand; binary operands self-parenthesize, so NOT (a AND b) prints
// with parentheses and NOT x prints without.
func (u *UnaryExpr) String() string {
	if u.Op == token.NOT {
		return fmt.Sprintf("NOT %s", u.Expr)
	}
	return fmt.Sprintf("-%s", u.Expr)
}

// String renders a binary expression fully parenthesized, so the printed
// form is deterministic and grouping is unambiguous.
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op, b.Right)
}

// String renders the inner expression. Binary children already print
// their own parentheses; doubling them here would not round-trip.
func (p *ParenExpr) String() string {
	return p.Expr.String()
}
