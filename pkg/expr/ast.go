package expr

import "github.com/leapstack-labs/leapcalc/pkg/token"

// ---------- Expression Types ----------

// Expr is the interface implemented by all expression nodes.
// The node set is closed: only the types in this file implement it,
// so evaluation can type-switch exhaustively.
type Expr interface {
	exprNode()
	String() string
}

// Literal represents a literal number or boolean value.
type Literal struct {
	Value Value
}

func (*Literal) exprNode() {}

// VariableRef represents a reference to a context variable.
type VariableRef struct {
	Name string
}

func (*VariableRef) exprNode() {}

// UnaryExpr represents a prefix operator applied to an operand:
// NOT for booleans, minus for numbers.
type UnaryExpr struct {
	Op   token.TokenType
	Expr Expr
}

func (*UnaryExpr) exprNode() {}

// BinaryExpr represents a binary expression. Children are owned
// exclusively by this node; trees never share subtrees.
type BinaryExpr struct {
	Left  Expr
	Op    token.TokenType
	Right Expr
}

func (*BinaryExpr) exprNode() {}

// GetLeft returns the left operand.
func (b *BinaryExpr) GetLeft() Expr { return b.Left }

// GetRight returns the right operand.
func (b *BinaryExpr) GetRight() Expr { return b.Right }

// GetOp returns the operator.
func (b *BinaryExpr) GetOp() token.TokenType { return b.Op }

// ParenExpr represents a parenthesized expression. Grouping is kept in
// the tree so the printed form round-trips, but it has no effect on
// evaluation beyond the structure it already forced during parsing.
type ParenExpr struct {
	Expr Expr
}

func (*ParenExpr) exprNode() {}

// GetExpr returns the inner expression.
func (p *ParenExpr) GetExpr() Expr { return p.Expr }
