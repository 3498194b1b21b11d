// Package expr implements the LeapCalc expression language: a restricted
// infix grammar over numbers, booleans, and context variables.
//
// # Usage
//
//	node, err := expr.Parse("(a + b) / (c - 2)")
//	if err != nil {
//	    // handle error
//	}
//	result, err := expr.Eval(node, ctx)
//
// # Grammar Overview
//
// The parser implements precedence climbing over a two-level grammar per
// operator family:
//
//	expression → or_expr
//	or_expr    → and_expr (OR and_expr)*
//	and_expr   → not_expr (AND not_expr)*
//	not_expr   → NOT not_expr | additive
//	additive   → multiply ((+|-) multiply)*
//	multiply   → unary ((*|/) unary)*
//	unary      → - unary | primary
//	primary    → NUMBER | TRUE | FALSE | IDENT | ( expression )
//
// All binary operators are left-associative. Grouping is structural:
// parenthesized sub-expressions parse into their own subtree, so there is
// no textual paren-stripping and no ambiguity for inputs like (a+b)+(c+d).
package expr

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// Operator precedence levels, loosest to tightest.
const (
	precNone = iota
	precOr
	precAnd
	precNot
	precAddition
	precMultiply
	precUnary
)

// Parser parses expression text into an AST.
type Parser struct {
	lexer  *Lexer
	token  token.Token // current token
	peek   token.Token // lookahead token
	errors []error
}

// NewParser creates a new parser for the given input.
func NewParser(input string) *Parser {
	p := &Parser{lexer: NewLexer(input)}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses the input and returns the expression tree.
// An input with no tokens yields *EmptyExpressionError; any input left
// over after a complete expression yields *ParseError.
func Parse(input string) (Expr, error) {
	p := NewParser(input)
	if p.check(token.EOF) {
		return nil, &EmptyExpressionError{}
	}

	node := p.parseExpression()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if !p.check(token.EOF) {
		return nil, &ParseError{
			Pos:     p.token.Pos,
			Message: fmt.Sprintf(errTrailingInput, p.token.Type),
		}
	}
	return node, nil
}

// MustParse parses the input and panics on error. Intended for tests and
// statically known expressions.
func MustParse(input string) Expr {
	node, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return node
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(errExpectedToken, t, p.token.Type))
	return false
}

// addError records a parse error at the current token position.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{Pos: p.token.Pos, Message: msg})
}

// ---------- Expression Parsing ----------

// parseExpression parses an expression using precedence climbing.
func (p *Parser) parseExpression() Expr {
	return p.parseExpressionWithPrecedence(precNone + 1)
}

// parseExpressionWithPrecedence parses infix operators while their
// precedence is at least minPrecedence.
func (p *Parser) parseExpressionWithPrecedence(minPrecedence int) Expr {
	left := p.parsePrefixExpr()
	if left == nil {
		return nil
	}

	for {
		prec := p.infixPrecedence(p.token.Type)
		if prec < minPrecedence || prec == precNone {
			break
		}

		op := p.token
		p.nextToken()

		// Parse right operand with higher precedence (left-associative)
		right := p.parseExpressionWithPrecedence(prec + 1)
		if right == nil {
			return nil
		}

		left = &BinaryExpr{Left: left, Op: op.Type, Right: right}
	}

	return left
}

// parsePrefixExpr parses prefix operators and primary expressions.
func (p *Parser) parsePrefixExpr() Expr {
	switch p.token.Type {
	case token.NOT:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precNot)
		if operand == nil {
			return nil
		}
		return &UnaryExpr{Op: token.NOT, Expr: operand}

	case token.MINUS:
		p.nextToken()
		operand := p.parseExpressionWithPrecedence(precUnary)
		if operand == nil {
			return nil
		}
		return &UnaryExpr{Op: token.MINUS, Expr: operand}

	default:
		return p.parsePrimary()
	}
}

// infixPrecedence returns the precedence of the token as an infix
// operator, or precNone if it is not one.
func (p *Parser) infixPrecedence(t token.TokenType) int {
	switch t {
	case token.OR:
		return precOr
	case token.AND:
		return precAnd
	case token.PLUS, token.MINUS:
		return precAddition
	case token.STAR, token.SLASH:
		return precMultiply
	default:
		return precNone
	}
}

// parsePrimary parses literals, variable references, and groups.
func (p *Parser) parsePrimary() Expr {
	switch p.token.Type {
	case token.NUMBER:
		n, err := strconv.ParseFloat(p.token.Literal, 64)
		if err != nil {
			p.addError(fmt.Sprintf(errInvalidNumber, p.token.Literal))
			return nil
		}
		p.nextToken()
		return &Literal{Value: Number(n)}

	case token.TRUE:
		p.nextToken()
		return &Literal{Value: Boolean(true)}

	case token.FALSE:
		p.nextToken()
		return &Literal{Value: Boolean(false)}

	case token.IDENT:
		name := p.token.Literal
		p.nextToken()
		return &VariableRef{Name: name}

	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		if inner == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ParenExpr{Expr: inner}

	default:
		p.addError(fmt.Sprintf(errUnexpectedToken, p.token.Type))
		return nil
	}
}
