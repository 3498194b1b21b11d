package expr

import (
	"fmt"

	"github.com/leapstack-labs/leapcalc/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// EmptyExpressionError reports parsing of an empty token stream.
type EmptyExpressionError struct{}

func (e *EmptyExpressionError) Error() string {
	return "empty expression"
}

// UndefinedVariableError reports evaluation of an unbound variable.
type UndefinedVariableError struct {
	Name string
}

func (e *UndefinedVariableError) Error() string {
	return fmt.Sprintf("undefined variable %q", e.Name)
}

// DivisionByZeroError reports a division whose divisor evaluated to zero.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string {
	return "division by zero"
}

// TypeError reports an operator applied to a value of the wrong kind.
type TypeError struct {
	Op   token.TokenType
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("operator %s requires %s operands, got %s", e.Op, e.Want, e.Got)
}

// Common error messages
const (
	errUnexpectedToken = "unexpected token %s"
	errExpectedToken   = "expected %s, got %s"
	errInvalidNumber   = "invalid number literal %q"
	errTrailingInput   = "unexpected trailing input starting at %s"
)
