package expr

import (
	"sort"
	"strconv"
)

// Kind represents the runtime type of a Value.
type Kind int

// Kind constants for evaluated value types.
const (
	KindNumber Kind = iota
	KindBool
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Value is an evaluated expression result: a number or a boolean.
// The zero Value is the number 0.
type Value struct {
	Kind Kind    `yaml:"kind"`
	Num  float64 `yaml:"num,omitempty"`
	Bool bool    `yaml:"bool,omitempty"`
}

// Number constructs a numeric value.
func Number(n float64) Value {
	return Value{Kind: KindNumber, Num: n}
}

// Boolean constructs a boolean value.
func Boolean(b bool) Value {
	return Value{Kind: KindBool, Bool: b}
}

// String renders the value: numbers with minimal digits, booleans as TRUE/FALSE.
func (v Value) String() string {
	switch v.Kind {
	case KindBool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	default:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
}

// Context holds variable bindings for evaluation.
// Lookups of absent names fail with *UndefinedVariableError.
type Context struct {
	vars map[string]Value
}

// NewContext creates an empty binding context.
func NewContext() *Context {
	return &Context{vars: make(map[string]Value)}
}

// Bind sets a variable binding, replacing any existing one.
func (c *Context) Bind(name string, v Value) {
	c.vars[name] = v
}

// Resolve looks up a variable binding.
func (c *Context) Resolve(name string) (Value, error) {
	v, ok := c.vars[name]
	if !ok {
		return Value{}, &UndefinedVariableError{Name: name}
	}
	return v, nil
}

// Unbind removes a binding. Returns true if the name was bound.
func (c *Context) Unbind(name string) bool {
	if _, ok := c.vars[name]; !ok {
		return false
	}
	delete(c.vars, name)
	return true
}

// Names returns the bound variable names in sorted order.
func (c *Context) Names() []string {
	names := make([]string, 0, len(c.vars))
	for name := range c.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bindings returns a copy of the binding map. Mutating the returned map
// does not affect the context.
func (c *Context) Bindings() map[string]Value {
	out := make(map[string]Value, len(c.vars))
	for name, v := range c.vars {
		out[name] = v
	}
	return out
}

// SetBindings replaces all bindings with a copy of the given map.
func (c *Context) SetBindings(vars map[string]Value) {
	c.vars = make(map[string]Value, len(vars))
	for name, v := range vars {
		c.vars[name] = v
	}
}

// Len returns the number of bound variables.
func (c *Context) Len() int {
	return len(c.vars)
}
