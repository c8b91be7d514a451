package engine

import (
	"math"

	"github.com/pkg/errors"
)

// Add returns a + b.
func (g *Graph) Add(a, b Operand) Value {
	x, y := g.commuted(a, b)
	return g.binary(OpAdd, x, y, g.nodes[x.id].data+g.nodes[y.id].data)
}

// Mul returns a * b.
func (g *Graph) Mul(a, b Operand) Value {
	x, y := g.commuted(a, b)
	return g.binary(OpMul, x, y, g.nodes[x.id].data*g.nodes[y.id].data)
}

// Neg returns -a, built as a * -1.
func (g *Graph) Neg(a Value) Value {
	return g.Mul(a, Scalar(-1))
}

// Sub returns a - b, built as a + (-b). A literal b becomes a leaf first.
func (g *Graph) Sub(a, b Operand) Value {
	return g.Add(a, g.Neg(g.coerce(b)))
}

// Div returns a / b, built as a * b**-1. A literal b becomes a leaf first.
func (g *Graph) Div(a, b Operand) Value {
	return g.Mul(a, g.pow(g.coerce(b), -1))
}

// Pow returns base ** exponent. The exponent must be a Scalar; a Value
// exponent fails with ErrInvalidExponentType.
func (g *Graph) Pow(base, exponent Operand) (Value, error) {
	p, ok := exponent.(Scalar)
	if !ok {
		return Value{}, errors.WithMessagef(ErrInvalidExponentType,
			"pow: exponent must be a numeric literal, got %T", exponent)
	}
	return g.pow(g.coerce(base), float64(p)), nil
}

func (g *Graph) pow(a Value, p float64) Value {
	g.check(a)
	n := node{
		data:     math.Pow(g.nodes[a.id].data, p),
		exponent: p,
		op:       OpPow,
		ndeps:    1,
	}
	n.deps[0] = a.id
	return g.push(n)
}

// ReLU returns max(0, a).
func (g *Graph) ReLU(a Value) Value {
	x := g.at(a).data
	if x < 0 {
		x = 0
	}
	return g.unary(OpReLU, a, x)
}

// Tanh returns (e**2x - 1) / (e**2x + 1). Large inputs overflow to NaN;
// callers are expected to keep inputs in range.
func (g *Graph) Tanh(a Value) Value {
	e2x := math.Exp(2 * g.at(a).data)
	return g.unary(OpTanh, a, (e2x-1)/(e2x+1))
}

// Exp returns e**a.
func (g *Graph) Exp(a Value) Value {
	return g.unary(OpExp, a, math.Exp(g.at(a).data))
}

// Log returns ln(a).
func (g *Graph) Log(a Value) Value {
	return g.unary(OpLog, a, math.Log(g.at(a).data))
}

// Softmax returns exp(a) / (1 + exp(a)). This is the logistic transform of
// one scalar, not a multi-class softmax.
func (g *Graph) Softmax(a Value) Value {
	e := g.Exp(a)
	return g.Div(e, g.Add(Scalar(1), e))
}

// Sum folds Add over vs starting from start: ((start + v0) + v1) + ...
// With no values it returns start coerced to a node.
func (g *Graph) Sum(start Operand, vs ...Value) Value {
	if len(vs) == 0 {
		return g.coerce(start)
	}
	acc := g.Add(start, vs[0])
	for _, v := range vs[1:] {
		acc = g.Add(acc, v)
	}
	return acc
}

func (g *Graph) unary(op OpTag, a Value, data float64) Value {
	n := node{data: data, op: op, ndeps: 1}
	n.deps[0] = a.id
	return g.push(n)
}

func (g *Graph) binary(op OpTag, a, b Value, data float64) Value {
	n := node{data: data, op: op, ndeps: 2}
	n.deps[0] = a.id
	n.deps[1] = b.id
	return g.push(n)
}
