// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides scalar reverse-mode automatic differentiation.
//
// Every arithmetic operation on a Value records a node in a Graph. Calling
// Backward on any Value computes the partial derivative of it with respect
// to every node it depends on.
//
// Example:
//
//	import "github.com/born-ml/micrograd/engine"
//
//	func main() {
//	    g := engine.NewGraph()
//	    a, b := g.Leaf(2), g.Leaf(-3)
//	    c := g.Leaf(10)
//
//	    d := a.Mul(b).Add(c) // d = a*b + c = 4
//	    d.Backward()
//
//	    fmt.Println(a.Grad(), b.Grad(), c.Grad()) // -3 2 1
//	}
//
// Plain numbers enter expressions as Scalar operands:
//
//	y := g.Sub(engine.Scalar(1), x.Pow(2)) // 1 - x²
package engine

import "github.com/born-ml/micrograd/internal/engine"

// Graph owns the nodes built by operations on its Values.
type Graph = engine.Graph

// Value is a handle to one scalar node of a Graph.
type Value = engine.Value

// Mark is a watermark returned by Graph.Mark and consumed by Graph.Release.
type Mark = engine.Mark

// Operand is either a Value or a Scalar.
type Operand = engine.Operand

// Scalar is a literal operand. It becomes a leaf when used.
type Scalar = engine.Scalar

// OpTag identifies the operation that produced a node.
type OpTag = engine.OpTag

// Operation tags.
const (
	OpLeaf = engine.OpLeaf
	OpAdd  = engine.OpAdd
	OpMul  = engine.OpMul
	OpPow  = engine.OpPow
	OpReLU = engine.OpReLU
	OpTanh = engine.OpTanh
	OpExp  = engine.OpExp
	OpLog  = engine.OpLog
)

// ErrInvalidExponentType is returned by Graph.Pow when the exponent is a
// Value rather than a plain number.
var ErrInvalidExponentType = engine.ErrInvalidExponentType

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return engine.NewGraph()
}
