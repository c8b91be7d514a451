package engine

// Operand is an argument to an operation: either a Value already in the
// graph or a Scalar literal. The interface is sealed; Value and Scalar are
// its only implementations.
type Operand interface {
	operand()
}

// Scalar is a raw number used as an operand. It becomes a fresh leaf node
// when the operation is applied.
type Scalar float64

func (Scalar) operand() {}

func (Value) operand() {}

// coerce turns an operand into a node of g.
func (g *Graph) coerce(o Operand) Value {
	switch o := o.(type) {
	case Value:
		g.check(o)
		return o
	case Scalar:
		return g.Leaf(float64(o))
	default:
		panic("engine: nil operand")
	}
}

// commuted coerces both operands of a commutative operation. A literal on
// the left and a Value on the right are swapped, so that 2*x and x*2 build
// the same graph.
func (g *Graph) commuted(a, b Operand) (Value, Value) {
	if _, lit := a.(Scalar); lit {
		if _, ref := b.(Value); ref {
			a, b = b, a
		}
	}
	x := g.coerce(a)
	y := g.coerce(b)
	return x, y
}
