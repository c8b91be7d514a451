package engine

// OpTag identifies the operation that produced a node.
type OpTag uint8

// Supported operations.
const (
	OpLeaf OpTag = iota // no operation, no dependencies
	OpAdd               // a + b
	OpMul               // a * b
	OpPow               // a ** p, p literal
	OpReLU              // max(0, a)
	OpTanh              // tanh(a)
	OpExp               // e ** a
	OpLog               // ln(a)

	numOps
)

var opNames = [numOps]string{
	OpLeaf: "",
	OpAdd:  "+",
	OpMul:  "*",
	OpPow:  "**",
	OpReLU: "ReLU",
	OpTanh: "tanh",
	OpExp:  "exp",
	OpLog:  "log",
}

// String returns the short symbol of the operation ("" for leaves).
func (op OpTag) String() string {
	if op >= numOps {
		return "unknown"
	}
	return opNames[op]
}

// Arity returns the number of dependencies an operation records.
func (op OpTag) Arity() int {
	switch op {
	case OpLeaf:
		return 0
	case OpAdd, OpMul:
		return 2
	default:
		return 1
	}
}
