package parser

import (
	"fmt"
	"strconv"
)

// Kind defines the arithmetic operation of a BinaryOp.
type Kind int

const (
	// Add is +.
	Add Kind = iota
	// Sub is -.
	Sub
	// Mul is *.
	Mul
	// Div is /, truncating toward zero.
	Div
)

var kindNames = map[Kind]string{
	Add: "add",
	Sub: "sub",
	Mul: "mul",
	Div: "div",
}

var kindSymbols = map[byte]Kind{
	'+': Add,
	'-': Sub,
	'*': Mul,
	'/': Div,
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindOf maps an operator symbol to its kind.
func KindOf(op byte) (Kind, bool) {
	k, ok := kindSymbols[op]
	return k, ok
}

// Node is an element of the expression tree: Literal or BinaryOp.
type Node interface {
	node()
	String() string
}

// Literal is a leaf holding one constant.
type Literal struct {
	Value int32
}

// BinaryOp combines two fully built operand trees.
type BinaryOp struct {
	Kind  Kind
	Left  Node
	Right Node
}

func (Literal) node()  {}
func (BinaryOp) node() {}

func (l Literal) String() string {
	return strconv.FormatInt(int64(l.Value), 10)
}

func (b BinaryOp) String() string {
	return fmt.Sprintf("%s(%s, %s)", b.Kind, b.Left, b.Right)
}
