// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nodes

import (
	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
)

var comparators = map[string]hwcomb.Comparator{
	"$lt": hwcomb.LT,
	"$le": hwcomb.LE,
	"$gt": hwcomb.GT,
	"$ge": hwcomb.GE,
	"$eq": hwcomb.EQ,
	"$ne": hwcomb.NE,
}

var operators = map[string]hwcomb.Operator{
	"$add": hwcomb.Add,
	"$sub": hwcomb.Sub,
	"$mul": hwcomb.Mul,
	"$div": hwcomb.Div,
	"$mod": hwcomb.Mod,
	"$pow": hwcomb.Pow,
	"$shl": hwcomb.Shl,
	"$shr": hwcomb.Shr,
	"$and": hwcomb.And,
	"$or":  hwcomb.Or,
	"$xor": hwcomb.Xor,
}

// binary is the common part of two operand cells: A is read on SignalV
// through a red wire, B is moved to SignalC by a transformer and read through
// a green wire.
//
type binary struct {
	hwcomb.Wiring
	a, b  []netlist.Bit
	bt    *hwcomb.Arithmetic
	comb  hwcomb.Combinator
	label string
}

func (n *binary) Connect(r hwcomb.Resolver) (*hwcomb.Endpoint, error) {
	err := n.Run(func() error {
		_, a, err := hwcomb.ConnectInput(r, n.a)
		if err != nil {
			return errors.Wrap(err, n.label+" input A")
		}
		_, b, err := hwcomb.ConnectInput(r, n.b)
		if err != nil {
			return errors.Wrap(err, n.label+" input B")
		}
		hwcomb.MakeConnection(hwcomb.Red, a, n.comb.Input())
		hwcomb.MakeConnection(hwcomb.Red, b, n.bt.Input())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return n.comb.Output(), nil
}

func (n *binary) Combinators() []hwcomb.Entity { return []hwcomb.Entity{n.bt, n.comb} }

func newBinary(label string, a, b []netlist.Bit, comb hwcomb.Combinator) *binary {
	n := &binary{a: a, b: b, bt: newTransformer(), comb: comb, label: label}
	hwcomb.MakeConnection(hwcomb.Green, n.bt.Output(), comb.Input())
	return n
}

// NewCompare returns a node outputting 1 when a cmp b holds, 0 otherwise.
// This is the decider rule used for comparison cells.
//
func NewCompare(cmp hwcomb.Comparator, a, b []netlist.Bit) hwcomb.Node {
	d := hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:  hwcomb.SignalV,
		SecondSignal: hwcomb.SignalRef(hwcomb.SignalC),
		Comparator:   cmp,
		OutputSignal: hwcomb.SignalV,
	})
	return newBinary("compare "+string(cmp), a, b, d)
}

// NewBinary returns a node outputting a op b.
//
func NewBinary(op hwcomb.Operator, a, b []netlist.Bit) hwcomb.Node {
	ar := hwcomb.NewArithmetic(hwcomb.ArithmeticCondition{
		FirstSignal:  hwcomb.SignalV,
		SecondSignal: hwcomb.SignalRef(hwcomb.SignalC),
		Operation:    op,
		OutputSignal: hwcomb.SignalV,
	})
	return newBinary("binary "+string(op), a, b, ar)
}

// NewCell returns the node synthesizing a comparison, binary arithmetic or
// multiplexer cell. Both operands and the result must be at most 32 bits wide;
// results are not truncated to the Y port width.
//
func NewCell(c *netlist.Cell) (hwcomb.Node, error) {
	a, err := c.Conn("A")
	if err != nil {
		return nil, err
	}
	b, err := c.Conn("B")
	if err != nil {
		return nil, err
	}
	y, err := c.Conn("Y")
	if err != nil {
		return nil, err
	}
	for _, p := range []struct {
		name string
		bits []netlist.Bit
	}{{"A", a}, {"B", b}, {"Y", y}} {
		if len(p.bits) > 32 {
			return nil, hwcomb.Unsupportedf("port width", "cell %s port %s is %d bits wide", c.Type, p.name, len(p.bits))
		}
	}
	if c.Type == MuxType {
		sel, err := c.Conn("S")
		if err != nil {
			return nil, err
		}
		if len(sel) != 1 {
			return nil, hwcomb.Unsupportedf("select width", "cell %s select is %d bits wide", c.Type, len(sel))
		}
		return NewMux(a, b, sel), nil
	}
	if cmp, ok := comparators[c.Type]; ok {
		return NewCompare(cmp, a, b), nil
	}
	if op, ok := operators[c.Type]; ok {
		return NewBinary(op, a, b), nil
	}
	return nil, hwcomb.Unsupportedf("cell type", "no synthesis rule for %s", c.Type)
}
