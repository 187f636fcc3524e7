// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing synthesized circuits.
//
package hwtest

import (
	"testing"

	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/nodes"
)

// Bench simulates the combinators of a set of nodes, driving primary inputs
// from values set with Set.
//
type Bench struct {
	*hwcomb.Circuit
	Arena  *hwcomb.Arena
	inputs map[*nodes.Input]*int32
}

// NewBench builds a bench simulating the nodes registered in t and the extra
// nodes ns. All nodes must be connected already.
//
func NewBench(tb testing.TB, t *nodes.Table, ns ...hwcomb.Node) *Bench {
	tb.Helper()
	b := &Bench{
		Arena:  new(hwcomb.Arena),
		inputs: make(map[*nodes.Input]*int32),
	}
	all := append(append([]hwcomb.Node(nil), t.Nodes()...), ns...)
	seen := make(map[hwcomb.Entity]bool)
	for _, n := range all {
		for _, e := range n.Combinators() {
			if !seen[e] {
				seen[e] = true
				b.Arena.Add(e)
			}
		}
	}
	c, err := hwcomb.NewCircuit(0, b.Arena.Entities()...)
	if err != nil {
		tb.Fatal(err)
	}
	b.Circuit = c
	for _, n := range t.Nodes() {
		in, ok := n.(*nodes.Input)
		if !ok {
			continue
		}
		v := new(int32)
		b.inputs[in] = v
		c.Drive(in.Constant(), hwcomb.SignalV, func() int32 { return *v })
	}
	return b
}

// Set sets the value of input in. It takes effect on the next step.
//
func (b *Bench) Set(in *nodes.Input, v int32) {
	p, ok := b.inputs[in]
	if !ok {
		panic("input not registered in bench")
	}
	*p = v
}

// Read returns the SignalV value seen on endpoint e: the value on its red
// network, or its green network if it has no red one, or the owner's output
// if e is not connected.
//
func (b *Bench) Read(e *hwcomb.Endpoint) int32 {
	switch {
	case e.Red() != nil:
		return b.Value(e, hwcomb.Red, hwcomb.SignalV)
	case e.Green() != nil:
		return b.Value(e, hwcomb.Green, hwcomb.SignalV)
	}
	return b.Output(e.Entity())[hwcomb.SignalV]
}
