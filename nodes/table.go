// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nodes

import (
	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
)

// Table is a hwcomb.Resolver backed by a table of known producers. Literal
// bit vectors resolve to Literal nodes, created on first use.
//
type Table struct {
	m     map[string]int // index in nodes
	nodes []hwcomb.Node
}

// NewTable returns an empty table.
//
func NewTable() *Table {
	return &Table{m: make(map[string]int)}
}

// Add registers n as the producer of bits. A node previously registered for
// the same bits is replaced, and no longer returned by Nodes.
//
func (t *Table) Add(bits []netlist.Bit, n hwcomb.Node) {
	k := netlist.BitString(bits)
	if i, ok := t.m[k]; ok {
		t.nodes[i] = n
		return
	}
	t.m[k] = len(t.nodes)
	t.nodes = append(t.nodes, n)
}

// Input registers and returns a new primary input for bits.
//
func (t *Table) Input(bits []netlist.Bit) *Input {
	in := NewInput(bits)
	t.Add(bits, in)
	return in
}

// Resolve implements hwcomb.Resolver.
//
func (t *Table) Resolve(bits []netlist.Bit) (hwcomb.Node, error) {
	k := netlist.BitString(bits)
	if i, ok := t.m[k]; ok {
		return t.nodes[i], nil
	}
	for _, b := range bits {
		if !b.IsConst() {
			return nil, errors.Errorf("no producer for bits %s", k)
		}
	}
	l, err := NewLiteral(bits)
	if err != nil {
		return nil, err
	}
	t.Add(bits, l)
	return l, nil
}

// Nodes returns all registered nodes, including literals, in registration
// order.
//
func (t *Table) Nodes() []hwcomb.Node { return t.nodes }
