// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nodes

import (
	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
)

// MuxType is the cell type of two-way multiplexers.
//
const MuxType = "$mux"

// Mux is a two-way multiplexer.
//
//	Inputs: A, B, S
//	Outputs: Y
//	Function: if S == 0 { Y = A } else { Y = B }
//
// Each data input goes through its own decider, gated by S moved to SignalC.
// Only one of them outputs a value at a time and both outputs share a wire.
//
type Mux struct {
	hwcomb.Wiring
	a, b, s []netlist.Bit
	st      *hwcomb.Arithmetic
	da, db  *hwcomb.Decider
}

// NewMux returns a new multiplexer node.
//
func NewMux(a, b, s []netlist.Bit) *Mux {
	m := &Mux{
		a:  a,
		b:  b,
		s:  s,
		st: newTransformer(),
		da: decider(hwcomb.SignalC, 0, true, hwcomb.SignalV),
		db: hwcomb.NewDecider(hwcomb.DeciderCondition{
			FirstSignal:        hwcomb.SignalC,
			Constant:           hwcomb.Literal(0),
			Comparator:         hwcomb.NE,
			OutputSignal:       hwcomb.SignalV,
			CopyCountFromInput: true,
		}),
	}
	hwcomb.MakeConnection(hwcomb.Green, m.st.Output(), m.da.Input(), m.db.Input())
	hwcomb.MakeConnection(hwcomb.Red, m.da.Output(), m.db.Output())
	return m
}

// Connect implements hwcomb.Node.
//
func (m *Mux) Connect(r hwcomb.Resolver) (*hwcomb.Endpoint, error) {
	err := m.Run(func() error {
		_, s, err := hwcomb.ConnectInput(r, m.s)
		if err != nil {
			return errors.Wrap(err, "mux select")
		}
		_, a, err := hwcomb.ConnectInput(r, m.a)
		if err != nil {
			return errors.Wrap(err, "mux input A")
		}
		_, b, err := hwcomb.ConnectInput(r, m.b)
		if err != nil {
			return errors.Wrap(err, "mux input B")
		}
		hwcomb.MakeConnection(hwcomb.Red, s, m.st.Input())
		hwcomb.MakeConnection(hwcomb.Red, a, m.da.Input())
		hwcomb.MakeConnection(hwcomb.Red, b, m.db.Input())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m.da.Output(), nil
}

// Combinators implements hwcomb.Node.
//
func (m *Mux) Combinators() []hwcomb.Entity { return []hwcomb.Entity{m.st, m.da, m.db} }
