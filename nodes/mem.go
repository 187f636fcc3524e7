// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nodes

import (
	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
)

// Mem synthesizes a memory cell into combinators.
//
// Each row is a feedback latch made of two deciders: the first one outputs
// the write data while the row's write select pulse is present, the second
// one re-asserts the latch output while it is absent. Writes happen when both
// the write clock and write enable are 1. Each read port decodes its address
// against every row and sums the selected rows' outputs on a shared wire.
//
// The memory itself has no output endpoint: read data is available through
// the nodes returned by Ports.
//
type Mem struct {
	hwcomb.Wiring
	mem   *netlist.Mem
	ports []*MemRead

	trans     *hwcomb.Decider     // write transaction gate
	writeSel  []*hwcomb.Decider   // per row write select
	latchIn   []*hwcomb.Decider   // per row latch, write side
	addrTrans []*hwcomb.Arithmetic // per read port address transformer

	entities []hwcomb.Entity
}

// MemRead is the data output of a memory read port.
//
type MemRead struct {
	mem   *Mem
	index int
	bits  []netlist.Bit
	out   *hwcomb.Endpoint
}

func checkParam(c *netlist.Cell, name, subject string, want byte) error {
	p, ok := c.Parameters[name]
	if !ok {
		return errors.Errorf("cell %s: missing parameter %s", c.Type, name)
	}
	if !p.All(want) {
		return hwcomb.Unsupportedf(subject, "%s must be all %c, got %s", name, want, string(p))
	}
	return nil
}

func checkConn(c *netlist.Cell, name, subject string, want netlist.Bit) error {
	bits, err := c.Conn(name)
	if err != nil {
		return err
	}
	if !netlist.AllBits(bits, want) {
		return hwcomb.Unsupportedf(subject, "%s must be all %v, got %s", name, want, netlist.BitString(bits))
	}
	return nil
}

func checkWidth(c *netlist.Cell, name string, n int) ([]netlist.Bit, error) {
	bits, err := c.Conn(name)
	if err != nil {
		return nil, err
	}
	if len(bits) != n {
		return nil, errors.Errorf("cell %s: connection %s has %d bits, expected %d", c.Type, name, len(bits), n)
	}
	return bits, nil
}

// validate checks that m only uses supported features.
//
func validate(m *netlist.Mem) error {
	c := m.Cell
	switch {
	case m.ABits > 32:
		return hwcomb.Unsupportedf("address width", "%d bits, at most 32 supported", m.ABits)
	case m.Width > 32:
		return hwcomb.Unsupportedf("data width", "%d bits, at most 32 supported", m.Width)
	case m.Width < 1:
		return hwcomb.Unsupportedf("data width", "zero width memory")
	case m.Size < 1:
		return hwcomb.Unsupportedf("memory size", "memory has no rows")
	}
	if err := checkParam(c, "INIT", "initial contents", 'x'); err != nil {
		return err
	}
	for _, p := range []struct {
		name, subject string
		want          byte
	}{
		{"RD_WIDE_CONTINUATION", "read port width", '0'},
		{"RD_CLK_ENABLE", "read clock", '0'},
		{"RD_CLK_POLARITY", "read clock polarity", '0'},
		{"RD_TRANSPARENCY_MASK", "read transparency", '0'},
		{"RD_COLLISION_X_MASK", "read collision", '0'},
		{"RD_CE_OVER_SRST", "read reset", '0'},
		{"RD_INIT_VALUE", "read initial value", 'x'},
		{"RD_ARST_VALUE", "read reset", 'x'},
		{"RD_SRST_VALUE", "read reset", 'x'},
	} {
		if err := checkParam(c, p.name, p.subject, p.want); err != nil {
			return err
		}
	}
	if m.WrPorts != 1 {
		return hwcomb.Unsupportedf("write port count", "only one write port supported, got %d", m.WrPorts)
	}
	for _, p := range []struct {
		name, subject string
		want          byte
	}{
		{"WR_WIDE_CONTINUATION", "write port width", '0'},
		{"WR_CLK_ENABLE", "write clock", '1'},
		{"WR_CLK_POLARITY", "write clock polarity", '1'},
		{"WR_PRIORITY_MASK", "write priority", '0'},
	} {
		if err := checkParam(c, p.name, p.subject, p.want); err != nil {
			return err
		}
	}
	for _, p := range []struct {
		name, subject string
		want          netlist.Bit
	}{
		{"RD_CLK", "read clock", netlist.BitX},
		{"RD_EN", "read enable", netlist.Bit1},
		{"RD_ARST", "read reset", netlist.Bit0},
		{"RD_SRST", "read reset", netlist.Bit0},
	} {
		if err := checkConn(c, p.name, p.subject, p.want); err != nil {
			return err
		}
	}

	for _, w := range []struct {
		name string
		n    int
	}{
		{"RD_ADDR", m.RdPorts * m.ABits},
		{"RD_DATA", m.RdPorts * m.Width},
		{"WR_ADDR", m.ABits},
		{"WR_DATA", m.Width},
		{"WR_CLK", 1},
		{"WR_EN", m.Width},
	} {
		if _, err := checkWidth(c, w.name, w.n); err != nil {
			return err
		}
	}
	en := c.Connections["WR_EN"]
	if len(en) > 0 && !netlist.AllBits(en, en[0]) {
		return hwcomb.Unsupportedf("write enable", "per bit write enable %s", netlist.BitString(en))
	}
	return nil
}

// NewMem returns a new memory node for a memory cell. It fails if the cell
// uses features that cannot be synthesized.
//
func NewMem(c *netlist.Cell) (*Mem, error) {
	m, err := netlist.ParseMem(c)
	if err != nil {
		return nil, err
	}
	if err = validate(m); err != nil {
		return nil, err
	}

	n := &Mem{mem: m}
	n.build()
	return n, nil
}

func decider(first hwcomb.SignalID, cst int32, copyCount bool, output hwcomb.SignalID) *hwcomb.Decider {
	return hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:        first,
		Constant:           hwcomb.Literal(cst),
		Comparator:         hwcomb.EQ,
		OutputSignal:       output,
		CopyCountFromInput: copyCount,
	})
}

// build creates all combinators and wires them together. Connections to
// external inputs are made by Connect.
//
func (n *Mem) build() {
	const (
		red   = hwcomb.Red
		green = hwcomb.Green
	)
	var (
		size   = n.mem.Size
		offset = int32(n.mem.Offset)
		sigV   = hwcomb.SignalV
		sigC   = hwcomb.SignalC
	)

	// clk on red + en on green == 2
	n.trans = decider(sigV, 2, false, sigC)
	n.entities = append(n.entities, n.trans)

	latchOut := make([]*hwcomb.Decider, size)
	for i := 0; i < size; i++ {
		writeEq := decider(sigV, int32(i)+offset, true, sigC)
		hwcomb.MakeConnection(green, n.trans.Output(), writeEq.Input())

		// if c == 1 output new data
		d1 := decider(sigC, 1, true, sigV)
		// if c == 0 output previous value
		d2 := decider(sigC, 0, true, sigV)
		n.entities = append(n.entities, writeEq, d1, d2)

		hwcomb.MakeConnection(green, writeEq.Output(), d1.Input(), d2.Input())
		hwcomb.MakeConnection(green, d1.Output(), d2.Output())
		hwcomb.MakeConnection(red, d2.Output(), d2.Input(), d1.Output())

		n.writeSel = append(n.writeSel, writeEq)
		n.latchIn = append(n.latchIn, d1)
		latchOut[i] = d1
	}

	width := n.mem.Width
	data := n.mem.Connections["RD_DATA"]
	for p := 0; p < n.mem.RdPorts; p++ {
		addrTrans := newTransformer()
		n.entities = append(n.entities, addrTrans)
		n.addrTrans = append(n.addrTrans, addrTrans)

		var last *hwcomb.Decider
		for i := 0; i < size; i++ {
			readEq := decider(sigC, int32(i)+offset, true, sigV)
			n.entities = append(n.entities, readEq)

			hwcomb.MakeConnection(green, latchOut[i].Output(), readEq.Input())
			hwcomb.MakeConnection(red, addrTrans.Output(), readEq.Input())
			if last != nil {
				hwcomb.MakeConnection(hwcomb.Both, last.Output(), readEq.Output())
			}
			last = readEq
		}
		n.ports = append(n.ports, &MemRead{
			mem:   n,
			index: p,
			bits:  data[p*width : (p+1)*width],
			out:   last.Output(),
		})
	}
}

// Connect implements hwcomb.Node. It connects the memory to its address, data
// and control inputs. It always returns a nil endpoint; use Ports to get the
// read data.
//
func (n *Mem) Connect(r hwcomb.Resolver) (*hwcomb.Endpoint, error) {
	return nil, n.Run(func() error { return n.connect(r) })
}

func (n *Mem) connect(r hwcomb.Resolver) error {
	c := n.mem.Cell

	clkNode, clk, err := hwcomb.ConnectInput(r, c.Connections["WR_CLK"])
	if err != nil {
		return errors.Wrap(err, "memory write clock")
	}
	if _, ok := clkNode.(*Input); !ok {
		return hwcomb.Unsupportedf("write clock", "clock must be a primary input: derived or gated clocks need an edge detector")
	}
	_, en, err := hwcomb.ConnectInput(r, c.Connections["WR_EN"][:1])
	if err != nil {
		return errors.Wrap(err, "memory write enable")
	}
	_, addr, err := hwcomb.ConnectInput(r, c.Connections["WR_ADDR"])
	if err != nil {
		return errors.Wrap(err, "memory write address")
	}
	_, data, err := hwcomb.ConnectInput(r, c.Connections["WR_DATA"])
	if err != nil {
		return errors.Wrap(err, "memory write data")
	}

	hwcomb.MakeConnection(hwcomb.Red, clk, n.trans.Input())
	hwcomb.MakeConnection(hwcomb.Green, en, n.trans.Input())
	for i := range n.writeSel {
		hwcomb.MakeConnection(hwcomb.Red, addr, n.writeSel[i].Input())
		hwcomb.MakeConnection(hwcomb.Red, data, n.latchIn[i].Input())
	}

	abits := n.mem.ABits
	rdAddr := c.Connections["RD_ADDR"]
	for p, t := range n.addrTrans {
		_, a, err := hwcomb.ConnectInput(r, rdAddr[p*abits:(p+1)*abits])
		if err != nil {
			return errors.Wrapf(err, "memory read address %d", p)
		}
		hwcomb.MakeConnection(hwcomb.Red, a, t.Input())
	}
	return nil
}

// Combinators implements hwcomb.Node.
//
func (n *Mem) Combinators() []hwcomb.Entity { return n.entities }

// Ports returns the read ports of the memory.
//
func (n *Mem) Ports() []*MemRead { return n.ports }

// Index returns the port number of p.
//
func (p *MemRead) Index() int { return p.index }

// Bits returns the RD_DATA bits driven by p.
//
func (p *MemRead) Bits() []netlist.Bit { return p.bits }

// Connect implements hwcomb.Node. It wires the memory if necessary and returns
// the endpoint carrying the port's read data.
//
func (p *MemRead) Connect(r hwcomb.Resolver) (*hwcomb.Endpoint, error) {
	if _, err := p.mem.Connect(r); err != nil {
		return nil, err
	}
	return p.out, nil
}

// Combinators implements hwcomb.Node. The read port's combinators belong to
// its memory.
//
func (p *MemRead) Combinators() []hwcomb.Entity { return nil }
