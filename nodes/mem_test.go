// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package nodes_test

import (
	"testing"

	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/hwtest"
	"github.com/db47h/hwcomb/netlist"
	"github.com/db47h/hwcomb/nodes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func subject(t *testing.T, err error) string {
	t.Helper()
	var e *hwcomb.Error
	require.True(t, errors.As(err, &e), "%v", err)
	return e.Subject
}

func TestNewMem_unsupported(t *testing.T) {
	base := netlist.MemSpec{ABits: 2, Width: 4, Size: 4, RdPorts: 1}
	for _, td := range []struct {
		name    string
		spec    netlist.MemSpec
		mod     func(c *netlist.Cell)
		subject string
	}{
		{"abits", netlist.MemSpec{ABits: 33, Width: 4, Size: 4, RdPorts: 1}, nil, "address width"},
		{"width", netlist.MemSpec{ABits: 2, Width: 33, Size: 4, RdPorts: 1}, nil, "data width"},
		{"zero width", netlist.MemSpec{ABits: 2, Width: 0, Size: 4, RdPorts: 1}, nil, "data width"},
		{"size", netlist.MemSpec{ABits: 2, Width: 4, Size: 0, RdPorts: 1}, nil, "memory size"},
		{"write ports", netlist.MemSpec{ABits: 2, Width: 4, Size: 4, RdPorts: 1, WrPorts: 2}, nil, "write port count"},
		{"init", base, func(c *netlist.Cell) { c.Parameters["INIT"] = "xxxxxxxxxxxxxxx0" }, "initial contents"},
		{"read clock", base, func(c *netlist.Cell) { c.Parameters["RD_CLK_ENABLE"] = "1" }, "read clock"},
		{"transparency", base, func(c *netlist.Cell) { c.Parameters["RD_TRANSPARENCY_MASK"] = "1" }, "read transparency"},
		{"read init", base, func(c *netlist.Cell) { c.Parameters["RD_INIT_VALUE"] = "x1xx" }, "read initial value"},
		{"write clock polarity", base, func(c *netlist.Cell) { c.Parameters["WR_CLK_POLARITY"] = "0" }, "write clock polarity"},
		{"read enable", base, func(c *netlist.Cell) { c.Connections["RD_EN"] = []netlist.Bit{netlist.Bit0} }, "read enable"},
		{"read reset", base, func(c *netlist.Cell) { c.Connections["RD_ARST"] = []netlist.Bit{100} }, "read reset"},
		{"write enable", base, func(c *netlist.Cell) {
			en := c.Connections["WR_EN"]
			en[3] = en[0] + 1000
		}, "write enable"},
	} {
		t.Run(td.name, func(t *testing.T) {
			var nets netlist.Nets
			c := td.spec.Cell(&nets)
			if td.mod != nil {
				td.mod(c)
			}
			_, err := nodes.NewMem(c)
			require.Error(t, err)
			assert.True(t, hwcomb.IsKind(err, hwcomb.Unsupported), "%v", err)
			assert.Equal(t, td.subject, subject(t, err))
		})
	}
}

func TestNewMem_malformed(t *testing.T) {
	var nets netlist.Nets
	c := netlist.MemSpec{ABits: 2, Width: 4, Size: 4, RdPorts: 1}.Cell(&nets)
	c.Connections["WR_DATA"] = c.Connections["WR_DATA"][:3]
	_, err := nodes.NewMem(c)
	require.Error(t, err)
	assert.False(t, hwcomb.IsKind(err, hwcomb.Unsupported))

	delete(c.Parameters, "SIZE")
	_, err = nodes.NewMem(c)
	assert.Error(t, err)
}

func TestMem_entityCount(t *testing.T) {
	for _, td := range []struct {
		size, rd int
	}{
		{2, 1}, {1, 0}, {4, 2}, {16, 3},
	} {
		var nets netlist.Nets
		m, err := nodes.NewMem(netlist.MemSpec{ABits: 4, Width: 8, Size: td.size, RdPorts: td.rd}.Cell(&nets))
		require.NoError(t, err)
		assert.Len(t, m.Combinators(), 1+3*td.size+td.rd*(1+td.size), "size %d, read ports %d", td.size, td.rd)
		assert.Len(t, m.Ports(), td.rd)
	}
}

// memBench is a memory with all its ports connected to bench inputs and outputs.
type memBench struct {
	*hwtest.Bench
	clk, en, addr, dat *nodes.Input
	raddr              []*nodes.Input
	rdata              []*hwcomb.Endpoint
}

func newMemBench(t *testing.T, spec netlist.MemSpec) *memBench {
	var nets netlist.Nets
	c := spec.Cell(&nets)
	m, err := nodes.NewMem(c)
	require.NoError(t, err)

	tbl := nodes.NewTable()
	mb := &memBench{
		clk:  tbl.Input(c.Connections["WR_CLK"]),
		en:   tbl.Input(c.Connections["WR_EN"][:1]),
		addr: tbl.Input(c.Connections["WR_ADDR"]),
		dat:  tbl.Input(c.Connections["WR_DATA"]),
	}
	rdAddr := c.Connections["RD_ADDR"]
	for p := 0; p < spec.RdPorts; p++ {
		mb.raddr = append(mb.raddr, tbl.Input(rdAddr[p*spec.ABits:(p+1)*spec.ABits]))
	}
	var outs []hwcomb.Node
	for _, p := range m.Ports() {
		tbl.Add(p.Bits(), p)
		o := nodes.NewOutput(p.Bits())
		ep, err := o.Connect(tbl)
		require.NoError(t, err)
		mb.rdata = append(mb.rdata, ep)
		outs = append(outs, o)
	}
	mb.Bench = hwtest.NewBench(t, tbl, append(outs, m)...)
	return mb
}

func (mb *memBench) write(addr, v int32) {
	mb.Set(mb.addr, addr)
	mb.Set(mb.dat, v)
	mb.Set(mb.en, 1)
	mb.Run(3)
	mb.Set(mb.clk, 1)
	mb.Run(5)
	mb.Set(mb.clk, 0)
	mb.Run(5)
	mb.Set(mb.en, 0)
	mb.Run(2)
}

func (mb *memBench) read(port int, addr int32) int32 {
	mb.Set(mb.raddr[port], addr)
	mb.Run(5)
	return mb.Read(mb.rdata[port])
}

func TestMem_readWrite(t *testing.T) {
	mb := newMemBench(t, netlist.MemSpec{ABits: 2, Width: 8, Size: 4, RdPorts: 2})

	rs, err := mb.Arena.Records()
	require.NoError(t, err)
	// memory + 6 inputs + 2 outputs
	assert.Len(t, rs, 1+3*4+2*5+6+2)

	for a := int32(0); a < 4; a++ {
		assert.Equal(t, int32(0), mb.read(0, a), "initial row %d", a)
	}

	mb.write(1, 42)
	assert.Equal(t, int32(42), mb.read(0, 1))
	assert.Equal(t, int32(42), mb.read(1, 1))
	assert.Equal(t, int32(0), mb.read(0, 0))
	assert.Equal(t, int32(0), mb.read(1, 2))

	mb.write(2, 200)
	mb.write(3, 7)
	mb.write(1, 13)
	for a, v := range []int32{0, 13, 200, 7} {
		assert.Equal(t, v, mb.read(a%2, int32(a)), "row %d", a)
	}

	// latches hold their value
	mb.Run(100)
	assert.Equal(t, int32(200), mb.read(0, 2))

	// clock without enable
	mb.Set(mb.addr, 2)
	mb.Set(mb.dat, 99)
	mb.Set(mb.clk, 1)
	mb.Run(5)
	mb.Set(mb.clk, 0)
	mb.Run(5)
	assert.Equal(t, int32(200), mb.read(1, 2))

	// overwrite with 0
	mb.write(2, 0)
	assert.Equal(t, int32(0), mb.read(1, 2))
	assert.Equal(t, int32(7), mb.read(1, 3))
}

func TestMem_offset(t *testing.T) {
	mb := newMemBench(t, netlist.MemSpec{ABits: 4, Width: 8, Size: 2, Offset: 4, RdPorts: 1})
	mb.write(5, 21)
	mb.write(4, 12)
	assert.Equal(t, int32(21), mb.read(0, 5))
	assert.Equal(t, int32(12), mb.read(0, 4))
	// out of range addresses read 0
	assert.Equal(t, int32(0), mb.read(0, 1))
}

func TestMem_clock(t *testing.T) {
	var nets netlist.Nets
	c := netlist.MemSpec{ABits: 2, Width: 4, Size: 4, RdPorts: 1}.Cell(&nets)
	m, err := nodes.NewMem(c)
	require.NoError(t, err)

	tbl := nodes.NewTable()
	for _, name := range []string{"WR_ADDR", "WR_DATA", "RD_ADDR"} {
		tbl.Input(c.Connections[name])
	}
	tbl.Input(c.Connections["WR_EN"][:1])
	// derived clock
	k := hwcomb.SimpleConstant(1)
	tbl.Add(c.Connections["WR_CLK"], nodes.Tap(k.Output()))

	_, err = m.Connect(tbl)
	require.Error(t, err)
	assert.True(t, hwcomb.IsKind(err, hwcomb.Unsupported), "%v", err)
	assert.Equal(t, "write clock", subject(t, err))

	// the error sticks
	_, err = m.Ports()[0].Connect(tbl)
	assert.Error(t, err)
}

func TestMem_missingInput(t *testing.T) {
	var nets netlist.Nets
	c := netlist.MemSpec{ABits: 2, Width: 4, Size: 4, RdPorts: 1}.Cell(&nets)
	m, err := nodes.NewMem(c)
	require.NoError(t, err)
	tbl := nodes.NewTable()
	tbl.Input(c.Connections["WR_CLK"])
	_, err = m.Connect(tbl)
	assert.Error(t, err)
}
