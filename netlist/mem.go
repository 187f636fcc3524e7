// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package netlist

import (
	"strings"

	"github.com/pkg/errors"
)

// MemType is the cell type of multi-port memories.
//
const MemType = "$mem_v2"

// Mem is a typed view of a memory cell.
//
type Mem struct {
	*Cell
	ABits   int // address width
	Width   int // data width
	Size    int // number of rows
	Offset  int // address of the first row
	RdPorts int
	WrPorts int
}

// ParseMem decodes the geometry of a memory cell.
//
func ParseMem(c *Cell) (*Mem, error) {
	if c.Type != MemType {
		return nil, errors.Errorf("cell type %s is not a memory", c.Type)
	}
	m := &Mem{Cell: c}
	for _, p := range []struct {
		name string
		v    *int
	}{
		{"ABITS", &m.ABits},
		{"WIDTH", &m.Width},
		{"SIZE", &m.Size},
		{"OFFSET", &m.Offset},
		{"RD_PORTS", &m.RdPorts},
		{"WR_PORTS", &m.WrPorts},
	} {
		v, err := c.Int(p.name)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, errors.Errorf("cell %s: negative parameter %s", c.Type, p.name)
		}
		*p.v = v
	}
	return m, nil
}

// MemSpec describes the geometry of a memory. It can generate a matching
// memory cell with asynchronous read ports, a single clocked write port and no
// initial contents.
//
type MemSpec struct {
	ABits   int `yaml:"abits"`
	Width   int `yaml:"width"`
	Size    int `yaml:"size"`
	Offset  int `yaml:"offset"`
	RdPorts int `yaml:"rd_ports"`
	// WrPorts defaults to 1 if 0.
	WrPorts int `yaml:"wr_ports"`
}

func repeat(c string, n int) Param {
	return Param(strings.Repeat(c, n))
}

func repeatBit(b Bit, n int) []Bit {
	bits := make([]Bit, n)
	for i := range bits {
		bits[i] = b
	}
	return bits
}

// Cell returns a new memory cell. Port connections are allocated from nets.
//
func (s MemSpec) Cell(nets *Nets) *Cell {
	wr := s.WrPorts
	if wr == 0 {
		wr = 1
	}
	rd := s.RdPorts
	c := &Cell{
		Type: MemType,
		Parameters: map[string]Param{
			"ABITS":                IntParam(s.ABits),
			"WIDTH":                IntParam(s.Width),
			"SIZE":                 IntParam(s.Size),
			"OFFSET":               IntParam(s.Offset),
			"RD_PORTS":             IntParam(rd),
			"WR_PORTS":             IntParam(wr),
			"INIT":                 repeat("x", s.Size*s.Width),
			"RD_WIDE_CONTINUATION": repeat("0", rd),
			"RD_CLK_ENABLE":        repeat("0", rd),
			"RD_CLK_POLARITY":      repeat("0", rd),
			"RD_TRANSPARENCY_MASK": repeat("0", rd*wr),
			"RD_COLLISION_X_MASK":  repeat("0", rd*wr),
			"RD_CE_OVER_SRST":      repeat("0", rd),
			"RD_INIT_VALUE":        repeat("x", rd*s.Width),
			"RD_ARST_VALUE":        repeat("x", rd*s.Width),
			"RD_SRST_VALUE":        repeat("x", rd*s.Width),
			"WR_WIDE_CONTINUATION": repeat("0", wr),
			"WR_CLK_ENABLE":        repeat("1", wr),
			"WR_CLK_POLARITY":      repeat("1", wr),
			"WR_PRIORITY_MASK":     repeat("0", wr*wr),
		},
		Connections: map[string][]Bit{
			"RD_CLK":  repeatBit(BitX, rd),
			"RD_EN":   repeatBit(Bit1, rd),
			"RD_ARST": repeatBit(Bit0, rd),
			"RD_SRST": repeatBit(Bit0, rd),
			"RD_ADDR": nets.New(rd * s.ABits),
			"RD_DATA": nets.New(rd * s.Width),
			"WR_CLK":  nets.New(wr),
			"WR_ADDR": nets.New(wr * s.ABits),
			"WR_DATA": nets.New(wr * s.Width),
		},
	}
	var en []Bit
	for i := 0; i < wr; i++ {
		en = append(en, repeatBit(nets.New(1)[0], s.Width)...)
	}
	c.Connections["WR_EN"] = en
	return c
}
