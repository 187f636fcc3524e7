// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package netlist describes the cells of a Yosys style netlist: typed cells
// with named parameters and bit-vector port connections.
//
package netlist

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Bit is a single bit of a port connection: either a literal (Bit0, Bit1, BitX,
// BitZ) or a reference to a net. Net numbers start at 2.
//
type Bit int

// Literal bits.
//
const (
	BitZ Bit = -2
	BitX Bit = -1
	Bit0 Bit = 0
	Bit1 Bit = 1
)

// IsConst returns true if b is a literal bit.
//
func (b Bit) IsConst() bool { return b < 2 }

func (b Bit) String() string {
	switch b {
	case BitZ:
		return "z"
	case BitX:
		return "x"
	case Bit0:
		return "0"
	case Bit1:
		return "1"
	}
	return strconv.Itoa(int(b))
}

// UnmarshalJSON decodes a bit from its Yosys representation: a net number or
// one of the strings "0", "1", "x" and "z".
//
func (b *Bit) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "0":
			*b = Bit0
		case "1":
			*b = Bit1
		case "x":
			*b = BitX
		case "z":
			*b = BitZ
		default:
			return errors.Errorf("invalid bit value %q", s)
		}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "invalid bit")
	}
	if n < 2 {
		return errors.Errorf("invalid net number %d", n)
	}
	*b = Bit(n)
	return nil
}

// MarshalJSON encodes b in its Yosys representation.
//
func (b Bit) MarshalJSON() ([]byte, error) {
	if b.IsConst() {
		return json.Marshal(b.String())
	}
	return json.Marshal(int(b))
}

// BitString returns a printable representation of a bit vector, lsb first.
//
func BitString(bits []Bit) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, b := range bits {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(b.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// AllBits returns true if all bits in bits are equal to v.
//
func AllBits(bits []Bit, v Bit) bool {
	for _, b := range bits {
		if b != v {
			return false
		}
	}
	return true
}

// Value returns the integer value of a vector of literal bits, lsb first.
// It fails if any bit is x, z or a net reference.
//
func Value(bits []Bit) (int64, error) {
	if len(bits) > 63 {
		return 0, errors.Errorf("literal too wide: %d bits", len(bits))
	}
	var v int64
	for i, b := range bits {
		switch b {
		case Bit0:
		case Bit1:
			v |= 1 << uint(i)
		default:
			return 0, errors.Errorf("bit %d of %s is not a 0/1 literal", i, BitString(bits))
		}
	}
	return v, nil
}

// Param is a cell parameter, stored as a string of binary digits, msb first,
// as Yosys does.
//
type Param string

// IntParam returns the 32 bit binary representation of v.
//
func IntParam(v int) Param {
	s := strconv.FormatUint(uint64(uint32(v)), 2)
	return Param(strings.Repeat("0", 32-len(s)) + s)
}

// Int returns the integer value of p.
//
func (p Param) Int() (int, error) {
	if len(p) == 0 {
		return 0, errors.New("empty parameter")
	}
	if len(p) > 32 {
		// wider params are fine as long as the extra bits are zero.
		for _, c := range p[:len(p)-32] {
			if c != '0' {
				return 0, errors.Errorf("parameter value %q out of range", string(p))
			}
		}
		p = p[len(p)-32:]
	}
	v, err := strconv.ParseUint(string(p), 2, 32)
	if err != nil {
		return 0, errors.Errorf("invalid parameter value %q", string(p))
	}
	return int(int32(uint32(v))), nil
}

// All returns true if every digit of p is c.
//
func (p Param) All(c byte) bool {
	for i := 0; i < len(p); i++ {
		if p[i] != c {
			return false
		}
	}
	return true
}

// UnmarshalJSON accepts binary strings as well as plain JSON numbers.
//
func (p *Param) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = Param(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return errors.Wrap(err, "invalid parameter")
	}
	*p = IntParam(n)
	return nil
}

// Cell is a netlist cell.
//
type Cell struct {
	Type        string           `json:"type"`
	Parameters  map[string]Param `json:"parameters"`
	Connections map[string][]Bit `json:"connections"`
}

// Int returns the integer value of the named parameter.
//
func (c *Cell) Int(name string) (int, error) {
	p, ok := c.Parameters[name]
	if !ok {
		return 0, errors.Errorf("cell %s: missing parameter %s", c.Type, name)
	}
	v, err := p.Int()
	if err != nil {
		return 0, errors.Wrapf(err, "cell %s: parameter %s", c.Type, name)
	}
	return v, nil
}

// Conn returns the named connection.
//
func (c *Cell) Conn(name string) ([]Bit, error) {
	bits, ok := c.Connections[name]
	if !ok {
		return nil, errors.Errorf("cell %s: missing connection %s", c.Type, name)
	}
	return bits, nil
}

// Nets allocates net numbers.
//
type Nets struct {
	next Bit
}

// New returns n fresh net bits.
//
func (ns *Nets) New(n int) []Bit {
	if ns.next < 2 {
		ns.next = 2
	}
	bits := make([]Bit, n)
	for i := range bits {
		bits[i] = ns.next
		ns.next++
	}
	return bits
}
