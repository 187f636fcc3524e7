// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package nodes provides the synthesis rules turning netlist cells into
// combinators.
//
// All nodes carry values on hwcomb.SignalV: a bit vector is represented by
// its integer value.
//
package nodes

import (
	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
)

// Input is a primary input of the circuit. It is backed by a constant
// combinator outputting SignalV, set externally (or driven by a simulation).
//
type Input struct {
	bits []netlist.Bit
	k    *hwcomb.Constant
}

// NewInput returns a new primary input for the given bits.
//
func NewInput(bits []netlist.Bit) *Input {
	return &Input{bits: bits, k: hwcomb.SimpleConstant(0)}
}

// Bits returns the bits driven by the input.
//
func (in *Input) Bits() []netlist.Bit { return in.bits }

// Constant returns the combinator backing the input.
//
func (in *Input) Constant() *hwcomb.Constant { return in.k }

// Connect implements hwcomb.Node.
//
func (in *Input) Connect(hwcomb.Resolver) (*hwcomb.Endpoint, error) { return in.k.Output(), nil }

// Combinators implements hwcomb.Node.
//
func (in *Input) Combinators() []hwcomb.Entity { return []hwcomb.Entity{in.k} }

// Literal is a constant bit vector.
//
type Literal struct {
	k *hwcomb.Constant
}

// NewLiteral returns a node outputting the value of the given literal bits.
//
func NewLiteral(bits []netlist.Bit) (*Literal, error) {
	if len(bits) > 32 {
		return nil, hwcomb.Unsupportedf("literal "+netlist.BitString(bits), "literals wider than 32 bits")
	}
	v, err := netlist.Value(bits)
	if err != nil {
		return nil, hwcomb.Unsupportedf("literal "+netlist.BitString(bits), "%v", err)
	}
	return &Literal{hwcomb.SimpleConstant(int32(uint32(v)))}, nil
}

// Connect implements hwcomb.Node.
//
func (l *Literal) Connect(hwcomb.Resolver) (*hwcomb.Endpoint, error) { return l.k.Output(), nil }

// Combinators implements hwcomb.Node.
//
func (l *Literal) Combinators() []hwcomb.Entity { return []hwcomb.Entity{l.k} }

type tap struct {
	ep *hwcomb.Endpoint
}

// Tap wraps an existing endpoint into a node so that it can be reused without
// synthesizing anything.
//
func Tap(ep *hwcomb.Endpoint) hwcomb.Node { return tap{ep} }

func (t tap) Connect(hwcomb.Resolver) (*hwcomb.Endpoint, error) { return t.ep, nil }
func (t tap) Combinators() []hwcomb.Entity                      { return nil }

// NewTransformer returns an arithmetic combinator moving the SignalV value
// present on src to SignalC. src is connected with a red wire.
//
func NewTransformer(src *hwcomb.Endpoint) *hwcomb.Arithmetic {
	a := newTransformer()
	hwcomb.MakeConnection(hwcomb.Red, src, a.Input())
	return a
}

func newTransformer() *hwcomb.Arithmetic {
	return hwcomb.NewArithmetic(hwcomb.ArithmeticCondition{
		FirstSignal:  hwcomb.SignalV,
		Constant:     hwcomb.Literal(0),
		Operation:    hwcomb.Add,
		OutputSignal: hwcomb.SignalC,
	})
}

// Output is a circuit output: a signal-less constant combinator used as a
// wire terminal for the value of the given bits.
//
type Output struct {
	hwcomb.Wiring
	bits []netlist.Bit
	k    *hwcomb.Constant
}

// NewOutput returns a new output for the given bits.
//
func NewOutput(bits []netlist.Bit) *Output {
	return &Output{bits: bits, k: hwcomb.NewConstant()}
}

// Connect implements hwcomb.Node. The returned endpoint carries the value of
// the output bits.
//
func (o *Output) Connect(r hwcomb.Resolver) (*hwcomb.Endpoint, error) {
	err := o.Run(func() error {
		_, ep, err := hwcomb.ConnectInput(r, o.bits)
		if err != nil {
			return errors.Wrap(err, "output "+netlist.BitString(o.bits))
		}
		hwcomb.MakeConnection(hwcomb.Red, ep, o.k.Output())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return o.k.Output(), nil
}

// Combinators implements hwcomb.Node.
//
func (o *Output) Combinators() []hwcomb.Entity { return []hwcomb.Entity{o.k} }
