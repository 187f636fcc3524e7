// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import "github.com/db47h/hwcomb/netlist"

// A Node wraps the combinators synthesized for one netlist cell.
//
// Nodes are wired lazily: Connect resolves the node's inputs through r,
// connects them to the node's combinators and returns the endpoint carrying
// the node's output. Connect must be idempotent; subsequent calls return the
// same endpoint.
//
type Node interface {
	Connect(r Resolver) (*Endpoint, error)
	// Combinators returns the entities contributed by the node.
	Combinators() []Entity
}

// A Resolver returns the node producing the given bits.
//
type Resolver interface {
	Resolve(bits []netlist.Bit) (Node, error)
}

// ResolverFunc is an adapter to allow the use of ordinary functions as
// Resolvers.
//
type ResolverFunc func(bits []netlist.Bit) (Node, error)

// Resolve returns f(bits).
//
func (f ResolverFunc) Resolve(bits []netlist.Bit) (Node, error) { return f(bits) }

// ConnectInput resolves bits through r and returns the output endpoint of the
// resulting node.
//
func ConnectInput(r Resolver, bits []netlist.Bit) (Node, *Endpoint, error) {
	n, err := r.Resolve(bits)
	if err != nil {
		return nil, nil, err
	}
	ep, err := n.Connect(r)
	if err != nil {
		return nil, nil, err
	}
	if ep == nil {
		return nil, nil, Invariantf("resolve "+netlist.BitString(bits), "node has no output endpoint")
	}
	return n, ep, nil
}

type wireState int

const (
	wireIdle wireState = iota
	wireBusy
	wireDone
)

// Wiring tracks the wiring state of a node. It is meant to be embedded in
// Node implementations.
//
type Wiring struct {
	state wireState
	err   error
}

// Run calls fn the first time it is called and returns the error returned by
// fn on all subsequent calls. Calls made while fn is running return nil: all
// combinators of a node are created before wiring starts, so a node reached
// again through a feedback path can hand out its output endpoint before its
// own inputs are connected.
//
func (w *Wiring) Run(fn func() error) error {
	switch w.state {
	case wireBusy:
		return nil
	case wireDone:
		return w.err
	}
	w.state = wireBusy
	w.err = fn()
	w.state = wireDone
	return w.err
}

// Wired returns true once wiring has completed.
//
func (w *Wiring) Wired() bool { return w.state == wireDone }
