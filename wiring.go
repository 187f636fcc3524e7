// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

// An Endpoint is a port of an entity. It can be attached to one Network per
// wire color.
//
type Endpoint struct {
	owner   Entity
	port    int
	nets    [2]*Network
	signals SignalSet
}

// NewEndpoint returns a new endpoint for the given entity port. signals are
// the signal identities the endpoint outputs.
//
func NewEndpoint(owner Entity, port int, signals ...SignalID) *Endpoint {
	return &Endpoint{
		owner:   owner,
		port:    port,
		signals: NewSignalSet(signals...),
	}
}

// Entity returns the entity owning e.
//
func (e *Endpoint) Entity() Entity { return e.owner }

// Port returns the port number of e in its entity.
//
func (e *Endpoint) Port() int { return e.port }

// Network returns the network of color c attached to e, or nil.
//
func (e *Endpoint) Network(c Color) *Network { return e.nets[c.index()] }

// Red returns the red network attached to e, or nil.
//
func (e *Endpoint) Red() *Network { return e.nets[0] }

// Green returns the green network attached to e, or nil.
//
func (e *Endpoint) Green() *Network { return e.nets[1] }

// Connected returns true if at least one wire color is attached to e.
//
func (e *Endpoint) Connected() bool { return e.nets[0] != nil || e.nets[1] != nil }

// Signals returns the set of signals e is asserted to output. The returned set
// is not a copy.
//
func (e *Endpoint) Signals() SignalSet { return e.signals }

// Convert returns the connection descriptor of e: for each color, the
// endpoints sharing a network with e.
//
func (e *Endpoint) Convert() ConnectionPoint {
	var cp ConnectionPoint
	for _, c := range Colors {
		n := e.Network(c)
		if n == nil {
			continue
		}
		var cd []ConnectionData
		for _, p := range n.points {
			if p == e {
				continue
			}
			cd = append(cd, ConnectionData{EntityID: p.owner.Base().ID(), CircuitID: p.port})
		}
		if c == Red {
			cp.Red = cd
		} else {
			cp.Green = cd
		}
	}
	return cp
}

// A Network is the maximal set of same color endpoints transitively joined by
// connections.
//
type Network struct {
	color   Color
	points  []*Endpoint
	signals SignalSet
}

// Color returns the wire color of n.
//
func (n *Network) Color() Color { return n.color }

// Endpoints returns the endpoints of n in connection order.
//
func (n *Network) Endpoints() []*Endpoint { return n.points }

// Signals returns the set of signals flowing through n. The returned set is
// not a copy.
//
func (n *Network) Signals() SignalSet { return n.signals }

// Has returns true if e is attached to n.
//
func (n *Network) Has(e *Endpoint) bool {
	return e.nets[n.color.index()] == n
}

func (n *Network) add(e *Endpoint) {
	e.nets[n.color.index()] = n
	n.points = append(n.points, e)
	n.signals.AddAll(e.signals)
}

// absorb moves all endpoints of o into n. o must not be used afterwards.
//
func (n *Network) absorb(o *Network) {
	for _, p := range o.points {
		n.add(p)
	}
	n.signals.AddAll(o.signals)
	o.points = nil
}

// MakeConnection connects the given endpoints with wires of color c (Red,
// Green or Both). Networks already attached to any of the endpoints are merged
// into one.
//
// MakeConnection panics if less than two endpoints are given or if any of them
// is nil.
//
func MakeConnection(c Color, endpoints ...*Endpoint) {
	if len(endpoints) < 2 {
		panic("MakeConnection: at least two endpoints required")
	}
	for _, e := range endpoints {
		if e == nil {
			panic("MakeConnection: nil endpoint")
		}
	}
	if c&^Both != 0 || c == 0 {
		panic("MakeConnection: invalid wire color " + c.String())
	}
	for _, col := range Colors {
		if c&col != 0 {
			connect(col, endpoints)
		}
	}
}

func connect(c Color, endpoints []*Endpoint) *Network {
	i := c.index()
	var net *Network
	for _, e := range endpoints {
		if e.nets[i] != nil {
			net = e.nets[i]
			break
		}
	}
	if net == nil {
		net = &Network{color: c, signals: make(SignalSet)}
	}
	for _, e := range endpoints {
		switch n := e.nets[i]; {
		case n == net:
		case n != nil:
			net.absorb(n)
		default:
			net.add(e)
		}
	}
	return net
}
