// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import "strconv"

// Color is a wire color. Red and Green wires are summed independently.
// Both is only valid as an argument to MakeConnection.
//
type Color int

// Wire colors.
//
const (
	Red Color = 1 << iota
	Green
	Both = Red | Green
)

// Colors lists the two wire colors in emission order.
//
var Colors = [...]Color{Red, Green}

func (c Color) index() int {
	switch c {
	case Red:
		return 0
	case Green:
		return 1
	}
	panic("invalid wire color " + c.String())
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Both:
		return "both"
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// Position is the position of an entity in a blueprint.
//
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// EntityBase holds the fields common to all entities. It is meant to be
// embedded in Entity implementations.
//
type EntityBase struct {
	id        int
	Position  Position
	Direction int
}

// Base returns b. It makes any struct embedding an EntityBase satisfy part of
// the Entity interface.
//
func (b *EntityBase) Base() *EntityBase { return b }

// ID returns the entity number assigned by an Arena, or 0 if the entity has
// not been added to one yet.
//
func (b *EntityBase) ID() int { return b.id }

// Entity is a blueprint entity.
//
type Entity interface {
	Base() *EntityBase
	// Name returns the entity prototype name.
	Name() string
	// Input and Output return the entity's input and output endpoints.
	// They are the same endpoint for single port entities.
	Input() *Endpoint
	Output() *Endpoint
	// Record returns the blueprint record for this entity. It fails if a
	// required endpoint is not connected.
	Record() (*Record, error)
}

// Combinator is implemented by the three combinator variants: *Constant,
// *Decider and *Arithmetic. It exposes the signal identities a combinator
// reads and writes so that signal analysis can be written once for all
// variants.
//
type Combinator interface {
	Entity
	// OperandSignals returns the concrete signals read from the input.
	OperandSignals() []SignalID
	// SetOperandSignal replaces every operand equal to from with to.
	// It returns false if no operand matched.
	SetOperandSignal(from, to SignalID) bool
	// OutputSignals returns the signals asserted on the output.
	OutputSignals() []SignalID
	// SetOutputSignal replaces every output signal equal to from with to.
	// It returns false if no output signal matched.
	SetOutputSignal(from, to SignalID) bool
	// PassThrough returns true if the output value is the input count of the
	// output signal, unchanged.
	PassThrough() bool
}

func entityName(e Entity) string {
	return e.Name() + " #" + strconv.Itoa(e.Base().ID())
}

// ConnectionData is one partner of a connection: the partner's entity number
// and port.
//
type ConnectionData struct {
	EntityID  int `json:"entity_id"`
	CircuitID int `json:"circuit_id"`
}

// ConnectionPoint lists the partners of an endpoint per wire color.
//
type ConnectionPoint struct {
	Red   []ConnectionData `json:"red,omitempty"`
	Green []ConnectionData `json:"green,omitempty"`
}

// Record is the blueprint representation of an entity.
//
type Record struct {
	EntityNumber    int                        `json:"entity_number"`
	Name            string                     `json:"name"`
	Position        Position                   `json:"position"`
	Direction       int                        `json:"direction,omitempty"`
	ControlBehavior interface{}                `json:"control_behavior"`
	Connections     map[string]ConnectionPoint `json:"connections"`
}

func newRecord(e Entity, cb interface{}) *Record {
	b := e.Base()
	r := &Record{
		EntityNumber:    b.ID(),
		Name:            e.Name(),
		Position:        b.Position,
		Direction:       b.Direction,
		ControlBehavior: cb,
		Connections:     make(map[string]ConnectionPoint, 2),
	}
	in, out := e.Input(), e.Output()
	r.Connections[strconv.Itoa(in.Port())] = in.Convert()
	if out != in {
		r.Connections[strconv.Itoa(out.Port())] = out.Convert()
	}
	return r
}
