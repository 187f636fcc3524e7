// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import "github.com/pkg/errors"

// Comparator is a decider combinator comparison operator.
//
type Comparator string

// Comparators.
//
const (
	LT Comparator = "<"
	LE Comparator = "≤"
	GT Comparator = ">"
	GE Comparator = "≥"
	EQ Comparator = "="
	NE Comparator = "≠"
)

// Compare returns the result of a cmp b.
//
func (cmp Comparator) Compare(a, b int32) bool {
	switch cmp {
	case LT:
		return a < b
	case LE:
		return a <= b
	case GT:
		return a > b
	case GE:
		return a >= b
	case EQ:
		return a == b
	case NE:
		return a != b
	}
	panic("invalid comparator " + string(cmp))
}

func (cmp Comparator) valid() bool {
	switch cmp {
	case LT, LE, GT, GE, EQ, NE:
		return true
	}
	return false
}

// SignalRef returns a pointer to s, for use as a second operand.
//
func SignalRef(s SignalID) *SignalID { return &s }

// Literal returns a pointer to v, for use as a constant second operand.
//
func Literal(v int32) *int32 { return &v }

// DeciderCondition is the control behavior of a decider combinator.
// Exactly one of SecondSignal and Constant must be set.
//
type DeciderCondition struct {
	FirstSignal        SignalID   `json:"first_signal"`
	SecondSignal       *SignalID  `json:"second_signal,omitempty"`
	Constant           *int32     `json:"constant,omitempty"`
	Comparator         Comparator `json:"comparator"`
	OutputSignal       SignalID   `json:"output_signal"`
	CopyCountFromInput bool       `json:"copy_count_from_input"`
}

// Validate checks that the condition is well formed.
//
func (c *DeciderCondition) Validate() error {
	if (c.SecondSignal == nil) == (c.Constant == nil) {
		return errors.New("exactly one of second signal and constant must be set")
	}
	if c.FirstSignal.IsZero() {
		return errors.New("missing first signal")
	}
	if c.OutputSignal.IsZero() {
		return errors.New("missing output signal")
	}
	if !c.Comparator.valid() {
		return errors.Errorf("invalid comparator %q", c.Comparator)
	}
	return nil
}

// DeciderBehavior wraps a DeciderCondition for emission.
//
type DeciderBehavior struct {
	DeciderConditions DeciderCondition `json:"decider_conditions"`
}

// Decider is a decider combinator: if the condition holds, it outputs either 1
// or the input count of the output signal.
//
type Decider struct {
	EntityBase
	Cond DeciderCondition

	in, out *Endpoint
}

// NewDecider returns a new decider combinator. It panics if the condition is
// not valid (see DeciderCondition.Validate).
//
func NewDecider(cond DeciderCondition) *Decider {
	if err := cond.Validate(); err != nil {
		panic(errors.Wrap(err, "NewDecider"))
	}
	// do not share operands with the caller
	if cond.SecondSignal != nil {
		cond.SecondSignal = SignalRef(*cond.SecondSignal)
	}
	if cond.Constant != nil {
		cond.Constant = Literal(*cond.Constant)
	}
	d := &Decider{Cond: cond}
	d.in = NewEndpoint(d, 1)
	d.out = NewEndpoint(d, 2, cond.OutputSignal)
	return d
}

// Name implements Entity.
//
func (d *Decider) Name() string { return "decider-combinator" }

// Input implements Entity.
//
func (d *Decider) Input() *Endpoint { return d.in }

// Output implements Entity.
//
func (d *Decider) Output() *Endpoint { return d.out }

// OperandSignals implements Combinator.
//
func (d *Decider) OperandSignals() []SignalID {
	return operands(d.Cond.FirstSignal, d.Cond.SecondSignal)
}

// SetOperandSignal implements Combinator.
//
func (d *Decider) SetOperandSignal(from, to SignalID) bool {
	return setOperand(&d.Cond.FirstSignal, d.Cond.SecondSignal, from, to)
}

// OutputSignals implements Combinator.
//
func (d *Decider) OutputSignals() []SignalID { return []SignalID{d.Cond.OutputSignal} }

// SetOutputSignal implements Combinator.
//
func (d *Decider) SetOutputSignal(from, to SignalID) bool {
	if d.Cond.OutputSignal != from {
		return false
	}
	d.Cond.OutputSignal = to
	return true
}

// PassThrough implements Combinator.
//
func (d *Decider) PassThrough() bool { return d.Cond.CopyCountFromInput }

// Record implements Entity.
//
func (d *Decider) Record() (*Record, error) {
	if err := checkPorts(d); err != nil {
		return nil, err
	}
	return newRecord(d, DeciderBehavior{d.Cond}), nil
}

func operands(first SignalID, second *SignalID) []SignalID {
	if second == nil {
		return []SignalID{first}
	}
	return []SignalID{first, *second}
}

func setOperand(first *SignalID, second *SignalID, from, to SignalID) bool {
	ok := false
	if *first == from {
		*first = to
		ok = true
	}
	if second != nil && *second == from {
		*second = to
		ok = true
	}
	return ok
}

// checkPorts checks that both endpoints of a two port combinator are
// connected.
//
func checkPorts(e Entity) error {
	if !e.Input().Connected() {
		return Unconnectedf(entityName(e), "input not connected")
	}
	if !e.Output().Connected() {
		return Unconnectedf(entityName(e), "output not connected")
	}
	return nil
}
