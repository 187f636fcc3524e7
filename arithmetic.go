// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import "github.com/pkg/errors"

// Operator is an arithmetic combinator operation.
//
type Operator string

// Operators.
//
const (
	Add Operator = "+"
	Sub Operator = "-"
	Mul Operator = "*"
	Div Operator = "/"
	Mod Operator = "%"
	Pow Operator = "^"
	Shl Operator = "<<"
	Shr Operator = ">>"
	And Operator = "AND"
	Or  Operator = "OR"
	Xor Operator = "XOR"
)

// Apply returns a op b with 32 bit wrap-around. Division or modulo by zero
// yields 0, as do negative exponents. Shift amounts are taken modulo 32.
//
func (op Operator) Apply(a, b int32) int32 {
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		if b == 0 {
			return 0
		}
		return a / b
	case Mod:
		if b == 0 {
			return 0
		}
		return a % b
	case Pow:
		if b < 0 {
			return 0
		}
		r := int32(1)
		for ; b > 0; b >>= 1 {
			if b&1 != 0 {
				r *= a
			}
			a *= a
		}
		return r
	case Shl:
		return a << (uint32(b) & 31)
	case Shr:
		return a >> (uint32(b) & 31)
	case And:
		return a & b
	case Or:
		return a | b
	case Xor:
		return a ^ b
	}
	panic("invalid operator " + string(op))
}

func (op Operator) valid() bool {
	switch op {
	case Add, Sub, Mul, Div, Mod, Pow, Shl, Shr, And, Or, Xor:
		return true
	}
	return false
}

// ArithmeticCondition is the control behavior of an arithmetic combinator.
// Exactly one of SecondSignal and Constant must be set.
//
type ArithmeticCondition struct {
	FirstSignal  SignalID  `json:"first_signal"`
	SecondSignal *SignalID `json:"second_signal,omitempty"`
	Constant     *int32    `json:"constant,omitempty"`
	Operation    Operator  `json:"operation"`
	OutputSignal SignalID  `json:"output_signal"`
}

// Validate checks that the condition is well formed.
//
func (c *ArithmeticCondition) Validate() error {
	if (c.SecondSignal == nil) == (c.Constant == nil) {
		return errors.New("exactly one of second signal and constant must be set")
	}
	if c.FirstSignal.IsZero() {
		return errors.New("missing first signal")
	}
	if c.OutputSignal.IsZero() {
		return errors.New("missing output signal")
	}
	if !c.Operation.valid() {
		return errors.Errorf("invalid operation %q", c.Operation)
	}
	return nil
}

// ArithmeticBehavior wraps an ArithmeticCondition for emission.
//
type ArithmeticBehavior struct {
	ArithmeticConditions ArithmeticCondition `json:"arithmetic_conditions"`
}

// Arithmetic is an arithmetic combinator.
//
type Arithmetic struct {
	EntityBase
	Cond ArithmeticCondition

	in, out *Endpoint
}

// NewArithmetic returns a new arithmetic combinator. It panics if the
// condition is not valid (see ArithmeticCondition.Validate).
//
func NewArithmetic(cond ArithmeticCondition) *Arithmetic {
	if err := cond.Validate(); err != nil {
		panic(errors.Wrap(err, "NewArithmetic"))
	}
	if cond.SecondSignal != nil {
		cond.SecondSignal = SignalRef(*cond.SecondSignal)
	}
	if cond.Constant != nil {
		cond.Constant = Literal(*cond.Constant)
	}
	a := &Arithmetic{Cond: cond}
	a.in = NewEndpoint(a, 1)
	a.out = NewEndpoint(a, 2, cond.OutputSignal)
	return a
}

// Name implements Entity.
//
func (a *Arithmetic) Name() string { return "arithmetic-combinator" }

// Input implements Entity.
//
func (a *Arithmetic) Input() *Endpoint { return a.in }

// Output implements Entity.
//
func (a *Arithmetic) Output() *Endpoint { return a.out }

// OperandSignals implements Combinator.
//
func (a *Arithmetic) OperandSignals() []SignalID {
	return operands(a.Cond.FirstSignal, a.Cond.SecondSignal)
}

// SetOperandSignal implements Combinator.
//
func (a *Arithmetic) SetOperandSignal(from, to SignalID) bool {
	return setOperand(&a.Cond.FirstSignal, a.Cond.SecondSignal, from, to)
}

// OutputSignals implements Combinator.
//
func (a *Arithmetic) OutputSignals() []SignalID { return []SignalID{a.Cond.OutputSignal} }

// SetOutputSignal implements Combinator.
//
func (a *Arithmetic) SetOutputSignal(from, to SignalID) bool {
	if a.Cond.OutputSignal != from {
		return false
	}
	a.Cond.OutputSignal = to
	return true
}

// PassThrough implements Combinator. Arithmetic combinators always compute a
// new value.
//
func (a *Arithmetic) PassThrough() bool { return false }

// Record implements Entity.
//
func (a *Arithmetic) Record() (*Record, error) {
	if err := checkPorts(a); err != nil {
		return nil, err
	}
	return newRecord(a, ArithmeticBehavior{a.Cond}), nil
}
