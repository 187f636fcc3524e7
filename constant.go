// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

// Filter is a constant combinator slot.
//
type Filter struct {
	Signal SignalID `json:"signal"`
	Count  int32    `json:"count"`
	Index  int      `json:"index"`
}

// ConstantBehavior is the control behavior of a constant combinator.
//
type ConstantBehavior struct {
	IsOn    bool     `json:"is_on"`
	Filters []Filter `json:"filters"`
}

// Constant is a constant combinator. Its single endpoint serves as both input
// and output.
//
type Constant struct {
	EntityBase
	Filters []Filter
	IsOn    bool

	point *Endpoint
}

// NewConstant returns a new constant combinator outputting the given filters.
//
func NewConstant(filters ...Filter) *Constant {
	k := &Constant{Filters: filters, IsOn: true}
	sigs := make([]SignalID, len(filters))
	for i := range filters {
		sigs[i] = filters[i].Signal
	}
	k.point = NewEndpoint(k, 1, sigs...)
	return k
}

// SimpleConstant returns a constant combinator outputting v on SignalV.
//
func SimpleConstant(v int32) *Constant {
	return NewConstant(Filter{Signal: SignalV, Count: v, Index: 1})
}

// Name implements Entity.
//
func (k *Constant) Name() string { return "constant-combinator" }

// Input implements Entity.
//
func (k *Constant) Input() *Endpoint { return k.point }

// Output implements Entity.
//
func (k *Constant) Output() *Endpoint { return k.point }

// Value returns the count of signal s.
//
func (k *Constant) Value(s SignalID) (int32, bool) {
	for _, f := range k.Filters {
		if f.Signal == s {
			return f.Count, true
		}
	}
	return 0, false
}

// OperandSignals implements Combinator. Constant combinators have no inputs.
//
func (k *Constant) OperandSignals() []SignalID { return nil }

// SetOperandSignal implements Combinator.
//
func (k *Constant) SetOperandSignal(from, to SignalID) bool { return false }

// OutputSignals implements Combinator.
//
func (k *Constant) OutputSignals() []SignalID {
	out := make([]SignalID, 0, len(k.Filters))
	for _, f := range k.Filters {
		out = append(out, f.Signal)
	}
	return out
}

// SetOutputSignal implements Combinator.
//
func (k *Constant) SetOutputSignal(from, to SignalID) bool {
	ok := false
	for i := range k.Filters {
		if k.Filters[i].Signal == from {
			k.Filters[i].Signal = to
			ok = true
		}
	}
	return ok
}

// PassThrough implements Combinator.
//
func (k *Constant) PassThrough() bool { return false }

// Record implements Entity.
//
func (k *Constant) Record() (*Record, error) {
	if !k.point.Connected() {
		return nil, Unconnectedf(entityName(k), "no wire connected")
	}
	filters := k.Filters
	if filters == nil {
		filters = []Filter{}
	}
	return newRecord(k, ConstantBehavior{IsOn: k.IsOn, Filters: filters}), nil
}
