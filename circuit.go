// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import (
	"sync"

	"github.com/pkg/errors"
)

// Frame holds signal values, either the output of a combinator or the sum of
// all outputs on a network. Zero values are omitted.
//
type Frame map[SignalID]int32

func (f Frame) add(o Frame) {
	for s, v := range o {
		if v += f[s]; v != 0 {
			f[s] = v
		} else {
			delete(f, s)
		}
	}
}

func (f Frame) set(s SignalID, v int32) {
	if v != 0 {
		f[s] = v
	}
}

type driver struct {
	slot int // index in Filters, -1 if s is not a filter signal
	s    SignalID
	fn   func() int32
}

func (d *driver) signal(k *Constant) SignalID {
	if d.slot < 0 || d.slot >= len(k.Filters) {
		return d.s
	}
	return k.Filters[d.slot].Signal
}

// Circuit is a runnable simulation of a set of combinators.
//
// Every step, each network carries the sum of the outputs of its member
// endpoints as computed during the previous step, and each combinator computes
// its next output from the sum of its red and green input networks. This gives
// every combinator a one step propagation delay.
//
type Circuit struct {
	combs   []Combinator
	index   map[Entity]int
	s0      []Frame // outputs frame #0
	s1      []Frame // outputs frame #1
	drivers map[*Constant][]driver
	workers int
	tick    uint
}

// NewCircuit builds a new circuit simulating the given entities.
//
// workers is the number of goroutines used to update the state of the circuit
// each step. If less or equal to 1, updates run on the calling goroutine.
//
// Only *Constant, *Decider and *Arithmetic entities with concrete operand and
// output signals can be simulated.
//
func NewCircuit(workers int, entities ...Entity) (*Circuit, error) {
	if len(entities) == 0 {
		return nil, errors.New("empty entity list")
	}
	c := &Circuit{
		index:   make(map[Entity]int, len(entities)),
		drivers: make(map[*Constant][]driver),
		workers: workers,
	}
	for _, e := range entities {
		if _, ok := c.index[e]; ok {
			return nil, errors.Errorf("duplicate entity %s", entityName(e))
		}
		cb, ok := e.(Combinator)
		if !ok {
			return nil, Unsupportedf(entityName(e), "entity cannot be simulated")
		}
		for _, s := range append(cb.OperandSignals(), cb.OutputSignals()...) {
			if s.IsWildcard() {
				return nil, Unsupportedf(entityName(e), "wildcard signal %s cannot be simulated", s)
			}
		}
		c.index[e] = len(c.combs)
		c.combs = append(c.combs, cb)
	}
	c.s0 = make([]Frame, len(c.combs))
	c.s1 = make([]Frame, len(c.combs))
	for i := range c.s0 {
		c.s0[i] = Frame{}
	}
	return c, nil
}

// Drive overrides the count of signal s output by k: fn is called every step
// and its result replaces the filter value for s.
//
// If s is the signal of one of k's filters, the driver follows that filter:
// renaming its signal afterwards, as signal group optimization does, makes fn
// drive the new signal.
//
func (c *Circuit) Drive(k *Constant, s SignalID, fn func() int32) {
	slot := -1
	for i := range k.Filters {
		if k.Filters[i].Signal == s {
			slot = i
			break
		}
	}
	c.drivers[k] = append(c.drivers[k], driver{slot, s, fn})
}

// netValue returns the sum of the outputs on n.
//
func (c *Circuit) netValue(n *Network, f Frame) {
	if n == nil {
		return
	}
	for _, p := range n.points {
		if p.owner.Output() != p {
			continue
		}
		if i, ok := c.index[p.owner]; ok {
			f.add(c.s0[i])
		}
	}
}

func (c *Circuit) input(e *Endpoint) Frame {
	f := Frame{}
	c.netValue(e.Red(), f)
	c.netValue(e.Green(), f)
	return f
}

func (c *Circuit) update(i int) {
	out := Frame{}
	switch k := c.combs[i].(type) {
	case *Constant:
		if !k.IsOn {
			break
		}
		for _, f := range k.Filters {
			out.set(f.Signal, f.Count)
		}
		ds := c.drivers[k]
		for j := range ds {
			s := ds[j].signal(k)
			delete(out, s)
			out.set(s, ds[j].fn())
		}
	case *Decider:
		in := c.input(k.in)
		cond := &k.Cond
		right := in[derefSignal(cond.SecondSignal)]
		if cond.Constant != nil {
			right = *cond.Constant
		}
		if cond.Comparator.Compare(in[cond.FirstSignal], right) {
			if cond.CopyCountFromInput {
				out.set(cond.OutputSignal, in[cond.OutputSignal])
			} else {
				out.set(cond.OutputSignal, 1)
			}
		}
	case *Arithmetic:
		in := c.input(k.in)
		cond := &k.Cond
		right := in[derefSignal(cond.SecondSignal)]
		if cond.Constant != nil {
			right = *cond.Constant
		}
		out.set(cond.OutputSignal, cond.Operation.Apply(in[cond.FirstSignal], right))
	}
	c.s1[i] = out
}

func derefSignal(s *SignalID) SignalID {
	if s == nil {
		return SignalID{}
	}
	return *s
}

// Step advances the simulation by one step.
//
func (c *Circuit) Step() {
	n := len(c.combs)
	if c.workers <= 1 {
		for i := 0; i < n; i++ {
			c.update(i)
		}
	} else {
		var wg sync.WaitGroup
		size := n / c.workers
		if size*c.workers < n {
			size++
		}
		for start := 0; start < n; start += size {
			end := start + size
			if end > n {
				end = n
			}
			wg.Add(1)
			go func(start, end int) {
				for i := start; i < end; i++ {
					c.update(i)
				}
				wg.Done()
			}(start, end)
		}
		wg.Wait()
	}
	c.tick++
	c.s0, c.s1 = c.s1, c.s0
}

// Run runs the simulation for n steps.
//
func (c *Circuit) Run(n int) {
	for ; n > 0; n-- {
		c.Step()
	}
}

// Steps returns the value of the step counter.
//
func (c *Circuit) Steps() uint {
	return c.tick
}

// Size returns the combinator count in the circuit.
//
func (c *Circuit) Size() int { return len(c.combs) }

// Output returns the current output of entity e.
//
func (c *Circuit) Output(e Entity) Frame {
	i, ok := c.index[e]
	if !ok {
		return Frame{}
	}
	return c.s0[i]
}

// Value returns the current value of signal s on the network of color col
// attached to endpoint e, or 0 if there is no such network.
//
func (c *Circuit) Value(e *Endpoint, col Color, s SignalID) int32 {
	f := Frame{}
	c.netValue(e.Network(col), f)
	return f[s]
}
