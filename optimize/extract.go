// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package optimize

import (
	"github.com/db47h/hwcomb"
)

// SignalGroups maps signal identities to their group collection.
//
type SignalGroups map[hwcomb.SignalID]*GroupCollection

func (sg SignalGroups) get(s hwcomb.SignalID) *GroupCollection {
	gc, ok := sg[s]
	if !ok {
		gc = NewGroupCollection(s)
		sg[s] = gc
	}
	return gc
}

// Signals returns the signal identities in sg, sorted.
//
func (sg SignalGroups) Signals() []hwcomb.SignalID {
	s := make(hwcomb.SignalSet, len(sg))
	for sig := range sg {
		s.Add(sig)
	}
	return s.Sorted()
}

// combinator returns e as a Combinator. Only the three known variants are
// accepted.
//
func combinator(e hwcomb.Entity) (hwcomb.Combinator, error) {
	switch c := e.(type) {
	case *hwcomb.Constant:
		return c, nil
	case *hwcomb.Decider:
		return c, nil
	case *hwcomb.Arithmetic:
		return c, nil
	}
	return nil, hwcomb.Invariantf(e.Name(), "entity is not a constant, decider or arithmetic combinator")
}

func hasWildcard(signals []hwcomb.SignalID) bool {
	for _, s := range signals {
		if s.IsWildcard() {
			return true
		}
	}
	return false
}

// ExtractSignalGroups computes the signal groups of a fully wired set of
// combinators.
//
// First, for every signal produced by a combinator, the networks attached to
// its output are grouped together with the output endpoint. Then, for each
// decider or arithmetic combinator, the groups reachable from its input
// networks are merged for each of its operand signals and the input endpoint
// joins the group. A pass-through combinator also merges its input and output
// groups. A combinator with a wildcard operand merges its input groups for
// every known signal.
//
func ExtractSignalGroups(entities []hwcomb.Entity) (SignalGroups, error) {
	sg := make(SignalGroups)
	combs := make([]hwcomb.Combinator, 0, len(entities))
	for _, e := range entities {
		c, err := combinator(e)
		if err != nil {
			return nil, err
		}
		combs = append(combs, c)
	}

	for _, c := range combs {
		out := c.Output()
		for _, s := range c.OutputSignals() {
			gc := sg.get(s)
			id, _ := gc.endpointGroup(out, true)
			for _, col := range hwcomb.Colors {
				id = gc.AddNetwork(id, out.Network(col))
			}
			gc.AddEndpoint(id, out)
		}
	}

	for _, c := range combs {
		ops := c.OperandSignals()
		if len(ops) == 0 {
			continue
		}
		in := c.Input()

		if hasWildcard(ops) {
			for _, s := range sg.Signals() {
				sg[s].endpointGroup(in, false)
			}
			continue
		}

		for _, s := range ops {
			gc := sg.get(s)
			id, _ := gc.endpointGroup(in, true)
			gc.AddEndpoint(id, in)
		}

		if c.PassThrough() {
			for _, s := range c.OutputSignals() {
				gc := sg.get(s)
				inID, ok := gc.endpointGroup(in, false)
				if !ok {
					continue
				}
				if outID, ok := gc.endpointGroup(c.Output(), false); ok {
					gc.Merge(inID, outID)
				}
			}
		}
	}
	return sg, nil
}
