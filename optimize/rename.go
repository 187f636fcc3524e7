// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package optimize

import (
	"github.com/db47h/hwcomb"
	"github.com/pkg/errors"
)

func changeEndpointSignal(e *hwcomb.Endpoint, from, to hwcomb.SignalID) error {
	ent := e.Entity()
	c, err := combinator(ent)
	if err != nil {
		return err
	}
	if _, ok := c.(*hwcomb.Constant); ok {
		c.SetOutputSignal(from, to)
		return nil
	}
	if e == c.Input() {
		if !c.SetOperandSignal(from, to) {
			return hwcomb.Invariantf(ent.Name(), "no operand uses signal %s", from)
		}
		return nil
	}
	if !c.SetOutputSignal(from, to) {
		return hwcomb.Invariantf(ent.Name(), "output signal is not %s", from)
	}
	return nil
}

// ChangeSignal replaces the collection's signal with to in all members of
// group id: the carried signals of its networks, the output signals of its
// endpoints and the operand or output fields of the underlying combinators.
//
// The group is removed from the collection.
//
func (gc *GroupCollection) ChangeSignal(id GroupID, to hwcomb.SignalID) error {
	from := gc.signal
	root := gc.Find(id)
	if gc.removed[root] {
		return hwcomb.Invariantf("group", "group %d of %s already renamed", root, from)
	}
	g := gc.groups[root]
	gc.removed[root] = true

	for _, n := range g.nets {
		delete(gc.nets, n)
		n.Signals().Replace(from, to)
	}
	for _, e := range g.points {
		e.Signals().Replace(from, to)
		if err := changeEndpointSignal(e, from, to); err != nil {
			return errors.Wrapf(err, "change signal %s to %s", from, to)
		}
	}
	return nil
}

// ChangeSignal renames signal from to to in group id of the collection for
// from.
//
func (sg SignalGroups) ChangeSignal(id GroupID, from, to hwcomb.SignalID) error {
	gc, ok := sg[from]
	if !ok {
		return hwcomb.Invariantf("signal "+from.String(), "no such signal group collection")
	}
	return gc.ChangeSignal(id, to)
}
