// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package optimize analyzes wired combinator graphs.
//
// ExtractSignalGroups computes, for every signal identity, the partition of
// networks and endpoints that interact through that identity. Two members of
// different groups can use distinct signal identities without changing the
// behavior of the circuit, which is what a signal allocation pass needs to
// safely rename signals with ChangeSignal.
//
package optimize

import (
	"github.com/db47h/hwcomb"
)

// GroupID identifies a group within a GroupCollection. IDs stay valid after
// merges: they always resolve to the group they were merged into.
//
type GroupID int

// A Group is a set of networks and endpoints interacting through one signal
// identity. Membership has set semantics.
//
type Group struct {
	id       GroupID
	points   []*hwcomb.Endpoint
	pointSet map[*hwcomb.Endpoint]struct{}
	nets     []*hwcomb.Network
	netSet   map[*hwcomb.Network]struct{}
}

func newGroup(id GroupID) *Group {
	return &Group{
		id:       id,
		pointSet: make(map[*hwcomb.Endpoint]struct{}),
		netSet:   make(map[*hwcomb.Network]struct{}),
	}
}

// ID returns the group's id.
//
func (g *Group) ID() GroupID { return g.id }

// Endpoints returns the member endpoints in insertion order.
//
func (g *Group) Endpoints() []*hwcomb.Endpoint { return g.points }

// Networks returns the member networks in insertion order.
//
func (g *Group) Networks() []*hwcomb.Network { return g.nets }

// HasEndpoint returns true if e is a member of g.
//
func (g *Group) HasEndpoint(e *hwcomb.Endpoint) bool {
	_, ok := g.pointSet[e]
	return ok
}

// HasNetwork returns true if n is a member of g.
//
func (g *Group) HasNetwork(n *hwcomb.Network) bool {
	_, ok := g.netSet[n]
	return ok
}

func (g *Group) addPoint(e *hwcomb.Endpoint) {
	if _, ok := g.pointSet[e]; ok {
		return
	}
	g.pointSet[e] = struct{}{}
	g.points = append(g.points, e)
}

func (g *Group) addNet(n *hwcomb.Network) {
	if _, ok := g.netSet[n]; ok {
		return
	}
	g.netSet[n] = struct{}{}
	g.nets = append(g.nets, n)
}

// absorb adds all members of o to g.
//
func (g *Group) absorb(o *Group) {
	for _, p := range o.points {
		g.addPoint(p)
	}
	for _, n := range o.nets {
		g.addNet(n)
	}
}

// NetworkSignals returns all signals output by the endpoints attached to the
// group's networks, including the output signal of pass-through combinators.
//
func (g *Group) NetworkSignals() hwcomb.SignalSet {
	s := make(hwcomb.SignalSet)
	for _, n := range g.nets {
		for _, p := range n.Endpoints() {
			s.AddAll(p.Signals())
			if c, ok := p.Entity().(hwcomb.Combinator); ok && c.PassThrough() {
				for _, sig := range c.OutputSignals() {
					s.Add(sig)
				}
			}
		}
	}
	return s
}

// GroupCollection holds the groups of one signal identity. It is a
// union-find over groups with path compression and union by rank: merged
// groups are never returned again, every lookup goes through Find.
//
type GroupCollection struct {
	signal  hwcomb.SignalID
	parent  []GroupID
	rank    []int
	groups  []*Group // only valid for roots
	removed []bool   // only valid for roots
	nets    map[*hwcomb.Network]GroupID
}

// NewGroupCollection returns an empty collection for signal s.
//
func NewGroupCollection(s hwcomb.SignalID) *GroupCollection {
	return &GroupCollection{
		signal: s,
		nets:   make(map[*hwcomb.Network]GroupID),
	}
}

// Signal returns the signal identity of the collection.
//
func (gc *GroupCollection) Signal() hwcomb.SignalID { return gc.signal }

// NewGroup creates an empty group.
//
func (gc *GroupCollection) NewGroup() GroupID {
	id := GroupID(len(gc.parent))
	gc.parent = append(gc.parent, id)
	gc.rank = append(gc.rank, 0)
	gc.groups = append(gc.groups, newGroup(id))
	gc.removed = append(gc.removed, false)
	return id
}

// Find returns the id of the group id has been merged into.
//
func (gc *GroupCollection) Find(id GroupID) GroupID {
	for gc.parent[id] != id {
		gc.parent[id] = gc.parent[gc.parent[id]]
		id = gc.parent[id]
	}
	return id
}

// Group returns the current group for id.
//
func (gc *GroupCollection) Group(id GroupID) *Group {
	return gc.groups[gc.Find(id)]
}

// Lookup returns the group network n belongs to.
//
func (gc *GroupCollection) Lookup(n *hwcomb.Network) (GroupID, bool) {
	if n == nil {
		return 0, false
	}
	id, ok := gc.nets[n]
	if !ok {
		return 0, false
	}
	return gc.Find(id), true
}

// Merge merges the groups a and b and returns the id of the resulting group.
// All members of a and b belong to the result. Merging a group with itself is
// a no-op.
//
func (gc *GroupCollection) Merge(a, b GroupID) GroupID {
	a, b = gc.Find(a), gc.Find(b)
	if a == b {
		return a
	}
	if gc.rank[a] < gc.rank[b] || gc.rank[a] == gc.rank[b] && b < a {
		a, b = b, a
	}
	if gc.rank[a] == gc.rank[b] {
		gc.rank[a]++
	}
	gc.parent[b] = a
	gc.groups[a].absorb(gc.groups[b])
	gc.groups[b] = nil
	return a
}

// AddNetwork adds network n to group id. If n already belongs to another group,
// both groups are merged. It returns the id of the group n belongs to.
//
func (gc *GroupCollection) AddNetwork(id GroupID, n *hwcomb.Network) GroupID {
	if n == nil {
		return gc.Find(id)
	}
	if cur, ok := gc.Lookup(n); ok {
		return gc.Merge(cur, id)
	}
	id = gc.Find(id)
	gc.nets[n] = id
	gc.groups[id].addNet(n)
	return id
}

// AddEndpoint adds endpoint e to group id.
//
func (gc *GroupCollection) AddEndpoint(id GroupID, e *hwcomb.Endpoint) {
	gc.Group(id).addPoint(e)
}

// Groups returns the current groups, ordered by id.
//
func (gc *GroupCollection) Groups() []*Group {
	var gs []*Group
	for i := range gc.parent {
		if gc.parent[i] == GroupID(i) && !gc.removed[i] {
			gs = append(gs, gc.groups[i])
		}
	}
	return gs
}

// Len returns the number of current groups.
//
func (gc *GroupCollection) Len() int { return len(gc.Groups()) }

// endpointGroup returns the group reachable from the networks of e. If e has
// networks in two different groups, they are merged. If none of them belongs
// to a group and create is true, a new group holding e's networks is created.
//
func (gc *GroupCollection) endpointGroup(e *hwcomb.Endpoint, create bool) (GroupID, bool) {
	r, rok := gc.Lookup(e.Red())
	g, gok := gc.Lookup(e.Green())
	switch {
	case rok && gok:
		return gc.Merge(r, g), true
	case rok:
		return r, true
	case gok:
		return g, true
	case !create:
		return 0, false
	}
	id := gc.NewGroup()
	for _, c := range hwcomb.Colors {
		id = gc.AddNetwork(id, e.Network(c))
	}
	return id, true
}
