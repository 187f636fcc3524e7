// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

// An Arena holds the entities of a blueprint and assigns them stable entity
// numbers, starting at 1, in insertion order.
//
type Arena struct {
	entities []Entity
}

// Add adds entities to the arena. It panics if an entity already belongs to
// an arena.
//
func (a *Arena) Add(entities ...Entity) {
	for _, e := range entities {
		b := e.Base()
		if b.id != 0 {
			panic("entity " + entityName(e) + " already in an arena")
		}
		a.entities = append(a.entities, e)
		b.id = len(a.entities)
	}
}

// AddNodes adds the combinators of all given nodes.
//
func (a *Arena) AddNodes(nodes ...Node) {
	for _, n := range nodes {
		a.Add(n.Combinators()...)
	}
}

// Entity returns the entity with the given number, or nil.
//
func (a *Arena) Entity(id int) Entity {
	if id < 1 || id > len(a.entities) {
		return nil
	}
	return a.entities[id-1]
}

// Entities returns all entities in the arena, ordered by entity number.
//
func (a *Arena) Entities() []Entity { return a.entities }

// Len returns the number of entities in the arena.
//
func (a *Arena) Len() int { return len(a.entities) }

// Layout places entities on a grid with the given number of columns. Two port
// combinators occupy two tiles, vertically.
//
func (a *Arena) Layout(columns int) {
	if columns <= 0 {
		columns = 16
	}
	for i, e := range a.entities {
		b := e.Base()
		x, row := i%columns, i/columns
		b.Position.X = float64(x) + 0.5
		if e.Input() == e.Output() {
			b.Position.Y = float64(row*2) + 0.5
		} else {
			b.Position.Y = float64(row*2) + 1
		}
	}
}

// Records returns the blueprint records of all entities. It fails on the first
// entity with an unconnected required endpoint; no partial output is returned.
//
func (a *Arena) Records() ([]*Record, error) {
	rs := make([]*Record, 0, len(a.entities))
	for _, e := range a.entities {
		r, err := e.Record()
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return rs, nil
}
