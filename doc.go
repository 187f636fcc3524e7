// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package hwcomb provides the entity and wire model used to compile netlist cells
into Factorio style combinator blueprints.

A blueprint is a set of entities (constant, decider and arithmetic
combinators), each with one or two endpoints. Endpoints are joined by red or
green wires with MakeConnection; all endpoints transitively joined by wires of
the same color form a Network, and every network carries the sum of the
signals output by its members.

Cells are synthesized into Nodes (see the nodes sub-package). Nodes are wired
lazily: each node resolves its inputs through a Resolver when Connect is
called, which allows feedback paths such as the latches of a memory.

Once wired, the entities are added to an Arena, which numbers them, lays them
out and emits their blueprint records. A Circuit runs a step by step simulation
of the same entities, which is mostly useful for testing.

The optimize sub-package analyzes a wired set of combinators and computes the
groups of networks and endpoints that can be safely assigned distinct signal
identities.

*/
package hwcomb
