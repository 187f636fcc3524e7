// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb

import "sort"

// SignalID identifies the type of a value carried on a wire. Several signal
// identities can share a single wire.
//
type SignalID struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// Virtual returns the virtual signal with the given name.
//
func Virtual(name string) SignalID {
	return SignalID{Type: "virtual", Name: name}
}

// Common signals.
//
var (
	SignalV = Virtual("signal-V")
	SignalC = Virtual("signal-C")

	// Wildcards. A combinator using one of these as an operand
	// operates on every signal at once.
	SignalEach       = Virtual("signal-each")
	SignalEverything = Virtual("signal-everything")
	SignalAnything   = Virtual("signal-anything")
)

// IsZero returns true if s is the zero SignalID.
//
func (s SignalID) IsZero() bool { return s == SignalID{} }

// IsWildcard returns true if s is one of SignalEach, SignalEverything or
// SignalAnything.
//
func (s SignalID) IsWildcard() bool {
	return s == SignalEach || s == SignalEverything || s == SignalAnything
}

func (s SignalID) String() string {
	return s.Type + "/" + s.Name
}

// SignalSet is a set of signal identities.
//
type SignalSet map[SignalID]struct{}

// NewSignalSet returns a set holding the given signals.
//
func NewSignalSet(signals ...SignalID) SignalSet {
	s := make(SignalSet, len(signals))
	for _, sig := range signals {
		s.Add(sig)
	}
	return s
}

// Add adds sig to the set.
//
func (s SignalSet) Add(sig SignalID) { s[sig] = struct{}{} }

// AddAll adds all signals of o to s.
//
func (s SignalSet) AddAll(o SignalSet) {
	for sig := range o {
		s[sig] = struct{}{}
	}
}

// Delete removes sig from the set.
//
func (s SignalSet) Delete(sig SignalID) { delete(s, sig) }

// Has returns true if sig is in the set.
//
func (s SignalSet) Has(sig SignalID) bool {
	_, ok := s[sig]
	return ok
}

// Replace replaces from with to. It returns false if from was not in the set.
//
func (s SignalSet) Replace(from, to SignalID) bool {
	if !s.Has(from) {
		return false
	}
	delete(s, from)
	s[to] = struct{}{}
	return true
}

// Sorted returns the signals in the set, sorted by type then name.
//
func (s SignalSet) Sorted() []SignalID {
	out := make([]SignalID, 0, len(s))
	for sig := range s {
		out = append(out, sig)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type < out[j].Type
		}
		return out[i].Name < out[j].Name
	})
	return out
}
