// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package optimize_test

import (
	"testing"

	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/optimize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var signalA = hwcomb.Virtual("signal-A")

func copyV() *hwcomb.Decider {
	return hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:        hwcomb.SignalV,
		Constant:           hwcomb.Literal(0),
		Comparator:         hwcomb.NE,
		OutputSignal:       hwcomb.SignalV,
		CopyCountFromInput: true,
	})
}

func incV() *hwcomb.Arithmetic {
	return hwcomb.NewArithmetic(hwcomb.ArithmeticCondition{
		FirstSignal:  hwcomb.SignalV,
		Constant:     hwcomb.Literal(1),
		Operation:    hwcomb.Add,
		OutputSignal: hwcomb.SignalV,
	})
}

func positive() *hwcomb.Decider {
	return hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:  hwcomb.SignalV,
		Constant:     hwcomb.Literal(0),
		Comparator:   hwcomb.GT,
		OutputSignal: hwcomb.SignalC,
	})
}

// chain wires k -> mid -> end with red wires.
func chain(mid hwcomb.Combinator) (*hwcomb.Constant, *hwcomb.Decider, []hwcomb.Entity) {
	k, end := hwcomb.SimpleConstant(5), positive()
	hwcomb.MakeConnection(hwcomb.Red, k.Output(), mid.Input())
	hwcomb.MakeConnection(hwcomb.Red, mid.Output(), end.Input())
	return k, end, []hwcomb.Entity{k, mid, end}
}

func TestExtractSignalGroups_passThrough(t *testing.T) {
	mid := copyV()
	k, end, es := chain(mid)
	sg, err := optimize.ExtractSignalGroups(es)
	require.NoError(t, err)
	assert.Equal(t, []hwcomb.SignalID{hwcomb.SignalC, hwcomb.SignalV}, sg.Signals())

	v := sg[hwcomb.SignalV]
	require.Equal(t, 1, v.Len())
	g := v.Groups()[0]
	for _, e := range []*hwcomb.Endpoint{k.Output(), mid.Input(), mid.Output(), end.Input()} {
		assert.True(t, g.HasEndpoint(e), "%s port %d", e.Entity().Name(), e.Port())
	}
	assert.True(t, g.HasNetwork(k.Output().Red()))
	assert.True(t, g.HasNetwork(end.Input().Red()))
	assert.False(t, g.HasEndpoint(end.Output()))
	assert.Equal(t, []hwcomb.SignalID{hwcomb.SignalV}, g.NetworkSignals().Sorted())

	c := sg[hwcomb.SignalC]
	require.Equal(t, 1, c.Len())
	assert.True(t, c.Groups()[0].HasEndpoint(end.Output()))
}

// readV copies V when C is zero.
func readV() *hwcomb.Decider {
	return hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:        hwcomb.SignalC,
		Constant:           hwcomb.Literal(0),
		Comparator:         hwcomb.EQ,
		OutputSignal:       hwcomb.SignalV,
		CopyCountFromInput: true,
	})
}

func TestExtractSignalGroups_passThroughChain(t *testing.T) {
	k, end := hwcomb.SimpleConstant(5), positive()
	p1, p2, p3 := copyV(), readV(), copyV()
	hwcomb.MakeConnection(hwcomb.Red, k.Output(), p1.Input())
	hwcomb.MakeConnection(hwcomb.Green, p1.Output(), p2.Input())
	hwcomb.MakeConnection(hwcomb.Red, p2.Output(), p3.Input())
	hwcomb.MakeConnection(hwcomb.Red, p3.Output(), end.Input())

	for name, es := range map[string][]hwcomb.Entity{
		"forward":  {k, p1, p2, p3, end},
		"backward": {end, p3, p2, p1, k},
	} {
		sg, err := optimize.ExtractSignalGroups(es)
		require.NoError(t, err, name)

		v := sg[hwcomb.SignalV]
		require.Equal(t, 1, v.Len(), name)
		first, ok := v.Lookup(k.Output().Red())
		require.True(t, ok, name)
		last, ok := v.Lookup(end.Input().Red())
		require.True(t, ok, name)
		assert.Equal(t, first, last, name)
		mid, ok := v.Lookup(p2.Input().Green())
		require.True(t, ok, name)
		assert.Equal(t, first, mid, name)

		// p2's C operand and end's C output are not connected
		c := sg[hwcomb.SignalC]
		assert.Equal(t, 2, c.Len(), name)
		_, ok = c.Lookup(p2.Input().Green())
		assert.True(t, ok, name)
	}
}

func TestExtractSignalGroups_compute(t *testing.T) {
	mid := incV()
	k, end, es := chain(mid)
	sg, err := optimize.ExtractSignalGroups(es)
	require.NoError(t, err)

	v := sg[hwcomb.SignalV]
	require.Equal(t, 2, v.Len())
	in, ok := v.Lookup(k.Output().Red())
	require.True(t, ok)
	out, ok := v.Lookup(end.Input().Red())
	require.True(t, ok)
	assert.NotEqual(t, in, out)
	assert.True(t, v.Group(in).HasEndpoint(mid.Input()))
	assert.True(t, v.Group(out).HasEndpoint(mid.Output()))
	assert.True(t, v.Group(out).HasEndpoint(end.Input()))
}

func TestExtractSignalGroups_separate(t *testing.T) {
	k1, d1 := hwcomb.SimpleConstant(1), positive()
	k2, d2 := hwcomb.SimpleConstant(2), positive()
	hwcomb.MakeConnection(hwcomb.Green, k1.Output(), d1.Input())
	hwcomb.MakeConnection(hwcomb.Red, k2.Output(), d2.Input())
	sg, err := optimize.ExtractSignalGroups([]hwcomb.Entity{k1, d1, k2, d2})
	require.NoError(t, err)
	v := sg[hwcomb.SignalV]
	assert.Equal(t, 2, v.Len())
	g1, _ := v.Lookup(d1.Input().Green())
	g2, _ := v.Lookup(d2.Input().Red())
	assert.NotEqual(t, g1, g2)
	// both outputs are unconnected: each gets its own group
	assert.Equal(t, 2, sg[hwcomb.SignalC].Len())
}

func TestExtractSignalGroups_noProducer(t *testing.T) {
	d, o := positive(), hwcomb.NewConstant()
	hwcomb.MakeConnection(hwcomb.Red, o.Output(), d.Input())
	sg, err := optimize.ExtractSignalGroups([]hwcomb.Entity{o, d})
	require.NoError(t, err)
	v := sg[hwcomb.SignalV]
	require.Equal(t, 1, v.Len())
	assert.True(t, v.Groups()[0].HasEndpoint(d.Input()))
	assert.True(t, v.Groups()[0].HasNetwork(d.Input().Red()))
}

func TestExtractSignalGroups_wildcard(t *testing.T) {
	k1, k2 := hwcomb.SimpleConstant(1), hwcomb.SimpleConstant(2)
	w := hwcomb.NewDecider(hwcomb.DeciderCondition{
		FirstSignal:  hwcomb.SignalEverything,
		Constant:     hwcomb.Literal(0),
		Comparator:   hwcomb.GT,
		OutputSignal: hwcomb.SignalC,
	})
	hwcomb.MakeConnection(hwcomb.Red, k1.Output(), w.Input())
	hwcomb.MakeConnection(hwcomb.Green, k2.Output(), w.Input())
	sg, err := optimize.ExtractSignalGroups([]hwcomb.Entity{k1, k2, w})
	require.NoError(t, err)
	assert.NotContains(t, sg, hwcomb.SignalEverything)
	v := sg[hwcomb.SignalV]
	require.Equal(t, 1, v.Len())
	assert.True(t, v.Groups()[0].HasEndpoint(k1.Output()))
	assert.True(t, v.Groups()[0].HasEndpoint(k2.Output()))
}

type lamp struct {
	hwcomb.EntityBase
	ep *hwcomb.Endpoint
}

func newLamp() *lamp {
	l := new(lamp)
	l.ep = hwcomb.NewEndpoint(l, 1)
	return l
}

func (l *lamp) Name() string                    { return "small-lamp" }
func (l *lamp) Input() *hwcomb.Endpoint         { return l.ep }
func (l *lamp) Output() *hwcomb.Endpoint        { return l.ep }
func (l *lamp) Record() (*hwcomb.Record, error) { return nil, nil }

func TestExtractSignalGroups_unknownEntity(t *testing.T) {
	k, l := hwcomb.SimpleConstant(1), newLamp()
	hwcomb.MakeConnection(hwcomb.Red, k.Output(), l.Input())
	_, err := optimize.ExtractSignalGroups([]hwcomb.Entity{k, l})
	require.Error(t, err)
	assert.True(t, hwcomb.IsKind(err, hwcomb.InvariantViolation), "%v", err)
}
