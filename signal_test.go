// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwcomb_test

import (
	"testing"

	hw "github.com/db47h/hwcomb"
	"github.com/stretchr/testify/assert"
)

func TestSignalSet(t *testing.T) {
	a, b := hw.Virtual("signal-A"), hw.SignalID{Type: "item", Name: "iron-plate"}
	s := hw.NewSignalSet(hw.SignalV, a)
	assert.True(t, s.Has(a))
	assert.False(t, s.Replace(b, a))
	assert.True(t, s.Replace(a, b))
	assert.False(t, s.Has(a))
	assert.Equal(t, []hw.SignalID{b, hw.SignalV}, s.Sorted())
	s.Delete(b)
	assert.Equal(t, []hw.SignalID{hw.SignalV}, s.Sorted())

	assert.True(t, hw.SignalEach.IsWildcard())
	assert.False(t, hw.SignalV.IsWildcard())
	assert.True(t, hw.SignalID{}.IsZero())
	assert.Equal(t, "virtual/signal-V", hw.SignalV.String())
}
