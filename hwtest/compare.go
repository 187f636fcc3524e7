// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/nodes"
)

func randValue(r *rand.Rand) int32 {
	if r.Int63()&(1<<62) != 0 {
		return r.Int31n(33) - 16
	}
	return int32(r.Uint32())
}

// CompareFunc drives the inputs ins of bench b with random values and checks
// that the value read at out after the given number of steps matches fn.
// fn receives the input values in the same order as ins.
//
func CompareFunc(t *testing.T, b *Bench, steps int, out *hwcomb.Endpoint, ins []*nodes.Input, fn func(args []int32) int32) {
	t.Helper()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	args := make([]int32, len(ins))

	check := func() {
		t.Helper()
		for i, in := range ins {
			b.Set(in, args[i])
		}
		b.Run(steps)
		if ex, got := fn(args), b.Read(out); ex != got {
			var sb strings.Builder
			for i, v := range args {
				if i > 0 {
					sb.WriteString(", ")
				}
				fmt.Fprintf(&sb, "in%d=%d", i, v)
			}
			t.Fatalf("\nExpected %s => %d\nGot %d", sb.String(), ex, got)
		}
	}

	// all 0
	check()

	for i := 0; i < 64; i++ {
		for a := range args {
			args[a] = randValue(r)
		}
		check()
	}
}
