// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command memgen synthesizes a memory into combinators and prints the
// resulting blueprint entities as JSON.
//
// Usage:
//
//	memgen [-config file.yaml] [-abits n] [-width n] [-size n] [-offset n] [-rd n] [-v level] [-o file]
//
// Log messages go to stderr.
//
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/db47h/hwcomb"
	"github.com/db47h/hwcomb/netlist"
	"github.com/db47h/hwcomb/nodes"
	"github.com/db47h/hwcomb/optimize"
	"github.com/pkg/errors"
	"github.com/voodooEntity/archivist"
)

// synthesize builds a memory with all its ports connected to primary inputs
// and outputs. It returns the laid out arena.
//
func synthesize(c *config) (*hwcomb.Arena, error) {
	var nets netlist.Nets
	cell := c.Memory.Cell(&nets)
	mem, err := nodes.NewMem(cell)
	if err != nil {
		return nil, err
	}

	t := nodes.NewTable()
	for _, name := range []string{"WR_CLK", "WR_ADDR", "WR_DATA"} {
		t.Input(cell.Connections[name])
	}
	t.Input(cell.Connections["WR_EN"][:1])
	abits := c.Memory.ABits
	rdAddr := cell.Connections["RD_ADDR"]
	for p := 0; p < c.Memory.RdPorts; p++ {
		t.Input(rdAddr[p*abits : (p+1)*abits])
	}

	var outs []hwcomb.Node
	for _, p := range mem.Ports() {
		t.Add(p.Bits(), p)
		o := nodes.NewOutput(p.Bits())
		if _, err = o.Connect(t); err != nil {
			return nil, err
		}
		outs = append(outs, o)
	}
	// memories without read ports
	if _, err = mem.Connect(t); err != nil {
		return nil, err
	}

	a := new(hwcomb.Arena)
	a.AddNodes(t.Nodes()...)
	a.AddNodes(mem)
	a.AddNodes(outs...)
	a.Layout(c.Columns)
	archivist.InfoF("synthesized %d entities", a.Len())

	groups, err := optimize.ExtractSignalGroups(a.Entities())
	if err != nil {
		return nil, errors.Wrap(err, "signal analysis")
	}
	for _, s := range groups.Signals() {
		archivist.DebugF("signal %s: %d groups", s, groups[s].Len())
	}
	return a, nil
}

// logLevels are the level names known to archivist.
//
var logLevels = map[string]bool{"debug": true, "info": true, "warning": true, "error": true, "fatal": true}

func run(args []string, stdout io.Writer) (err error) {
	c, err := parseArgs(args)
	if err != nil {
		return err
	}
	if !logLevels[c.LogLevel] {
		return errors.Errorf("unknown log level %q", c.LogLevel)
	}
	archivist.Init(c.LogLevel, "stderr")
	archivist.DebugF("memory: %+v", c.Memory)

	a, err := synthesize(c)
	if err != nil {
		return err
	}
	rs, err := a.Records()
	if err != nil {
		return err
	}

	w := stdout
	if c.Output != "" {
		var f *os.File
		if f, err = os.Create(c.Output); err != nil {
			return errors.WithStack(err)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = errors.WithStack(cerr)
			}
		}()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(rs), "write records")
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		archivist.ErrorF("%v", err)
		if hwcomb.IsKind(err, hwcomb.InvariantViolation) {
			fmt.Fprintf(os.Stderr, "%+v\n", err)
		}
		os.Exit(1)
	}
}
