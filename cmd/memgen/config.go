// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package main

import (
	"flag"
	"io"
	"os"

	"github.com/db47h/hwcomb/netlist"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config is the memgen configuration. Command line flags override the values
// read from the configuration file.
//
type config struct {
	Memory   netlist.MemSpec `yaml:"memory"`
	LogLevel string          `yaml:"log_level"`
	Columns  int             `yaml:"columns"`
	Output   string          `yaml:"output"`
}

func defaultConfig() *config {
	return &config{
		Memory:   netlist.MemSpec{ABits: 4, Width: 8, Size: 16, RdPorts: 1},
		LogLevel: "warning",
		Columns:  16,
	}
}

func (c *config) read(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

func (c *config) load(name string) error {
	f, err := os.Open(name)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	return errors.Wrap(c.read(f), name)
}

// parseArgs builds the configuration from the command line.
//
func parseArgs(args []string) (*config, error) {
	fs := flag.NewFlagSet("memgen", flag.ContinueOnError)
	var (
		file    = fs.String("config", "", "YAML configuration `file`")
		abits   = fs.Int("abits", 0, "address width")
		width   = fs.Int("width", 0, "data width")
		size    = fs.Int("size", 0, "number of rows")
		offset  = fs.Int("offset", 0, "address of the first row")
		rd      = fs.Int("rd", 0, "number of read ports")
		level   = fs.String("v", "", "log `level` (debug, info, warning, error, fatal)")
		columns = fs.Int("columns", 0, "layout columns")
		output  = fs.String("o", "", "write the blueprint to `file` instead of stdout")
	)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	c := defaultConfig()
	if *file != "" {
		if err := c.load(*file); err != nil {
			return nil, err
		}
	}
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "abits":
			c.Memory.ABits = *abits
		case "width":
			c.Memory.Width = *width
		case "size":
			c.Memory.Size = *size
		case "offset":
			c.Memory.Offset = *offset
		case "rd":
			c.Memory.RdPorts = *rd
		case "v":
			c.LogLevel = *level
		case "columns":
			c.Columns = *columns
		case "o":
			c.Output = *output
		}
	})
	if fs.NArg() > 0 {
		err = errors.Errorf("unexpected arguments: %v", fs.Args())
	}
	return c, err
}
