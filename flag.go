// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"errors"
	"strings"

	"github.com/zosmac/gocore"

	"github.com/zosmac/godmesg/filter"
	"github.com/zosmac/godmesg/kmsg"
	"github.com/zosmac/godmesg/render"
)

type (
	// color is a command line flag type for coloring decoded output.
	color string
)

const (
	colorAuto   color = "auto"
	colorAlways color = "always"
	colorNever  color = "never"
)

var (
	// flags defines the command line flags.
	flags = struct {
		follow      bool
		end         bool
		raw         bool
		json        bool
		decode      bool
		noescape    bool
		forcePrefix bool
		pager       bool
		levels      filter.Levels
		facilities  filter.Facilities
		time        render.TimeFormat
		color
		config string
	}{
		time:  render.TimeRaw,
		color: colorAuto,
	}

	// colors valid values for color.
	colors = gocore.ValidValue[color]{}.Define(
		colorAuto,
		colorAlways,
		colorNever,
	)
)

// init initializes the command line flags.
func init() {
	gocore.Flags.Var(&flags.follow, "follow", "[-follow]",
		"Wait for and print new records until interrupted")
	gocore.Flags.Var(&flags.end, "end", "[-end]",
		"With -follow, skip the records already buffered")
	gocore.Flags.Var(&flags.raw, "raw", "[-raw]",
		"Print records in the kernel log device format")
	gocore.Flags.Var(&flags.json, "json", "[-json]",
		"Print records as a JSON document, overriding -raw")
	gocore.Flags.Var(&flags.decode, "decode", "[-decode]",
		"Prefix each line with the record's facility and level")
	gocore.Flags.Var(&flags.noescape, "noescape", "[-noescape]",
		"Print non-printable characters in messages unescaped")
	gocore.Flags.Var(&flags.forcePrefix, "force-prefix", "[-force-prefix]",
		"Repeat the prefix on each line of a multi-line message")
	gocore.Flags.Var(&flags.pager, "pager", "[-pager]",
		"Page output through $PAGER, or less -R, when writing to a terminal")

	levels := strings.Join(kmsg.LevelNames(), "|")
	gocore.Flags.Var(&flags.levels, "level", "[-level <list>]",
		"A comma-separated `list` of levels to print, "+levels+", where err+ and +err name ranges")
	gocore.Flags.Var(&flags.facilities, "facility", "[-facility <list>]",
		"A comma-separated `list` of facilities to print")

	times := strings.Join(render.TimeFormats(), "|")
	gocore.Flags.Var(&flags.time, "time", "[-time "+times+"]",
		"The timestamp `format` of decoded records, "+times)

	s := strings.Join(colors.ValidValues(), "|")
	gocore.Flags.Var(&flags.color, "color", "[-color "+s+"]",
		"Color decoded output `"+s+"`")

	gocore.Flags.Var(&flags.config, "config", "[-config <path>]",
		"The `path` to a YAML file of flag values, applied where the command line sets none")

	gocore.Flags.CommandDescription = `Prints the kernel ring buffer, read from /dev/kmsg,
	optionally following it as new records are logged.`
}

// Set is a flag.Value interface method to enable color as a command line flag.
func (c *color) Set(s string) error {
	s = strings.ToLower(s)
	if !colors.IsValid(color(s)) {
		return errors.New("valid values are " + strings.Join(colors.ValidValues(), ", "))
	}
	*c = color(s)
	return nil
}

// String is a flag.Value interface method to enable color as a command line flag.
func (c *color) String() string {
	return string(*c)
}

// enabled reports whether output in mode is colored.
func (c color) enabled(mode render.Mode, terminal bool) bool {
	if mode != render.ModeDecode {
		return false
	}
	switch c {
	case colorAlways:
		return true
	case colorNever:
		return false
	}
	return terminal
}

// mode resolves the output mode, where -json wins over -raw.
func mode(json, raw bool) render.Mode {
	switch {
	case json:
		return render.ModeJSON
	case raw:
		return render.ModeRaw
	}
	return render.ModeDecode
}
