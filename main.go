// Copyright © 2021-2025 The Gomon Project.

package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/zosmac/gocore"
	"golang.org/x/term"

	"github.com/zosmac/godmesg/filter"
	"github.com/zosmac/godmesg/follow"
	"github.com/zosmac/godmesg/kmsg"
	"github.com/zosmac/godmesg/render"
	"github.com/zosmac/godmesg/serve"
)

// main
func main() {
	gocore.Main(Main)
}

// Main called from gocore.Main.
func Main(ctx context.Context) error {
	// a closed stdout must fail the write rather than kill the process
	signal.Ignore(syscall.SIGPIPE)

	if flags.config != "" {
		data, err := os.ReadFile(flags.config)
		if err != nil {
			return gocore.Error("config", err)
		}
		if err := applyConfig(&gocore.Flags.FlagSet, data); err != nil {
			return err
		}
	}

	terminal := term.IsTerminal(int(os.Stdout.Fd()))
	md := mode(flags.json, flags.raw)
	opts := render.Options{
		Decode:      flags.decode,
		NoEscape:    flags.noescape,
		ForcePrefix: flags.forcePrefix,
		Time:        flags.time,
		Styler:      render.Plain(),
	}
	if flags.color.enabled(md, terminal) {
		opts.Styler = render.ANSI()
	}
	if md == render.ModeDecode && opts.Time.Wallclock() {
		boot, err := render.BootTime()
		if err != nil {
			return err
		}
		opts.Boot = boot
	}

	src, err := kmsg.Open(kmsg.Options{
		SeekEnd: flags.follow && flags.end,
	})
	if err != nil {
		return err
	}
	defer src.Close()

	var sink io.Writer = os.Stdout
	if flags.pager && terminal && !flags.follow {
		p, err := startPager()
		if err != nil {
			gocore.Error("pager", err).Warn()
		} else {
			defer p.Close()
			sink = p
		}
	}

	loop := follow.New(
		src,
		filter.New(flags.levels, flags.facilities),
		render.New(md, opts),
		sink,
		flags.follow,
	)

	if port := serve.Port(); port > 0 {
		hub, err := serve.Serve(ctx, port, loop.Stats)
		if err != nil {
			return err
		}
		loop.Tap(hub.Publish)
	}

	gocore.Error("start", nil, map[string]string{
		"pid":     strconv.Itoa(os.Getpid()),
		"command": strings.Join(os.Args, " "),
		"mode":    md.String(),
		"follow":  strconv.FormatBool(flags.follow),
	}).Info()

	return loop.Run(ctx)
}
