// Copyright © 2021-2025 The Gomon Project.

package follow

import (
	"context"
	"errors"
	"io"
	"os"
	"strconv"
	"sync/atomic"
	"syscall"

	"github.com/zosmac/gocore"

	"github.com/zosmac/godmesg/filter"
	"github.com/zosmac/godmesg/kmsg"
	"github.com/zosmac/godmesg/render"
)

type (
	// State of the Loop.
	State int32

	// Reader is the record source the Loop drains.
	Reader interface {
		// ReadRecord returns the next record, nil if none is buffered, or io.EOF.
		ReadRecord() (*kmsg.Raw, error)
		// Wait blocks until a record is available or ctx is done.
		Wait(ctx context.Context) error
	}

	// sourceCounters are the statistics a kmsg.Source keeps.
	sourceCounters interface {
		Overwrites() uint64
		Oversized() uint64
		Lost() uint64
	}

	// Loop owns the read/parse/filter/render/write cycle.
	Loop struct {
		source   Reader
		filter   *filter.Set
		renderer render.Renderer
		sink     io.Writer
		follow   bool
		taps     []func(*kmsg.Record)
		state    atomic.Int32

		read      atomic.Uint64
		malformed atomic.Uint64
		truncated atomic.Uint64
		filtered  atomic.Uint64
		rendered  atomic.Uint64
	}

	// Stats are the Loop's record counts.
	Stats struct {
		Read       uint64
		Malformed  uint64
		Truncated  uint64
		Filtered   uint64
		Rendered   uint64
		Oversized  uint64
		Overwrites uint64
		Lost       uint64
	}
)

const (
	Draining State = iota
	Following
	Terminated
)

var (
	// errSinkClosed reports that the output's reader went away.
	errSinkClosed = errors.New("output closed")
)

// String names the state.
func (s State) String() string {
	switch s {
	case Draining:
		return "draining"
	case Following:
		return "following"
	}
	return "terminated"
}

// New creates a Loop. It writes every record that fs passes, rendered by rd, to sink.
func New(src Reader, fs *filter.Set, rd render.Renderer, sink io.Writer, follow bool) *Loop {
	return &Loop{
		source:   src,
		filter:   fs,
		renderer: rd,
		sink:     sink,
		follow:   follow,
	}
}

// Tap registers fn to receive each record that passes the filter, before it is rendered.
// Taps must be registered before Run.
func (l *Loop) Tap(fn func(*kmsg.Record)) {
	l.taps = append(l.taps, fn)
}

// State reports the Loop's current state.
func (l *Loop) State() State {
	return State(l.state.Load())
}

// Stats returns a snapshot of the record counts.
func (l *Loop) Stats() Stats {
	s := Stats{
		Read:      l.read.Load(),
		Malformed: l.malformed.Load(),
		Truncated: l.truncated.Load(),
		Filtered:  l.filtered.Load(),
		Rendered:  l.rendered.Load(),
	}
	if c, ok := l.source.(sourceCounters); ok {
		s.Overwrites = c.Overwrites()
		s.Oversized = c.Oversized()
		s.Lost = c.Lost()
	}
	return s
}

// Run processes records until the buffer is drained, or when following until ctx is
// cancelled. Cancellation, end of stream and a closed output return nil.
func (l *Loop) Run(ctx context.Context) (err error) {
	l.state.Store(int32(Draining))
	var rc render.Context

	defer func() {
		l.state.Store(int32(Terminated))
		if errors.Is(err, errSinkClosed) {
			gocore.Error("output", err).Info()
			err = nil
			return
		}
		out, rc := l.renderer.Flush(rc)
		out = append(out, l.renderer.Trailer(rc)...)
		if werr := l.write(out); err == nil && !errors.Is(werr, errSinkClosed) {
			err = werr
		}
	}()

	if err := l.write(l.renderer.Header()); err != nil {
		return err
	}

	for ctx.Err() == nil {
		raw, err := l.source.ReadRecord()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		if raw == nil {
			var out []byte
			out, rc = l.renderer.Flush(rc)
			if err := l.write(out); err != nil {
				return err
			}
			if !l.follow {
				return nil
			}
			if l.state.CompareAndSwap(int32(Draining), int32(Following)) {
				gocore.Error("follow", nil, map[string]string{
					"state": Following.String(),
				}).Info()
			}
			if err := l.source.Wait(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return gocore.Error("wait", err)
			}
			continue
		}

		l.read.Add(1)
		if rc, err = l.cycle(raw, rc); err != nil {
			return err
		}
	}

	return nil
}

// cycle parses, filters, renders and writes the records of one read.
func (l *Loop) cycle(raw *kmsg.Raw, rc render.Context) (render.Context, error) {
	for r, err := range raw.Records() {
		if err != nil {
			l.malformed.Add(1)
			gocore.Error("parse", err).Info()
			continue
		}
		if r.Truncated {
			l.truncated.Add(1)
			gocore.Error("parse", errors.New("record truncated"), map[string]string{
				"sequence": strconv.FormatUint(r.Sequence, 10),
			}).Info()
		}

		if !l.filter.Record(r) {
			l.filtered.Add(1)
			rc = l.renderer.Skip(r, rc)
			continue
		}

		for _, tap := range l.taps {
			tap(r)
		}

		var out []byte
		out, rc = l.renderer.Render(r, rc)
		if err := l.write(out); err != nil {
			return rc, err
		}
		l.rendered.Add(1)
	}
	return rc, nil
}

// write issues one write of complete output to the sink.
func (l *Loop) write(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if _, err := l.sink.Write(b); err != nil {
		if closed(err) {
			return errSinkClosed
		}
		return gocore.Error("write", err)
	}
	return nil
}

// closed reports whether a write failed because the output's reader is gone.
func closed(err error) bool {
	return errors.Is(err, syscall.EPIPE) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, os.ErrClosed)
}
