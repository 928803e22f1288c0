// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"time"

	"github.com/zosmac/godmesg/kmsg"
)

type (
	// Mode selects a renderer.
	Mode int

	// Options configure the Decode renderer. Raw and JSON ignore them.
	Options struct {
		Decode      bool // facility:level prefix
		NoEscape    bool
		ForcePrefix bool
		Time        TimeFormat
		Boot        time.Time // reference for ctime and iso timestamps
		Styler      Styler
	}

	// Context is the lookback a renderer carries from one record to the next.
	Context struct {
		Shown     bool          // the previous record was displayed
		Timestamp time.Duration // of the last displayed line
		Count     int           // records displayed
		pending   []byte        // decode line awaiting continuations
		prefix    string        // of the pending line
		indent    int           // printed width of prefix
	}

	// Renderer converts displayed records to output bytes.
	Renderer interface {
		// Header is written before the first record.
		Header() []byte
		// Render returns the bytes to write now for a record that passed the filter.
		Render(*kmsg.Record, Context) ([]byte, Context)
		// Skip notes a record that the filter rejected.
		Skip(*kmsg.Record, Context) Context
		// Flush returns any output held back for a possible continuation.
		Flush(Context) ([]byte, Context)
		// Trailer is written after the last record.
		Trailer(Context) []byte
	}
)

const (
	ModeDecode Mode = iota
	ModeRaw
	ModeJSON
)

// String names the mode.
func (m Mode) String() string {
	switch m {
	case ModeRaw:
		return "raw"
	case ModeJSON:
		return "json"
	}
	return "decode"
}

// New returns the renderer for mode.
func New(mode Mode, opts Options) Renderer {
	switch mode {
	case ModeRaw:
		return raw{}
	case ModeJSON:
		return jsonRenderer{}
	}
	if opts.Styler == nil {
		opts.Styler = Plain()
	}
	if opts.Time == "" {
		opts.Time = TimeRaw
	}
	return &decoder{opts}
}

// skip is the Skip behavior shared by all renderers: a rejected record breaks the
// continuation chain.
func skip(_ *kmsg.Record, prev Context) Context {
	prev.Shown = false
	return prev
}
