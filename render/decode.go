// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zosmac/godmesg/kmsg"
)

// decoder writes human readable lines. A line is held back until the next record shows
// whether it is continued.
type decoder struct {
	Options
}

const (
	truncatedMarker = " [truncated]"
)

func (d *decoder) Header() []byte { return nil }

func (d *decoder) Render(r *kmsg.Record, prev Context) ([]byte, Context) {
	if r.Flag.Continues() {
		if !prev.Shown {
			return nil, prev
		}
		if prev.pending != nil {
			prev.pending = append(prev.pending, d.body(r, prev.prefix, prev.indent, false)...)
			return nil, prev
		}
		// the line it continues was already flushed, so it starts its own
	}

	var out []byte
	if prev.pending != nil {
		out = append(prev.pending, '\n')
	}

	prefix, width := d.prefix(r, prev)
	line := append([]byte(prefix), d.body(r, prefix, width, true)...)

	return out, Context{
		Shown:     true,
		Timestamp: r.Timestamp,
		Count:     prev.Count + 1,
		pending:   line,
		prefix:    prefix,
		indent:    width,
	}
}

func (d *decoder) Skip(r *kmsg.Record, prev Context) Context { return skip(r, prev) }

func (d *decoder) Flush(prev Context) ([]byte, Context) {
	if prev.pending == nil {
		return nil, prev
	}
	out := append(prev.pending, '\n')
	prev.pending = nil
	return out, prev
}

func (d *decoder) Trailer(Context) []byte { return nil }

// prefix formats the timestamp and facility:level columns, returning the styled prefix
// and its printed width.
func (d *decoder) prefix(r *kmsg.Record, prev Context) (string, int) {
	var styled, plain strings.Builder

	if ts := d.stamp(r, prev); ts != "" {
		plain.WriteString(ts + " ")
		styled.WriteString(d.Styler.Time(ts) + " ")
	}
	if d.Decode {
		s := fmt.Sprintf("%-6s:%-6s: ", r.Facility, r.Level)
		plain.WriteString(s)
		styled.WriteString(s)
	}

	return styled.String(), utf8.RuneCountInString(plain.String())
}

// body formats the message, one physical line per message line. Lines after the first
// repeat the prefix or are indented to its width.
func (d *decoder) body(r *kmsg.Record, prefix string, indent int, first bool) []byte {
	var b bytes.Buffer
	lines := strings.Split(strings.TrimSuffix(r.Message, "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			if d.ForcePrefix {
				b.WriteString(prefix)
			} else {
				b.WriteString(strings.Repeat(" ", indent))
			}
		}
		b.WriteString(d.text(r, line, first && i == 0))
	}
	if r.Truncated {
		b.WriteString(truncatedMarker)
	}
	return b.Bytes()
}

// text escapes and styles one message line.
func (d *decoder) text(r *kmsg.Record, line string, first bool) string {
	if d.NoEscape {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	} else {
		line = escape(line)
	}
	if first {
		if subsys, rest, ok := splitSubsys(line); ok {
			return d.Styler.Subsys(subsys) + d.Styler.Level(r.Level, rest)
		}
	}
	return d.Styler.Level(r.Level, line)
}

// splitSubsys separates a leading "subsystem:" token from the rest of the message.
func splitSubsys(line string) (string, string, bool) {
	i := strings.Index(line, ": ")
	if i <= 0 || strings.ContainsAny(line[:i], " \t[]") {
		return "", line, false
	}
	return line[:i+1], line[i+1:], true
}

// escape replaces invalid UTF-8 and non-printable characters with \xNN.
func escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		c, n := utf8.DecodeRuneInString(s[i:])
		if (c == utf8.RuneError && n <= 1) || !strconv.IsPrint(c) {
			for _, x := range []byte(s[i : i+n]) {
				fmt.Fprintf(&b, `\x%02x`, x)
			}
		} else {
			b.WriteString(s[i : i+n])
		}
		i += n
	}
	return b.String()
}
