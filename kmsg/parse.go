// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"bytes"
	"errors"
	"iter"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrSyntax reports a field that does not match the record grammar.
	ErrSyntax = errors.New("invalid syntax")

	// ErrRange reports a numeric field outside its valid range.
	ErrRange = errors.New("value out of range")
)

type (
	// ParseError names the record field that failed to parse.
	ParseError struct {
		Field string
		Input string
		Err   error
	}

	// Raw is the unparsed content of one device read.
	Raw struct {
		Data      []byte
		Truncated bool
	}
)

// Error formats the parse error.
func (e *ParseError) Error() string {
	return "parsing " + e.Field + " " + strconv.Quote(e.Input) + ": " + e.Err.Error()
}

// Unwrap returns ErrSyntax or ErrRange.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Records parses each record of the read. The final record is marked truncated if the read was.
func (raw *Raw) Records() iter.Seq2[*Record, error] {
	return records(raw.Data, raw.Truncated)
}

// Records parses each record in buf. A malformed record yields its error and parsing
// continues with the next record.
func Records(buf []byte) iter.Seq2[*Record, error] {
	return records(buf, false)
}

func records(buf []byte, truncated bool) iter.Seq2[*Record, error] {
	return func(yield func(*Record, error) bool) {
		for b := buf; len(b) > 0; {
			end := recordEnd(b)
			chunk := b[:end]
			b = b[end:]
			if len(bytes.TrimSpace(chunk)) == 0 {
				continue
			}
			r, err := Parse(chunk)
			if r != nil && len(b) == 0 {
				r.Truncated = truncated
			}
			if !yield(r, err) {
				return
			}
		}
	}
}

// recordEnd finds the end of the first record in buf, which is the first line that
// does not begin with the metadata space.
func recordEnd(buf []byte) int {
	for i := 0; i < len(buf)-1; i++ {
		if buf[i] == '\n' && buf[i+1] != ' ' {
			return i + 1
		}
	}
	return len(buf)
}

// Parse decodes a single record: a header line and its metadata lines.
func Parse(raw []byte) (*Record, error) {
	header, rest, _ := bytes.Cut(raw, []byte{'\n'})
	r, err := parseHeader(header)
	if err != nil {
		return nil, err
	}

	for len(rest) > 0 {
		var line []byte
		line, rest, _ = bytes.Cut(rest, []byte{'\n'})
		if len(line) == 0 {
			continue
		}
		if line[0] != ' ' {
			return nil, &ParseError{Field: "metadata", Input: string(line), Err: ErrSyntax}
		}
		key, value, _ := bytes.Cut(line[1:], []byte{'='})
		r.Metadata = append(r.Metadata, Field{
			Key:   unescape(key),
			Value: unescape(value),
		})
	}

	return r, nil
}

// parseHeader decodes <priority>,<sequence>,<timestamp>,<flags>[,<extra>...];<message>.
func parseHeader(line []byte) (*Record, error) {
	prefix, message, ok := bytes.Cut(line, []byte{';'})
	if !ok {
		return nil, &ParseError{Field: "prefix", Input: string(line), Err: ErrSyntax}
	}
	fields := strings.Split(string(prefix), ",")
	if len(fields) < 4 {
		return nil, &ParseError{Field: "prefix", Input: string(prefix), Err: ErrSyntax}
	}

	priority, err := strconv.ParseUint(fields[0], 10, 16)
	if err != nil {
		return nil, numError("priority", fields[0], err)
	}
	if priority>>3 >= Facilities {
		return nil, &ParseError{Field: "facility", Input: fields[0], Err: ErrRange}
	}

	sequence, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return nil, numError("sequence", fields[1], err)
	}

	usec, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return nil, numError("timestamp", fields[2], err)
	}
	if usec > math.MaxInt64/uint64(time.Microsecond) {
		return nil, &ParseError{Field: "timestamp", Input: fields[2], Err: ErrRange}
	}

	if len(fields[3]) != 1 {
		return nil, &ParseError{Field: "flags", Input: fields[3], Err: ErrSyntax}
	}
	flag := Flag(fields[3][0])
	switch flag {
	case FlagNone, FlagContinuation, FlagFragment:
	default:
		return nil, &ParseError{Field: "flags", Input: fields[3], Err: ErrSyntax}
	}

	r := &Record{
		Sequence:  sequence,
		Timestamp: time.Duration(usec) * time.Microsecond,
		Facility:  Facility(priority >> 3),
		Level:     Level(priority & 7),
		Flag:      flag,
		Message:   unescape(message),
	}
	for _, extra := range fields[4:] {
		if caller, ok := strings.CutPrefix(extra, "caller="); ok {
			r.Caller = caller
		}
	}

	return r, nil
}

// numError converts a strconv failure to a ParseError for the field.
func numError(field, input string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return &ParseError{Field: field, Input: input, Err: ErrRange}
	}
	return &ParseError{Field: field, Input: input, Err: ErrSyntax}
}

// peekSequence extracts the sequence number from a record's prefix without a full parse.
func peekSequence(raw []byte) (uint64, bool) {
	_, rest, ok := bytes.Cut(raw, []byte{','})
	if !ok {
		return 0, false
	}
	seq, _, ok := bytes.Cut(rest, []byte{','})
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseUint(string(seq), 10, 64)
	return n, err == nil
}
