// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/zosmac/godmesg/kmsg"
)

type (
	// Object is the JSON value of one record.
	Object struct {
		Sequence  uint64       `json:"sequence"`
		Timestamp int64        `json:"timestamp"` // microseconds since boot
		Facility  string       `json:"facility"`
		Level     string       `json:"level"`
		Message   string       `json:"message"`
		Metadata  []kmsg.Field `json:"metadata"`
		Caller    string       `json:"caller,omitempty"`
		Truncated bool         `json:"truncated,omitempty"`
	}

	// jsonRenderer writes each record as an element of the dmesg array.
	jsonRenderer struct{}
)

const (
	jsonIndent = "      "
)

// NewObject builds the JSON value of a record.
func NewObject(r *kmsg.Record) Object {
	metadata := r.Metadata
	if metadata == nil {
		metadata = []kmsg.Field{}
	}
	return Object{
		Sequence:  r.Sequence,
		Timestamp: int64(r.Timestamp / time.Microsecond),
		Facility:  r.Facility.String(),
		Level:     r.Level.String(),
		Message:   r.Message,
		Metadata:  metadata,
		Caller:    r.Caller,
		Truncated: r.Truncated,
	}
}

// Marshal encodes a record's JSON value without HTML escaping.
func Marshal(r *kmsg.Record) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewObject(r)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(b.Bytes(), []byte{'\n'}), nil
}

func (jsonRenderer) Header() []byte {
	return []byte("{\n   \"dmesg\": [\n")
}

func (jsonRenderer) Render(r *kmsg.Record, prev Context) ([]byte, Context) {
	obj, err := Marshal(r)
	if err != nil {
		// an Object holds only strings, integers and bools
		return nil, prev
	}

	var b bytes.Buffer
	if prev.Count > 0 {
		b.WriteString(",\n")
	}
	b.WriteString(jsonIndent)
	b.Write(obj)

	return b.Bytes(), Context{Shown: true, Timestamp: r.Timestamp, Count: prev.Count + 1}
}

func (jsonRenderer) Skip(r *kmsg.Record, prev Context) Context { return skip(r, prev) }

func (jsonRenderer) Flush(prev Context) ([]byte, Context) { return nil, prev }

func (jsonRenderer) Trailer(prev Context) []byte {
	if prev.Count > 0 {
		return []byte("\n   ]\n}\n")
	}
	return []byte("   ]\n}\n")
}
