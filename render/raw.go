// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"bytes"
	"strconv"
	"time"

	"github.com/zosmac/godmesg/kmsg"
)

// raw writes records in the device's grammar.
type raw struct{}

func (raw) Header() []byte { return nil }

func (raw) Render(r *kmsg.Record, prev Context) ([]byte, Context) {
	flag := r.Flag
	if flag == 0 {
		flag = kmsg.FlagNone
	}

	var b bytes.Buffer
	b.WriteString(strconv.Itoa(r.Priority()))
	b.WriteByte(',')
	b.WriteString(strconv.FormatUint(r.Sequence, 10))
	b.WriteByte(',')
	b.WriteString(strconv.FormatInt(int64(r.Timestamp/time.Microsecond), 10))
	b.WriteByte(',')
	b.WriteByte(byte(flag))
	if r.Caller != "" {
		b.WriteString(",caller=")
		b.WriteString(r.Caller)
	}
	b.WriteByte(';')
	b.WriteString(kmsg.Escape(r.Message))
	b.WriteByte('\n')
	for _, f := range r.Metadata {
		b.WriteByte(' ')
		b.WriteString(kmsg.Escape(f.Key))
		b.WriteByte('=')
		b.WriteString(kmsg.Escape(f.Value))
		b.WriteByte('\n')
	}

	return b.Bytes(), Context{Shown: true, Timestamp: r.Timestamp, Count: prev.Count + 1}
}

func (raw) Skip(r *kmsg.Record, prev Context) Context { return skip(r, prev) }

func (raw) Flush(prev Context) ([]byte, Context) { return nil, prev }

func (raw) Trailer(Context) []byte { return nil }
