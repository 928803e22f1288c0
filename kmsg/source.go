// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"sync/atomic"

	"github.com/zosmac/gocore"
)

const (
	// Device is the kernel message log device.
	Device = "/dev/kmsg"

	// RecordMax is the largest record the kernel delivers in one read.
	RecordMax = 2048
)

type (
	// Options configure a Source.
	Options struct {
		Path       string // Device if empty
		SeekEnd    bool
		BufferSize int // RecordMax if zero
	}

	// device is the raw record-at-a-time interface to the kernel log.
	device interface {
		read([]byte) (int, error)
		wait(context.Context) error
		seekEnd() error
		close() error
	}

	// readResult classifies the outcome of one device read.
	readResult int

	// cursor tracks the last sequence number consumed from the device.
	cursor struct {
		last uint64
		seen bool
	}

	// Source owns the open kernel log device.
	Source struct {
		path string
		dev  device
		buf  []byte
		cursor
		reads      atomic.Uint64
		overwrites atomic.Uint64
		oversized  atomic.Uint64
		lost       atomic.Uint64
	}
)

const (
	readData readResult = iota
	readOverwritten
	readOversized
	readInterrupted
	readWouldBlock
	readEnd
	readFatal
)

// Open opens the kernel log device.
func Open(opts Options) (*Source, error) {
	if opts.Path == "" {
		opts.Path = Device
	}
	dev, err := openDevice(opts.Path)
	if err != nil {
		return nil, gocore.Error("open", err, map[string]string{
			"device": opts.Path,
		})
	}
	if opts.SeekEnd {
		if err := dev.seekEnd(); err != nil {
			dev.close()
			return nil, gocore.Error("seek", err, map[string]string{
				"device": opts.Path,
			})
		}
	}
	return newSource(dev, opts), nil
}

func newSource(dev device, opts Options) *Source {
	size := opts.BufferSize
	if size <= 0 {
		size = RecordMax
	}
	return &Source{
		path:   opts.Path,
		dev:    dev,
		buf:    make([]byte, size),
	}
}

// ReadRecord reads the next record from the device. A record overwritten by the kernel
// while being read is skipped and the read retried. ReadRecord never blocks: it returns
// nil, nil when no record is currently buffered, and nil, io.EOF at end of stream.
func (s *Source) ReadRecord() (*Raw, error) {
	for {
		n, err := s.dev.read(s.buf)
		switch classify(n, err) {
		case readOverwritten:
			s.overwrites.Add(1)
			continue
		case readOversized:
			s.oversized.Add(1)
			gocore.Error("read", err, map[string]string{
				"device": s.path,
				"after":  strconv.FormatUint(s.last, 10),
				"size":   strconv.Itoa(len(s.buf)),
			}).Info()
			continue
		case readInterrupted:
			continue
		case readWouldBlock:
			return nil, nil
		case readEnd:
			return nil, io.EOF
		case readFatal:
			return nil, gocore.Error("read", err, map[string]string{
				"device": s.path,
				"last":   strconv.FormatUint(s.last, 10),
			})
		}

		s.reads.Add(1)
		raw := &Raw{
			Data:      bytes.Clone(s.buf[:n]),
			Truncated: n == len(s.buf) && s.buf[n-1] != '\n',
		}
		if seq, ok := peekSequence(raw.Data); ok {
			s.lost.Add(s.advance(seq))
		}
		return raw, nil
	}
}

// Wait blocks until the device has a record to read or ctx is done.
func (s *Source) Wait(ctx context.Context) error {
	return s.dev.wait(ctx)
}

// Reads returns the count of records read.
func (s *Source) Reads() uint64 {
	return s.reads.Load()
}

// Overwrites returns the count of reads retried because the kernel overwrote the record.
func (s *Source) Overwrites() uint64 {
	return s.overwrites.Load()
}

// Oversized returns the count of records skipped because they exceed the read buffer.
func (s *Source) Oversized() uint64 {
	return s.oversized.Load()
}

// Lost returns the count of sequence numbers skipped between consecutive reads.
func (s *Source) Lost() uint64 {
	return s.lost.Load()
}

// Close closes the device.
func (s *Source) Close() error {
	return s.dev.close()
}

// advance records seq as consumed and returns the number of records skipped since the last one.
func (c *cursor) advance(seq uint64) uint64 {
	var gap uint64
	if c.seen && seq > c.last+1 {
		gap = seq - c.last - 1
	}
	if !c.seen || seq > c.last {
		c.last = seq
		c.seen = true
	}
	return gap
}
