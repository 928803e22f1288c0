// Copyright © 2021-2025 The Gomon Project.

/*
Package filter decides which kernel log records are shown, by level and by facility.

A filter that was never configured passes every record.
*/
package filter

import (
	"github.com/willf/bitset"

	"github.com/zosmac/godmesg/kmsg"
)

type (
	// Set holds the level and facility bit arrays. It is immutable once built.
	Set struct {
		levels     *bitset.BitSet
		facilities *bitset.BitSet
	}
)

// New builds a Set from the configured levels and facilities.
func New(levels Levels, facilities Facilities) *Set {
	s := &Set{
		levels:     bitset.New(kmsg.Levels),
		facilities: bitset.New(kmsg.Facilities),
	}
	for _, l := range levels {
		s.levels.Set(uint(l))
	}
	for _, f := range facilities {
		s.facilities.Set(uint(f))
	}
	return s
}

// Passes reports whether a record at level and facility is shown.
func (s *Set) Passes(level kmsg.Level, facility kmsg.Facility) bool {
	return (!s.levels.Any() || s.levels.Test(uint(level))) &&
		(!s.facilities.Any() || s.facilities.Test(uint(facility)))
}

// Record reports whether the record is shown.
func (s *Set) Record(r *kmsg.Record) bool {
	return s.Passes(r.Level, r.Facility)
}
