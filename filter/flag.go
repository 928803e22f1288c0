// Copyright © 2021-2025 The Gomon Project.

package filter

import (
	"errors"
	"strings"

	"github.com/zosmac/godmesg/kmsg"
)

type (
	// Levels is a command line flag type listing levels to show.
	Levels []kmsg.Level

	// Facilities is a command line flag type listing facilities to show.
	Facilities []kmsg.Facility
)

// Set is a flag.Value interface method to enable Levels as a command line flag.
// A level suffixed with "+" adds it and every more severe level, prefixed with "+"
// adds it and every less severe level.
func (ls *Levels) Set(list string) error {
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		lo, hi := false, false
		if s, ok := strings.CutSuffix(name, "+"); ok {
			name, lo = s, true
		} else if s, ok := strings.CutPrefix(name, "+"); ok {
			name, hi = s, true
		}
		l, ok := kmsg.ParseLevel(name)
		if !ok {
			return errors.New("unknown level " + name + ", valid values are " + strings.Join(kmsg.LevelNames(), ", "))
		}
		first, last := l, l
		if lo {
			first = kmsg.LevelEmerg
		}
		if hi {
			last = kmsg.LevelDebug
		}
		for l := first; l <= last; l++ {
			*ls = append(*ls, l)
		}
	}
	return nil
}

// String is a flag.Value interface method to enable Levels as a command line flag.
func (ls *Levels) String() string {
	var ss []string
	for _, l := range *ls {
		ss = append(ss, l.String())
	}
	return strings.Join(ss, ",")
}

// Set is a flag.Value interface method to enable Facilities as a command line flag.
func (fs *Facilities) Set(list string) error {
	for _, name := range strings.Split(list, ",") {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		f, ok := kmsg.ParseFacility(name)
		if !ok {
			return errors.New("unknown facility " + name + ", valid values are " + strings.Join(kmsg.FacilityNames(), ", "))
		}
		*fs = append(*fs, f)
	}
	return nil
}

// String is a flag.Value interface method to enable Facilities as a command line flag.
func (fs *Facilities) String() string {
	var ss []string
	for _, f := range *fs {
		ss = append(ss, f.String())
	}
	return strings.Join(ss, ",")
}
