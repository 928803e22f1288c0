// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"strconv"
	"time"

	"github.com/zosmac/gocore"
)

type (
	// Level is the severity of a record, 0 (emerg) through 7 (debug).
	Level uint8

	// Facility is the subsystem class of a record, 0 (kern) through 23 (local7).
	Facility uint8

	// Flag marks whether a record starts a new line or continues the previous one.
	Flag byte

	// levelName is a level's name in the level name table.
	levelName string

	// facilityName is a facility's name in the facility name table.
	facilityName string

	// Field is one metadata annotation of a record.
	Field struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}

	// Record is one decoded kernel log entry.
	Record struct {
		Sequence  uint64
		Timestamp time.Duration // since boot
		Facility  Facility
		Level     Level
		Flag      Flag
		Caller    string
		Message   string // unescaped bytes, made valid UTF-8 only when rendered so raw output reproduces them
		Metadata  []Field
		Truncated bool
	}
)

const (
	LevelEmerg Level = iota
	LevelAlert
	LevelCrit
	LevelErr
	LevelWarn
	LevelNotice
	LevelInfo
	LevelDebug
)

const (
	FacilityKern Facility = iota
	FacilityUser
	FacilityMail
	FacilityDaemon
	FacilityAuth
	FacilitySyslog
	FacilityLpr
	FacilityNews
	FacilityUucp
	FacilityCron
	FacilityAuthpriv
	FacilityFtp
)

const (
	FlagNone         Flag = '-'
	FlagContinuation Flag = 'c'
	FlagFragment     Flag = '+'
)

const (
	// Levels is the number of record levels.
	Levels = 8

	// Facilities is the number of record facilities.
	Facilities = 24
)

var (
	// levelNames valid level names, in level order.
	levelNames = gocore.ValidValue[levelName]{}.Define(
		"emerg",
		"alert",
		"crit",
		"err",
		"warn",
		"notice",
		"info",
		"debug",
	)

	// facilityNames valid facility names, in facility order.
	facilityNames = gocore.ValidValue[facilityName]{}.Define(
		"kern",
		"user",
		"mail",
		"daemon",
		"auth",
		"syslog",
		"lpr",
		"news",
		"uucp",
		"cron",
		"authpriv",
		"ftp",
		"res0",
		"res1",
		"res2",
		"res3",
		"local0",
		"local1",
		"local2",
		"local3",
		"local4",
		"local5",
		"local6",
		"local7",
	)

	// levelTable and facilityTable index names by value.
	levelTable    = levelNames.ValidValues()
	facilityTable = facilityNames.ValidValues()
)

// LevelNames returns the level names in level order.
func LevelNames() []string {
	return append([]string(nil), levelTable...)
}

// FacilityNames returns the facility names in facility order.
func FacilityNames() []string {
	return append([]string(nil), facilityTable...)
}

// ParseLevel resolves a level name or number.
func ParseLevel(s string) (Level, bool) {
	if levelNames.IsValid(levelName(s)) {
		return Level(levelNames.Index(levelName(s))), true
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil && n < Levels {
		return Level(n), true
	}
	return 0, false
}

// ParseFacility resolves a facility name or number.
func ParseFacility(s string) (Facility, bool) {
	if facilityNames.IsValid(facilityName(s)) {
		return Facility(facilityNames.Index(facilityName(s))), true
	}
	if n, err := strconv.ParseUint(s, 10, 8); err == nil && n < Facilities {
		return Facility(n), true
	}
	return 0, false
}

// String returns the level's name.
func (l Level) String() string {
	if l < Levels {
		return levelTable[l]
	}
	return strconv.Itoa(int(l))
}

// String returns the facility's name.
func (f Facility) String() string {
	if f < Facilities {
		return facilityTable[f]
	}
	return strconv.Itoa(int(f))
}

// Continues reports whether the record continues the previous displayed record.
func (f Flag) Continues() bool {
	return f == FlagContinuation || f == FlagFragment
}

// Priority recomposes the record's combined syslog priority.
func (r *Record) Priority() int {
	return int(r.Facility)<<3 | int(r.Level)
}
