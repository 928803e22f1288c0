// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/procfs"
	"github.com/zosmac/gocore"

	"github.com/zosmac/godmesg/kmsg"
)

// TimeFormat is a command line flag type selecting the decoded timestamp format.
type TimeFormat string

const (
	TimeRaw   TimeFormat = "raw"
	TimeDelta TimeFormat = "delta"
	TimeCtime TimeFormat = "ctime"
	TimeISO   TimeFormat = "iso"
	TimeNone  TimeFormat = "notime"
)

var (
	// timeFormats valid values for TimeFormat.
	timeFormats = gocore.ValidValue[TimeFormat]{}.Define(
		TimeRaw,
		TimeDelta,
		TimeCtime,
		TimeISO,
		TimeNone,
	)
)

// TimeFormats returns the valid timestamp format names.
func TimeFormats() []string {
	return timeFormats.ValidValues()
}

// Set is a flag.Value interface method to enable TimeFormat as a command line flag.
func (t *TimeFormat) Set(s string) error {
	s = strings.ToLower(s)
	if !timeFormats.IsValid(TimeFormat(s)) {
		return errors.New("valid values are " + strings.Join(TimeFormats(), ", "))
	}
	*t = TimeFormat(s)
	return nil
}

// String is a flag.Value interface method to enable TimeFormat as a command line flag.
func (t *TimeFormat) String() string {
	return string(*t)
}

// Wallclock reports whether the format needs the boot time.
func (t TimeFormat) Wallclock() bool {
	return t == TimeCtime || t == TimeISO
}

// BootTime reads the system boot time from /proc/stat.
func BootTime() (time.Time, error) {
	fs, err := procfs.NewDefaultFS()
	if err != nil {
		return time.Time{}, gocore.Error("procfs", err)
	}
	stat, err := fs.Stat()
	if err != nil {
		return time.Time{}, gocore.Error("procfs stat", err)
	}
	return time.Unix(int64(stat.BootTime), 0), nil
}

// stamp formats a record's timestamp, without styling.
func (d *decoder) stamp(r *kmsg.Record, prev Context) string {
	switch d.Time {
	case TimeNone:
		return ""
	case TimeDelta:
		var delta time.Duration
		if prev.Count > 0 {
			delta = r.Timestamp - prev.Timestamp
		}
		return fmt.Sprintf("[%s <%12.6f>]", seconds(r.Timestamp), delta.Seconds())
	case TimeCtime:
		return "[" + d.Boot.Add(r.Timestamp).Format("Mon Jan _2 15:04:05 2006") + "]"
	case TimeISO:
		return d.Boot.Add(r.Timestamp).Format("2006-01-02T15:04:05,000000-07:00")
	}
	return "[" + seconds(r.Timestamp) + "]"
}

// seconds formats a duration as %5d.%06d seconds.
func seconds(ts time.Duration) string {
	return fmt.Sprintf("%5d.%06d", int64(ts/time.Second), int64(ts%time.Second/time.Microsecond))
}
