// Copyright © 2021-2025 The Gomon Project.

package kmsg

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	r, err := Parse([]byte("6,339,5140900,-;NET: Registered protocol family 10\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(339), r.Sequence)
	assert.Equal(t, 5140900*time.Microsecond, r.Timestamp)
	assert.Equal(t, FacilityKern, r.Facility)
	assert.Equal(t, LevelInfo, r.Level)
	assert.Equal(t, FlagNone, r.Flag)
	assert.Equal(t, "NET: Registered protocol family 10", r.Message)
	assert.Empty(t, r.Metadata)
	assert.Equal(t, 6, r.Priority())
}

func TestParseMetadata(t *testing.T) {
	raw := "30,340,5690716,-,caller=T1;udevd[80]: starting version 181\n" +
		" SUBSYSTEM=pci\n" +
		" DEVICE=+pci:0000:00:01.0\n" +
		" SUBSYSTEM=acpi\n"
	r, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, FacilityDaemon, r.Facility)
	assert.Equal(t, LevelInfo, r.Level)
	assert.Equal(t, "T1", r.Caller)
	assert.Equal(t, []Field{
		{Key: "SUBSYSTEM", Value: "pci"},
		{Key: "DEVICE", Value: "+pci:0000:00:01.0"},
		{Key: "SUBSYSTEM", Value: "acpi"},
	}, r.Metadata)
}

func TestParseUnescapes(t *testing.T) {
	r, err := Parse([]byte(`4,12,100,c;tab\x09here back\x5cslash bad\xzz` + "\n"))
	require.NoError(t, err)
	assert.Equal(t, "tab\there back\\slash bad\\xzz", r.Message)
	assert.Equal(t, FlagContinuation, r.Flag)
	assert.True(t, r.Flag.Continues())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		err   error
	}{
		{"no separator", "6,1,100,- hello", "prefix", ErrSyntax},
		{"short prefix", "6,1,100;hello", "prefix", ErrSyntax},
		{"priority", "x,1,100,-;hello", "priority", ErrSyntax},
		{"priority range", "99999999,1,100,-;hello", "priority", ErrRange},
		{"facility", "192,1,100,-;hello", "facility", ErrRange},
		{"sequence", "6,-1,100,-;hello", "sequence", ErrSyntax},
		{"timestamp", "6,1,1.5,-;hello", "timestamp", ErrSyntax},
		{"timestamp range", "6,1,18446744073709551615,-;hello", "timestamp", ErrRange},
		{"flags", "6,1,100,x;hello", "flags", ErrSyntax},
		{"empty flags", "6,1,100,;hello", "flags", ErrSyntax},
		{"metadata", "6,1,100,-;hello\nnot metadata", "metadata", ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Parse([]byte(tt.raw))
			require.Error(t, err)
			assert.Nil(t, r)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPriorityDecomposition(t *testing.T) {
	for p := 0; p < Facilities*Levels; p++ {
		r, err := Parse([]byte(itoa(p) + ",1,1,-;m"))
		require.NoError(t, err)
		assert.Equal(t, Facility(p/8), r.Facility)
		assert.Equal(t, Level(p%8), r.Level)
		assert.Less(t, int(r.Facility), Facilities)
		assert.Less(t, int(r.Level), Levels)
		assert.Equal(t, p, r.Priority())
	}
}

func TestRecordsSkipsMalformed(t *testing.T) {
	buf := "6,1,100,-;first\n" +
		" KEY=value\n" +
		"x,2,200,-;broken\n" +
		"3,3,300,-;third\n"

	var got []*Record
	var errs []error
	for r, err := range Records([]byte(buf)) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		got = append(got, r)
	}

	require.Len(t, errs, 1)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Message)
	assert.Equal(t, []Field{{Key: "KEY", Value: "value"}}, got[0].Metadata)
	assert.Equal(t, uint64(3), got[1].Sequence)
	assert.Equal(t, LevelErr, got[1].Level)
}

func TestRawRecordsTruncated(t *testing.T) {
	raw := &Raw{Data: []byte("6,1,100,-;a very long mess"), Truncated: true}
	var got []*Record
	for r, err := range raw.Records() {
		require.NoError(t, err)
		got = append(got, r)
	}
	require.Len(t, got, 1)
	assert.True(t, got[0].Truncated)
	assert.Equal(t, "a very long mess", got[0].Message)
}

func TestEscape(t *testing.T) {
	for _, s := range []string{
		"plain",
		"tab\tand\nnewline",
		"back\\slash",
		"utf8 \xc3\xa9 and \x7f",
	} {
		assert.Equal(t, s, unescape([]byte(Escape(s))))
	}
	assert.Equal(t, `caf\xc3\xa9 \x5c`, Escape("café \\"))
}

func TestParseLevelFacility(t *testing.T) {
	l, ok := ParseLevel("warn")
	assert.True(t, ok)
	assert.Equal(t, LevelWarn, l)
	l, ok = ParseLevel("7")
	assert.True(t, ok)
	assert.Equal(t, LevelDebug, l)
	_, ok = ParseLevel("8")
	assert.False(t, ok)
	_, ok = ParseLevel("loud")
	assert.False(t, ok)

	f, ok := ParseFacility("local7")
	assert.True(t, ok)
	assert.Equal(t, Facility(23), f)
	_, ok = ParseFacility("24")
	assert.False(t, ok)

	assert.Equal(t, "err", LevelErr.String())
	assert.Equal(t, "authpriv", FacilityAuthpriv.String())
	assert.Len(t, LevelNames(), Levels)
	assert.Len(t, FacilityNames(), Facilities)
}

func itoa(n int) string {
	if n < 10 {
		return string(rune('0' + n))
	}
	return itoa(n/10) + string(rune('0'+n%10))
}
