// Copyright © 2021-2025 The Gomon Project.

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zosmac/godmesg/kmsg"
)

func TestPasses(t *testing.T) {
	var levels Levels
	var facilities Facilities
	require.NoError(t, levels.Set("err,warn"))
	require.NoError(t, facilities.Set("kern"))
	s := New(levels, facilities)

	assert.False(t, s.Passes(kmsg.LevelInfo, kmsg.FacilityKern))
	assert.True(t, s.Passes(kmsg.LevelErr, kmsg.FacilityKern))
	assert.True(t, s.Passes(kmsg.LevelWarn, kmsg.FacilityKern))
	assert.False(t, s.Passes(kmsg.LevelErr, kmsg.FacilityUser))
}

func TestInactivePassesAll(t *testing.T) {
	s := New(nil, nil)
	for l := kmsg.Level(0); l < kmsg.Levels; l++ {
		for f := kmsg.Facility(0); f < kmsg.Facilities; f++ {
			assert.True(t, s.Passes(l, f))
		}
	}

	var levels Levels
	require.NoError(t, levels.Set("debug"))
	s = New(levels, nil)
	assert.True(t, s.Record(&kmsg.Record{Level: kmsg.LevelDebug, Facility: kmsg.FacilityMail}))
	assert.False(t, s.Record(&kmsg.Record{Level: kmsg.LevelInfo, Facility: kmsg.FacilityMail}))
}

func TestLevelsSet(t *testing.T) {
	tests := []struct {
		list string
		want Levels
	}{
		{"err", Levels{kmsg.LevelErr}},
		{"ERR, Warn", Levels{kmsg.LevelErr, kmsg.LevelWarn}},
		{"crit+", Levels{kmsg.LevelEmerg, kmsg.LevelAlert, kmsg.LevelCrit}},
		{"+notice", Levels{kmsg.LevelNotice, kmsg.LevelInfo, kmsg.LevelDebug}},
		{"0,7", Levels{kmsg.LevelEmerg, kmsg.LevelDebug}},
	}
	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			var ls Levels
			require.NoError(t, ls.Set(tt.list))
			assert.Equal(t, tt.want, ls)
		})
	}

	var ls Levels
	assert.Error(t, ls.Set("err,loud"))
	assert.Error(t, ls.Set("8"))
}

func TestFacilitiesSet(t *testing.T) {
	var fs Facilities
	require.NoError(t, fs.Set("kern,daemon"))
	require.NoError(t, fs.Set("local7"))
	assert.Equal(t, Facilities{kmsg.FacilityKern, kmsg.FacilityDaemon, 23}, fs)
	assert.Equal(t, "kern,daemon,local7", fs.String())
	assert.Error(t, fs.Set("nosuch"))
}
