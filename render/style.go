// Copyright © 2021-2025 The Gomon Project.

package render

import (
	"github.com/morikuni/aec"

	"github.com/zosmac/godmesg/kmsg"
)

type (
	// Styler decorates the parts of a decoded line.
	Styler interface {
		Time(string) string
		Subsys(string) string
		Level(kmsg.Level, string) string
	}

	// plain leaves text undecorated.
	plain struct{}

	// ansi colors text with ANSI escape sequences.
	ansi struct{}
)

var (
	// levelStyles maps levels to their colors; levels not listed are not colored.
	levelStyles = map[kmsg.Level]aec.ANSI{
		kmsg.LevelEmerg: aec.RedF.With(aec.Bold),
		kmsg.LevelAlert: aec.RedF.With(aec.Bold),
		kmsg.LevelCrit:  aec.RedF.With(aec.Bold),
		kmsg.LevelErr:   aec.RedF,
		kmsg.LevelWarn:  aec.YellowF.With(aec.Bold),
	}

	timeStyle   = aec.GreenF
	subsysStyle = aec.YellowF
)

// Plain returns the Styler that does not decorate.
func Plain() Styler { return plain{} }

// ANSI returns the Styler that colors with ANSI escape sequences.
func ANSI() Styler { return ansi{} }

func (plain) Time(s string) string                { return s }
func (plain) Subsys(s string) string              { return s }
func (plain) Level(_ kmsg.Level, s string) string { return s }

func (ansi) Time(s string) string {
	return apply(timeStyle, s)
}

func (ansi) Subsys(s string) string {
	return apply(subsysStyle, s)
}

func (ansi) Level(l kmsg.Level, s string) string {
	if style, ok := levelStyles[l]; ok {
		return apply(style, s)
	}
	return s
}

func apply(style aec.ANSI, s string) string {
	if s == "" {
		return s
	}
	return style.Apply(s)
}
