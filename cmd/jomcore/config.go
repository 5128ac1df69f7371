package main

import (
	"github.com/xyproto/env/v2"
)

// --- Application Metadata ---
var AppVersion = "0.1.0"

const DefaultMakefile = "Makefile"

// --- CLI UI Strings ---
const (
	AppShort = "jomcore is the macro-expansion and parsing core of an NMAKE-style build tool"
	AppLong  = "jomcore parses a stream of preprocessed makefile lines into a build graph: " +
		"macros, description blocks, inference rules and dot-directives. " +
		"It does not execute recipes; that's left to a downstream executor."
)

// Config holds the settings shared by every subcommand, seeded from CLI
// flags and then overridden by environment variables the way
// github.com/xyproto/c67 layers its own env-derived configuration on top
// of flag defaults.
type Config struct {
	Makefile     string
	Silent       bool
	IgnoreErrors bool
	Debug        bool
	JSONLogs     bool
}

// applyEnvironmentOverrides applies JOM_MAKEFILE, JOM_SILENT,
// JOM_IGNORE_ERRORS and JOM_DEBUG on top of the flag values, mirroring §6's
// Options being "read once at start". A set JOM_MAKEFILE replaces the
// makefile path even when -f was given; the boolean variables can only
// switch an option on, never off.
func applyEnvironmentOverrides(cfg *Config) {
	cfg.Makefile = env.Str("JOM_MAKEFILE", cfg.Makefile)
	if env.Bool("JOM_SILENT") {
		cfg.Silent = true
	}
	if env.Bool("JOM_IGNORE_ERRORS") {
		cfg.IgnoreErrors = true
	}
	if env.Bool("JOM_DEBUG") {
		cfg.Debug = true
	}
}
