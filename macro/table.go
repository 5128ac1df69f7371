// Package macro implements the macro table and expander: the recursive,
// cycle-detecting string substitution engine a makefile parser runs every
// target, dependency and command line through.
package macro

import (
	"regexp"
	"strings"

	"github.com/ChristianFeldmann/jom/input"
	"github.com/ChristianFeldmann/jom/jomerr"
	"github.com/ChristianFeldmann/jom/model"
)

// identifierPattern follows jom's actual (more permissive than spec.md's
// prose) validation regex: the leading character may be a letter,
// underscore, or nothing at all, followed by one or more word characters or
// dots. See SPEC_FULL.md supplement 2.
var identifierPattern = regexp.MustCompile(`(?i)^([A-Za-z]|_|)([\w.])+$`)

// Table stores macros, their sources and read-only flags, and mirrors
// environment-sourced macros into an EnvironmentSink.
type Table struct {
	macros map[string]*model.Macro
	env    input.EnvironmentSink
}

// NewTable returns an empty Table that mirrors environment macros into env.
// env may be nil if the caller has no use for the mirrored environment
// (e.g. pure parsing without an eventual executor).
func NewTable(env input.EnvironmentSink) *Table {
	return &Table{macros: make(map[string]*model.Macro), env: env}
}

func isMacroNameValid(name string) bool {
	return name != "" && identifierPattern.MatchString(name)
}

// Value returns the raw, unexpanded value of name, or "" if undefined.
func (t *Table) Value(name string) string {
	if m, ok := t.macros[name]; ok {
		return m.Value
	}
	return ""
}

// IsDefined reports whether name has any entry, regardless of value.
func (t *Table) IsDefined(name string) bool {
	_, ok := t.macros[name]
	return ok
}

// Undefine removes name entirely.
func (t *Table) Undefine(name string) {
	delete(t.macros, name)
}

// Set stores value under name with the MakeFile source, validating the
// (possibly macro-bearing) name and pre-replacing any self-reference.
func (t *Table) Set(name, value string) error {
	return t.setImpl(name, value, model.SourceMakeFile, false, false)
}

// Predefine is Set with a Predefinition source, used for built-ins like
// $(MAKE) that the host seeds before parsing starts.
func (t *Table) Predefine(name, value string) error {
	return t.setImpl(name, value, model.SourcePredefinition, false, false)
}

// SetCommandLine creates or overwrites name as a read-only macro sourced
// from the command line, bypassing any existing read-only protection.
func (t *Table) SetCommandLine(name, value string, implicit bool) error {
	source := model.SourceCommandLine
	if implicit {
		source = model.SourceCommandLineImplicit
	}
	return t.setImpl(name, value, source, true, true)
}

func (t *Table) setImpl(name, value string, source model.MacroSource, forceOverwrite, markReadOnly bool) error {
	expander := NewExpander(t)
	expandedName, err := expander.Expand(name, false)
	if err != nil {
		return err
	}
	if !isMacroNameValid(expandedName) {
		return jomerr.Name(0, "macro name %q is invalid", expandedName)
	}

	newValue := replaceSelfReference(value, expandedName, t.Value(expandedName))

	entry, exists := t.macros[expandedName]
	if !exists {
		entry = &model.Macro{Name: expandedName}
		t.macros[expandedName] = entry
	}
	if !forceOverwrite && entry.ReadOnly {
		return nil
	}
	entry.Value = newValue
	entry.Source = source
	if markReadOnly {
		entry.ReadOnly = true
	}

	if entry.Source == model.SourceEnvironment && t.env != nil {
		expanded, err := expander.Expand(entry.Value, false)
		if err != nil {
			return err
		}
		t.env.Set(expandedName, expanded)
	}
	return nil
}

// SetEnvironment defines or promotes an environment-mirrored macro. name is
// upper-cased before storage, then validated the same way Set/Predefine
// validate their names: an invalid name (e.g. "ProgramFiles(x86)") is
// silently skipped, dropping that environment variable entirely rather than
// storing it under a name the rest of the table couldn't look up anyway. If
// the macro already exists with a CommandLine source it is promoted to
// Environment and mirrored using its current (already-stored) value,
// ignoring the value argument, exactly as jom's defineEnvironmentMacroValue
// does. If expanding value fails, the macro is silently not created
// (§4.1/§7 — the other silent-swallow path).
func (t *Table) SetEnvironment(name, value string, readOnly bool) {
	upper := strings.ToUpper(name)
	if !isMacroNameValid(upper) {
		return
	}
	expander := NewExpander(t)

	if entry, exists := t.macros[upper]; exists {
		if entry.Source == model.SourceCommandLine {
			entry.Source = model.SourceEnvironment
			if t.env != nil {
				if expanded, err := expander.Expand(entry.Value, false); err == nil {
					t.env.Set(upper, expanded)
				}
			}
		}
		return
	}

	expandedValue, err := expander.Expand(value, false)
	if err != nil {
		return
	}

	newValue := replaceSelfReference(value, upper, t.Value(upper))
	entry := &model.Macro{Name: upper, Value: newValue, Source: model.SourceEnvironment, ReadOnly: readOnly}
	t.macros[upper] = entry
	if t.env != nil {
		t.env.Set(upper, expandedValue)
	}
}

// replaceSelfReference pre-replaces every textual "$(name)" occurrence in
// newValue with currentValue, so "X = $(X) more" appends instead of
// recursing. It is a no-op (and cheap) when the token isn't present.
func replaceSelfReference(newValue, name, currentValue string) string {
	token := "$(" + name + ")"
	if !strings.Contains(newValue, token) {
		return newValue
	}
	var out strings.Builder
	rest := newValue
	for {
		idx := strings.Index(rest, token)
		if idx < 0 {
			out.WriteString(rest)
			break
		}
		out.WriteString(rest[:idx])
		out.WriteString(currentValue)
		rest = rest[idx+len(token):]
	}
	return out.String()
}
