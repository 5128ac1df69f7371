// Package parse recognizes description blocks, inference rules, dot
// directives and commands in a stream of already-preprocessed logical
// lines, building the target graph a downstream executor consumes.
package parse

import (
	"log/slog"
	"regexp"

	"github.com/ChristianFeldmann/jom/graph"
	"github.com/ChristianFeldmann/jom/input"
	"github.com/ChristianFeldmann/jom/jomerr"
	"github.com/ChristianFeldmann/jom/macro"
	"github.com/ChristianFeldmann/jom/model"
)

var (
	dotDirectiveRe  = regexp.MustCompile(`^\.(IGNORE|PRECIOUS|SILENT|SUFFIXES)\s*:(.*)$`)
	inferenceRuleRe = regexp.MustCompile(`^(\{[^}]*\})?(\.\w+)(\{[^}]*\})?(\.\w+)(::?)$`)
	inlineMarkerRe  = regexp.MustCompile(`<<\s*(\S*)`)
	macroDefRe      = regexp.MustCompile(`^([\w.]+)\s*=\s*(.*?)\s*$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// defaultSuffixes is the initial .SUFFIXES list, per §4.7.
var defaultSuffixes = []string{
	".exe", ".obj", ".asm", ".c", ".cpp", ".cxx",
	".bas", ".cbl", ".for", ".pas", ".res", ".rc",
}

// parser holds the mutable state the dispatch loop and sub-parsers share.
type parser struct {
	cursor   *input.Cursor
	macros   *macro.Table
	expander *macro.Expander
	meta     input.FileMetaProvider
	log      *slog.Logger

	makefile *model.Makefile

	silentCommands  bool
	ignoreExitCodes bool
	suffixes        []string
}

// Parse runs the dispatch loop to exhaustion, then validates and annotates
// the resulting graph: active-target existence, cycle detection, timestamp
// propagation and inference-rule preselection (§4.3 tail, §4.8).
func Parse(cursor *input.Cursor, macros *macro.Table, meta input.FileMetaProvider, opts input.Options, activeTargets []string, log *slog.Logger) (*model.Makefile, []string, error) {
	if log == nil {
		log = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	p := &parser{
		cursor:          cursor,
		macros:          macros,
		expander:        macro.NewExpander(macros),
		meta:            meta,
		log:             log,
		makefile:        model.NewMakefile(),
		silentCommands:  opts.SuppressOutputMessages,
		ignoreExitCodes: !opts.StopOnErrors,
		suffixes:        append([]string(nil), defaultSuffixes...),
	}

	if err := p.run(); err != nil {
		return nil, nil, err
	}

	resolved, err := graph.ResolveActiveTargets(p.makefile, activeTargets)
	if err != nil {
		return nil, nil, err
	}
	if err := graph.CheckForCycles(p.makefile, resolved); err != nil {
		return nil, nil, err
	}
	graph.UpdateTimeStamps(p.makefile)
	graph.PreselectInferenceRules(p.makefile, resolved)

	return p.makefile, resolved, nil
}

func (p *parser) run() error {
	for !p.cursor.Done() {
		line := p.cursor.Line()

		switch {
		case isEmptyLine(line):
			p.cursor.Advance()
		case dotDirectiveRe.MatchString(line):
			if err := p.parseDotDirective(); err != nil {
				return err
			}
		case inferenceRuleRe.MatchString(line):
			if err := p.parseInferenceRule(); err != nil {
				return err
			}
		case macroDefRe.MatchString(line):
			m := macroDefRe.FindStringSubmatch(line)
			if err := p.macros.Set(m[1], m[2]); err != nil {
				return p.wrapExpansionError(err, "error defining macro %s", m[1])
			}
			p.cursor.Advance()
		default:
			if pos, length, ok := descriptionBlockSeparator(line); ok {
				if err := p.parseDescriptionBlock(pos, length); err != nil {
					return err
				}
			} else {
				p.log.Warn("don't know what to do", "line", p.cursor.LineNumber(), "text", line)
				p.cursor.Advance()
			}
		}
	}
	return nil
}

func isEmptyLine(line string) bool {
	return whitespaceRe.ReplaceAllString(line, "") == ""
}

// descriptionBlockSeparator finds the first ':' in an unindented line and
// reports its position and whether it's doubled ("::").
func descriptionBlockSeparator(line string) (pos, length int, ok bool) {
	if len(line) == 0 {
		return 0, 0, false
	}
	if line[0] == ' ' || line[0] == '\t' {
		return 0, 0, false
	}
	idx := indexByte(line, ':')
	if idx < 0 {
		return 0, 0, false
	}
	length = 1
	if idx+1 < len(line) && line[idx+1] == ':' {
		length = 2
	}
	return idx, length, true
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (p *parser) createTarget(name string) *model.DescriptionBlock {
	target := &model.DescriptionBlock{
		Target:     name,
		FileExists: p.meta.Exists(name),
		Suffixes:   p.suffixes,
	}
	if target.FileExists {
		target.TimeStamp = p.meta.ModTime(name)
	}
	p.makefile.Append(target)
	return target
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return jomerr.Syntax(p.cursor.LineNumber(), format, args...)
}

// wrapExpansionError stamps the current line onto a macro-expansion
// failure while preserving its Kind: a cycle raised while expanding a
// target, dependents or command line must keep surfacing as a
// CycleError, not get flattened into a SyntaxError just because the call
// site happens to be a syntax-level construct.
func (p *parser) wrapExpansionError(err error, format string, args ...interface{}) error {
	kind := jomerr.SyntaxError
	if jerr, ok := err.(*jomerr.Error); ok {
		kind = jerr.Kind
	}
	return jomerr.Wrap(kind, p.cursor.LineNumber(), err, format, args...)
}

type discardWriter struct{}

func (discardWriter) Write(b []byte) (int, error) { return len(b), nil }
