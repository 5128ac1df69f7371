package parse

import (
	"strings"

	"github.com/ChristianFeldmann/jom/jomerr"
	"github.com/ChristianFeldmann/jom/model"
)

// parseDescriptionBlock handles a target:deps (or target::deps) line and
// the command lines that follow it, per §4.4. NMAKE also allows a single
// inline command after a ';' on the header line itself
// ("target: deps ; command"); that split happens on the raw text, before
// macro expansion, since the ';' is syntax, not macro content.
func (p *parser) parseDescriptionBlock(separatorPos, separatorLength int) error {
	line := p.cursor.Line()
	targetSide := strings.TrimSpace(line[:separatorPos])
	rest := line[separatorPos+separatorLength:]

	depSide := rest
	inlineCommandLine := ""
	if idx := strings.IndexByte(rest, ';'); idx >= 0 {
		depSide = rest[:idx]
		inlineCommandLine = strings.TrimSpace(rest[idx+1:])
	}
	depSide = strings.TrimSpace(depSide)

	expandedTargets, err := p.expander.Expand(targetSide, false)
	if err != nil {
		return p.wrapExpansionError(err, "error expanding targets")
	}
	expandedDeps, err := p.expander.Expand(depSide, true)
	if err != nil {
		return p.wrapExpansionError(err, "error expanding dependents")
	}

	// parseCommandText's inline-file handling (if the inline command itself
	// contains "<<") reads past the header line on its own and leaves the
	// cursor on the "<<" terminator line; otherwise the cursor is still on
	// the header. Either way, one Advance moves past the last line consumed.
	var commands []model.Command
	if inlineCommandLine != "" {
		cmd, err := p.parseCommandText(inlineCommandLine, false)
		if err != nil {
			return err
		}
		commands = append(commands, cmd)
	}
	p.cursor.Advance()

	// A blank line immediately following the header terminates command
	// collection outright: it is consumed and no further lines are looked
	// at as commands for this block, even if an indented line follows.
	if isEmptyLine(p.cursor.Line()) {
		p.cursor.Advance()
	} else {
		followingCommands, err := p.collectCommands(false)
		if err != nil {
			return err
		}
		commands = append(commands, followingCommands...)
	}

	targets := whitespaceRe.Split(expandedTargets, -1)
	dependents := splitNonEmpty(expandedDeps)

	canAddCommands := model.ACSDisabled
	if separatorLength > 1 {
		canAddCommands = model.ACSEnabled
	}

	for _, t := range targets {
		if t == "" {
			continue
		}
		block := p.makefile.Target(t)
		if block == nil {
			block = p.createTarget(t)
			block.CanAddCommands = canAddCommands
		} else {
			if block.CanAddCommands != model.ACSUnknown && block.CanAddCommands != canAddCommands {
				return jomerr.Semantic(p.cursor.LineNumber(), "cannot have : and :: dependents for same target")
			}
			block.CanAddCommands = canAddCommands
		}

		block.Dependents = dependents
		block.Suffixes = p.suffixes

		if canAddCommands == model.ACSEnabled {
			block.Commands = append(block.Commands, commands...)
		} else {
			block.Commands = commands
		}

		// §4.4's second macro-expansion pass: command text collected above
		// was already expanded once (parseCommandText); re-expand it now
		// against the macro table as it stands once the whole header has
		// been processed, so an escaped "$$" resolves on this second pass
		// the way the original's per-target re-expansion loop does.
		// Inference-rule commands never go through this path (§4.5).
		for i := range block.Commands {
			expanded, err := p.expander.Expand(block.Commands[i].CommandLine, false)
			if err != nil {
				return p.wrapExpansionError(err, "error re-expanding command for target %q", t)
			}
			block.Commands[i].CommandLine = expanded
		}
	}
	return nil
}

func splitNonEmpty(s string) []string {
	fields := whitespaceRe.Split(strings.TrimSpace(s), -1)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
