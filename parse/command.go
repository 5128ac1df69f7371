package parse

import (
	"strconv"
	"strings"

	"github.com/ChristianFeldmann/jom/model"
)

// collectCommands reads zero or more command lines following a
// description-block header or inference-rule header, per §4.6. It stops
// (without consuming) at the first non-blank, non-indented line.
func (p *parser) collectCommands(inferenceRule bool) ([]model.Command, error) {
	var commands []model.Command
	for {
		cmd, matched, err := p.parseCommand(inferenceRule)
		if err != nil {
			return nil, err
		}
		if !matched {
			break
		}
		commands = append(commands, cmd)
		p.cursor.Advance()
	}
	return commands, nil
}

// parseCommand eats any blank lines separating commands, then parses a
// single command line if the next non-blank line is indented. matched is
// false (with the cursor left untouched) when no command line was found.
func (p *parser) parseCommand(inferenceRule bool) (model.Command, bool, error) {
	for isEmptyLine(p.cursor.Line()) {
		p.cursor.Advance()
		if p.cursor.Done() {
			return model.Command{}, false, nil
		}
	}

	rawLine := p.cursor.Line()
	if !strings.HasPrefix(rawLine, " ") && !strings.HasPrefix(rawLine, "\t") {
		return model.Command{}, false, nil
	}

	cmd, err := p.parseCommandText(rawLine, inferenceRule)
	if err != nil {
		return model.Command{}, false, err
	}
	return cmd, true, nil
}

// parseCommandText parses a single command line (the prefix modifiers of
// §4.6 and, when present, its inline file) out of rawLine. It is shared by
// the normal multi-line collection path and the inline "target: deps ;
// command" form (§4.4), where rawLine is the tail of the header line rather
// than something read fresh off the cursor.
func (p *parser) parseCommandText(rawLine string, inferenceRule bool) (model.Command, error) {
	cmd := model.Command{}
	if p.ignoreExitCodes {
		cmd.MaxExitCode = 255
	}
	cmd.Silent = p.silentCommands

	trimmed := strings.TrimSpace(rawLine)
	if inferenceRule {
		cmd.CommandLine = trimmed
	} else {
		expanded, err := p.expander.Expand(trimmed, false)
		if err != nil {
			return model.Command{}, p.wrapExpansionError(err, "error expanding command")
		}
		cmd.CommandLine = expanded
	}

	switch {
	case strings.HasPrefix(cmd.CommandLine, "-"):
		rest := cmd.CommandLine[1:]
		cmd.MaxExitCode = 255
		if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
			if code, err := strconv.ParseUint(strings.TrimSpace(rest[:idx]), 10, 8); err == nil {
				cmd.MaxExitCode = uint8(code)
				rest = strings.TrimLeft(rest[idx+1:], " \t")
			}
		}
		cmd.CommandLine = rest
	case strings.HasPrefix(cmd.CommandLine, "@"):
		cmd.Silent = true
		cmd.CommandLine = cmd.CommandLine[1:]
	}

	if m := inlineMarkerRe.FindStringSubmatch(rawLine); m != nil {
		if err := p.parseInlineFile(&cmd, m[1]); err != nil {
			return model.Command{}, err
		}
	}

	return cmd, nil
}

// parseInlineFile reads a here-document: lines are taken literally (after
// macro expansion) until one beginning with "<<" terminates it. That
// terminator line is left unconsumed; the caller's Advance() after this
// command moves past it.
func (p *parser) parseInlineFile(cmd *model.Command, tag string) error {
	inlineFile := &model.InlineFile{Filename: tag}
	cmd.InlineFile = inlineFile

	p.cursor.Advance()
	for !p.cursor.Done() {
		line := p.cursor.Line()
		if strings.HasPrefix(line, "<<") {
			for _, opt := range splitNonEmpty(line[2:]) {
				switch opt {
				case "KEEP":
					inlineFile.Keep = true
				case "UNICODE":
					inlineFile.Unicode = true
				}
			}
			return nil
		}
		expanded, err := p.expander.Expand(line, false)
		if err != nil {
			return p.wrapExpansionError(err, "error expanding inline file content")
		}
		inlineFile.Content += expanded + "\n"
		p.cursor.Advance()
	}
	return nil
}
