package parse

import (
	"strings"

	"github.com/ChristianFeldmann/jom/model"
)

// parseInferenceRule handles a "{fromPath}.fromExt{toPath}.toExt:[:]" header
// and the command lines that follow it, per §4.5.
func (p *parser) parseInferenceRule() error {
	line := p.cursor.Line()
	m := inferenceRuleRe.FindStringSubmatch(line)
	if m == nil {
		return p.errorf("malformed inference rule: %s", line)
	}

	rule := &model.InferenceRule{
		FromSearchPath: stripBraces(m[1]),
		FromExtension:  m[2],
		ToSearchPath:   stripBraces(m[3]),
		ToExtension:    m[4],
		BatchMode:      m[5] == "::",
	}

	p.cursor.Advance()
	commands, err := p.collectCommands(true)
	if err != nil {
		return err
	}
	rule.Commands = commands

	p.makefile.ReplaceInferenceRule(rule)
	return nil
}

// stripBraces removes the enclosing "{" and "}" from a captured search path,
// strips any trailing directory separator (§3, §4.5), and defaults to "."
// when the rule didn't specify one.
func stripBraces(s string) string {
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.HasSuffix(s, "/") || strings.HasSuffix(s, `\`) {
		s = s[:len(s)-1]
	}
	if s == "" {
		return "."
	}
	return s
}
