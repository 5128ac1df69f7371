package parse

// parseDotDirective handles `.SUFFIXES`, `.IGNORE`, `.PRECIOUS` and
// `.SILENT` lines, per §4.7. Each is a single line; none collect commands.
// Unlike the original (parser.cpp:332-355), the right-hand side is
// macro-expanded here; the original takes it literally. For real-world
// makefiles this is strictly more capable (".SUFFIXES: $(EXTRA_SUFFIXES)"
// works), but it is a deliberate divergence, not an oversight: see
// DESIGN.md.
func (p *parser) parseDotDirective() error {
	line := p.cursor.Line()
	m := dotDirectiveRe.FindStringSubmatch(line)
	if m == nil {
		return p.errorf("malformed dot directive: %s", line)
	}
	directive, rhs := m[1], m[2]

	expanded, err := p.expander.Expand(rhs, false)
	if err != nil {
		return p.wrapExpansionError(err, "error expanding %s directive", directive)
	}
	entries := splitNonEmpty(expanded)

	switch directive {
	case "SUFFIXES":
		if len(entries) == 0 {
			p.suffixes = nil
		} else {
			fresh := make([]string, len(p.suffixes), len(p.suffixes)+len(entries))
			copy(fresh, p.suffixes)
			p.suffixes = append(fresh, entries...)
		}
	case "IGNORE":
		p.ignoreExitCodes = true
	case "PRECIOUS":
		for _, name := range entries {
			p.makefile.AddPrecious(name)
		}
	case "SILENT":
		p.silentCommands = true
	}

	p.cursor.Advance()
	return nil
}
