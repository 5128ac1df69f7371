package macro

import (
	"strings"

	"github.com/ChristianFeldmann/jom/jomerr"
)

// MagicEscape is the sentinel character emitted immediately before a
// preserved, not-yet-resolved filename macro form ($@, $<, $*, $?). A later
// pass (outside this core, §6) substitutes the real filename.
const MagicEscape = '\uFEFF'

// Expander expands a string against a Table, recursing into referenced
// macros and detecting cycles. It holds no state of its own beyond the
// Table reference; the "currently expanding" set lives on the call stack.
type Expander struct {
	table *Table
}

// NewExpander returns an Expander bound to table.
func NewExpander(table *Table) *Expander {
	return &Expander{table: table}
}

// Expand expands str. inDependentsLine enables the special rule that
// preserves $$@ (and $$(@...)) as an escaped filename macro instead of
// collapsing it to a literal $.
func (e *Expander) Expand(str string, inDependentsLine bool) (string, error) {
	return e.expand(str, inDependentsLine, make(map[string]bool))
}

func (e *Expander) expand(str string, inDependentsLine bool, visiting map[string]bool) (string, error) {
	if !strings.ContainsRune(str, '$') {
		return str, nil
	}

	s := []rune(str)
	n := len(s)
	maxI := n - 1
	var out strings.Builder
	out.Grow(n)

	i := 0
	for i <= maxI {
		if s[i] == '$' && i < maxI {
			i++
			switch {
			case s[i] == '(':
				appended, end, err := e.expandParenInvocation(s, i, inDependentsLine, visiting)
				if err != nil {
					return "", err
				}
				out.WriteString(appended)
				i = end
			case s[i] == '$':
				i = e.writeEscapedDollar(&out, s, i, inDependentsLine)
			case isMacroNameChar(s[i]):
				macroValue, err := e.expandSingleCharMacro(s[i], inDependentsLine, visiting)
				if err != nil {
					return "", err
				}
				out.WriteString(macroValue)
			default:
				switch s[i] {
				case '<', '*', '@', '?':
					out.WriteRune(MagicEscape)
					out.WriteRune(s[i])
				default:
					return "", jomerr.Syntax(0, "Invalid macro invocation found")
				}
			}
		} else {
			out.WriteRune(s[i])
		}
		i++
	}

	return out.String(), nil
}

// writeEscapedDollar handles the second '$' of a "$$" sequence. i points at
// that second '$'. It returns the index the outer loop should resume at
// (the loop body itself does i++ afterwards).
func (e *Expander) writeEscapedDollar(out *strings.Builder, s []rune, i int, inDependentsLine bool) int {
	if inDependentsLine {
		j := i + 1
		parenFound := false
		if j < len(s) && s[j] == '(' {
			parenFound = true
			j++
		}
		if j < len(s) && s[j] == '@' {
			out.WriteRune(MagicEscape)
			if parenFound {
				out.WriteRune('(')
			}
			out.WriteRune('@')
			return j
		}
	}
	out.WriteRune('$')
	return i
}

func (e *Expander) expandSingleCharMacro(name rune, inDependentsLine bool, visiting map[string]bool) (string, error) {
	macroName := string(name)
	value, err := e.cycleCheckedValue(macroName, visiting)
	if err != nil {
		return "", err
	}
	value, err = e.expand(value, inDependentsLine, visiting)
	if err != nil {
		return "", err
	}
	delete(visiting, macroName)
	return value, nil
}

// expandParenInvocation handles a $( ... ) construct. s[i] is the '('.
// Returns the text to append and the index of the closing ')', which the
// caller treats as the new cursor position (it will be incremented past by
// the caller's loop).
func (e *Expander) expandParenInvocation(s []rune, i int, inDependentsLine bool, visiting map[string]bool) (string, int, error) {
	maxI := len(s) - 1
	macroInvocationEnd := -1
	macroNameEnd := -1
	closingFound := false
	for j := i + 1; j <= maxI; j++ {
		switch s[j] {
		case ':':
			if macroNameEnd < 0 {
				macroNameEnd = j
			}
		case ')':
			closingFound = true
			macroInvocationEnd = j
		}
		if closingFound {
			break
		}
	}
	if !closingFound {
		return "", 0, jomerr.Syntax(0, "Macro invocation $( without closing ) found")
	}
	if macroNameEnd < 0 {
		macroNameEnd = macroInvocationEnd
	}

	macroName := string(s[i+1 : macroNameEnd])
	if macroName == "" {
		return "", 0, jomerr.Syntax(0, "Macro name is missing from invocation")
	}

	switch macroName[0] {
	case '<', '*', '@', '?':
		tail := string(s[i+1 : macroInvocationEnd+1])
		return string(MagicEscape) + "(" + tail, macroInvocationEnd, nil
	default:
		value, err := e.cycleCheckedValue(macroName, visiting)
		if err != nil {
			return "", 0, err
		}
		value, err = e.expand(value, inDependentsLine, visiting)
		if err != nil {
			return "", 0, err
		}
		end := macroInvocationEnd
		if macroNameEnd != macroInvocationEnd {
			before, after, realEnd, serr := parseSubstitution(s, macroNameEnd+1)
			if serr != nil {
				return "", 0, serr
			}
			value = strings.ReplaceAll(value, before, after)
			end = realEnd
		}
		delete(visiting, macroName)
		return value, end, nil
	}
}

func (e *Expander) cycleCheckedValue(name string, visiting map[string]bool) (string, error) {
	if visiting[name] {
		return "", jomerr.Cycle(0, "Cycle in macro detected when trying to invoke $(%s)", name)
	}
	visiting[name] = true
	return e.table.Value(name), nil
}

// parseSubstitution scans a $(NAME:before=after) tail starting right after
// the ':'. The '^' quote character removes itself from the output and
// inhibits ')' from terminating the scan for the character immediately
// following it; it has no such effect on '=', matching the original
// implementation's narrower quoting.
func parseSubstitution(s []rune, start int) (before, after string, end int, err error) {
	equalsIdx := -1
	end = -1
	quoted := false
	var quotePositions []int

loop:
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '=':
			quoted = false
			equalsIdx = i
		case ')':
			if !quoted {
				end = i
				break loop
			}
			quoted = false
		case '^':
			quoted = true
			quotePositions = append(quotePositions, i)
		default:
			quoted = false
		}
	}

	if equalsIdx < 0 || end < 0 {
		return "", "", 0, jomerr.Syntax(0, "Cannot find = after : in macro substitution.")
	}

	before = string(s[start:equalsIdx])
	afterRunes := append([]rune(nil), s[equalsIdx+1:end]...)
	for k := len(quotePositions) - 1; k >= 0; k-- {
		pos := quotePositions[k]
		if pos > equalsIdx && pos < end {
			rel := pos - (equalsIdx + 1)
			afterRunes = append(afterRunes[:rel], afterRunes[rel+1:]...)
		}
	}
	after = string(afterRunes)
	return before, after, end, nil
}

func isMacroNameChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
