package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandIdentityFastPath(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("no dollars here", false)
	require.NoError(t, err)
	assert.Equal(t, "no dollars here", out)
}

func TestExpandPlainInvocation(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("X", "aaa"))
	e := NewExpander(table)
	out, err := e.Expand("$(X)", false)
	require.NoError(t, err)
	assert.Equal(t, "aaa", out)
}

func TestExpandSubstitution(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("X", "aaa"))
	e := NewExpander(table)
	out, err := e.Expand("$(X:a=b)", false)
	require.NoError(t, err)
	assert.Equal(t, "bbb", out)
}

func TestExpandSubstitutionWithQuotedSpecialChars(t *testing.T) {
	// $(X:^==^)=) : the '^' inhibits ')' from ending the before/after scan
	// early, so "before" is the literal text "^==^)" (carets are only
	// stripped from the "after" text) and "after" is empty.
	table := NewTable(nil)
	require.NoError(t, table.Set("X", "prefix^==^)suffix"))
	e := NewExpander(table)
	out, err := e.Expand("$(X:^==^)=)", false)
	require.NoError(t, err)
	assert.Equal(t, "prefixsuffix", out)
}

func TestExpandDoubleDollarIsLiteral(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("$$", false)
	require.NoError(t, err)
	assert.Equal(t, "$", out)
}

func TestExpandEscapedFilenameMacroInDependentsLine(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("$$@", true)
	require.NoError(t, err)
	assert.Equal(t, string(MagicEscape)+"@", out)
}

func TestExpandDoubleDollarAtOutsideDependentsLineCollapses(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("$$@", false)
	require.NoError(t, err)
	assert.Equal(t, "$@", out)
}

func TestExpandFilenameMacroEmitsMagicEscape(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("$@", false)
	require.NoError(t, err)
	assert.Equal(t, string(MagicEscape)+"@", out)
}

func TestExpandParenthesizedFilenameMacroPreservesTail(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	out, err := e.Expand("$(@D)", false)
	require.NoError(t, err)
	assert.Equal(t, string(MagicEscape)+"(@D)", out)
}

func TestExpandSingleCharacterMacro(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("Q", "value"))
	e := NewExpander(table)
	out, err := e.Expand("$Q", false)
	require.NoError(t, err)
	assert.Equal(t, "value", out)
}

func TestExpandUnterminatedParenIsSyntaxError(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	_, err := e.Expand("$(X", false)
	require.Error(t, err)
}

func TestExpandEmptyNameIsError(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	_, err := e.Expand("$()", false)
	require.Error(t, err)
}

func TestExpandMalformedSubstitutionIsError(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("X", "v"))
	e := NewExpander(table)
	_, err := e.Expand("$(X:novalue)", false)
	require.Error(t, err)
}

func TestExpandInvalidDollarSequenceIsError(t *testing.T) {
	table := NewTable(nil)
	e := NewExpander(table)
	_, err := e.Expand("$#", false)
	require.Error(t, err)
}

func TestExpandDetectsMutualCycle(t *testing.T) {
	// Self-reference ("X = $(X) more") is resolved eagerly at Set time
	// (see replaceSelfReference), so only cycles through a *different*
	// macro survive to expansion time.
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "$(B)"))
	require.NoError(t, table.Set("B", "$(A)"))
	e := NewExpander(table)
	_, err := e.Expand("$(A)", false)
	require.Error(t, err)
}

func TestExpandAllowsSiblingNonNestedReferences(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "1"))
	e := NewExpander(table)
	out, err := e.Expand("$(A) $(A)", false)
	require.NoError(t, err)
	assert.Equal(t, "1 1", out)
}

func TestExpandRecursesThroughNestedMacros(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("INNER", "1"))
	require.NoError(t, table.Set("OUTER", "$(INNER) 2"))
	e := NewExpander(table)
	out, err := e.Expand("$(OUTER)", false)
	require.NoError(t, err)
	assert.Equal(t, "1 2", out)
}
