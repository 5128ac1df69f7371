package macro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnv struct {
	values map[string]string
}

func newFakeEnv() *fakeEnv { return &fakeEnv{values: make(map[string]string)} }

func (f *fakeEnv) Set(name, value string) { f.values[name] = value }

func TestSetAndValueRoundTrip(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "1"))
	assert.True(t, table.IsDefined("A"))
	assert.Equal(t, "1", table.Value("A"))

	assert.False(t, table.IsDefined("B"))
	assert.Equal(t, "", table.Value("B"))
}

func TestUndefineRemovesMacro(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "1"))
	table.Undefine("A")
	assert.False(t, table.IsDefined("A"))
}

func TestSelfReferenceIsLazilyAppended(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "1"))
	require.NoError(t, table.Set("A", "$(A) 2"))
	assert.Equal(t, "1 2", table.Value("A"))
}

func TestSelfReferenceReplacesEveryOccurrence(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.Set("A", "x"))
	require.NoError(t, table.Set("A", "$(A)-$(A)"))
	assert.Equal(t, "x-x", table.Value("A"))
}

func TestInvalidMacroNameIsRejected(t *testing.T) {
	table := NewTable(nil)
	err := table.Set("1bad:name", "value")
	require.Error(t, err)
}

func TestSetCommandLineIsReadOnlyAndForced(t *testing.T) {
	table := NewTable(nil)
	require.NoError(t, table.SetCommandLine("CFG", "release", false))
	require.NoError(t, table.Set("CFG", "debug"))
	assert.Equal(t, "release", table.Value("CFG"), "plain Set must not overwrite a command-line macro")
}

func TestSetEnvironmentMirrorsExpandedValue(t *testing.T) {
	env := newFakeEnv()
	table := NewTable(env)
	table.SetEnvironment("path", "/usr/bin", false)
	assert.Equal(t, "/usr/bin", table.Value("PATH"))
	assert.Equal(t, "/usr/bin", env.values["PATH"])
}

func TestSetEnvironmentPromotesCommandLineMacro(t *testing.T) {
	env := newFakeEnv()
	table := NewTable(env)
	require.NoError(t, table.SetCommandLine("PATH", "/usr/bin", false))
	table.SetEnvironment("path", "ignored", false)

	entry := table.macros["PATH"]
	require.NotNil(t, entry)
	assert.Equal(t, "/usr/bin", env.values["PATH"], "promotion mirrors the existing stored value, not the new argument")
}

func TestSetEnvironmentSwallowsExpansionFailure(t *testing.T) {
	env := newFakeEnv()
	table := NewTable(env)
	table.SetEnvironment("PROMPT", "$(UNDEFINED:a=b", false) // unterminated substitution
	assert.False(t, table.IsDefined("PROMPT"))
	assert.Empty(t, env.values)
}

func TestSetEnvironmentSkipsInvalidName(t *testing.T) {
	env := newFakeEnv()
	table := NewTable(env)
	table.SetEnvironment("ProgramFiles(x86)", `C:\Program Files (x86)`, false)
	assert.False(t, table.IsDefined("PROGRAMFILES(X86)"))
	assert.Empty(t, env.values)
}
