package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChristianFeldmann/jom/jomerr"
	"github.com/ChristianFeldmann/jom/model"
)

func TestResolveActiveTargetsSeedsFromFirstTarget(t *testing.T) {
	mf := model.NewMakefile()
	mf.Append(&model.DescriptionBlock{Target: "first"})
	mf.Append(&model.DescriptionBlock{Target: "second"})

	resolved, err := ResolveActiveTargets(mf, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"first"}, resolved)
}

func TestResolveActiveTargetsRejectsUnknownName(t *testing.T) {
	mf := model.NewMakefile()
	mf.Append(&model.DescriptionBlock{Target: "first"})

	_, err := ResolveActiveTargets(mf, []string{"missing"})
	require.Error(t, err)
	var jerr *jomerr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, jomerr.SemanticError, jerr.Kind)
}

func TestCheckForCyclesDetectsTwoTargetCycle(t *testing.T) {
	mf := model.NewMakefile()
	mf.Append(&model.DescriptionBlock{Target: "all", Dependents: []string{"a"}})
	mf.Append(&model.DescriptionBlock{Target: "a", Dependents: []string{"all"}})

	err := CheckForCycles(mf, []string{"all"})
	require.Error(t, err)
	var jerr *jomerr.Error
	require.ErrorAs(t, err, &jerr)
	assert.Equal(t, jomerr.CycleError, jerr.Kind)
}

func TestCheckForCyclesClearsMarksBetweenIndependentTargets(t *testing.T) {
	mf := model.NewMakefile()
	mf.Append(&model.DescriptionBlock{Target: "shared"})
	mf.Append(&model.DescriptionBlock{Target: "a", Dependents: []string{"shared"}})
	mf.Append(&model.DescriptionBlock{Target: "b", Dependents: []string{"shared"}})

	// Two independent active targets sharing a dependent must not falsely
	// collide, since marks are cleared on return (not a global "visited" bit).
	err := CheckForCycles(mf, []string{"a", "b"})
	require.NoError(t, err)
}

func TestUpdateTimeStampsLeafWithNoFileUsesNow(t *testing.T) {
	mf := model.NewMakefile()
	mf.Append(&model.DescriptionBlock{Target: "leaf"})

	before := time.Now()
	UpdateTimeStamps(mf)
	after := time.Now()

	ts := mf.Target("leaf").TimeStamp
	assert.False(t, ts.Before(before))
	assert.False(t, ts.After(after))
}

func TestUpdateTimeStampsDerivesMaxOfDependents(t *testing.T) {
	mf := model.NewMakefile()
	older := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mf.Append(&model.DescriptionBlock{Target: "dep1.obj", FileExists: true, TimeStamp: older})
	mf.Append(&model.DescriptionBlock{Target: "dep2.obj", FileExists: true, TimeStamp: newer})
	mf.Append(&model.DescriptionBlock{Target: "all", Dependents: []string{"dep1.obj", "dep2.obj"}})

	UpdateTimeStamps(mf)

	assert.True(t, mf.Target("all").TimeStamp.Equal(newer))
}

func TestUpdateTimeStampsRespectsExistingFileTimestamp(t *testing.T) {
	mf := model.NewMakefile()
	stamp := time.Date(2019, 5, 5, 0, 0, 0, 0, time.UTC)
	mf.Append(&model.DescriptionBlock{Target: "built.obj", FileExists: true, TimeStamp: stamp})

	UpdateTimeStamps(mf)
	assert.True(t, mf.Target("built.obj").TimeStamp.Equal(stamp))
}
