// Package graph performs the whole-graph checks and annotations that run
// once the parser has exhausted its input: active-target resolution, cycle
// detection, timestamp propagation and inference-rule preselection (§4.8).
package graph

import (
	"time"

	"github.com/ChristianFeldmann/jom/jomerr"
	"github.com/ChristianFeldmann/jom/model"
)

// epoch is the sentinel a dependent-driven timestamp climbs from.
var epoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// ResolveActiveTargets validates the caller-supplied active-target names
// against the built Makefile, or seeds the list with the first-defined
// target when none were supplied.
func ResolveActiveTargets(mf *model.Makefile, activeTargets []string) ([]string, error) {
	if len(activeTargets) == 0 {
		first := mf.FirstTarget()
		if first == nil {
			return nil, nil
		}
		return []string{first.Target}, nil
	}
	for _, name := range activeTargets {
		if mf.Target(name) == nil {
			return nil, jomerr.Semantic(0, "Target %s doesn't exist.", name)
		}
	}
	return activeTargets, nil
}

// CheckForCycles runs a stackful DFS from each active target. Marks are
// cleared on return from each call so independent active targets never
// falsely collide with each other's traversal.
func CheckForCycles(mf *model.Makefile, activeTargets []string) error {
	for _, name := range activeTargets {
		if err := checkForCyclesRecursive(mf, name); err != nil {
			return err
		}
	}
	return nil
}

func checkForCyclesRecursive(mf *model.Makefile, name string) error {
	block := mf.Target(name)
	if block == nil {
		return nil
	}
	if block.VisitedByCycleCheck() {
		return jomerr.Cycle(0, "cycle in targets detected: %s", name)
	}
	block.SetVisitedByCycleCheck(true)
	defer block.SetVisitedByCycleCheck(false)

	for _, dep := range block.Dependents {
		if err := checkForCyclesRecursive(mf, dep); err != nil {
			return err
		}
	}
	return nil
}

// UpdateTimeStamps propagates timestamps across every registered target.
// A block with a backing file already carries a valid mtime; the rest
// derive theirs from their dependents, or from "now" if they have none.
func UpdateTimeStamps(mf *model.Makefile) {
	for _, block := range mf.Targets() {
		updateTimeStamp(mf, block, make(map[string]bool))
	}
}

func updateTimeStamp(mf *model.Makefile, block *model.DescriptionBlock, visiting map[string]bool) time.Time {
	if block.FileExists {
		return block.TimeStamp
	}
	if !block.TimeStamp.IsZero() {
		return block.TimeStamp
	}
	if len(block.Dependents) == 0 {
		block.TimeStamp = timeNow()
		return block.TimeStamp
	}
	if visiting[block.Target] {
		return epoch
	}
	visiting[block.Target] = true
	defer delete(visiting, block.Target)

	max := epoch
	for _, dep := range block.Dependents {
		depBlock := mf.Target(dep)
		if depBlock == nil {
			continue
		}
		ts := updateTimeStamp(mf, depBlock, visiting)
		if ts.After(max) {
			max = ts
		}
	}
	block.TimeStamp = max
	return block.TimeStamp
}

// timeNow is overridable by tests; the production default is wall-clock.
var timeNow = time.Now
