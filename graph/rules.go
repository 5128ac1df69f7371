package graph

import (
	"path/filepath"
	"strings"

	"github.com/ChristianFeldmann/jom/model"
)

// PreselectInferenceRules attaches candidate inference rules to every
// active target (and transitively, its command-less dependents) whose
// command list is empty, per §4.8.
func PreselectInferenceRules(mf *model.Makefile, activeTargets []string) {
	visited := make(map[string]bool)
	for _, name := range activeTargets {
		block := mf.Target(name)
		if block == nil {
			continue
		}
		preselect(mf, block, block.Suffixes, visited)
	}
}

func preselect(mf *model.Makefile, block *model.DescriptionBlock, parentSuffixes []string, visited map[string]bool) {
	if visited[block.Target] {
		return
	}
	visited[block.Target] = true

	suffixes := block.Suffixes
	if suffixes == nil {
		suffixes = parentSuffixes
	}

	if len(block.Commands) == 0 {
		block.InferenceRules = candidateRules(mf.InferenceRules, block.Target, suffixes)
	}

	for _, dep := range block.Dependents {
		depBlock := mf.Target(dep)
		if depBlock == nil {
			candidates := candidateRules(mf.InferenceRules, dep, suffixes)
			if len(candidates) == 0 {
				continue
			}
			depBlock = &model.DescriptionBlock{
				Target:         dep,
				Suffixes:       suffixes,
				InferenceRules: candidates,
			}
			mf.Append(depBlock)
			visited[dep] = true
			continue
		}
		preselect(mf, depBlock, suffixes, visited)
	}
}

// candidateRules finds rules whose toExtension/toSearchPath match target.
// Rules only apply at all when target's own name ends with one of the
// suffixes currently registered via ".SUFFIXES" in scope; the rule's own
// fromExtension plays no part in that gate. Matches are returned in
// declaration order (last-declared-wins already happened in
// Makefile.ReplaceInferenceRule, so mf.InferenceRules is already ordered).
func candidateRules(rules []*model.InferenceRule, target string, suffixes []string) []*model.InferenceRule {
	if !targetHasRegisteredSuffix(target, suffixes) {
		return nil
	}
	dir := filepath.Dir(target)

	var out []*model.InferenceRule
	for _, r := range rules {
		if !strings.HasSuffix(target, r.ToExtension) || r.ToSearchPath != dir {
			continue
		}
		out = append(out, r)
	}
	return out
}

// targetHasRegisteredSuffix reports whether target's name ends with any
// suffix currently registered via .SUFFIXES.
func targetHasRegisteredSuffix(target string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(target, s) {
			return true
		}
	}
	return false
}
