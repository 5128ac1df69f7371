package model

// Makefile is the built target graph: the target map, its insertion order,
// the declared inference rules and the precious-target set. It is the
// value the parser hands back to a downstream executor.
type Makefile struct {
	targets     map[string]*DescriptionBlock
	targetOrder []string

	InferenceRules  []*InferenceRule
	PreciousTargets map[string]struct{}
}

// NewMakefile returns an empty, ready-to-use Makefile.
func NewMakefile() *Makefile {
	return &Makefile{
		targets:         make(map[string]*DescriptionBlock),
		PreciousTargets: make(map[string]struct{}),
	}
}

// Append registers a newly created block, recording first-seen order.
func (m *Makefile) Append(block *DescriptionBlock) {
	if _, exists := m.targets[block.Target]; !exists {
		m.targetOrder = append(m.targetOrder, block.Target)
	}
	m.targets[block.Target] = block
}

// Target looks up a block by name; nil if undefined.
func (m *Makefile) Target(name string) *DescriptionBlock {
	return m.targets[name]
}

// FirstTarget returns the first-inserted block, or nil if the Makefile is
// empty. Used to seed the active-target list when the caller supplies none.
func (m *Makefile) FirstTarget() *DescriptionBlock {
	if len(m.targetOrder) == 0 {
		return nil
	}
	return m.targets[m.targetOrder[0]]
}

// Targets returns all blocks in first-seen order.
func (m *Makefile) Targets() []*DescriptionBlock {
	out := make([]*DescriptionBlock, len(m.targetOrder))
	for i, name := range m.targetOrder {
		out[i] = m.targets[name]
	}
	return out
}

// AddPrecious marks a target name as precious (must survive a failed
// build); it is a no-op if the name is empty.
func (m *Makefile) AddPrecious(name string) {
	if name == "" {
		return
	}
	m.PreciousTargets[name] = struct{}{}
}

// IsPrecious reports whether name was declared via .PRECIOUS.
func (m *Makefile) IsPrecious(name string) bool {
	_, ok := m.PreciousTargets[name]
	return ok
}

// ReplaceInferenceRule implements "last declaration wins": if a rule with
// the same four-tuple as rule already exists it is removed, then rule is
// appended. Non-replacements keep their declaration-order position.
func (m *Makefile) ReplaceInferenceRule(rule *InferenceRule) {
	for i, existing := range m.InferenceRules {
		if existing.SameRecipe(rule) {
			m.InferenceRules = append(m.InferenceRules[:i], m.InferenceRules[i+1:]...)
			break
		}
	}
	m.InferenceRules = append(m.InferenceRules, rule)
}
