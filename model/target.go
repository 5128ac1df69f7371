package model

import "time"

// AddCommandsState tracks which separator (`:` or `::`) a target was first
// declared with. Once Enabled or Disabled it cannot flip; a later
// conflicting declaration is a SemanticError.
type AddCommandsState int

const (
	ACSUnknown AddCommandsState = iota
	ACSEnabled
	ACSDisabled
)

// DescriptionBlock is a single build target: its dependents, its commands
// and the bookkeeping the graph validator needs (cycle-check mark,
// timestamp, preselected inference rules).
type DescriptionBlock struct {
	Target          string
	Dependents      []string
	Commands        []Command
	CanAddCommands  AddCommandsState
	FileExists      bool
	TimeStamp       time.Time
	Suffixes        []string
	InferenceRules  []*InferenceRule

	visitedByCycleCheck bool
}

// VisitedByCycleCheck reports whether this block is currently on the DFS
// stack of an in-progress cycle check. Exported via accessor so the graph
// package can flip it without a second map keyed by target name.
func (d *DescriptionBlock) VisitedByCycleCheck() bool { return d.visitedByCycleCheck }

func (d *DescriptionBlock) SetVisitedByCycleCheck(v bool) { d.visitedByCycleCheck = v }
