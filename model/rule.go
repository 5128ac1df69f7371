package model

// InferenceRule is a generic recipe keyed on source/target extensions and
// optional search directories, e.g. `{src}.c{obj}.obj:`.
//
// Equality for replacement purposes ignores Commands: a newly parsed rule
// with the same four-tuple (FromSearchPath, FromExtension, ToSearchPath,
// ToExtension) replaces an existing one.
type InferenceRule struct {
	FromSearchPath string
	FromExtension  string
	ToSearchPath   string
	ToExtension    string
	BatchMode      bool
	Commands       []Command
}

// SameRecipe reports whether two rules share the four-tuple that identifies
// a rule for replacement purposes (command lists are deliberately ignored).
func (r *InferenceRule) SameRecipe(other *InferenceRule) bool {
	return r.FromSearchPath == other.FromSearchPath &&
		r.FromExtension == other.FromExtension &&
		r.ToSearchPath == other.ToSearchPath &&
		r.ToExtension == other.ToExtension
}
