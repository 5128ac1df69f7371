package model

// InlineFile is a here-document attached to a Command, delimited by `<<`
// markers in the source makefile.
type InlineFile struct {
	Filename string
	Content  string
	Keep     bool
	Unicode  bool
}

// Command is one recipe line belonging to a DescriptionBlock or
// InferenceRule. MaxExitCode of 255 means "ignore the exit code".
type Command struct {
	CommandLine string
	MaxExitCode uint8
	Silent      bool
	InlineFile  *InlineFile
}
