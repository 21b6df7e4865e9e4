package store

// ConflictChoice is the user's answer to a divergence prompt.
type ConflictChoice int

const (
	// ChoiceCancel abandons the attempt; neither the file nor the
	// in-memory tree changes. The zero value, so a missing or failed
	// prompt resolves to the safe outcome.
	ChoiceCancel ConflictChoice = iota
	// ChoiceOverwrite writes the in-memory tree over the diverged file.
	ChoiceOverwrite
	// ChoiceReload discards in-memory changes and loads the file.
	ChoiceReload
)

// String returns the choice as a lowercase word.
func (c ConflictChoice) String() string {
	switch c {
	case ChoiceOverwrite:
		return "overwrite"
	case ChoiceReload:
		return "reload"
	default:
		return "cancel"
	}
}

// ConflictPrompt asks the user to resolve a divergence between the
// in-memory tree and an externally modified backing file.
type ConflictPrompt interface {
	// AskOverwriteCancelReload blocks until the user chooses. path is
	// the diverged file.
	AskOverwriteCancelReload(path string) ConflictChoice
}

// PromptFunc adapts a function to the ConflictPrompt interface.
type PromptFunc func(path string) ConflictChoice

// AskOverwriteCancelReload calls f.
func (f PromptFunc) AskOverwriteCancelReload(path string) ConflictChoice {
	return f(path)
}
