package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/leaderkey/internal/store"
)

// stdinPrompt resolves save conflicts on the process's standard
// streams, for commands running outside the tcell loop.
type stdinPrompt struct{}

// AskOverwriteCancelReload implements store.ConflictPrompt. EOF or an
// unreadable stdin cancels, the choice that loses nothing.
func (stdinPrompt) AskOverwriteCancelReload(path string) store.ConflictChoice {
	fmt.Fprintf(os.Stderr, "%s changed on disk while you were editing.\n", path)
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprint(os.Stderr, "[o]verwrite, [r]ead from file, or [c]ancel? ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintln(os.Stderr)
			return store.ChoiceCancel
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "o", "overwrite":
			return store.ChoiceOverwrite
		case "r", "read", "reload":
			return store.ChoiceReload
		case "c", "cancel", "":
			return store.ChoiceCancel
		}
	}
}

var _ store.ConflictPrompt = stdinPrompt{}
