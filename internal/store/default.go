package store

import "github.com/dshills/leaderkey/internal/tree"

// DefaultTree returns the seed menu written to disk on first run. It
// is small on purpose: enough to demonstrate actions, a group, and a
// special key without presuming what the user launches.
func DefaultTree() *tree.Group {
	search := tree.NewAction(tree.KindURL, "s", "https://duckduckgo.com")
	search.Label = "Search the web"

	home := tree.NewAction(tree.KindFolder, "h", "~")
	home.Label = "Home"

	terminal := tree.NewAction(tree.KindCommand, "⏎", "$SHELL")
	terminal.Label = "Shell"

	news := tree.NewAction(tree.KindURL, "n", "https://news.ycombinator.com")
	news.Label = "News"
	mail := tree.NewAction(tree.KindURL, "m", "https://mail.google.com")
	mail.Label = "Mail"
	web := tree.NewGroup("w", "Web", news, mail)

	return tree.NewGroup("", "", search, home, terminal, web)
}
