package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	xterm "golang.org/x/term"

	"github.com/dshills/leaderkey/internal/app"
	"github.com/dshills/leaderkey/internal/keymatch"
	"github.com/dshills/leaderkey/internal/nav"
	"github.com/dshills/leaderkey/internal/store"
	"github.com/dshills/leaderkey/internal/term"
	"github.com/dshills/leaderkey/internal/tree"
)

// runInteractive opens the menu on the process's terminal and serves
// it until the user quits or a dispatch closes it.
func runInteractive(opts app.Options) int {
	if !xterm.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal (try `leaderkey print`)")
		return 1
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	driver, err := term.New(application)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open terminal: %v\n", err)
		return 1
	}

	// While the loop runs, conflicts surface as its modal. Hand the
	// prompt back before Shutdown so the closing flush can still ask.
	st := application.Store()
	st.SetPrompt(driver)
	defer st.SetPrompt(stdinPrompt{})

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		<-signals
		driver.Stop()
	}()

	if err := driver.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runInit creates the configuration directory and the starter tree
// document when absent.
func runInit(opts app.Options) int {
	opts.SkipLoad = true
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	st := application.Store()
	_, statErr := os.Stat(st.Path())
	existed := statErr == nil

	if err := st.EnsureAndLoad(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if existed {
		fmt.Printf("%s already exists (%d top-level entries)\n", st.Path(), len(st.Root().Children))
	} else {
		fmt.Printf("created %s with the starter tree\n", st.Path())
	}
	return 0
}

// runValidate loads the tree document without creating it and reports
// every validation finding. Exit status 1 when any exist.
func runValidate(opts app.Options) int {
	opts.SkipLoad = true
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	st := application.Store()
	if err := st.Load(true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	findings := st.Validation()
	if len(findings) == 0 {
		fmt.Printf("%s: ok\n", st.Path())
		return 0
	}
	for _, f := range findings {
		fmt.Println(f.Error())
	}
	fmt.Printf("%d finding(s)\n", len(findings))
	return 1
}

// runPrint dumps the tree document as an indented listing with
// validation badges, a debugging view of what the menu would serve.
func runPrint(opts app.Options) int {
	opts.SkipLoad = true
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	st := application.Store()
	if err := st.Load(true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	root := st.Root()
	fmt.Printf("%s (%d top-level entries, checksum %.8s)\n", st.Path(), len(root.Children), st.Checksum())
	printLevel(st, root, nil)
	return 0
}

// printLevel prints one group's children indented by depth, badging
// rows that carry validation findings.
func printLevel(st *store.Store, g *tree.Group, path []int) {
	for i, child := range g.Children {
		childPath := append(path, i)
		badge := " "
		if _, found := st.ValidationAt(tree.PathString(childPath)); found {
			badge = "!"
		}
		key := child.NodeKey()
		if key == "" {
			key = "·"
		}
		indent := strings.Repeat("  ", len(childPath)-1)

		switch n := child.(type) {
		case *tree.Group:
			fmt.Printf("%s %s%-3s %s/\n", badge, indent, key, n.DisplayName())
			printLevel(st, n, childPath)
		case *tree.Action:
			fmt.Printf("%s %s%-3s %s  [%s %s]\n", badge, indent, key, n.DisplayName(), n.Kind, n.Value)
		}
	}
}

// runKeys resolves a key sequence against the tree, printing what each
// key does. Preview by default; -run dispatches through the real
// runner.
func runKeys(opts app.Options, args []string) int {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	execute := fs.Bool("run", false, "Dispatch matched actions instead of previewing")
	modsArg := fs.String("mods", "", "Held modifiers, e.g. ctrl or ctrl+alt")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: leaderkey keys [-run] [-mods ctrl+alt] <key> [key...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	if !*execute {
		opts.DryRun = true
	}
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	mods := keymatch.ParseModifiers(*modsArg)
	engine := application.Engine()

	for _, key := range fs.Args() {
		decision := engine.HandleKey(key, mods, *execute)
		switch decision.Kind {
		case nav.DecisionNoMatch:
			fmt.Printf("%-8s no match at %s\n", key, levelName(engine))
			return 1

		case nav.DecisionDescend:
			fmt.Printf("%-8s enter %s\n", key, decision.Node.DisplayName())

		case nav.DecisionRunGroup:
			fmt.Printf("%-8s %s group %s\n", key, verb(decision.Dispatched), decision.Node.DisplayName())
			tree.Walk(decision.Node, func(n tree.Node) bool {
				if a, ok := n.(*tree.Action); ok {
					fmt.Printf("         - %s %s\n", a.Kind, a.Value)
				}
				return true
			})

		case nav.DecisionRunAction:
			a := decision.Node.(*tree.Action)
			fmt.Printf("%-8s %s %s %s\n", key, verb(decision.Dispatched), a.Kind, a.Value)
		}
	}
	return 0
}

func verb(dispatched bool) string {
	if dispatched {
		return "ran"
	}
	return "would run"
}

func levelName(engine *nav.Engine) string {
	path := engine.Path()
	if len(path) == 0 {
		return "the root"
	}
	return path[len(path)-1].String()
}

// runImport replaces the tree document with one decoded from an
// externally-authored YAML or JSON file, converting it to the
// canonical encoding on save.
func runImport(opts app.Options, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: leaderkey import <file>")
		return 2
	}
	src := args[0]

	data, err := os.ReadFile(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var root *tree.Group
	switch strings.ToLower(filepath.Ext(src)) {
	case ".yaml", ".yml":
		root, err = tree.DecodeYAML(data)
	default:
		root, err = tree.DecodeDocument(data)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: decoding %s: %v\n", src, err)
		return 1
	}

	// Loading first records the on-disk checksum, so the save below
	// still detects an edit racing the import.
	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	st := application.Store()
	if err := st.ReplaceTree(root); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if err := st.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: saving: %v\n", err)
		return 1
	}

	nodes := 0
	tree.Walk(root, func(tree.Node) bool { nodes++; return true })
	fmt.Printf("imported %d nodes from %s into %s\n", nodes-1, src, st.Path())

	if findings := st.Validation(); len(findings) > 0 {
		fmt.Printf("%d validation finding(s); run `leaderkey validate` for details\n", len(findings))
	}
	return 0
}
