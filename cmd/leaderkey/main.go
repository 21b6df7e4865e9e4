// Package main is the entry point for the leaderkey launcher.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/leaderkey/internal/app"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, cmd, args := parseFlags()

	// Outside the tcell loop, conflicts fall back to a line prompt.
	opts.Prompt = stdinPrompt{}

	switch cmd {
	case "", "interactive":
		return runInteractive(opts)
	case "init":
		return runInit(opts)
	case "validate":
		return runValidate(opts)
	case "print":
		return runPrint(opts)
	case "keys":
		return runKeys(opts, args)
	case "import":
		return runImport(opts, args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", cmd)
		flag.Usage()
		return 2
	}
}

func parseFlags() (app.Options, string, []string) {
	var opts app.Options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigDir, "config", "", "Configuration directory")
	flag.StringVar(&opts.ConfigDir, "c", "", "Configuration directory (shorthand)")
	flag.StringVar(&opts.ConfigFile, "file", "", "Tree document filename inside the configuration directory")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Leaderkey - keyboard-driven launcher menu\n\n")
		fmt.Fprintf(os.Stderr, "Usage: leaderkey [options] [command [args...]]\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  interactive      Open the menu on this terminal (default)\n")
		fmt.Fprintf(os.Stderr, "  init             Create the starter tree document if missing\n")
		fmt.Fprintf(os.Stderr, "  validate         Check the tree document and report findings\n")
		fmt.Fprintf(os.Stderr, "  print            Dump the tree document\n")
		fmt.Fprintf(os.Stderr, "  keys <key...>    Resolve a key sequence and show what would run\n")
		fmt.Fprintf(os.Stderr, "  import <file>    Convert a YAML or JSON document and save it\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  leaderkey                        Open the menu\n")
		fmt.Fprintf(os.Stderr, "  leaderkey -c ~/.config/lk validate\n")
		fmt.Fprintf(os.Stderr, "  leaderkey keys c d               Preview the sequence c, d\n")
		fmt.Fprintf(os.Stderr, "  leaderkey keys -run -mods ctrl c Run every action in group c\n")
		fmt.Fprintf(os.Stderr, "  leaderkey import menu.yaml       Replace the tree from YAML\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Leaderkey %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if opts.LogLevel != "" {
		switch opts.LogLevel {
		case "debug", "info", "warn", "error":
			// Valid
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
			os.Exit(1)
		}
	}

	args := flag.Args()
	if len(args) == 0 {
		return opts, "", nil
	}
	return opts, args[0], args[1:]
}
