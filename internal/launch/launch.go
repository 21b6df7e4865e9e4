// Package launch turns dispatch decisions into real OS effects:
// opening URLs, files, and folders, launching applications, and
// running commands and scripts.
//
// Execution is fire-and-forget. Start failures are logged, never
// propagated back into navigation; the menu's responsiveness must not
// depend on what a launched process does.
package launch

import (
	"os"
	osexec "os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/tree"
)

// Launcher executes actions through the host OS. It satisfies the
// navigation engine's Runner interface.
type Launcher struct {
	opener    string
	shell     string
	shellArgs []string
	dir       string
	logger    *logging.Logger
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithOpener overrides the URL/file opener command.
func WithOpener(cmd string) Option {
	return func(l *Launcher) {
		if cmd != "" {
			l.opener = cmd
		}
	}
}

// WithShell overrides the shell used for command actions.
func WithShell(shell string, args ...string) Option {
	return func(l *Launcher) {
		if shell != "" {
			l.shell = shell
			l.shellArgs = args
		}
	}
}

// WithWorkingDir sets the working directory of launched processes.
func WithWorkingDir(dir string) Option {
	return func(l *Launcher) { l.dir = dir }
}

// WithLogger overrides the launcher's logger.
func WithLogger(lg *logging.Logger) Option {
	return func(l *Launcher) {
		if lg != nil {
			l.logger = lg
		}
	}
}

// New creates a launcher with platform defaults: xdg-open or open as
// the opener, $SHELL falling back to /bin/sh for commands.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		opener:    defaultOpener(),
		shell:     defaultShell(),
		shellArgs: []string{"-c"},
		logger:    logging.Get().WithComponent("launch"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}

func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// RunAction performs a's effect according to its kind.
func (l *Launcher) RunAction(a *tree.Action) {
	if a == nil {
		return
	}
	value := ExpandArguments(a.Value, a.Arguments, nil)
	if value == "" {
		l.logger.Warn("action %q has nothing to run", a.DisplayName())
		return
	}

	switch a.Kind {
	case tree.KindURL:
		l.open(value, a.OpenWith)
	case tree.KindFile, tree.KindFolder:
		l.open(ExpandHome(value), a.OpenWith)
	case tree.KindApplication:
		l.launchApplication(value)
	case tree.KindCommand:
		l.start(l.shell, append(append([]string(nil), l.shellArgs...), value)...)
	case tree.KindScript:
		l.start(ExpandHome(value))
	default:
		l.logger.Warn("action %q has unknown kind %q", a.DisplayName(), a.Kind)
	}
}

// RunGroup performs every action in g's subtree, depth-first in child
// order, including nested groups.
func (l *Launcher) RunGroup(g *tree.Group) {
	if g == nil {
		return
	}
	tree.Walk(g, func(n tree.Node) bool {
		if a, ok := n.(*tree.Action); ok {
			l.RunAction(a)
		}
		return true
	})
}

// open hands target to the platform opener, or to openWith when the
// action names a specific program.
func (l *Launcher) open(target, openWith string) {
	switch {
	case openWith != "" && runtime.GOOS == "darwin":
		l.start("open", "-a", openWith, target)
	case openWith != "":
		l.start(openWith, target)
	default:
		l.start(l.opener, target)
	}
}

// launchApplication starts an application. On macOS that goes through
// open -a so bundles resolve; elsewhere the value is the executable,
// looked up on PATH when not an absolute path.
func (l *Launcher) launchApplication(value string) {
	if runtime.GOOS == "darwin" {
		l.start("open", "-a", value)
		return
	}
	l.start(ExpandHome(value))
}

// start spawns the process and detaches. The child gets its own
// process group so it outlives the menu.
func (l *Launcher) start(name string, args ...string) {
	cmd := osexec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if l.dir != "" {
		cmd.Dir = l.dir
	}
	if err := cmd.Start(); err != nil {
		l.logger.Error("starting %s: %v", name, err)
		return
	}
	l.logger.Debug("started %s (pid %d)", name, cmd.Process.Pid)
	go func() {
		// Reap the child so it never lingers as a zombie.
		_ = cmd.Wait()
	}()
}

// ExpandArguments substitutes {name} placeholders in value. An
// override wins over the argument's default; an argument with neither
// expands to the empty string.
func ExpandArguments(value string, args []tree.Argument, overrides map[string]string) string {
	if len(args) == 0 {
		return value
	}
	out := value
	for _, arg := range args {
		v, ok := overrides[arg.Name]
		if !ok {
			v = arg.Default
		}
		out = strings.ReplaceAll(out, "{"+arg.Name+"}", v)
	}
	return out
}

// ExpandHome resolves a leading ~ against the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
