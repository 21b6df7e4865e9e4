// Package term drives the launcher menu on an interactive terminal.
//
// The driver is a harness at the application's outer boundary: it
// polls tcell key events, feeds them to the navigation engine, and
// draws the current menu level. The engine and the store never import
// this package; they stay terminal-agnostic.
//
// A few keys are reserved by the driver itself: the arrows move the
// selection, enter dispatches it, delete removes it, escape ascends
// (and quits at the root), and ctrl+c always quits. Everything else,
// including space, tab, and modifier-carrying runes, flows to the
// engine as a logical key.
package term

import (
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/leaderkey/internal/app"
	"github.com/dshills/leaderkey/internal/keymatch"
	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/nav"
	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/store"
)

// Driver runs the interactive menu loop over one application.
type Driver struct {
	screen tcell.Screen
	app    *app.Application
	logger *logging.Logger

	running atomic.Bool

	// Loop-local state, touched only by Run's goroutine.
	status  string
	pending *conflictRequest
}

// conflictRequest carries a save-path divergence into the event loop.
// The goroutine that hit the conflict blocks on resp until the user
// answers the modal.
type conflictRequest struct {
	path string
	resp chan store.ConflictChoice
}

// stopRequest asks the event loop to quit; posted by Stop.
type stopRequest struct{}

// Option configures a Driver.
type Option func(*Driver)

// WithLogger overrides the driver's logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a driver on the process's terminal.
func New(application *app.Application, opts ...Option) (*Driver, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, application, opts...), nil
}

// NewWithScreen creates a driver on an explicit screen. Tests pass
// tcell's simulation screen.
func NewWithScreen(screen tcell.Screen, application *app.Application, opts ...Option) *Driver {
	d := &Driver{
		screen: screen,
		app:    application,
		logger: logging.Get().WithComponent("term"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run takes over the screen and blocks until the user quits or a
// dispatch closes the menu. It returns ErrQuit on a user-initiated
// exit so entry points can tell a clean close from a failure.
func (d *Driver) Run() error {
	if !d.running.CompareAndSwap(false, true) {
		return app.ErrAlreadyRunning
	}
	defer d.running.Store(false)

	if err := d.screen.Init(); err != nil {
		return err
	}
	defer d.screen.Fini()

	// Redraw whenever the store changes under us: reloads, validation
	// updates, save results.
	sub := d.app.Store().Notifier().Subscribe(func(e notify.Event) {
		if e.Kind == notify.SaveFailed && e.Err != nil {
			d.logger.Error("save failed: %v", e.Err)
		}
		_ = d.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer sub.Unsubscribe()

	for {
		d.draw()

		switch ev := d.screen.PollEvent().(type) {
		case nil:
			// Screen torn down under the loop.
			d.resolvePending(store.ChoiceCancel)
			return app.ErrQuit

		case *tcell.EventResize:
			d.screen.Sync()

		case *tcell.EventInterrupt:
			if req, ok := ev.Data().(*conflictRequest); ok {
				d.pending = req
			}
			if _, ok := ev.Data().(stopRequest); ok {
				d.resolvePending(store.ChoiceCancel)
				return app.ErrQuit
			}

		case *tcell.EventKey:
			if d.pending != nil {
				d.handleConflictKey(ev)
				continue
			}
			if quit := d.handleKey(ev); quit {
				return app.ErrQuit
			}
		}
	}
}

// Stop asks a running driver to exit its loop. Safe to call from any
// goroutine; a driver that is not running ignores it.
func (d *Driver) Stop() {
	if !d.running.Load() {
		return
	}
	_ = d.screen.PostEvent(tcell.NewEventInterrupt(stopRequest{}))
}

// handleKey routes one key event. It reports whether the loop should
// quit.
func (d *Driver) handleKey(ev *tcell.EventKey) bool {
	engine := d.app.Engine()
	key, mods := translateKey(ev)

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true

	case tcell.KeyEscape:
		if _, moved := engine.GoBack(); !moved {
			return true
		}
		d.status = ""
		return false

	case tcell.KeyUp:
		engine.MoveSelection(-1)
		return false

	case tcell.KeyDown:
		engine.MoveSelection(1)
		return false

	case tcell.KeyLeft:
		engine.GoBack()
		return false

	case tcell.KeyEnter:
		if engine.SelectedItem() != nil {
			decision, err := engine.Dispatch(mods, true)
			if err != nil {
				return false
			}
			return d.report(decision)
		}
		// No selection: enter may itself be a configured leader key.

	case tcell.KeyDelete:
		if item := engine.SelectedItem(); item != nil {
			if err := engine.DeleteSelected(); err != nil {
				d.status = err.Error()
			} else {
				d.status = "deleted " + item.DisplayName()
			}
			return false
		}
	}

	if key == "" {
		return false
	}
	return d.report(engine.HandleKey(key, mods, true))
}

// report turns a dispatch decision into status text and the quit
// choice: the menu closes after a non-sticky run.
func (d *Driver) report(decision nav.Decision) bool {
	switch decision.Kind {
	case nav.DecisionNoMatch:
		d.screen.Beep()
		d.status = "no action bound to that key"
		return false
	case nav.DecisionDescend:
		d.status = ""
		return false
	case nav.DecisionRunGroup:
		d.status = "ran group " + decision.Node.DisplayName()
		return decision.CloseAfter
	default:
		d.status = "ran " + decision.Node.DisplayName()
		if decision.Sticky {
			d.status += " (menu stays open)"
		}
		return decision.CloseAfter
	}
}

// handleConflictKey answers the three-way modal.
func (d *Driver) handleConflictKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		d.resolvePending(store.ChoiceCancel)
		return
	}
	if ev.Key() != tcell.KeyRune {
		return
	}
	switch ev.Rune() {
	case 'o', 'O':
		d.resolvePending(store.ChoiceOverwrite)
	case 'r', 'R':
		d.resolvePending(store.ChoiceReload)
	case 'c', 'C':
		d.resolvePending(store.ChoiceCancel)
	}
}

// resolvePending answers and clears the open modal, if any.
func (d *Driver) resolvePending(choice store.ConflictChoice) {
	if d.pending == nil {
		return
	}
	d.pending.resp <- choice
	d.pending = nil
	d.status = "conflict resolved: " + choice.String()
}

// AskOverwriteCancelReload implements store.ConflictPrompt by raising
// a modal in the event loop and blocking the asking goroutine until
// the user answers. A driver that is not running cancels, the safe
// choice.
func (d *Driver) AskOverwriteCancelReload(path string) store.ConflictChoice {
	if !d.running.Load() {
		return store.ChoiceCancel
	}
	req := &conflictRequest{path: path, resp: make(chan store.ConflictChoice, 1)}
	if err := d.screen.PostEvent(tcell.NewEventInterrupt(req)); err != nil {
		d.logger.Warn("conflict modal not delivered: %v", err)
		return store.ChoiceCancel
	}
	return <-req.resp
}

var _ store.ConflictPrompt = (*Driver)(nil)

// translateKey converts a tcell key event into the engine's logical
// form: a key string plus held modifiers. Special keys become their
// spelled names, which the key matcher folds to glyphs. An empty key
// means the event carries nothing the engine can match.
func translateKey(ev *tcell.EventKey) (string, keymatch.Modifier) {
	var mods keymatch.Modifier
	tm := ev.Modifiers()
	if tm&tcell.ModShift != 0 {
		mods = mods.With(keymatch.ModShift)
	}
	if tm&tcell.ModCtrl != 0 {
		mods = mods.With(keymatch.ModCtrl)
	}
	if tm&tcell.ModAlt != 0 {
		mods = mods.With(keymatch.ModAlt)
	}
	if tm&tcell.ModMeta != 0 {
		mods = mods.With(keymatch.ModMeta)
	}

	switch k := ev.Key(); k {
	case tcell.KeyRune:
		return string(ev.Rune()), mods
	case tcell.KeyEnter:
		return "enter", mods
	case tcell.KeyTab:
		return "tab", mods
	case tcell.KeyEscape:
		return "escape", mods
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return "backspace", mods
	case tcell.KeyDelete:
		return "delete", mods
	case tcell.KeyUp:
		return "up", mods
	case tcell.KeyDown:
		return "down", mods
	case tcell.KeyLeft:
		return "left", mods
	case tcell.KeyRight:
		return "right", mods
	default:
		// Terminals fold ctrl+letter into one control key; unfold it so
		// the group-run modifier works on letter keys.
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			return string(rune('a' + k - tcell.KeyCtrlA)), mods.With(keymatch.ModCtrl)
		}
		return "", mods
	}
}
