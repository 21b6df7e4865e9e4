package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/settings"
	"github.com/dshills/leaderkey/internal/tree"
	"github.com/dshills/leaderkey/internal/validate"
)

// DefaultFilename is the tree document's name inside the configuration
// directory.
const DefaultFilename = "config.json"

// Store keeps one canonical configuration tree in sync with one
// backing file. The zero value is not usable; call New.
type Store struct {
	mu sync.Mutex

	dir         string
	filename    string
	fallbackDir string

	root             *tree.Group
	lastReadChecksum string
	dirty            bool
	loading          bool

	validation    []validate.Error
	validationMap map[string]validate.Error

	validator validate.Func
	prompt    ConflictPrompt
	notifier  *notify.Notifier
	logger    *logging.Logger

	debounce   time.Duration
	timer      *time.Timer
	generation uint64
	loadGen    uint64

	prompting   bool
	pendingSave bool
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithFilename overrides the backing file's name inside the directory.
func WithFilename(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.filename = name
		}
	}
}

// WithValidator overrides the validation function run after every load
// and structural edit.
func WithValidator(v validate.Func) Option {
	return func(s *Store) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithPrompt wires the conflict prompt. Without one, every divergence
// resolves to cancel.
func WithPrompt(p ConflictPrompt) Option {
	return func(s *Store) { s.prompt = p }
}

// WithLogger overrides the store's logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDebounce overrides the quiescence window for debounced saves.
func WithDebounce(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithFallbackDir overrides the directory the store repoints to when
// the configured one has vanished.
func WithFallbackDir(dir string) Option {
	return func(s *Store) {
		if dir != "" {
			s.fallbackDir = dir
		}
	}
}

// New creates a store for the tree document in dir. The store starts
// with no tree; call EnsureAndLoad or Load before anything else.
func New(dir string, opts ...Option) *Store {
	s := &Store{
		dir:       dir,
		filename:  DefaultFilename,
		validator: validate.Validate,
		notifier:  notify.New(),
		logger:    logging.Get().WithComponent("store"),
		debounce:  settings.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fallbackDir == "" {
		s.fallbackDir = settings.DefaultConfigDir()
	}
	return s
}

// Path returns the backing file's full path.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pathLocked()
}

func (s *Store) pathLocked() string {
	return filepath.Join(s.dir, s.filename)
}

// Dir returns the configuration directory currently in effect.
func (s *Store) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Root returns the canonical tree, or nil before the first load.
// Callers must treat the tree as read-only; structural edits go
// through the mutation methods so validation and saving stay in step.
func (s *Store) Root() *tree.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

// Checksum returns the checksum of the last read or written file
// content, or "" before the first load.
func (s *Store) Checksum() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReadChecksum
}

// Dirty reports whether unsaved structural edits exist.
func (s *Store) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// Validation returns the current findings in encounter order.
func (s *Store) Validation() []validate.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]validate.Error(nil), s.validation...)
}

// ValidationAt returns the finding recorded for a "/"-joined index
// path, such as "2/0" for the first child of the root's third entry.
func (s *Store) ValidationAt(path string) (validate.Error, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.validationMap[path]
	return e, ok
}

// Notifier returns the store's event notifier. Observers run on the
// goroutine that triggered the event and must not block.
func (s *Store) Notifier() *notify.Notifier {
	return s.notifier
}

// SetPrompt replaces the conflict prompt. Interactive drivers install
// themselves once their event loop can serve the three-way choice, and
// hand the prompt back when they stop.
func (s *Store) SetPrompt(p ConflictPrompt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt = p
}

// Close stops any pending debounced save and flushes unsaved edits
// synchronously.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	flush := s.dirty && s.root != nil
	s.mu.Unlock()

	if flush {
		return s.Save()
	}
	return nil
}

// revalidateLocked refreshes the findings for the current tree. Caller
// holds mu.
func (s *Store) revalidateLocked() {
	s.validation = s.validator(s.root)
	s.validationMap = validate.ErrorMap(s.validation)
}
