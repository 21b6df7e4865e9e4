package store

import (
	"fmt"
	"os"

	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/tree"
)

// EnsureAndLoad guarantees the backing directory and file exist, then
// loads. A configured directory that has vanished is repointed to the
// fallback directory with a warning; an absent file is seeded with the
// built-in default document before loading.
func (s *Store) EnsureAndLoad() error {
	s.mu.Lock()
	if _, err := os.Stat(s.dir); os.IsNotExist(err) && s.dir != s.fallbackDir {
		s.logger.Warn("config directory %s is missing, falling back to %s", s.dir, s.fallbackDir)
		s.dir = s.fallbackDir
	}
	dir := s.dir
	path := s.pathLocked()
	s.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := tree.EncodeDocument(DefaultTree())
		if err != nil {
			return err
		}
		if err := atomicWrite(path, data, 0o644); err != nil {
			return &WriteError{Path: path, Err: err}
		}
		s.logger.Info("created default configuration at %s", path)
	}

	return s.load()
}

// Load reads and decodes the backing file, swapping the canonical tree
// on success.
//
// When suppressConflictPrompt is false and the load would discard
// unsaved in-memory edits over a diverged file, the conflict prompt
// runs first. Explicit reloads pass true.
func (s *Store) Load(suppressConflictPrompt bool) error {
	if !suppressConflictPrompt && s.loadWouldDiscard() {
		return s.resolveLoadConflict()
	}
	return s.load()
}

// ReloadFromFile forces a load that bypasses the conflict prompt,
// discarding unsaved in-memory edits. Observers hear ReloadBegan
// before the swap and ReloadEnded after it, so navigation state can
// re-anchor against the fresh tree.
func (s *Store) ReloadFromFile() error {
	path := s.Path()
	s.notifier.Notify(notify.Event{Kind: notify.ReloadBegan, Path: path})
	err := s.load()
	s.notifier.Notify(notify.Event{Kind: notify.ReloadEnded, Path: path})
	return err
}

// loadWouldDiscard reports whether a load right now would throw away
// unsaved edits in favor of file content that changed externally.
func (s *Store) loadWouldDiscard() bool {
	s.mu.Lock()
	dirty := s.dirty && s.lastReadChecksum != "" && !s.prompting
	last := s.lastReadChecksum
	path := s.pathLocked()
	s.mu.Unlock()

	if !dirty {
		return false
	}
	current, err := fileChecksum(path)
	return err == nil && current != last
}

// load is the single reading path. The loading flag suppresses save
// scheduling while observers react to the swap, and the generation
// counter makes overlapping loads last-started-wins.
func (s *Store) load() error {
	s.mu.Lock()
	s.loading = true
	s.loadGen++
	gen := s.loadGen
	path := s.pathLocked()
	s.mu.Unlock()

	data, readErr := os.ReadFile(path)
	var (
		root      *tree.Group
		decodeErr error
		checksum  string
	)
	if readErr == nil {
		checksum = checksumBytes(data)
		root, decodeErr = tree.DecodeDocument(data)
	}

	s.mu.Lock()
	if gen != s.loadGen {
		// A newer load owns the state now.
		s.mu.Unlock()
		return nil
	}

	var err error
	switch {
	case readErr != nil:
		s.root = tree.NewGroup("", "")
		s.lastReadChecksum = ""
		s.dirty = false
		s.revalidateLocked()
		err = fmt.Errorf("reading %s: %w", path, readErr)
	case decodeErr != nil:
		// Keep the checksum of the bytes we actually read: an external
		// fix to the file then diverges from it, and the next in-app
		// save prompts instead of clobbering the repair.
		s.root = tree.NewGroup("", "")
		s.lastReadChecksum = checksum
		s.dirty = false
		s.revalidateLocked()
		err = fmt.Errorf("decoding %s: %w", path, decodeErr)
	default:
		s.root = root
		s.lastReadChecksum = checksum
		s.dirty = false
		s.revalidateLocked()
	}
	entries := len(s.root.Children)
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Kind: notify.TreeReplaced, Path: path, Err: err})
	s.notifier.Notify(notify.Event{Kind: notify.ValidationChanged, Path: path})

	s.mu.Lock()
	if gen == s.loadGen {
		s.loading = false
	}
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("load failed, starting from an empty tree: %v", err)
		return err
	}
	s.logger.Debug("loaded %s (%d top-level entries)", path, entries)
	return nil
}

// resolveLoadConflict runs the three-way prompt for a load that would
// discard unsaved edits over a diverged file.
func (s *Store) resolveLoadConflict() error {
	s.mu.Lock()
	if s.prompting {
		s.mu.Unlock()
		return ErrConflictPending
	}
	s.prompting = true
	path := s.pathLocked()
	prompt := s.prompt
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Kind: notify.ConflictDetected, Path: path})

	choice := ChoiceCancel
	if prompt == nil {
		s.logger.Warn("conflict detected on %s with no prompt wired; canceling", path)
	} else {
		choice = prompt.AskOverwriteCancelReload(path)
	}

	s.mu.Lock()
	s.prompting = false
	s.pendingSave = false
	s.mu.Unlock()

	switch choice {
	case ChoiceOverwrite:
		s.mu.Lock()
		data, err := tree.EncodeDocument(s.root)
		s.mu.Unlock()
		if err != nil {
			return err
		}
		return s.commit(path, data)
	case ChoiceReload:
		return s.load()
	default:
		return ErrCanceled
	}
}
