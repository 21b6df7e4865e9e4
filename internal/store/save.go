package store

import (
	"time"

	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/tree"
)

// Save encodes the tree and writes it synchronously, after conflict
// detection against the file's current content. A pending debounced
// save is superseded. While a conflict prompt is open the attempt is
// queued instead and ErrConflictPending returned.
func (s *Store) Save() error {
	s.mu.Lock()
	if s.prompting {
		s.pendingSave = true
		s.mu.Unlock()
		return ErrConflictPending
	}
	if s.root == nil {
		s.mu.Unlock()
		return tree.ErrNoTree
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	data, err := tree.EncodeDocument(s.root)
	path := s.pathLocked()
	last := s.lastReadChecksum
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("saving %s: %v", path, err)
		s.notifier.Notify(notify.Event{Kind: notify.SaveFailed, Path: path, Err: err})
		return err
	}

	if last != "" {
		if current, cerr := fileChecksum(path); cerr == nil && current != last {
			return s.resolveSaveConflict(path, data)
		}
	}
	return s.commit(path, data)
}

// SaveDebounced schedules a save after the quiescence window. Each
// call within the window cancels and restarts the timer, so a burst of
// edits produces one write of the final state. No-op while a load is
// in progress.
func (s *Store) SaveDebounced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scheduleLocked()
}

// scheduleLocked arms or re-arms the debounce timer. Caller holds mu.
func (s *Store) scheduleLocked() {
	if s.loading || s.root == nil {
		return
	}
	s.generation++
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() { s.flush(gen) })
}

// flush runs when the debounce window elapses. A stale generation
// means another save or schedule superseded this one.
func (s *Store) flush(gen uint64) {
	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	if s.prompting {
		s.pendingSave = true
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// Save reports failures through the notifier and the log.
	_ = s.Save()
}

// resolveSaveConflict runs the three-way prompt for a save that found
// the file changed externally. data is the snapshot encoded before
// prompting; edits landing while the prompt is open are queued and get
// their own save after resolution.
func (s *Store) resolveSaveConflict(path string, data []byte) error {
	s.mu.Lock()
	if s.prompting {
		s.pendingSave = true
		s.mu.Unlock()
		return ErrConflictPending
	}
	s.prompting = true
	prompt := s.prompt
	s.mu.Unlock()

	s.notifier.Notify(notify.Event{Kind: notify.ConflictDetected, Path: path})

	choice := ChoiceCancel
	if prompt == nil {
		s.logger.Warn("conflict detected on %s with no prompt wired; canceling save", path)
	} else {
		choice = prompt.AskOverwriteCancelReload(path)
	}

	s.mu.Lock()
	s.prompting = false
	pending := s.pendingSave
	s.pendingSave = false
	s.mu.Unlock()

	switch choice {
	case ChoiceOverwrite:
		err := s.commit(path, data)
		if err == nil && pending {
			s.mu.Lock()
			s.dirty = true
			s.scheduleLocked()
			s.mu.Unlock()
		}
		return err
	case ChoiceReload:
		// Queued saves die with the edits they would have written.
		return s.ReloadFromFile()
	default:
		return ErrCanceled
	}
}

// commit writes data atomically and records its checksum as the last
// read state, so the next conflict check compares against what was
// just written without re-reading the disk.
func (s *Store) commit(path string, data []byte) error {
	if err := atomicWrite(path, data, 0o644); err != nil {
		werr := &WriteError{Path: path, Err: err}
		s.logger.Error("%v", werr)
		s.notifier.Notify(notify.Event{Kind: notify.SaveFailed, Path: path, Err: werr})
		return werr
	}

	s.mu.Lock()
	s.lastReadChecksum = checksumBytes(data)
	// A timer armed during the write means edits landed after this
	// snapshot was encoded; they are still unsaved.
	if s.timer == nil {
		s.dirty = false
	}
	s.mu.Unlock()

	s.logger.Debug("saved %s", path)
	s.notifier.Notify(notify.Event{Kind: notify.SaveCompleted, Path: path})
	return nil
}
