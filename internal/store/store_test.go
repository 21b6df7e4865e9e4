package store

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dshills/leaderkey/internal/logging"
	"github.com/dshills/leaderkey/internal/notify"
	"github.com/dshills/leaderkey/internal/tree"
)

type fakePrompt struct {
	mu     sync.Mutex
	choice ConflictChoice
	calls  int
	paths  []string
}

func (p *fakePrompt) AskOverwriteCancelReload(path string) ConflictChoice {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.paths = append(p.paths, path)
	return p.choice
}

func (p *fakePrompt) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

type eventRecorder struct {
	mu     sync.Mutex
	events []notify.Kind
}

func (r *eventRecorder) record(e notify.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e.Kind)
}

func (r *eventRecorder) count(kind notify.Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, k := range r.events {
		if k == kind {
			n++
		}
	}
	return n
}

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	base := []Option{WithLogger(logging.Null), WithFallbackDir(dir)}
	s := New(dir, append(base, opts...)...)
	return s, filepath.Join(dir, DefaultFilename)
}

func sampleTree() *tree.Group {
	a := tree.NewAction(tree.KindApplication, "a", "/usr/bin/app1")
	a.Label = "App1"
	b := tree.NewAction(tree.KindApplication, "b", "/usr/bin/app2")
	b.Label = "App2"
	return tree.NewGroup("", "", a, b)
}

func writeDoc(t *testing.T, path string, root *tree.Group) []byte {
	t.Helper()
	data, err := tree.EncodeDocument(root)
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return data
}

func readDoc(t *testing.T, path string) *tree.Group {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	root, err := tree.DecodeDocument(data)
	if err != nil {
		t.Fatalf("DecodeDocument() error = %v", err)
	}
	return root
}

func waitFor(t *testing.T, d time.Duration, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestEnsureAndLoadBootstrap(t *testing.T) {
	s, path := newTestStore(t)
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	want, err := tree.EncodeDocument(DefaultTree())
	if err != nil {
		t.Fatalf("EncodeDocument() error = %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading bootstrap file: %v", err)
	}
	if string(got) != string(want) {
		t.Errorf("bootstrap file does not match the default document")
	}

	root := s.Root()
	if root == nil {
		t.Fatal("Root() = nil after EnsureAndLoad")
	}
	if len(root.Children) != len(DefaultTree().Children) {
		t.Errorf("loaded %d top-level entries, want %d", len(root.Children), len(DefaultTree().Children))
	}
	if s.Checksum() == "" {
		t.Error("Checksum() = \"\" after load")
	}
	if s.Dirty() {
		t.Error("Dirty() = true after a clean load")
	}
}

func TestEnsureAndLoadExistingFile(t *testing.T) {
	s, path := newTestStore(t)
	writeDoc(t, path, sampleTree())

	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}
	root := s.Root()
	if len(root.Children) != 2 {
		t.Fatalf("loaded %d entries, want 2", len(root.Children))
	}
	if got := root.Children[0].NodeKey(); got != "a" {
		t.Errorf("first entry key = %q, want %q", got, "a")
	}
}

func TestEnsureAndLoadMissingDir(t *testing.T) {
	t.Run("falls back when the configured directory vanished", func(t *testing.T) {
		fallback := t.TempDir()
		missing := filepath.Join(t.TempDir(), "vanished")
		s := New(missing, WithLogger(logging.Null), WithFallbackDir(fallback))

		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}
		if got := s.Dir(); got != fallback {
			t.Errorf("Dir() = %q, want fallback %q", got, fallback)
		}
		if _, err := os.Stat(filepath.Join(fallback, DefaultFilename)); err != nil {
			t.Errorf("bootstrap file missing under fallback: %v", err)
		}
	})

	t.Run("creates the fallback directory itself", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "fresh")
		s := New(missing, WithLogger(logging.Null), WithFallbackDir(missing))

		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}
		if got := s.Dir(); got != missing {
			t.Errorf("Dir() = %q, want %q", got, missing)
		}
		if _, err := os.Stat(filepath.Join(missing, DefaultFilename)); err != nil {
			t.Errorf("bootstrap file missing: %v", err)
		}
	})
}

func TestLoadDecodeFailure(t *testing.T) {
	s, path := newTestStore(t)
	bad := []byte(`{"type": "group"}` + "\n")
	if err := os.WriteFile(path, bad, 0o644); err != nil {
		t.Fatalf("writing bad document: %v", err)
	}

	err := s.Load(true)
	if err == nil {
		t.Fatal("Load() error = nil for a malformed document")
	}
	var derr *tree.DecodeError
	if !errors.As(err, &derr) {
		t.Errorf("Load() error = %v, want a *tree.DecodeError", err)
	}

	root := s.Root()
	if root == nil {
		t.Fatal("Root() = nil after decode failure, want an empty tree")
	}
	if len(root.Children) != 0 {
		t.Errorf("Root() has %d children after decode failure, want 0", len(root.Children))
	}
	if got, want := s.Checksum(), checksumBytes(bad); got != want {
		t.Errorf("Checksum() = %q, want checksum of the unreadable bytes %q", got, want)
	}
	if s.Dirty() {
		t.Error("Dirty() = true after decode failure")
	}
	if len(s.Validation()) != 0 {
		t.Errorf("Validation() = %v after decode failure, want none", s.Validation())
	}
}

// A manual repair of a broken file must win over the in-memory empty
// tree: the save that follows detects the divergence and prompts.
func TestDecodeFailureProtectsExternalFix(t *testing.T) {
	prompt := &fakePrompt{choice: ChoiceCancel}
	s, path := newTestStore(t, WithPrompt(prompt), WithDebounce(time.Hour))
	if err := os.WriteFile(path, []byte(`not json`), 0o644); err != nil {
		t.Fatalf("writing bad document: %v", err)
	}
	if err := s.Load(true); err == nil {
		t.Fatal("Load() error = nil for a malformed document")
	}

	fixed := writeDoc(t, path, sampleTree())

	err := s.Save()
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("Save() error = %v, want ErrCanceled", err)
	}
	if got := prompt.callCount(); got != 1 {
		t.Errorf("prompt ran %d times, want 1", got)
	}
	got, _ := os.ReadFile(path)
	if string(got) != string(fixed) {
		t.Error("canceled save still changed the repaired file")
	}
}

func TestSaveConflictChoices(t *testing.T) {
	tests := []struct {
		name   string
		choice ConflictChoice
	}{
		{name: "overwrite", choice: ChoiceOverwrite},
		{name: "cancel", choice: ChoiceCancel},
		{name: "reload", choice: ChoiceReload},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := &fakePrompt{choice: tt.choice}
			s, path := newTestStore(t, WithPrompt(prompt), WithDebounce(time.Hour))
			writeDoc(t, path, sampleTree())
			if err := s.EnsureAndLoad(); err != nil {
				t.Fatalf("EnsureAndLoad() error = %v", err)
			}

			// The file changes behind the store's back.
			external := sampleTree()
			ext := tree.NewAction(tree.KindURL, "x", "https://example.com")
			ext.Label = "External"
			external.Children = append(external.Children, ext)
			externalData := writeDoc(t, path, external)

			mine := tree.NewAction(tree.KindCommand, "c", "true")
			mine.Label = "Mine"
			if err := s.Append(nil, mine); err != nil {
				t.Fatalf("Append() error = %v", err)
			}

			err := s.Save()
			if got := prompt.callCount(); got != 1 {
				t.Fatalf("prompt ran %d times, want exactly 1", got)
			}

			switch tt.choice {
			case ChoiceOverwrite:
				if err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				root := readDoc(t, path)
				if len(root.Children) != 3 {
					t.Fatalf("file has %d entries, want 3", len(root.Children))
				}
				if got := root.Children[2].NodeKey(); got != "c" {
					t.Errorf("file kept key %q, want in-memory key %q", got, "c")
				}
				if s.Dirty() {
					t.Error("Dirty() = true after an overwrite save")
				}
			case ChoiceCancel:
				if !errors.Is(err, ErrCanceled) {
					t.Fatalf("Save() error = %v, want ErrCanceled", err)
				}
				got, _ := os.ReadFile(path)
				if string(got) != string(externalData) {
					t.Error("canceled save changed the file")
				}
				if !s.Dirty() {
					t.Error("Dirty() = false after a canceled save")
				}
			case ChoiceReload:
				if err != nil {
					t.Fatalf("Save() error = %v", err)
				}
				root := s.Root()
				if len(root.Children) != 3 {
					t.Fatalf("Root() has %d entries, want the file's 3", len(root.Children))
				}
				if got := root.Children[2].NodeKey(); got != "x" {
					t.Errorf("Root() kept key %q, want the file's key %q", got, "x")
				}
				if s.Dirty() {
					t.Error("Dirty() = true after reloading")
				}
			}
		})
	}
}

// Saving twice without external changes must not prompt: the checksum
// recorded at write time matches the file on the second attempt.
func TestSaveChecksumStability(t *testing.T) {
	prompt := &fakePrompt{choice: ChoiceCancel}
	s, _ := newTestStore(t, WithPrompt(prompt), WithDebounce(time.Hour))
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	n := tree.NewAction(tree.KindURL, "z", "https://example.org")
	if err := s.Append(nil, n); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}
	if got := prompt.callCount(); got != 0 {
		t.Errorf("prompt ran %d times, want 0", got)
	}
}

func TestDebounceCoalescing(t *testing.T) {
	s, path := newTestStore(t, WithDebounce(25*time.Millisecond))
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}
	base := len(s.Root().Children)

	rec := &eventRecorder{}
	sub := s.Notifier().SubscribeKind(notify.SaveCompleted, rec.record)
	defer sub.Unsubscribe()

	keys := []string{"1", "2", "3", "4", "5"}
	for _, k := range keys {
		n := tree.NewAction(tree.KindCommand, k, "true")
		if err := s.Append(nil, n); err != nil {
			t.Fatalf("Append(%q) error = %v", k, err)
		}
	}

	waitFor(t, 2*time.Second, "the debounced save", func() bool {
		return rec.count(notify.SaveCompleted) >= 1
	})
	// The window must stay quiet afterwards.
	time.Sleep(100 * time.Millisecond)
	if got := rec.count(notify.SaveCompleted); got != 1 {
		t.Fatalf("burst of %d edits produced %d writes, want 1", len(keys), got)
	}

	root := readDoc(t, path)
	if got, want := len(root.Children), base+len(keys); got != want {
		t.Errorf("file has %d entries, want %d", got, want)
	}
	if got := root.Children[len(root.Children)-1].NodeKey(); got != "5" {
		t.Errorf("file's last key = %q, want the final edit %q", got, "5")
	}
}

func TestSaveSupersedesDebounce(t *testing.T) {
	s, _ := newTestStore(t, WithDebounce(25*time.Millisecond))
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	rec := &eventRecorder{}
	sub := s.Notifier().SubscribeKind(notify.SaveCompleted, rec.record)
	defer sub.Unsubscribe()

	n := tree.NewAction(tree.KindURL, "q", "https://example.net")
	if err := s.Append(nil, n); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	time.Sleep(120 * time.Millisecond)
	if got := rec.count(notify.SaveCompleted); got != 1 {
		t.Errorf("synchronous save plus pending debounce produced %d writes, want 1", got)
	}
}

func TestMutations(t *testing.T) {
	newAction := func(key string) *tree.Action {
		return tree.NewAction(tree.KindCommand, key, "true")
	}

	t.Run("append at a stale path degrades to the root", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		writeDoc(t, s.Path(), sampleTree())
		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}

		stale := []tree.Ref{{Key: "g", Label: "Gone"}}
		if err := s.Append(stale, newAction("n")); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		root := s.Root()
		if got := root.Children[len(root.Children)-1].NodeKey(); got != "n" {
			t.Errorf("root's last key = %q, want %q", got, "n")
		}
		if !s.Dirty() {
			t.Error("Dirty() = false after an edit")
		}
	})

	t.Run("delete at a stale path aborts", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		writeDoc(t, s.Path(), sampleTree())
		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}

		stale := []tree.Ref{{Key: "g", Label: "Gone"}}
		err := s.Delete(stale, 0)
		var serr *tree.StalePathError
		if !errors.As(err, &serr) {
			t.Fatalf("Delete() error = %v, want a *tree.StalePathError", err)
		}
		if len(s.Root().Children) != 2 {
			t.Error("aborted delete still removed a node")
		}
		if s.Dirty() {
			t.Error("Dirty() = true after an aborted delete")
		}
	})

	t.Run("insert after", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		writeDoc(t, s.Path(), sampleTree())
		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}

		if err := s.InsertAfter(nil, -1, newAction("0")); err != nil {
			t.Fatalf("InsertAfter(-1) error = %v", err)
		}
		if err := s.InsertAfter(nil, 1, newAction("m")); err != nil {
			t.Fatalf("InsertAfter(1) error = %v", err)
		}
		var keys []string
		for _, c := range s.Root().Children {
			keys = append(keys, c.NodeKey())
		}
		want := []string{"0", "a", "m", "b"}
		if len(keys) != len(want) {
			t.Fatalf("root keys = %v, want %v", keys, want)
		}
		for i := range want {
			if keys[i] != want[i] {
				t.Fatalf("root keys = %v, want %v", keys, want)
			}
		}
	})

	t.Run("replace and delete by index", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		writeDoc(t, s.Path(), sampleTree())
		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}

		if err := s.Replace(nil, 0, newAction("r")); err != nil {
			t.Fatalf("Replace() error = %v", err)
		}
		if got := s.Root().Children[0].NodeKey(); got != "r" {
			t.Errorf("replaced key = %q, want %q", got, "r")
		}
		if err := s.Delete(nil, 1); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if got := len(s.Root().Children); got != 1 {
			t.Errorf("root has %d entries after delete, want 1", got)
		}
	})

	t.Run("bounds and nil guards", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		writeDoc(t, s.Path(), sampleTree())
		if err := s.EnsureAndLoad(); err != nil {
			t.Fatalf("EnsureAndLoad() error = %v", err)
		}

		if err := s.Delete(nil, 7); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Delete(7) error = %v, want ErrIndexOutOfRange", err)
		}
		if err := s.InsertAfter(nil, 5, newAction("x")); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("InsertAfter(5) error = %v, want ErrIndexOutOfRange", err)
		}
		if err := s.Replace(nil, -1, newAction("x")); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Replace(-1) error = %v, want ErrIndexOutOfRange", err)
		}
		if err := s.Append(nil, nil); !errors.Is(err, ErrNilNode) {
			t.Errorf("Append(nil) error = %v, want ErrNilNode", err)
		}
	})

	t.Run("no tree loaded", func(t *testing.T) {
		s, _ := newTestStore(t, WithDebounce(time.Hour))
		if err := s.Append(nil, newAction("x")); !errors.Is(err, tree.ErrNoTree) {
			t.Errorf("Append() error = %v, want ErrNoTree", err)
		}
	})
}

func TestReplaceTree(t *testing.T) {
	s, path := newTestStore(t, WithDebounce(25*time.Millisecond))
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	rec := &eventRecorder{}
	sub := s.Notifier().Subscribe(rec.record)
	defer sub.Unsubscribe()

	if err := s.ReplaceTree(sampleTree()); err != nil {
		t.Fatalf("ReplaceTree() error = %v", err)
	}
	if got := len(s.Root().Children); got != 2 {
		t.Errorf("Root() has %d entries, want 2", got)
	}
	if rec.count(notify.TreeReplaced) != 1 {
		t.Error("ReplaceTree did not publish TreeReplaced")
	}
	if rec.count(notify.ValidationChanged) != 1 {
		t.Error("ReplaceTree did not publish ValidationChanged")
	}

	waitFor(t, 2*time.Second, "the scheduled save", func() bool {
		return rec.count(notify.SaveCompleted) >= 1
	})
	if got := len(readDoc(t, path).Children); got != 2 {
		t.Errorf("file has %d entries after ReplaceTree, want 2", got)
	}
}

func TestReloadFromFile(t *testing.T) {
	s, path := newTestStore(t, WithDebounce(time.Hour))
	writeDoc(t, path, sampleTree())
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	rec := &eventRecorder{}
	sub := s.Notifier().Subscribe(rec.record)
	defer sub.Unsubscribe()

	// Unsaved edit, then the file changes externally.
	n := tree.NewAction(tree.KindURL, "u", "https://example.com")
	if err := s.Append(nil, n); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	external := sampleTree()
	external.Children = external.Children[:1]
	writeDoc(t, path, external)

	if err := s.ReloadFromFile(); err != nil {
		t.Fatalf("ReloadFromFile() error = %v", err)
	}
	if got := len(s.Root().Children); got != 1 {
		t.Errorf("Root() has %d entries after reload, want the file's 1", got)
	}
	if s.Dirty() {
		t.Error("Dirty() = true after reload")
	}
	if rec.count(notify.ReloadBegan) != 1 || rec.count(notify.ReloadEnded) != 1 {
		t.Error("reload did not publish ReloadBegan and ReloadEnded")
	}
	if rec.count(notify.ConflictDetected) != 0 {
		t.Error("forced reload consulted the conflict prompt")
	}
}

func TestLoadPromptsBeforeDiscardingEdits(t *testing.T) {
	prompt := &fakePrompt{choice: ChoiceReload}
	s, path := newTestStore(t, WithPrompt(prompt), WithDebounce(time.Hour))
	writeDoc(t, path, sampleTree())
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	n := tree.NewAction(tree.KindURL, "u", "https://example.com")
	if err := s.Append(nil, n); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	external := sampleTree()
	external.Children = external.Children[:1]
	writeDoc(t, path, external)

	if err := s.Load(false); err != nil {
		t.Fatalf("Load(false) error = %v", err)
	}
	if got := prompt.callCount(); got != 1 {
		t.Errorf("prompt ran %d times, want 1", got)
	}
	if got := len(s.Root().Children); got != 1 {
		t.Errorf("Root() has %d entries, want the file's 1", got)
	}
}

func TestCloseFlushesUnsavedEdits(t *testing.T) {
	s, path := newTestStore(t, WithDebounce(time.Hour))
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}
	base := len(s.Root().Children)

	n := tree.NewAction(tree.KindCommand, "q", "true")
	if err := s.Append(nil, n); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := len(readDoc(t, path).Children); got != base+1 {
		t.Errorf("file has %d entries after Close, want %d", got, base+1)
	}
	if s.Dirty() {
		t.Error("Dirty() = true after Close")
	}
}

func TestValidationAccessors(t *testing.T) {
	dup1 := tree.NewAction(tree.KindCommand, "d", "true")
	dup2 := tree.NewAction(tree.KindCommand, "d", "false")
	root := tree.NewGroup("", "", dup1, dup2)

	s, path := newTestStore(t, WithDebounce(time.Hour))
	writeDoc(t, path, root)
	if err := s.EnsureAndLoad(); err != nil {
		t.Fatalf("EnsureAndLoad() error = %v", err)
	}

	if got := len(s.Validation()); got != 2 {
		t.Fatalf("Validation() reported %d findings, want 2", got)
	}
	for _, p := range []string{"0", "1"} {
		if _, ok := s.ValidationAt(p); !ok {
			t.Errorf("ValidationAt(%q) missing a finding", p)
		}
	}
	if _, ok := s.ValidationAt("2"); ok {
		t.Error("ValidationAt(\"2\") reported a finding for a clean path")
	}
}

func TestAtomicWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")
	if err := atomicWrite(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("atomicWrite() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("directory contents = %v, want only out.json", names)
	}
	got, _ := os.ReadFile(path)
	if string(got) != "{}\n" {
		t.Errorf("file content = %q, want %q", got, "{}\n")
	}
}
