// Package store is the persistence engine: it keeps one canonical
// configuration tree in sync with one user-editable backing file.
//
// The store owns the tree. Structural edits go through its mutation
// methods, which revalidate and schedule a debounced save; external
// edits to the file are tolerated through checksum conflict detection
// at write time. Writes are atomic, so a reader of the backing file
// never observes a partial document.
//
// # Conflict protocol
//
// Every load records the content checksum of the bytes it read. A save
// recomputes the file's checksum first; when it no longer matches, the
// file changed behind the store's back and a three-way prompt decides
// what happens: overwrite the file, cancel the save, or reload from
// disk. The store never resolves a divergence on its own.
//
// # Concurrency
//
// All state is guarded by one mutex; file I/O and prompt waits run
// outside it. Loads are last-started-wins. The debounce timer is
// cancel-and-restart: a burst of edits yields one write of the final
// state after the quiescence window.
package store
