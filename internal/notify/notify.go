// Package notify delivers store change notifications.
//
// The notify package implements an observer pattern that lets UI and
// tooling layers react to persistence events: the canonical tree being
// replaced, validation findings changing, saves completing or failing,
// conflicts being detected, and explicit reloads beginning and ending.
//
// Delivery is synchronous on the goroutine that raised the event;
// ordering between observers is not guaranteed. Observers must not
// call back into the store while handling an event.
package notify

import (
	"sync"
)

// Kind identifies what happened in the store.
type Kind int

const (
	// TreeReplaced indicates the canonical tree was swapped by a load,
	// reload, or conflict resolution.
	TreeReplaced Kind = iota

	// ValidationChanged indicates validation findings were recomputed.
	ValidationChanged

	// SaveCompleted indicates an encode and atomic write finished.
	SaveCompleted

	// SaveFailed indicates a save attempt did not reach the disk.
	SaveFailed

	// ConflictDetected indicates the backing file changed since the
	// last read and a save attempt hit the divergence.
	ConflictDetected

	// ReloadBegan indicates an explicit reload from disk started.
	ReloadBegan

	// ReloadEnded indicates an explicit reload from disk finished.
	ReloadEnded
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case TreeReplaced:
		return "tree_replaced"
	case ValidationChanged:
		return "validation_changed"
	case SaveCompleted:
		return "save_completed"
	case SaveFailed:
		return "save_failed"
	case ConflictDetected:
		return "conflict_detected"
	case ReloadBegan:
		return "reload_began"
	case ReloadEnded:
		return "reload_ended"
	default:
		return "unknown"
	}
}

// Event is one store change notification.
type Event struct {
	// Kind is what happened.
	Kind Kind

	// Path is the backing file path involved, when one was.
	Path string

	// Err carries the failure for SaveFailed events.
	Err error
}

// Observer is called when a store event occurs.
type Observer func(Event)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than
// once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier manages store event subscriptions.
type Notifier struct {
	mu sync.RWMutex

	// Observers that receive every event.
	observers map[uint64]Observer

	// Observers filtered to one event kind.
	kindObservers map[Kind]map[uint64]Observer

	nextID uint64
	closed bool
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers:     make(map[uint64]Observer),
		kindObservers: make(map[Kind]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all events.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribeKind registers an observer for one event kind.
func (n *Notifier) SubscribeKind(kind Kind, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.kindObservers[kind] == nil {
		n.kindObservers[kind] = make(map[uint64]Observer)
	}
	n.kindObservers[kind][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers an event to every matching observer. Observers run
// outside the notifier's lock on the calling goroutine.
func (n *Notifier) Notify(event Event) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}

	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	for _, obs := range n.kindObservers[event.Kind] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(event)
	}
}

// Close stops delivery. It is safe to call Close multiple times.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
}

// unsubscribe removes an observer by ID.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.observers, id)
	for kind, observers := range n.kindObservers {
		delete(observers, id)
		if len(observers) == 0 {
			delete(n.kindObservers, kind)
		}
	}
}
