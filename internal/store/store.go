// Package store holds the client-side state containers: the draft
// questionnaire, the menu book collection, the shopping screen state and
// the menu extras side map. All mutation goes through store methods;
// reads hand out deep copies. Each store exposes a change notification
// that the sync coordinator subscribes to.
package store

import "sync"

// notifier fans out change notifications to subscribers. Callbacks run
// on the mutating goroutine after the store's lock is released, so they
// must not block for long.
type notifier struct {
	mu   sync.Mutex
	subs []func()
}

// Subscribe registers a callback invoked after every mutation.
func (n *notifier) Subscribe(fn func()) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, fn)
}

func (n *notifier) notify() {
	n.mu.Lock()
	subs := make([]func(), len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
