package sync

import "sync"

// Notifier delivers no-payload "data changed" signals to the single active
// subscriber, normally the currently visible UI surface. The receiver is
// expected to re-read the cache when a signal arrives.
//
// Contract: only the most recent subscriber matters. Subscribing replaces
// the previous subscription wholesale; signals sent to a replaced channel
// stop. Signals are coalesced — a subscriber that has not drained its
// channel receives at most one pending signal.
type Notifier struct {
	mu sync.Mutex
	ch chan struct{}
}

// NewNotifier returns a notifier with no subscriber; Notify is a no-op until
// Subscribe is called.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers the caller as the sole subscriber and returns the
// channel signals arrive on. Any previous subscriber's channel is closed so
// an abandoned UI surface can tell it was replaced.
func (n *Notifier) Subscribe() <-chan struct{} {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch != nil {
		close(n.ch)
	}
	n.ch = make(chan struct{}, 1)
	return n.ch
}

// Unsubscribe drops the current subscriber, closing its channel.
func (n *Notifier) Unsubscribe() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch != nil {
		close(n.ch)
		n.ch = nil
	}
}

// Notify signals the current subscriber without blocking. A signal already
// pending on the channel satisfies this one too.
func (n *Notifier) Notify() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.ch == nil {
		return
	}
	select {
	case n.ch <- struct{}{}:
	default:
	}
}
