package procedure

import (
	"github.com/sirupsen/logrus"

	"github.com/securefab/traincore/hook"
)

// Subscription is a cancelable handle to a registered listener. Cancel is
// idempotent and removes the listener from future deliveries.
type Subscription struct {
	cancel func()
}

// Cancel unregisters the listener.
func (s *Subscription) Cancel() {
	if s != nil && s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

type listener[T any] struct {
	id int
	fn func(T)
}

// observerList is an ordered registry of listeners for one event type.
// Delivery is synchronous, in subscription order, and happens before the
// triggering operation returns. The Manager is single-caller-at-a-time, so
// no locking is done here.
type observerList[T any] struct {
	nextID    int
	listeners []listener[T]
}

func (ol *observerList[T]) subscribe(fn func(T)) *Subscription {
	ol.nextID++
	id := ol.nextID
	ol.listeners = append(ol.listeners, listener[T]{id: id, fn: fn})

	return &Subscription{cancel: func() {
		for i, l := range ol.listeners {
			if l.id == id {
				ol.listeners = append(ol.listeners[:i], ol.listeners[i+1:]...)
				return
			}
		}
	}}
}

// emit delivers the event to every listener in order. Each callback runs
// under a recovery hook: a panicking listener is logged and skipped, never
// allowed to unwind into the engine.
func (ol *observerList[T]) emit(log *logrus.Entry, event string, value T) {
	// Snapshot so a listener subscribing or canceling during delivery does
	// not affect the current round.
	snapshot := make([]listener[T], len(ol.listeners))
	copy(snapshot, ol.listeners)

	for _, l := range snapshot {
		fn := l.fn
		if err := hook.Safe(func() { fn(value) }); err != nil {
			log.WithField("event", event).Errorf("listener failed: %v", err)
		}
	}
}
