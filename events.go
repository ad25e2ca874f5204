package go_aditum

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/stremovskyy/go-aditum/consts"
	"github.com/stremovskyy/go-aditum/log"
	"github.com/stremovskyy/go-aditum/payment"
)

// EventHandler receives payment lifecycle events. Handlers run synchronously
// on the goroutine that drives the payment.
type EventHandler func(payment.Event)

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id    string
	event string
	bus   *eventBus
	once  sync.Once
}

func (s *Subscription) ID() string    { return s.id }
func (s *Subscription) Event() string { return s.event }

// Unsubscribe stops delivery. Calling it more than once is a no-op.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s)
	})
}

type listener struct {
	sub *Subscription
	fn  EventHandler
}

type eventBus struct {
	mu        sync.RWMutex
	listeners map[string][]listener
	logger    log.Logger
}

func newEventBus(logger log.Logger) *eventBus {
	return &eventBus{
		listeners: make(map[string][]listener),
		logger:    logger,
	}
}

func isKnownEvent(name string) bool {
	for _, e := range consts.Events() {
		if e == name {
			return true
		}
	}
	return false
}

func (b *eventBus) subscribe(event string, fn EventHandler) (*Subscription, error) {
	if !isKnownEvent(event) {
		return nil, fmt.Errorf("unknown event %q", event)
	}
	if fn == nil {
		return nil, fmt.Errorf("handler for %q is nil", event)
	}

	sub := &Subscription{id: uuid.NewString(), event: event, bus: b}
	b.mu.Lock()
	b.listeners[event] = append(b.listeners[event], listener{sub: sub, fn: fn})
	b.mu.Unlock()
	return sub, nil
}

func (b *eventBus) remove(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ls := b.listeners[sub.event]
	for i, l := range ls {
		if l.sub == sub {
			b.listeners[sub.event] = append(ls[:i:i], ls[i+1:]...)
			return
		}
	}
}

func (b *eventBus) count(event string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[event])
}

// emit delivers ev to every listener registered for ev.Name, in subscription
// order. A panicking handler is logged and does not stop delivery.
func (b *eventBus) emit(ev payment.Event) {
	b.mu.RLock()
	ls := append([]listener(nil), b.listeners[ev.Name]...)
	b.mu.RUnlock()

	for _, l := range ls {
		b.deliver(l, ev)
	}
}

func (b *eventBus) deliver(l listener, ev payment.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("event handler %s for %s panicked: %v", l.sub.id, ev.Name, r)
		}
	}()
	l.fn(ev)
}
