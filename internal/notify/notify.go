// Package notify implements the change-notification channel: a synchronous
// publish-subscribe hub decoupling the services from whoever reacts to
// mutations. Delivery happens on the publisher's goroutine, in subscription
// order. The hub keeps listener references until they unsubscribe; callers
// own that lifecycle.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"github.com/josephcavalcante/projeto-todolist/usecase"
)

// Listener receives notifications. Implementations should be idempotent:
// the same logical notification may arrive more than once.
type Listener interface {
	Notify(n usecase.Notification)
}

// Func adapts a plain function to a Listener. The returned value is a
// pointer so it can later be passed to Unsubscribe.
func Func(fn func(usecase.Notification)) Listener {
	return &funcListener{fn: fn}
}

type funcListener struct {
	fn func(usecase.Notification)
}

func (l *funcListener) Notify(n usecase.Notification) {
	l.fn(n)
}

type Hub struct {
	mu        sync.RWMutex
	listeners []Listener
	logger    *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{logger: logger}
}

// Subscribe registers the listener. It keeps receiving notifications until
// Unsubscribe is called with the same value.
func (h *Hub) Subscribe(l Listener) {
	if l == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.listeners = append(h.listeners, l)
}

// Unsubscribe removes the first registration of the listener.
func (h *Hub) Unsubscribe(l Listener) {
	if l == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, registered := range h.listeners {
		if registered == l {
			h.listeners = append(h.listeners[:i], h.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers the notification to every subscriber in subscription
// order, on the caller's goroutine. A misbehaving listener is isolated so
// the remaining subscribers still get the notification.
func (h *Hub) Publish(n usecase.Notification) {
	h.mu.RLock()
	snapshot := make([]Listener, len(h.listeners))
	copy(snapshot, h.listeners)
	h.mu.RUnlock()

	for _, l := range snapshot {
		h.deliver(l, n)
	}
}

func (h *Hub) deliver(l Listener, n usecase.Notification) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("notification listener panicked",
				zap.String("kind", string(n.Kind)), zap.Any("panic", r))
		}
	}()
	l.Notify(n)
}

var _ usecase.Notifier = (*Hub)(nil)
