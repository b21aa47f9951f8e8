// Package notify delivers the transient success and failure messages that
// every mutating storefront operation produces.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rogerio-castellano/storefront/internal/obs"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Notifier is the sink handed to stores and flows of one session.
type Notifier interface {
	Success(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
}

// Publisher forwards notifications outside the process.
type Publisher interface {
	Publish(ctx context.Context, session string, n Notification) error
}

// maxPending bounds an inbox nobody drains; the oldest entries are dropped.
const maxPending = 50

// Hub keeps one inbox per session and mirrors every notification to an
// optional Publisher.
type Hub struct {
	mu        sync.Mutex
	inboxes   map[string][]Notification
	publisher Publisher
	now       func() time.Time
}

func NewHub(p Publisher) *Hub {
	return &Hub{
		inboxes:   map[string][]Notification{},
		publisher: p,
		now:       time.Now,
	}
}

// For returns the Notifier bound to session.
func (h *Hub) For(session string) Notifier {
	return &sessionNotifier{hub: h, session: session}
}

func (h *Hub) push(ctx context.Context, session string, level Level, msg string) {
	n := Notification{Level: level, Message: msg, Time: h.now().UTC()}

	h.mu.Lock()
	inbox := append(h.inboxes[session], n)
	if len(inbox) > maxPending {
		inbox = inbox[len(inbox)-maxPending:]
	}
	h.inboxes[session] = inbox
	h.mu.Unlock()

	if h.publisher != nil {
		if err := h.publisher.Publish(ctx, session, n); err != nil {
			obs.Logger.Warn("notification publish failed", "session", session, "error", err)
		}
	}
}

// Drain returns and removes every pending notification of session, oldest first.
func (h *Hub) Drain(session string) []Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	inbox := h.inboxes[session]
	delete(h.inboxes, session)
	if inbox == nil {
		return []Notification{}
	}
	return inbox
}

// Forget drops the inbox of session without delivering it.
func (h *Hub) Forget(session string) {
	h.mu.Lock()
	delete(h.inboxes, session)
	h.mu.Unlock()
}

// Pending reports how many sessions hold undelivered notifications.
func (h *Hub) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.inboxes)
}

type sessionNotifier struct {
	hub     *Hub
	session string
}

func (s *sessionNotifier) Success(ctx context.Context, msg string) {
	s.hub.push(ctx, s.session, LevelSuccess, msg)
}

func (s *sessionNotifier) Error(ctx context.Context, msg string) {
	s.hub.push(ctx, s.session, LevelError, msg)
}

// Discard drops every notification.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Success(context.Context, string) {}
func (discard) Error(context.Context, string)   {}
