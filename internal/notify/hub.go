// Package notify implements the transient notification queue surfaces read
// from. Notifications carry no engine state; losing one never affects a
// computation.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Severity classifies a notification for presentation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
)

// Notification is a human-readable message with a generated id.
type Notification struct {
	ID       string   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"type"`
}

// Hub collects notifications and removes them after the configured delay.
type Hub struct {
	mu     sync.Mutex
	items  []Notification
	ttl    time.Duration
	logger zerolog.Logger
}

// NewHub constructs a hub. A non-positive ttl disables auto-removal.
func NewHub(ttl time.Duration, logger zerolog.Logger) *Hub {
	return &Hub{ttl: ttl, logger: logger}
}

// Push appends a notification and schedules its removal.
func (h *Hub) Push(message string, severity Severity) Notification {
	n := Notification{ID: uuid.NewString(), Message: message, Severity: severity}
	if h == nil {
		return n
	}

	h.mu.Lock()
	h.items = append(h.items, n)
	h.mu.Unlock()

	evt := h.logger.Info()
	if severity == SeverityError {
		evt = h.logger.Warn()
	}
	evt.Str("severity", string(severity)).Str("notification_id", n.ID).Msg(message)

	if h.ttl > 0 {
		time.AfterFunc(h.ttl, func() { h.Remove(n.ID) })
	}
	return n
}

// Remove deletes the notification with the given id, if still present.
func (h *Hub) Remove(id string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.items[:0]
	for _, n := range h.items {
		if n.ID != id {
			out = append(out, n)
		}
	}
	h.items = out
}

// Clear drops every pending notification.
func (h *Hub) Clear() {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.items = nil
	h.mu.Unlock()
}

// List returns a copy of the pending notifications in arrival order.
func (h *Hub) List() []Notification {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Notification(nil), h.items...)
}

// Count returns the number of pending notifications.
func (h *Hub) Count() int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}
