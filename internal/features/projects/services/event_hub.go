package projects_services

import (
	"log/slog"
	"sync"
	"time"

	projects_interfaces "agencyops/internal/features/projects/interfaces"
)

// ProjectEventHub runs post-mutation hooks. Listeners are invoked
// synchronously in registration order and a panicking listener is logged and
// skipped.
type ProjectEventHub struct {
	mu        sync.RWMutex
	listeners []projects_interfaces.ProjectEventListener
	logger    *slog.Logger
}

func NewProjectEventHub(logger *slog.Logger) *ProjectEventHub {
	return &ProjectEventHub{logger: logger}
}

func (h *ProjectEventHub) AddListener(listener projects_interfaces.ProjectEventListener) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listeners = append(h.listeners, listener)
}

func (h *ProjectEventHub) Publish(event projects_interfaces.ProjectEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	h.mu.RLock()
	listeners := make([]projects_interfaces.ProjectEventListener, len(h.listeners))
	copy(listeners, h.listeners)
	h.mu.RUnlock()

	for _, listener := range listeners {
		h.notify(listener, event)
	}
}

func (h *ProjectEventHub) notify(
	listener projects_interfaces.ProjectEventListener,
	event projects_interfaces.ProjectEvent,
) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("project event listener panicked", "event", event.Type, "panic", r)
		}
	}()

	listener.OnProjectEvent(event)
}
