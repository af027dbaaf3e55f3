// Package notify keeps the ordered queue of transient user
// notifications and the expiry timer owned by each one.
package notify

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// DefaultTTL is how long a toast stays up unless dismissed earlier.
const DefaultTTL = 4500 * time.Millisecond

type Toast struct {
	ID      string `json:"id"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Scheduler owns the toast queue and a toast-id keyed timer table.
// Every timer it creates is released by exactly one of: expiry firing,
// Dismiss, or Close. Queue order is display order; toasts are only
// ever removed, never reordered.
type Scheduler struct {
	mu       sync.Mutex
	queue    []Toast
	timers   map[string]*time.Timer
	onChange func([]Toast)
	closed   bool
}

// NewScheduler builds a scheduler. onChange, when non-nil, receives a
// snapshot of the queue after every change.
func NewScheduler(onChange func([]Toast)) *Scheduler {
	return &Scheduler{
		timers:   make(map[string]*time.Timer),
		onChange: onChange,
	}
}

// Push appends a toast with the default ttl and returns its id.
func (s *Scheduler) Push(kind Kind, message string) string {
	return s.PushTTL(kind, message, DefaultTTL)
}

// PushTTL appends a toast that self-dismisses after ttl.
func (s *Scheduler) PushTTL(kind Kind, message string, ttl time.Duration) string {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}

	id := newToastID()
	s.queue = append(s.queue, Toast{ID: id, Kind: kind, Message: message})
	s.timers[id] = time.AfterFunc(ttl, func() { s.Dismiss(id) })
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(snapshot)
	return id
}

// Dismiss removes the toast and cancels its timer. Unknown or already
// removed ids are a no-op.
func (s *Scheduler) Dismiss(id string) {
	s.mu.Lock()
	if timer, ok := s.timers[id]; ok {
		timer.Stop()
		delete(s.timers, id)
	}

	removed := false
	for i, toast := range s.queue {
		if toast.ID == id {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			removed = true
			break
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if removed {
		s.emit(snapshot)
	}
}

// Toasts returns the queue in display order.
func (s *Scheduler) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close cancels every outstanding timer and drops the queue. The
// scheduler accepts no pushes afterwards.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.queue = nil
	s.closed = true
}

func (s *Scheduler) snapshotLocked() []Toast {
	out := make([]Toast, len(s.queue))
	copy(out, s.queue)
	return out
}

func (s *Scheduler) emit(snapshot []Toast) {
	if s.onChange != nil {
		s.onChange(snapshot)
	}
}

func newToastID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("%d-%04x", time.Now().UnixMilli(), rand.Intn(0x10000))
}
