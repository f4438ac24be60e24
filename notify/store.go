package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/event"
	"github.com/foc-fun/foc-engine-go/id"
)

// TopicPushed carries every notification added to a Store with an
// attached bus.
const TopicPushed = event.Topic[Notification]("notification.pushed")

// Store holds notifications in arrival order, oldest first. When the
// retention cap is exceeded the oldest entries are evicted, read or not.
// Safe for concurrent use.
type Store struct {
	logger *slog.Logger
	bus    *event.Bus

	mu    sync.Mutex
	items []Notification
	max   int
}

// Option configures a Store.
type Option func(*Store)

// WithMaxRetained caps how many notifications are kept. Default 100.
func WithMaxRetained(n int) Option {
	return func(s *Store) { s.max = n }
}

// WithBus publishes every pushed notification to TopicPushed on the bus.
func WithBus(b *event.Bus) Option {
	return func(s *Store) { s.bus = b }
}

// WithLogger sets the structured logger for the store.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore creates an empty notification store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		logger: slog.Default(),
		max:    100,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Push adds a notification and returns it with its assigned ID. The
// oldest entries are evicted if the store exceeds its retention cap.
func (s *Store) Push(ctx context.Context, level Level, title, message string) Notification {
	n := Notification{
		ID:        id.NewNotificationID(),
		Level:     level,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.items = append(s.items, n)
	if over := len(s.items) - s.max; over > 0 {
		s.items = append(s.items[:0], s.items[over:]...)
	}
	s.mu.Unlock()

	if s.bus != nil {
		event.Publish(ctx, s.bus, TopicPushed, n)
	}
	return n
}

// List returns a snapshot of all retained notifications, oldest first.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, len(s.items))
	copy(out, s.items)
	return out
}

// Get returns the notification with the given ID.
func (s *Store) Get(nid id.NotificationID) (Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.items {
		if n.ID.String() == nid.String() {
			return n, nil
		}
	}
	return Notification{}, focengine.ErrNotificationNotFound
}

// Len returns the number of retained notifications.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// UnreadCount returns how many retained notifications are unread.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks one notification as read.
func (s *Store) MarkRead(nid id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID.String() == nid.String() {
			s.items[i].Read = true
			return nil
		}
	}
	return focengine.ErrNotificationNotFound
}

// MarkAllRead marks every retained notification as read and returns how
// many were previously unread.
func (s *Store) MarkAllRead() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			count++
		}
	}
	return count
}

// Dismiss removes one notification from the store.
func (s *Store) Dismiss(nid id.NotificationID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID.String() == nid.String() {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return focengine.ErrNotificationNotFound
}

// Clear removes all notifications.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.mu.Unlock()
}
