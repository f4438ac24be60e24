// Package notify provides the in-app notification store: a bounded,
// ordered list of notifications with read/dismiss state. It is a plain
// state container for UI consumers; delivery to screens is the
// embedding application's concern.
package notify

import (
	"time"

	"github.com/foc-fun/foc-engine-go/id"
)

// Level classifies a notification for presentation.
type Level string

// Notification levels.
const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is one entry in the store.
type Notification struct {
	ID        id.NotificationID `json:"id"`
	Level     Level             `json:"level"`
	Title     string            `json:"title"`
	Message   string            `json:"message,omitempty"`
	Read      bool              `json:"read"`
	CreatedAt time.Time         `json:"created_at"`
}
