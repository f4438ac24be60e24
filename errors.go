package focengine

import "errors"

var (
	// Configuration errors.
	ErrInvalidMaxQueueSize     = errors.New("focengine: max queue size must be positive")
	ErrInvalidBatchSize        = errors.New("focengine: batch size must be positive")
	ErrInvalidDebounceInterval = errors.New("focengine: debounce interval must not be negative")

	// Notification errors.
	ErrNotificationNotFound = errors.New("focengine: notification not found")
)
