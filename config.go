package focengine

import "time"

// QueueConfig holds configuration for the action queue.
type QueueConfig struct {
	// MaxQueueSize is the hard cap on pending actions. When an add pushes
	// the queue past this size, the oldest actions are evicted.
	MaxQueueSize int

	// BatchSize is the number of queued actions that triggers an
	// immediate flush when AutoExecute is enabled.
	BatchSize int

	// DebounceInterval is the quiet period after the last add before a
	// partial batch is flushed. Zero disables the time-based trigger.
	DebounceInterval time.Duration

	// AutoExecute controls whether size and time triggers fire
	// automatically. When false, flushes happen only via ExecuteNow.
	AutoExecute bool
}

// DefaultQueueConfig returns a QueueConfig with sensible defaults.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		MaxQueueSize:     50,
		BatchSize:        10,
		DebounceInterval: 1000 * time.Millisecond,
		AutoExecute:      true,
	}
}

// Validate reports the first invalid field, if any.
func (c QueueConfig) Validate() error {
	if c.MaxQueueSize <= 0 {
		return ErrInvalidMaxQueueSize
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.DebounceInterval < 0 {
		return ErrInvalidDebounceInterval
	}
	return nil
}

// Overrides is a partial QueueConfig. Nil fields are left unchanged when
// applied, so the same type serves config resolution at construction and
// live reconfiguration through Queue.UpdateConfig.
type Overrides struct {
	MaxQueueSize     *int
	BatchSize        *int
	DebounceInterval *time.Duration
	AutoExecute      *bool
}

// Apply merges the defined fields of o into cfg.
func (o Overrides) Apply(cfg *QueueConfig) {
	if o.MaxQueueSize != nil {
		cfg.MaxQueueSize = *o.MaxQueueSize
	}
	if o.BatchSize != nil {
		cfg.BatchSize = *o.BatchSize
	}
	if o.DebounceInterval != nil {
		cfg.DebounceInterval = *o.DebounceInterval
	}
	if o.AutoExecute != nil {
		cfg.AutoExecute = *o.AutoExecute
	}
}

// IsZero reports whether no field is set.
func (o Overrides) IsZero() bool {
	return o.MaxQueueSize == nil && o.BatchSize == nil &&
		o.DebounceInterval == nil && o.AutoExecute == nil
}

// ResolveConfig builds the effective QueueConfig with the documented
// precedence: explicit overrides win over environment variables, which
// win over the hardcoded defaults.
func ResolveConfig(explicit Overrides) QueueConfig {
	return resolveConfig(explicit, LookupEnv)
}

// resolveConfig is the pure core of ResolveConfig, parameterized on the
// environment lookup for testability.
func resolveConfig(explicit Overrides, lookup func(string) (string, bool)) QueueConfig {
	cfg := DefaultQueueConfig()
	EnvOverrides(lookup).Apply(&cfg)
	explicit.Apply(&cfg)
	return cfg
}
