package queue

import (
	"context"
	"log/slog"
	"sync"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/hook"
	"github.com/foc-fun/foc-engine-go/id"
)

// Queue buffers onchain actions and flushes them to an Executor in
// batches. It is safe for concurrent use.
//
// Adds return immediately; the executor runs on a background goroutine.
// The queue guarantees at most one in-flight submission, at most one
// armed debounce timer, and insertion order as execution order.
type Queue struct {
	logger *slog.Logger
	hooks  *hook.Registry

	mu       sync.Mutex
	cfg      focengine.QueueConfig
	actions  []focengine.Action
	executor focengine.Executor
	onError  focengine.ErrorHandler
	pending  bool
	lastExec time.Time

	// Debounce timer. The generation counter invalidates callbacks from
	// timers that were stopped or replaced after firing had already begun.
	timer    *time.Timer
	timerGen uint64

	inflight sync.WaitGroup
}

// Option configures a Queue.
type Option func(*Queue)

// WithExecutor sets the batch submission capability. Without one the
// queue still buffers and evicts, but flush attempts are no-ops.
func WithExecutor(exec focengine.Executor) Option {
	return func(q *Queue) { q.executor = exec }
}

// WithErrorHandler sets the callback invoked when a submission fails.
// It observes only; re-queueing happens regardless.
func WithErrorHandler(h focengine.ErrorHandler) Option {
	return func(q *Queue) { q.onError = h }
}

// WithHooks sets the lifecycle hook registry.
func WithHooks(r *hook.Registry) Option {
	return func(q *Queue) { q.hooks = r }
}

// WithLogger sets the structured logger for the queue.
func WithLogger(l *slog.Logger) Option {
	return func(q *Queue) { q.logger = l }
}

// New creates an empty Queue with the given configuration.
func New(cfg focengine.QueueConfig, opts ...Option) (*Queue, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	q := &Queue{
		cfg:    cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(q)
	}
	if q.hooks == nil {
		q.hooks = hook.NewRegistry(q.logger)
	}
	return q, nil
}

// ──────────────────────────────────────────────────
// Mutations
// ──────────────────────────────────────────────────

// Add appends one action to the queue. It never blocks and never fails:
// when thresholds are met a flush starts in the background, and when the
// queue overflows the oldest actions are evicted.
func (q *Queue) Add(action focengine.Action) {
	ctx := context.Background()

	q.mu.Lock()
	q.actions = append(q.actions, action)
	n := len(q.actions)
	q.evaluateTriggersLocked(ctx)
	dropped := q.evictOverflowLocked()
	q.mu.Unlock()

	q.hooks.EmitActionEnqueued(ctx, action, n)
	q.reportDropped(ctx, dropped)
}

// AddAll appends actions in order. It is equivalent to calling Add once
// per element: triggers are evaluated after each individual append, so a
// large slice can cause intermediate flushes partway through.
func (q *Queue) AddAll(actions ...focengine.Action) {
	for _, a := range actions {
		q.Add(a)
	}
}

// Clear empties the queue and cancels any armed debounce timer. It does
// not cancel a submission already in flight; if that submission fails,
// its batch is re-queued into the now-empty queue.
func (q *Queue) Clear() {
	q.mu.Lock()
	q.actions = nil
	q.stopTimerLocked()
	q.mu.Unlock()
}

// ExecuteNow forces an immediate flush attempt regardless of size and
// time triggers. It reports whether a flush actually started: false
// means the queue was empty, a submission was already in flight, or no
// executor is configured.
func (q *Queue) ExecuteNow(ctx context.Context) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.flushLocked(ctx)
}

// ──────────────────────────────────────────────────
// Inspection
// ──────────────────────────────────────────────────

// Actions returns a snapshot of the pending actions in insertion order.
// Actions drained for an in-flight submission are not included unless
// and until they are re-queued after a failure.
func (q *Queue) Actions() []focengine.Action {
	q.mu.Lock()
	defer q.mu.Unlock()
	snapshot := make([]focengine.Action, len(q.actions))
	copy(snapshot, q.actions)
	return snapshot
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}

// IsEmpty reports whether no actions are pending.
func (q *Queue) IsEmpty() bool { return q.Len() == 0 }

// Pending reports whether a submission is currently in flight.
func (q *Queue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// LastExecution returns when the most recent flush drained the queue,
// or the zero time if no flush has happened yet.
func (q *Queue) LastExecution() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastExec
}

// Config returns a copy of the live configuration.
func (q *Queue) Config() focengine.QueueConfig {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.cfg
}

// Wait blocks until no submission is in flight. Callers should stop
// adding actions first; Wait does not prevent new flushes from starting.
func (q *Queue) Wait() {
	q.inflight.Wait()
}

// ──────────────────────────────────────────────────
// Reconfiguration
// ──────────────────────────────────────────────────

// UpdateConfig merges the defined fields of o into the live
// configuration. A change to BatchSize or DebounceInterval takes effect
// on the next add: an already-armed debounce timer is not rescheduled,
// and a shrunken MaxQueueSize is enforced on the next mutation.
func (q *Queue) UpdateConfig(o focengine.Overrides) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	merged := q.cfg
	o.Apply(&merged)
	if err := merged.Validate(); err != nil {
		return err
	}
	q.cfg = merged
	return nil
}

// SetExecutor installs or replaces the batch submission capability.
// A submission already in flight keeps the executor it started with.
func (q *Queue) SetExecutor(exec focengine.Executor) {
	q.mu.Lock()
	q.executor = exec
	q.mu.Unlock()
}

// SetErrorHandler installs or replaces the failure callback.
func (q *Queue) SetErrorHandler(h focengine.ErrorHandler) {
	q.mu.Lock()
	q.onError = h
	q.mu.Unlock()
}

// ──────────────────────────────────────────────────
// Triggers and flushing
// ──────────────────────────────────────────────────

// evaluateTriggersLocked runs after every append and after a successful
// submission settles. When the size threshold is met but a submission is
// already in flight, the debounce timer is re-armed instead so the
// backlog still flushes shortly after the in-flight submission settles.
func (q *Queue) evaluateTriggersLocked(ctx context.Context) {
	if !q.cfg.AutoExecute || len(q.actions) == 0 {
		return
	}
	if len(q.actions) >= q.cfg.BatchSize && q.flushLocked(ctx) {
		return
	}
	if q.cfg.DebounceInterval > 0 {
		q.armTimerLocked(q.cfg.DebounceInterval)
	}
}

// flushLocked drains the entire backlog and starts a background
// submission. It reports false without side effects when a submission is
// in flight, the queue is empty, or no executor is configured.
func (q *Queue) flushLocked(ctx context.Context) bool {
	if q.pending || len(q.actions) == 0 || q.executor == nil {
		return false
	}

	q.stopTimerLocked()
	q.pending = true
	batch := q.actions
	q.actions = nil
	q.lastExec = time.Now()

	batchID := id.NewBatchID()
	exec := q.executor
	onError := q.onError

	q.inflight.Add(1)
	go q.submit(ctx, exec, onError, batchID, batch)
	return true
}

// submit runs one batch through the executor and settles the outcome.
func (q *Queue) submit(
	ctx context.Context,
	exec focengine.Executor,
	onError focengine.ErrorHandler,
	batchID id.BatchID,
	batch []focengine.Action,
) {
	defer q.inflight.Done()

	q.hooks.EmitFlushStarted(ctx, batchID, batch)
	q.logger.Debug("submitting batch",
		slog.String("batch_id", batchID.String()),
		slog.Int("size", len(batch)),
	)

	start := time.Now()
	err := exec(ctx, batch)
	elapsed := time.Since(start)

	if err == nil {
		// Re-evaluate triggers for whatever accumulated during the flight,
		// so a backlog at threshold drains without waiting for another add.
		// The chained flushLocked runs its inflight.Add before this
		// goroutine's Done, keeping Wait callers blocked across the chain.
		q.mu.Lock()
		q.pending = false
		q.evaluateTriggersLocked(ctx)
		q.mu.Unlock()

		q.hooks.EmitBatchSubmitted(ctx, batchID, batch, elapsed)
		q.logger.Debug("batch submitted",
			slog.String("batch_id", batchID.String()),
			slog.Int("size", len(batch)),
			slog.Duration("elapsed", elapsed),
		)
		return
	}

	// Rejected: re-queue the batch at the front so its actions keep their
	// original order, ahead of anything enqueued while it was in flight.
	q.mu.Lock()
	requeued := make([]focengine.Action, 0, len(batch)+len(q.actions))
	requeued = append(requeued, batch...)
	requeued = append(requeued, q.actions...)
	q.actions = requeued
	dropped := q.evictOverflowLocked()
	// No trigger re-evaluation here: an immediately re-flushed failing
	// batch would hot-loop. The retry rides the next add or timer fire.
	q.pending = false
	q.mu.Unlock()

	if onError != nil {
		onError(err, batch)
	}
	q.hooks.EmitBatchFailed(ctx, batchID, batch, err)
	q.reportDropped(ctx, dropped)

	q.logger.Warn("batch submission failed, actions re-queued",
		slog.String("batch_id", batchID.String()),
		slog.Int("size", len(batch)),
		slog.String("error", err.Error()),
	)
}

// evictOverflowLocked drops the oldest actions beyond MaxQueueSize and
// returns them.
func (q *Queue) evictOverflowLocked() []focengine.Action {
	over := len(q.actions) - q.cfg.MaxQueueSize
	if over <= 0 {
		return nil
	}

	dropped := make([]focengine.Action, over)
	copy(dropped, q.actions[:over])
	q.actions = append(q.actions[:0], q.actions[over:]...)
	return dropped
}

// reportDropped surfaces overflow eviction. The actions are lost; the
// hook and the warning log are the only trace they existed.
func (q *Queue) reportDropped(ctx context.Context, dropped []focengine.Action) {
	if len(dropped) == 0 {
		return
	}
	q.logger.Warn("queue overflow, oldest actions dropped",
		slog.Int("dropped", len(dropped)),
		slog.Int("max_queue_size", q.Config().MaxQueueSize),
	)
	q.hooks.EmitActionsDropped(ctx, dropped)
}

// ──────────────────────────────────────────────────
// Debounce timer
// ──────────────────────────────────────────────────

// armTimerLocked (re)arms the single debounce timer.
func (q *Queue) armTimerLocked(d time.Duration) {
	if q.timer != nil {
		q.timer.Stop()
	}
	q.timerGen++
	gen := q.timerGen
	q.timer = time.AfterFunc(d, func() { q.debounceFire(gen) })
}

// stopTimerLocked cancels the armed timer, if any. Bumping the
// generation invalidates a callback that already fired but has not yet
// taken the lock.
func (q *Queue) stopTimerLocked() {
	if q.timer != nil {
		q.timer.Stop()
		q.timer = nil
	}
	q.timerGen++
}

// debounceFire is the timer callback: flush whatever accumulated during
// the quiet period.
func (q *Queue) debounceFire(gen uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if gen != q.timerGen {
		return
	}
	q.timer = nil
	q.flushLocked(context.Background())
}
