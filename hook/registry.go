package hook

import (
	"context"
	"log/slog"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/id"
)

// Named entry types pair a hook implementation with the name captured at
// registration time, so emit methods need no type assertion back to Hook.
type actionEnqueuedEntry struct {
	name string
	hook ActionEnqueued
}

type actionsDroppedEntry struct {
	name string
	hook ActionsDropped
}

type flushStartedEntry struct {
	name string
	hook FlushStarted
}

type batchSubmittedEntry struct {
	name string
	hook BatchSubmitted
}

type batchFailedEntry struct {
	name string
	hook BatchFailed
}

// Registry holds registered hooks and dispatches lifecycle events to
// them. It type-caches hooks at registration time so emit calls iterate
// only over hooks that implement the relevant event.
type Registry struct {
	hooks  []Hook
	logger *slog.Logger

	// Type-cached slices for each lifecycle event.
	actionEnqueued []actionEnqueuedEntry
	actionsDropped []actionsDroppedEntry
	flushStarted   []flushStartedEntry
	batchSubmitted []batchSubmittedEntry
	batchFailed    []batchFailedEntry
}

// NewRegistry creates a hook registry with the given logger.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register adds a hook and type-asserts it into all applicable event
// caches. Hooks are notified in registration order.
func (r *Registry) Register(h Hook) {
	r.hooks = append(r.hooks, h)
	name := h.Name()

	if e, ok := h.(ActionEnqueued); ok {
		r.actionEnqueued = append(r.actionEnqueued, actionEnqueuedEntry{name, e})
	}
	if e, ok := h.(ActionsDropped); ok {
		r.actionsDropped = append(r.actionsDropped, actionsDroppedEntry{name, e})
	}
	if e, ok := h.(FlushStarted); ok {
		r.flushStarted = append(r.flushStarted, flushStartedEntry{name, e})
	}
	if e, ok := h.(BatchSubmitted); ok {
		r.batchSubmitted = append(r.batchSubmitted, batchSubmittedEntry{name, e})
	}
	if e, ok := h.(BatchFailed); ok {
		r.batchFailed = append(r.batchFailed, batchFailedEntry{name, e})
	}
}

// Hooks returns all registered hooks.
func (r *Registry) Hooks() []Hook { return r.hooks }

// EmitActionEnqueued notifies all hooks that implement ActionEnqueued.
func (r *Registry) EmitActionEnqueued(ctx context.Context, action focengine.Action, queueLen int) {
	for _, e := range r.actionEnqueued {
		if err := e.hook.OnActionEnqueued(ctx, action, queueLen); err != nil {
			r.logHookError("OnActionEnqueued", e.name, err)
		}
	}
}

// EmitActionsDropped notifies all hooks that implement ActionsDropped.
func (r *Registry) EmitActionsDropped(ctx context.Context, dropped []focengine.Action) {
	for _, e := range r.actionsDropped {
		if err := e.hook.OnActionsDropped(ctx, dropped); err != nil {
			r.logHookError("OnActionsDropped", e.name, err)
		}
	}
}

// EmitFlushStarted notifies all hooks that implement FlushStarted.
func (r *Registry) EmitFlushStarted(ctx context.Context, batchID id.BatchID, batch []focengine.Action) {
	for _, e := range r.flushStarted {
		if err := e.hook.OnFlushStarted(ctx, batchID, batch); err != nil {
			r.logHookError("OnFlushStarted", e.name, err)
		}
	}
}

// EmitBatchSubmitted notifies all hooks that implement BatchSubmitted.
func (r *Registry) EmitBatchSubmitted(ctx context.Context, batchID id.BatchID, batch []focengine.Action, elapsed time.Duration) {
	for _, e := range r.batchSubmitted {
		if err := e.hook.OnBatchSubmitted(ctx, batchID, batch, elapsed); err != nil {
			r.logHookError("OnBatchSubmitted", e.name, err)
		}
	}
}

// EmitBatchFailed notifies all hooks that implement BatchFailed.
func (r *Registry) EmitBatchFailed(ctx context.Context, batchID id.BatchID, batch []focengine.Action, batchErr error) {
	for _, e := range r.batchFailed {
		if err := e.hook.OnBatchFailed(ctx, batchID, batch, batchErr); err != nil {
			r.logHookError("OnBatchFailed", e.name, err)
		}
	}
}

// logHookError records a hook failure. Hook errors never affect queue
// control flow; they are logged and dropped.
func (r *Registry) logHookError(event, name string, err error) {
	r.logger.Error("hook error",
		slog.String("event", event),
		slog.String("hook", name),
		slog.String("error", err.Error()),
	)
}
