// Package hook defines lifecycle hooks for the action queue.
//
// Hooks are notified as actions move through the queue (enqueued,
// dropped on overflow, flushed, submitted, failed) and can react to
// them: recording metrics, surfacing notifications, writing audit logs.
// Each lifecycle event is a separate interface so a hook opts in only to
// the events it cares about; the Registry fans each event out to every
// registered hook that implements it.
package hook

import (
	"context"
	"time"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/id"
)

// Hook is the base interface all hooks must implement.
type Hook interface {
	// Name returns a unique human-readable name for the hook.
	Name() string
}

// ActionEnqueued is called after an action is appended to the queue.
type ActionEnqueued interface {
	OnActionEnqueued(ctx context.Context, action focengine.Action, queueLen int) error
}

// ActionsDropped is called when overflow eviction discards queued
// actions. The dropped actions were never executed and are lost; this
// hook is their only observability surface.
type ActionsDropped interface {
	OnActionsDropped(ctx context.Context, dropped []focengine.Action) error
}

// FlushStarted is called when a batch has been drained from the queue
// and is about to be handed to the executor.
type FlushStarted interface {
	OnFlushStarted(ctx context.Context, batchID id.BatchID, batch []focengine.Action) error
}

// BatchSubmitted is called after the executor accepts a batch.
type BatchSubmitted interface {
	OnBatchSubmitted(ctx context.Context, batchID id.BatchID, batch []focengine.Action, elapsed time.Duration) error
}

// BatchFailed is called when the executor rejects a batch. By the time
// this fires the batch has already been re-queued at the front.
type BatchFailed interface {
	OnBatchFailed(ctx context.Context, batchID id.BatchID, batch []focengine.Action, err error) error
}
