package notify

import (
	"context"
	"fmt"

	focengine "github.com/foc-fun/foc-engine-go"
	"github.com/foc-fun/foc-engine-go/hook"
	"github.com/foc-fun/foc-engine-go/id"
)

// Compile-time hook interface checks.
var (
	_ hook.BatchFailed    = (*QueueHook)(nil)
	_ hook.ActionsDropped = (*QueueHook)(nil)
)

// QueueHook surfaces queue failures as notifications. Register it on
// the queue's hook registry:
//
//	hooks.Register(notify.NewQueueHook(store))
type QueueHook struct {
	store *Store
}

// NewQueueHook creates a queue lifecycle hook backed by the store.
func NewQueueHook(store *Store) *QueueHook {
	return &QueueHook{store: store}
}

// Name implements hook.Hook.
func (h *QueueHook) Name() string { return "notify" }

// OnBatchFailed pushes an error notification for a rejected batch.
func (h *QueueHook) OnBatchFailed(ctx context.Context, batchID id.BatchID, batch []focengine.Action, err error) error {
	h.store.Push(ctx, LevelError,
		"Transaction batch failed",
		fmt.Sprintf("%d action(s) re-queued (batch %s): %v", len(batch), batchID, err),
	)
	return nil
}

// OnActionsDropped pushes a warning when overflow eviction loses actions.
func (h *QueueHook) OnActionsDropped(ctx context.Context, dropped []focengine.Action) error {
	h.store.Push(ctx, LevelWarning,
		"Actions dropped",
		fmt.Sprintf("%d queued action(s) were evicted before execution", len(dropped)),
	)
	return nil
}
