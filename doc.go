// Package focengine is the Go SDK for building and submitting batched
// onchain actions. It provides a debounced, size-triggered action queue,
// a typed publish/subscribe event bus, and small UI-state stores for
// notifications and sound preferences.
//
// The SDK is a library, not a service. It never talks to a chain itself:
// the embedding application supplies an Executor that performs the actual
// submission (a paymaster call, an RPC broadcast, a test stub), and the
// queue decides when to hand it a batch.
//
// # Quick Start
//
//	cfg := focengine.ResolveConfig(focengine.Overrides{})
//	q, err := queue.New(cfg,
//	    queue.WithExecutor(func(ctx context.Context, batch []focengine.Action) error {
//	        return broadcaster.Submit(ctx, batch)
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//
//	q.Add(focengine.Action{
//	    ContractAddress: "0x049d...",
//	    Entrypoint:      "move",
//	    Calldata:        []string{"0x1", "0x2"},
//	})
//
// The queue flushes automatically once BatchSize actions accumulate, or
// after DebounceInterval of quiet following the last Add. A failed
// submission is re-queued at the front and retried on the next trigger.
//
// # Architecture
//
// Each subsystem lives in its own package: queue (batching core), event
// (typed pub/sub bus), notify and sound (UI-state stores), middleware
// (Executor decorators for logging, metrics, rate limiting, retries),
// hook (lifecycle hooks), backoff (retry delay strategies).
//
// Entity IDs use TypeID: type-prefixed, K-sortable, UUIDv7-based
// identifiers.
package focengine
