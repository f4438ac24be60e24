// Package queue implements the onchain action queue: a bounded buffer
// of pending actions with debounced, size-triggered automatic flushing
// and failure re-queueing.
//
// Actions accumulate until one of three things flushes them to the
// configured Executor as a single batch: the queue reaches BatchSize, the
// debounce timer fires after a quiet period, or the caller invokes
// ExecuteNow. A flush always drains the entire backlog, not just
// BatchSize actions. At most one submission is in flight at a time; a
// rejected batch is re-queued at the front so its actions retry, in
// order, on the next trigger.
//
// Adds never block and never fail. When the queue exceeds MaxQueueSize
// the oldest actions are evicted; eviction is silent data loss, surfaced
// only through the ActionsDropped hook and a warning log.
package queue
