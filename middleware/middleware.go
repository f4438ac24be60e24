// Package middleware provides composable decorators for the batch
// Executor. Middleware wraps the submission call synchronously and can
// modify it: recover from panics, log, record metrics, throttle, retry.
//
// The queue core stays policy-free: wrap the application's Executor
// before handing it to queue.WithExecutor:
//
//	exec := middleware.Chain(
//	    middleware.Logging(logger),
//	    middleware.Recover(logger),
//	    middleware.Retry(backoff.Default(), 3),
//	)(submitBatch)
package middleware

import focengine "github.com/foc-fun/foc-engine-go"

// Middleware wraps an Executor with cross-cutting logic.
type Middleware func(next focengine.Executor) focengine.Executor

// Chain composes multiple middleware into one. The first middleware in
// the list is the outermost wrapper.
//
// Example: Chain(logging, recover, retry) executes as:
//
//	logging → recover → retry → executor
func Chain(mws ...Middleware) Middleware {
	return func(next focengine.Executor) focengine.Executor {
		exec := next
		for i := len(mws) - 1; i >= 0; i-- {
			exec = mws[i](exec)
		}
		return exec
	}
}
