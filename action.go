package focengine

import (
	"context"
	"encoding/json"
)

// Action is a single contract invocation queued for batched submission.
// The queue treats an Action as an opaque value: it never reads these
// fields, so embedding applications are free to leave any of them empty
// and carry their own payload in Metadata.
type Action struct {
	// ContractAddress is the target contract, hex-encoded.
	ContractAddress string `json:"contractAddress" yaml:"contractAddress"`

	// Entrypoint is the function selector name to invoke.
	Entrypoint string `json:"entrypoint" yaml:"entrypoint"`

	// Calldata is the serialized argument list, one felt per element.
	Calldata []string `json:"calldata,omitempty" yaml:"calldata,omitempty"`

	// Metadata is an optional application-defined payload carried
	// alongside the call. Never inspected by the SDK.
	Metadata json.RawMessage `json:"metadata,omitempty" yaml:"-"`
}

// Executor submits a batch of actions. It is supplied by the embedding
// application (typically a gasless transaction broadcaster) and is the
// only suspension point in the queue: the call is awaited on a background
// goroutine and a non-nil error causes the whole batch to be re-queued.
//
// A successful return means only "the submission did not fail"; the SDK
// attaches no further meaning to it.
type Executor func(ctx context.Context, batch []Action) error

// ErrorHandler observes a failed batch submission. It is fire-and-forget:
// the return-free signature makes explicit that it cannot influence
// re-queueing or control flow.
type ErrorHandler func(err error, batch []Action)
