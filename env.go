package focengine

import (
	"os"
	"strconv"
	"time"
)

// Environment variable names recognized by EnvOverrides.
const (
	EnvMaxQueueSize     = "FOC_ENGINE_MAX_QUEUE_SIZE"
	EnvBatchSize        = "FOC_ENGINE_BATCH_SIZE"
	EnvDebounceInterval = "FOC_ENGINE_DEBOUNCE_INTERVAL"
	EnvAutoExecute      = "FOC_ENGINE_AUTO_EXECUTE"
)

// LookupEnv is the process-environment lookup used by ResolveConfig.
var LookupEnv = os.LookupEnv

// EnvOverrides reads queue configuration overrides from the environment
// through the given lookup. Unset or unparseable values are simply
// omitted, leaving lower-precedence sources in effect.
func EnvOverrides(lookup func(string) (string, bool)) Overrides {
	var o Overrides

	if raw, ok := lookup(EnvMaxQueueSize); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			o.MaxQueueSize = &n
		}
	}
	if raw, ok := lookup(EnvBatchSize); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			o.BatchSize = &n
		}
	}
	if raw, ok := lookup(EnvDebounceInterval); ok {
		if d, err := parseInterval(raw); err == nil {
			o.DebounceInterval = &d
		}
	}
	if raw, ok := lookup(EnvAutoExecute); ok {
		if b, err := strconv.ParseBool(raw); err == nil {
			o.AutoExecute = &b
		}
	}

	return o
}

// parseInterval accepts either a Go duration string ("250ms", "2s") or a
// bare integer meaning milliseconds.
func parseInterval(raw string) (time.Duration, error) {
	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(raw)
}
