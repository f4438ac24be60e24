package focengine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configFile is the on-disk layout of a queue overrides file. The
// debounce interval is kept as a string so both duration syntax ("250ms")
// and bare milliseconds ("250") are accepted, same as the environment.
type configFile struct {
	Queue struct {
		MaxQueueSize     *int   `yaml:"maxQueueSize"`
		BatchSize        *int   `yaml:"batchSize"`
		DebounceInterval string `yaml:"debounceInterval"`
		AutoExecute      *bool  `yaml:"autoExecute"`
	} `yaml:"queue"`
}

// LoadOverrides reads queue configuration overrides from a YAML file:
//
//	queue:
//	  maxQueueSize: 100
//	  batchSize: 20
//	  debounceInterval: 250ms
//	  autoExecute: true
//
// The result carries explicit-source precedence; pass it to ResolveConfig.
// Absent keys stay nil and leave lower-precedence sources in effect.
func LoadOverrides(path string) (Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Overrides{}, fmt.Errorf("focengine: read config %s: %w", path, err)
	}

	var parsed configFile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return Overrides{}, fmt.Errorf("focengine: parse config %s: %w", path, err)
	}

	o := Overrides{
		MaxQueueSize: parsed.Queue.MaxQueueSize,
		BatchSize:    parsed.Queue.BatchSize,
		AutoExecute:  parsed.Queue.AutoExecute,
	}
	if raw := parsed.Queue.DebounceInterval; raw != "" {
		d, err := parseInterval(raw)
		if err != nil {
			return Overrides{}, fmt.Errorf("focengine: parse config %s: debounceInterval: %w", path, err)
		}
		o.DebounceInterval = &d
	}

	return o, nil
}
