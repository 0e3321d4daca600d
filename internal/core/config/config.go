// Package config loads the runtime's fixed-capacity tuning constants
// from YAML or JSON. The values it carries are treated as compile-time
// constants by every package that consumes them — NewManager, NewGrid,
// and scheduler.New all take fixed capacities up front and never resize
// — so LoadYAML/LoadJSON run once at process start, not on a reload
// path.
package config

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Config holds every fixed-capacity knob the runtime needs at startup.
type Config struct {
	MaxEntities       int `json:"max_entities" yaml:"max_entities"`
	MaxComponentTypes int `json:"max_component_types" yaml:"max_component_types"`
	MaxWorkers        int `json:"max_workers" yaml:"max_workers"`
	MaxNodes          int `json:"max_nodes" yaml:"max_nodes"`
	MaxTags           int `json:"max_tags" yaml:"max_tags"`
	MaxPerCell        int `json:"max_per_cell" yaml:"max_per_cell"`
	MaxPendingTasks   int `json:"max_pending_tasks" yaml:"max_pending_tasks"`
	EventQueueSize    int `json:"event_queue_size" yaml:"event_queue_size"`

	GridColumns   int `json:"grid_columns" yaml:"grid_columns"`
	GridRows      int `json:"grid_rows" yaml:"grid_rows"`
	CellPixelSize int `json:"cell_pixel_size" yaml:"cell_pixel_size"`
}

// Default returns the reference capacities called out in the runtime's
// configuration-constants table.
func Default() Config {
	return Config{
		MaxEntities:       1024,
		MaxComponentTypes: 64,
		MaxWorkers:        2,
		MaxNodes:          64,
		MaxTags:           8,
		MaxPerCell:        16,
		MaxPendingTasks:   128,
		EventQueueSize:    256,
		GridColumns:       64,
		GridRows:          64,
		CellPixelSize:     32,
	}
}

// LoadJSON decodes a Config from JSON on top of Default(): a field absent
// from the input keeps Default()'s value, while a field given in the
// input, even as zero, takes the given value.
func LoadJSON(r io.Reader) (Config, error) {
	c := Default()
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadYAML decodes a Config from YAML on top of Default(): a field absent
// from the input keeps Default()'s value, while a field given in the
// input, even as zero, takes the given value.
func LoadYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		return Config{}, err
	}
	return c, nil
}
