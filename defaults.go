package betabrite

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults holds site-wide values read from a YAML file, for instance the
// port a sign is permanently wired to. Command line options win over them.
type Defaults struct {
	Port  *string `yaml:"port,omitempty"`
	Slot  *string `yaml:"slot,omitempty"`
	Speed *int    `yaml:"speed,omitempty"`
}

// ReadDefaults parses the defaults file at path. Unknown keys are rejected;
// an empty file yields zero Defaults.
func ReadDefaults(path string) (Defaults, error) {
	var d Defaults

	f, err := os.Open(path)
	if err != nil {
		return d, fmt.Errorf("%w: defaults file: %w", ErrInvalidConfig, err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Defaults{}, fmt.Errorf("%w: defaults file %s: %w", ErrInvalidConfig, path, err)
	}
	return d, nil
}

// Merge fills the options not given on the command line from d.
func (d Defaults) Merge(o Options) Options {
	if o.Device == nil && d.Port != nil {
		port := *d.Port
		o.Device = &port
	}
	if o.Slot == nil && d.Slot != nil {
		slot := *d.Slot
		o.Slot = &slot
	}
	if o.SpeedLevel == nil && d.Speed != nil {
		level := *d.Speed
		o.SpeedLevel = &level
	}
	return o
}
