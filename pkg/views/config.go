package views

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/voltlab/pcbmod/pkg/batch"
	"github.com/voltlab/pcbmod/pkg/pcberrors"
)

var (
	// ErrNoViews indicates a configuration without any views.
	ErrNoViews = errors.New("no views defined")

	// ErrDuplicateView indicates two views share a name.
	ErrDuplicateView = errors.New("duplicate view name")

	// ErrInvalidViewName indicates a view name unusable as a file name.
	ErrInvalidViewName = errors.New("invalid view name")
)

// OffsetSpec shifts the 3D model offset of one footprint.
type OffsetSpec struct {
	Reference string  `yaml:"reference"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	Z         float64 `yaml:"z"`
}

// View is one render view: the footprint edits applied to the board before
// it is rendered.
type View struct {
	Name             string       `yaml:"name"`
	HideFootprints   []string     `yaml:"hide_footprints"`
	ShowFootprints   []string     `yaml:"show_footprints"`
	OffsetFootprints []OffsetSpec `yaml:"offset_footprints"`
}

// Operations returns the view's edits as an ordered batch: hides, then
// shows, then offsets, each in declaration order.
func (v View) Operations() []batch.Operation {
	ops := make([]batch.Operation, 0,
		len(v.HideFootprints)+len(v.ShowFootprints)+len(v.OffsetFootprints))

	for _, ref := range v.HideFootprints {
		ops = append(ops, batch.Hide(ref))
	}

	for _, ref := range v.ShowFootprints {
		ops = append(ops, batch.Show(ref))
	}

	for _, o := range v.OffsetFootprints {
		ops = append(ops, batch.Offset(o.Reference, o.X, o.Y, o.Z))
	}

	return ops
}

// Config is a set of render views for one board.
type Config struct {
	Views []View `yaml:"views"`
}

// LoadConfig reads and unmarshals a view configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", pcberrors.ErrReadFile, path, err)
	}

	return UnmarshalConfig(data)
}

// UnmarshalConfig decodes a view configuration. Unknown fields are
// rejected.
func UnmarshalConfig(data []byte) (*Config, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	cfg := &Config{}

	err := dec.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: view config: %w", pcberrors.ErrInvalidFormat, err)
	}

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every view has a unique, file-name-safe name.
func (c *Config) Validate() error {
	if len(c.Views) == 0 {
		return ErrNoViews
	}

	seen := make(map[string]bool, len(c.Views))

	for _, v := range c.Views {
		if v.Name == "" || strings.ContainsAny(v.Name, `/\`) {
			return fmt.Errorf("%w: %q", ErrInvalidViewName, v.Name)
		}

		if seen[v.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateView, v.Name)
		}

		seen[v.Name] = true
	}

	return nil
}
