// Package metadata reads the optional per-character metadata record
// (character.yml) that sits next to a character's asset tree. Every field is
// optional; the loader applies defaults for anything absent. Closed
// enumerations (voice, facing) are validated loudly rather than silently
// defaulted, since a typo there is an authoring mistake.
package metadata

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the metadata record's conventional file name inside a
// character directory.
const FileName = "character.yml"

// Record is the parsed character.yml.
type Record struct {
	DisplayName   string              `yaml:"display_name"`
	NameColor     string              `yaml:"name_color"`
	Scale         float64             `yaml:"scale"`
	Voice         string              `yaml:"voice"`
	DefaultOutfit string              `yaml:"default_outfit"`
	EyeLine       float64             `yaml:"eye_line"`
	Mutations     map[string][]string `yaml:"mutations"`
	Poses         map[string]Pose     `yaml:"poses"`
}

// Pose carries per-pose overrides for probed image geometry, the facing
// direction, and accessory exclusion lists.
type Pose struct {
	ImageWidth   int    `yaml:"image_width"`
	ImageHeight  int    `yaml:"image_height"`
	CenterWidth  int    `yaml:"center_width"`
	CenterHeight int    `yaml:"center_height"`
	Facing       string `yaml:"facing"`

	// Excludes maps an accessory or group name to the outfit keys it must
	// not be registered for.
	Excludes map[string][]string `yaml:"excludes"`
}

// Excluded reports whether the named accessory is excluded for the outfit.
func (p Pose) Excluded(accessory, outfit string) bool {
	for _, o := range p.Excludes[accessory] {
		if o == outfit {
			return true
		}
	}
	return false
}

// Parse decodes a metadata record. Unknown fields are rejected so that
// misspelled keys surface instead of silently doing nothing.
func Parse(data []byte) (*Record, error) {
	var r Record
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&r); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode character metadata: %w", err)
	}
	return &r, nil
}

// Load reads the record at path. A missing file is a normal absence and
// yields (nil, nil); any other failure is an error.
func Load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read character metadata %s: %w", path, err)
	}
	return Parse(data)
}
