// Package manifest loads YAML snapshots of a player's text tracks.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/saltyorg/autocaption/internal/autocaption"
)

// ErrNoTracks indicates a manifest without any tracks.
var ErrNoTracks = errors.New("manifest has no tracks")

// Manifest describes the language and text tracks of one source
type Manifest struct {
	Language string              `yaml:"language"`
	Source   string              `yaml:"source"`
	Options  autocaption.Options `yaml:"options"`
	Tracks   []autocaption.Track `yaml:"tracks"`
}

// Load reads and parses a manifest file
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Source == "" {
		m.Source = path
	}
	return m, nil
}

// Parse decodes a manifest document
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	if len(m.Tracks) == 0 {
		return nil, ErrNoTracks
	}
	for i := range m.Tracks {
		normalizeTrack(&m.Tracks[i], i)
	}
	return &m, nil
}

func normalizeTrack(t *autocaption.Track, index int) {
	t.Kind = autocaption.Kind(strings.ToLower(strings.TrimSpace(string(t.Kind))))
	if t.Kind == "" {
		t.Kind = autocaption.KindSubtitles
	}
	t.Mode = autocaption.Mode(strings.ToLower(strings.TrimSpace(string(t.Mode))))
	if t.Mode == "" {
		t.Mode = autocaption.ModeDisabled
	}
	if t.ID == "" {
		t.ID = fmt.Sprintf("%d", index+1)
	}
}

// TextTracks returns fresh copies of the manifest tracks for a player to own
func (m *Manifest) TextTracks() []*autocaption.Track {
	tracks := make([]*autocaption.Track, len(m.Tracks))
	for i := range m.Tracks {
		t := m.Tracks[i]
		tracks[i] = &t
	}
	return tracks
}
