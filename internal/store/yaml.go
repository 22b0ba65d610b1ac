package store

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nhle/menu-catalog/internal/model"
)

// WriteYAML encodes snap as a YAML document.
func WriteYAML(w io.Writer, snap model.Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return enc.Close()
}

// ReadYAML decodes a snapshot written by WriteYAML. Unknown keys are
// rejected.
func ReadYAML(r io.Reader) (model.Snapshot, error) {
	var snap model.Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Snapshot{}, nil
		}
		return model.Snapshot{}, fmt.Errorf("decoding catalog: %w", err)
	}
	return snap, nil
}

// WriteYAMLFile writes snap to path, creating parent directories.
func WriteYAMLFile(path string, snap model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteYAML(f, snap); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadYAMLFile reads a snapshot from path.
func ReadYAMLFile(path string) (model.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return ReadYAML(f)
}
