package states

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Snapshot captures where a switch currently is, for persisting across
// restarts. It records position only; conditions and listeners are wiring,
// re-established by the program at startup.
type Snapshot[S comparable] struct {
	ID        string    `json:"id" yaml:"id"`
	Current   S         `json:"current" yaml:"current"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Snapshot captures the switch's current state under the given ID.
func (sw *Switch[S]) Snapshot(id string) Snapshot[S] {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return Snapshot[S]{ID: id, Current: sw.current, Timestamp: time.Now()}
}

// Restore moves the switch to the snapshot's state without firing any
// events: a restore is a repositioning, not a transition, so entry
// conditions and allowed edges are not consulted either. The snapshot's
// state must be one the switch declares.
func (sw *Switch[S]) Restore(snap Snapshot[S]) error {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if _, ok := sw.states[snap.Current]; !ok {
		return fmt.Errorf("snapshot state %v: %w", snap.Current, ErrUnknownState)
	}
	sw.current = snap.Current
	return nil
}

// SaveSnapshot writes snap to path, creating parent directories as needed.
// Files ending in .json are written as indented JSON, everything else as
// YAML.
func SaveSnapshot[S comparable](path string, snap Snapshot[S]) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	var data []byte
	var err error
	if filepath.Ext(path) == ".json" {
		data, err = json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal: %w", err)
		}
	} else {
		data, err = yaml.Marshal(snap)
		if err != nil {
			return fmt.Errorf("yaml marshal: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot[S comparable](path string) (Snapshot[S], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot[S]{}, fmt.Errorf("snapshot %q: %w", path, os.ErrNotExist)
		}
		return Snapshot[S]{}, fmt.Errorf("read %s: %w", path, err)
	}

	var snap Snapshot[S]
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &snap); err != nil {
			return Snapshot[S]{}, fmt.Errorf("json unmarshal: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return Snapshot[S]{}, fmt.Errorf("yaml unmarshal: %w", err)
		}
	}
	return snap, nil
}
