package states

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNotFound reports a snapshot ID or version the store has never seen.
	ErrNotFound = errors.New("snapshot not found")
	// ErrExists reports a version that has already been saved.
	ErrExists = errors.New("snapshot version already exists")
)

// Store keeps versioned switch snapshots on disk: one directory per
// snapshot ID, one YAML file per version. Version strings derive from the
// snapshot timestamp and sort lexically, so the newest version is the
// lexically greatest.
type Store[S comparable] struct {
	dir string
}

// NewStore creates a Store rooted at dir, ensuring the directory exists.
func NewStore[S comparable](dir string) (*Store[S], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return &Store[S]{dir: dir}, nil
}

// Filename-safe, lexically sortable UTC stamp.
const versionFormat = "20060102T150405.000000000"

// Save writes snap as a new version under its ID and returns the version
// string. Saving two snapshots with identical timestamps fails with
// ErrExists.
func (st *Store[S]) Save(snap Snapshot[S]) (string, error) {
	if snap.ID == "" {
		return "", errors.New("snapshot ID is required")
	}
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	version := ts.UTC().Format(versionFormat)

	dir := filepath.Join(st.dir, snap.ID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	fn := filepath.Join(dir, version+".yaml")
	if _, err := os.Stat(fn); err == nil {
		return "", fmt.Errorf("snapshot %q version %s: %w", snap.ID, version, ErrExists)
	}
	if err := SaveSnapshot(fn, snap); err != nil {
		return "", err
	}
	return version, nil
}

// Versions lists the saved versions for id, newest first.
func (st *Store[S]) Versions(id string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(st.dir, id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot %q: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("read dir %s: %w", filepath.Join(st.dir, id), err)
	}

	var versions []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".yaml" {
			continue
		}
		versions = append(versions, strings.TrimSuffix(name, ".yaml"))
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("snapshot %q: %w", id, ErrNotFound)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(versions)))
	return versions, nil
}

// Version loads one specific version of id.
func (st *Store[S]) Version(id, version string) (Snapshot[S], error) {
	snap, err := LoadSnapshot[S](filepath.Join(st.dir, id, version+".yaml"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot[S]{}, fmt.Errorf("snapshot %q version %s: %w", id, version, ErrNotFound)
		}
		return Snapshot[S]{}, err
	}
	return snap, nil
}

// Latest loads the most recent version of id.
func (st *Store[S]) Latest(id string) (Snapshot[S], error) {
	versions, err := st.Versions(id)
	if err != nil {
		return Snapshot[S]{}, err
	}
	return st.Version(id, versions[0])
}

// IDs lists every snapshot ID in the store, sorted.
func (st *Store[S]) IDs() ([]string, error) {
	entries, err := os.ReadDir(st.dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", st.dir, err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}
