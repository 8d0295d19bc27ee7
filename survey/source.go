// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package survey

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/danielhkuo/quickly-tally/models"
)

// Snapshot is one consistent view of the survey and its responses.
// Callers must treat it as read-only.
type Snapshot struct {
	Survey    models.Survey
	Responses []models.ResponseRecord
	LoadedAt  time.Time
}

// Source provides the current snapshot.
type Source interface {
	Load(ctx context.Context) (Snapshot, error)
}

// Static serves a fixed snapshot.
type Static Snapshot

func (s Static) Load(context.Context) (Snapshot, error) {
	return Snapshot(s), nil
}

// FileSource reads the definition and results files, reloading them when
// either file's modification time or size changes. Concurrent loads of the
// same file versions share one read.
type FileSource struct {
	surveyPath  string
	resultsPath string

	sf singleflight.Group

	mu      sync.RWMutex
	version string
	current Snapshot
}

func NewFileSource(surveyPath, resultsPath string) *FileSource {
	return &FileSource{surveyPath: surveyPath, resultsPath: resultsPath}
}

func (fs *FileSource) Load(ctx context.Context) (Snapshot, error) {
	version, err := fs.fileVersion()
	if err != nil {
		return Snapshot{}, err
	}

	fs.mu.RLock()
	if fs.version == version {
		snap := fs.current
		fs.mu.RUnlock()
		return snap, nil
	}
	fs.mu.RUnlock()

	ch := fs.sf.DoChan(version, func() (any, error) {
		return fs.reload(version)
	})
	select {
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Snapshot{}, res.Err
		}
		return res.Val.(Snapshot), nil
	}
}

func (fs *FileSource) reload(version string) (Snapshot, error) {
	s, err := LoadDefinition(fs.surveyPath)
	if err != nil {
		return Snapshot{}, err
	}
	records, err := LoadResults(fs.resultsPath)
	if err != nil {
		return Snapshot{}, err
	}

	snap := Snapshot{Survey: s, Responses: records, LoadedAt: time.Now()}
	fs.mu.Lock()
	fs.version = version
	fs.current = snap
	fs.mu.Unlock()
	return snap, nil
}

func (fs *FileSource) fileVersion() (string, error) {
	var version string
	for _, path := range []string{fs.surveyPath, fs.resultsPath} {
		info, err := os.Stat(path)
		if err != nil {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
		version += fmt.Sprintf("%s:%d:%d;", path, info.ModTime().UnixNano(), info.Size())
	}
	return version, nil
}
