package cache

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/tristendillon/relocate/core/logger"
	"github.com/tristendillon/relocate/core/models"
)

type Entry struct {
	Path    string
	Digest  models.Digest
	Content []byte
}

// FileCache remembers the content of a set of files so the changes an
// external tool makes to them can be detected afterwards.
type FileCache struct {
	entries map[string]*Entry
	config  *CacheConfig
	metrics *CacheMetrics
	mutex   sync.RWMutex
}

func NewFileCache(config *CacheConfig) *FileCache {
	if config == nil {
		config = DefaultCacheConfig()
	}
	return &FileCache{
		entries: make(map[string]*Entry),
		config:  config,
		metrics: &CacheMetrics{},
	}
}

// Snapshot replaces the cached state with the current content of files.
// Files that vanish between listing and reading are skipped.
func (fc *FileCache) Snapshot(files []string) error {
	entries := make(map[string]*Entry, len(files))
	for _, path := range files {
		entry, err := fc.read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return err
		}
		entries[path] = entry
	}

	fc.mutex.Lock()
	defer fc.mutex.Unlock()
	fc.entries = entries
	fc.metrics.Snapshots++
	fc.metrics.Files += int64(len(entries))
	logger.Debug("Snapshotted %d files", len(entries))
	return nil
}

// Changes compares files against the last snapshot. A file missing from the
// snapshot is reported as added, a snapshotted file that is gone as removed.
func (fc *FileCache) Changes(files []string) ([]Change, error) {
	fc.mutex.RLock()
	seen := make(map[string]bool, len(files))
	var changes []Change
	var unchanged int64

	for _, path := range files {
		seen[path] = true
		before := fc.entries[path]

		after, err := fc.read(path)
		if errors.Is(err, fs.ErrNotExist) {
			if before != nil {
				changes = append(changes, Change{Path: path, Kind: Removed, Before: before.Content})
			}
			continue
		}
		if err != nil {
			fc.mutex.RUnlock()
			return nil, err
		}

		switch {
		case before == nil:
			changes = append(changes, Change{Path: path, Kind: Added, After: after.Content})
		case before.Digest != after.Digest:
			changes = append(changes, Change{Path: path, Kind: Modified, Before: before.Content, After: after.Content})
		default:
			unchanged++
		}
	}

	for path, entry := range fc.entries {
		if !seen[path] {
			if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
				changes = append(changes, Change{Path: path, Kind: Removed, Before: entry.Content})
			}
		}
	}
	fc.mutex.RUnlock()

	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })

	fc.mutex.Lock()
	fc.metrics.Changed += int64(len(changes))
	fc.metrics.Unchanged += unchanged
	fc.mutex.Unlock()

	return changes, nil
}

func (fc *FileCache) Get(path string) (*Entry, bool) {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	entry, ok := fc.entries[path]
	return entry, ok
}

func (fc *FileCache) GetMetrics() *CacheMetrics {
	fc.mutex.RLock()
	defer fc.mutex.RUnlock()
	metrics := *fc.metrics
	return &metrics
}

func (fc *FileCache) LogStats() {
	m := fc.GetMetrics()
	logger.Debug("Change tracking: Snapshots=%d, Files=%d, Changed=%d, Unchanged=%d",
		m.Snapshots, m.Files, m.Changed, m.Unchanged)
}

func (fc *FileCache) read(path string) (*Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	entry := &Entry{Path: path, Digest: models.DigestBytes(content)}
	if fc.config.KeepContent {
		entry.Content = content
	}
	return entry, nil
}
