// Package cache records uploads that could not complete so they can be
// retried later. One JSON record per entry, named by creation time in unix
// milliseconds, written atomically (tmp + rename).
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Open creates or reopens a cache rooted at dir
func Open(dir string, config Config, logger Logger) (*Cache, error) {
	if logger == nil {
		logger = &defaultLogger{}
	}
	if config.MaxRecords == 0 {
		config.MaxRecords = DefaultConfig().MaxRecords
	}
	if config.MaxAge == 0 {
		config.MaxAge = DefaultConfig().MaxAge
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	c := &Cache{
		dir:    dir,
		config: config,
		logger: logger,
	}

	files, err := c.listFilesSorted()
	if err != nil {
		return nil, fmt.Errorf("scan cache directory: %w", err)
	}
	c.count = len(files)

	c.logger.Debug("Offline cache opened", "dir", dir, "pending", c.count)
	return c, nil
}

// CacheUpload stores a failed upload for later retry and returns its local ID
func (c *Cache) CacheUpload(rec Record) (string, error) {
	if len(rec.Files) == 0 {
		return "", ErrInvalidEntry
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict oldest records when at capacity
	if c.count >= c.config.MaxRecords {
		if err := c.evictOldestLocked(c.count - c.config.MaxRecords + 1); err != nil {
			return "", err
		}
	}

	// Name record by creation time; bump a millisecond on collision
	ts := rec.CreatedAt.UnixMilli()
	var path string
	for {
		path = filepath.Join(c.dir, fmt.Sprintf("%d.json", ts))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		ts++
	}
	rec.LocalID = strconv.FormatInt(ts, 10)

	if err := c.writeRecord(path, &rec); err != nil {
		return "", err
	}

	c.count++
	c.cached++

	c.logger.Info("Upload cached for retry",
		"local_id", rec.LocalID,
		"endpoint", rec.Endpoint,
		"pending", c.count)

	return rec.LocalID, nil
}

// Pending returns all pending records, oldest first
func (c *Cache) Pending() ([]Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	files, err := c.listFilesSorted()
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(files))
	for _, name := range files {
		rec, err := c.readRecord(filepath.Join(c.dir, name))
		if err != nil {
			c.logger.Warn("Skipping unreadable cache record", "file", name, "error", err)
			continue
		}
		records = append(records, *rec)
	}
	return records, nil
}

// Due returns pending records whose backoff window has passed, oldest first
func (c *Cache) Due(now time.Time) ([]Record, error) {
	all, err := c.Pending()
	if err != nil {
		return nil, err
	}

	due := all[:0]
	for _, rec := range all {
		if rec.NextAttempt.IsZero() || !now.Before(rec.NextAttempt) {
			due = append(due, rec)
		}
	}
	return due, nil
}

// MarkUploaded removes a record after a successful retry
func (c *Cache) MarkUploaded(localID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.removeLocked(localID); err != nil {
		return err
	}
	c.uploaded++
	return nil
}

func (c *Cache) removeLocked(localID string) error {
	path, err := c.recordPathLocked(localID)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			c.logger.Warn("Cache record already removed", "local_id", localID)
		} else {
			return fmt.Errorf("remove cache record: %w", err)
		}
	}

	c.count--
	if c.count < 0 {
		c.count = 0
	}
	return nil
}

// MarkFailed records another failed attempt and the next eligible retry time
func (c *Cache) MarkFailed(localID, errMsg string, nextAttempt time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err := c.recordPathLocked(localID)
	if err != nil {
		return err
	}
	rec, err := c.readRecord(path)
	if err != nil {
		return err
	}

	rec.Attempts++
	rec.LastError = errMsg
	rec.NextAttempt = nextAttempt

	return c.writeRecord(path, rec)
}

// Drop removes a record whose failure turned out to be terminal.
// Counted separately from uploads so Stats.Uploaded stays honest.
func (c *Cache) Drop(localID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.removeLocked(localID); err != nil {
		return err
	}
	c.dropped++
	return nil
}

// ExpireOld removes records older than the configured max age.
// Returns the number removed.
func (c *Cache) ExpireOld() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	maxAge := time.Duration(c.config.MaxAge) * time.Second
	cutoff := time.Now().UTC().Add(-maxAge)

	files, err := c.listFilesSorted()
	if err != nil {
		return 0
	}

	expired := 0
	for _, name := range files {
		ts := parseTimestampFromFilename(name)
		if !ts.Before(cutoff) {
			// Files are sorted by timestamp, no more expired records
			break
		}
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			c.count--
			c.expired++
			expired++
		}
	}

	if expired > 0 {
		c.logger.Info("Expired old pending uploads",
			"expired", expired,
			"max_age_seconds", c.config.MaxAge)
	}
	return expired
}

// Count returns the number of pending records
func (c *Cache) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.count
}

// GetStats returns cache statistics
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := Stats{
		Count:    c.count,
		Cached:   c.cached,
		Uploaded: c.uploaded,
		Dropped:  c.dropped,
		Expired:  c.expired,
		Evicted:  c.evicted,
	}

	files, err := c.listFilesSorted()
	if err == nil && len(files) > 0 {
		oldest := parseTimestampFromFilename(files[0])
		if !oldest.IsZero() {
			stats.OldestAge = time.Since(oldest).Round(time.Second).String()
		}
	}
	return stats
}

// Internal methods

func (c *Cache) recordPathLocked(localID string) (string, error) {
	if _, err := strconv.ParseInt(localID, 10, 64); err != nil {
		return "", ErrNotFound
	}
	path := filepath.Join(c.dir, localID+".json")
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("stat cache record: %w", err)
	}
	return path, nil
}

func (c *Cache) evictOldestLocked(n int) error {
	files, err := c.listFilesSorted()
	if err != nil {
		return err
	}
	if n > len(files) {
		n = len(files)
	}

	for _, name := range files[:n] {
		if err := os.Remove(filepath.Join(c.dir, name)); err == nil {
			c.count--
			c.evicted++
		}
	}

	c.logger.Warn("Cache at capacity, evicted oldest pending uploads",
		"evicted", n,
		"max_records", c.config.MaxRecords)
	return nil
}

func (c *Cache) listFilesSorted() ([]string, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return nil, fmt.Errorf("read cache directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Only numeric-named .json records
		if !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".tmp") {
			continue
		}
		baseName := strings.TrimSuffix(name, ".json")
		if _, err := strconv.ParseInt(baseName, 10, 64); err != nil {
			continue
		}
		files = append(files, name)
	}

	// Filenames are timestamps, lexical order is chronological for equal widths;
	// sort numerically to be safe
	sort.Slice(files, func(i, j int) bool {
		a, _ := strconv.ParseInt(strings.TrimSuffix(files[i], ".json"), 10, 64)
		b, _ := strconv.ParseInt(strings.TrimSuffix(files[j], ".json"), 10, 64)
		return a < b
	})

	return files, nil
}

func (c *Cache) readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache record: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse cache record: %w", err)
	}
	return &rec, nil
}

func (c *Cache) writeRecord(path string, rec *Record) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache record: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("write cache record: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename cache record: %w", err)
	}
	return nil
}

// parseTimestampFromFilename extracts UTC time from a name like "1735142730000.json"
func parseTimestampFromFilename(filename string) time.Time {
	baseName := strings.TrimSuffix(filename, ".json")
	ms, err := strconv.ParseInt(baseName, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
