package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"tfa/internal/config"
)

// LogCache stores one plain-text log file per job id under the save-path
// directory. A cached file, once written, is authoritative: no freshness
// or integrity checks are made on later runs.
type LogCache struct {
	cfg *config.Config
}

// New creates a LogCache over the configured save path
func New(cfg *config.Config) *LogCache {
	return &LogCache{cfg: cfg}
}

// Path returns the cache file path for a job id.
func (c *LogCache) Path(jobID int) string {
	return filepath.Join(c.cfg.GetSavePath(), fmt.Sprintf("%d.txt", jobID))
}

// Load returns the cached log lines for a job. A missing file is a cache
// miss (ok=false), not an error.
func (c *LogCache) Load(jobID int) (lines []string, ok bool, err error) {
	data, err := os.ReadFile(c.Path(jobID))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read cached log for job %d: %w", jobID, err)
	}
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines, true, nil
}

// Save writes the log lines for a job, one per physical line, creating
// the cache directory if absent.
func (c *LogCache) Save(jobID int, lines []string) error {
	if err := os.MkdirAll(c.cfg.GetSavePath(), 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(c.Path(jobID), []byte(data), 0644); err != nil {
		return fmt.Errorf("write cached log for job %d: %w", jobID, err)
	}
	return nil
}

// List returns the job ids with cached logs, ascending. A missing cache
// directory yields an empty list.
func (c *LogCache) List() ([]int, error) {
	entries, err := os.ReadDir(c.cfg.GetSavePath())
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var ids []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".txt")
		if name == entry.Name() {
			continue
		}
		id, err := strconv.Atoi(name)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}
