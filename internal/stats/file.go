// internal/stats/file.go
//
// Local statistics for the terminal client, kept in one JSON file that is
// rewritten atomically (temp file + rename) on every record.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// maxFileHistory caps the rounds kept in the local file.
const maxFileHistory = 100

// fileData is the on-disk layout of the local stats file.
type fileData struct {
	Aggregates   Aggregates   `json:"aggregates"`
	Distribution Distribution `json:"distribution"`
	History      []Outcome    `json:"history"` // newest first
}

// FileStore keeps single-device statistics in one JSON file. It is the
// terminal client's offline store; user IDs are ignored.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by path. The file is created on the
// first Record.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(".wordle", "stats.json")
	}
	return &FileStore{path: path}
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Record(_ context.Context, o Outcome) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if o.PlayedAt.IsZero() {
		o.PlayedAt = time.Now()
	}
	o.UserID = ""

	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load()
	if err != nil {
		return err
	}
	d.Aggregates = d.Aggregates.Apply(o.Won)
	if o.Won {
		d.Distribution.Add(o.GuessesUsed)
	}
	d.History = append([]Outcome{o}, d.History...)
	if len(d.History) > maxFileHistory {
		d.History = d.History[:maxFileHistory]
	}
	return s.save(d)
}

func (s *FileStore) Aggregates(context.Context, string) (Aggregates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	return d.Aggregates, err
}

func (s *FileStore) History(_ context.Context, _ string, limit int) ([]Outcome, error) {
	limit = historyLimit(limit)
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	if err != nil {
		return nil, err
	}
	if len(d.History) > limit {
		d.History = d.History[:limit]
	}
	return d.History, nil
}

func (s *FileStore) Distribution(context.Context, string) (Distribution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.load()
	return d.Distribution, err
}

// load returns an empty fileData if the file does not exist yet.
func (s *FileStore) load() (fileData, error) {
	var d fileData
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("stats: read %s: %w", s.path, err)
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return fileData{}, fmt.Errorf("stats: decode %s: %w", s.path, err)
	}
	return d, nil
}

// save writes to a temp file in the same directory and renames it over the
// destination.
func (s *FileStore) save(d fileData) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("stats: mkdir %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "tmp-stats-*.json")
	if err != nil {
		return fmt.Errorf("stats: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("stats: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("stats: fsync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("stats: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("stats: rename temp file: %w", err)
	}
	return nil
}
