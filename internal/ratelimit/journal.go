package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

var _ Journal = (*FileJournal)(nil)

// FileJournal - журнал событий в JSON-файле, чтобы лимит работал между
// запусками CLI без базы. Записи старше retention выкидываются при Append.
// Файловой блокировки нет: два одновременных процесса могут потерять запись друг друга.
type FileJournal struct {
	mu        sync.Mutex
	path      string
	retention time.Duration
}

func NewFileJournal(path string, retention time.Duration) (*FileJournal, error) {
	if retention <= 0 {
		retention = time.Minute
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	return &FileJournal{path: path, retention: retention}, nil
}

func (j *FileJournal) CountSince(ctx context.Context, since time.Time) (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	events, err := j.load()
	if err != nil {
		return 0, err
	}

	n := 0
	for _, e := range events {
		if !e.Before(since) {
			n++
		}
	}
	return n, nil
}

func (j *FileJournal) Append(ctx context.Context, at time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	events, err := j.load()
	if err != nil {
		return err
	}

	cutoff := at.Add(-j.retention)
	kept := events[:0]
	for _, e := range events {
		if e.After(cutoff) {
			kept = append(kept, e)
		}
	}
	kept = append(kept, at)

	return j.save(kept)
}

// битый файл считаем пустым журналом, иначе лимит заблокирует навсегда
func (j *FileJournal) load() ([]time.Time, error) {
	data, err := os.ReadFile(j.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	var events []time.Time
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, nil
	}
	return events, nil
}

func (j *FileJournal) save(events []time.Time) error {
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("marshal journal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.path), filepath.Base(j.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp journal: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write journal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close journal: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("replace journal: %w", err)
	}
	return nil
}
