package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
)

type MockHistoryRepository struct {
	mu      sync.RWMutex
	records []domain.SearchRecord
	nextID  int64

	// CreateErr возвращается из Create, если задан.
	CreateErr error
	// CountErr возвращается из CountSince, если задан.
	CountErr error
}

func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{nextID: 1}
}

func (m *MockHistoryRepository) Create(ctx context.Context, rec *domain.SearchRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateErr != nil {
		return m.CreateErr
	}

	rec.ID = m.nextID
	m.nextID++
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *MockHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]domain.SearchRecord, len(m.records))
	copy(result, m.records)

	// новые сверху; при равном времени - по ID
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockHistoryRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.CountErr != nil {
		return 0, m.CountErr
	}

	n := 0
	for _, rec := range m.records {
		if !rec.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (m *MockHistoryRepository) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
