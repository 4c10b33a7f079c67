package repository

import (
	"context"
	"time"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
)

// HistoryRepository - журнал выполненных поисков.
type HistoryRepository interface {
	Create(ctx context.Context, rec *domain.SearchRecord) error
	// ListRecent - записи от новых к старым.
	ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error)
	// CountSince - сколько поисков записано начиная с since. Через это
	// работает общий для процессов лимит (ratelimit.Shared).
	CountSince(ctx context.Context, since time.Time) (int, error)
}
