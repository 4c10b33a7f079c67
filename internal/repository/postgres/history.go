package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/repository"
)

var _ repository.HistoryRepository = (*HistoryRepo)(nil)

type HistoryRepo struct {
	db *DB
}

func NewHistoryRepo(db *DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

func (r *HistoryRepo) Create(ctx context.Context, rec *domain.SearchRecord) error {
	query := `
        INSERT INTO search_history (query, params, outcome, created_at)
        VALUES ($1, $2, $3, COALESCE($4, NOW()))
        RETURNING id, created_at
    `

	var createdAt any
	if !rec.CreatedAt.IsZero() {
		createdAt = rec.CreatedAt
	}

	err := r.db.Pool.QueryRow(ctx, query,
		rec.Query,
		rec.Params,
		rec.Outcome,
		createdAt,
	).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("create search record: %w", err)
	}

	return nil
}

func (r *HistoryRepo) ListRecent(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}

	query := `
        SELECT id, query, params, outcome, created_at
        FROM search_history
        ORDER BY created_at DESC, id DESC
        LIMIT $1
    `

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	defer rows.Close()

	var records []domain.SearchRecord
	for rows.Next() {
		var rec domain.SearchRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Query,
			&rec.Params,
			&rec.Outcome,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan search record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return records, nil
}

func (r *HistoryRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM search_history
        WHERE created_at >= $1
    `

	var n int
	if err := r.db.Pool.QueryRow(ctx, query, since).Scan(&n); err != nil {
		return 0, fmt.Errorf("count search history: %w", err)
	}
	return n, nil
}
