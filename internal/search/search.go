package search

import (
	"context"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
)

// Client - операции Zenserp API. Ошибки берутся из таксономии domain.
type Client interface {
	Status(ctx context.Context) (*domain.Status, error)
	Search(ctx context.Context, in domain.SearchInput) (domain.SERP, error)
	HL(ctx context.Context) ([]domain.HL, error)
	GL(ctx context.Context) ([]domain.GL, error)
	Locations(ctx context.Context) ([]domain.Location, error)
	SearchEngines(ctx context.Context) ([]domain.SearchEngine, error)
}
