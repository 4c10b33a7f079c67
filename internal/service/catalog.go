package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kitbuilder587/zenserp-go/internal/cache/memory"
	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/metrics"
	"github.com/kitbuilder587/zenserp-go/internal/search"
)

const (
	listingHL            = "hl"
	listingGL            = "gl"
	listingLocations     = "locations"
	listingSearchEngines = "search_engines"
)

// CatalogService отдает справочники Zenserp (hl, gl, locations, search_engines)
// через TTL-кеш. Ошибки не кешируются.
type CatalogService interface {
	HL(ctx context.Context) ([]domain.HL, error)
	GL(ctx context.Context) ([]domain.GL, error)
	Locations(ctx context.Context) ([]domain.Location, error)
	SearchEngines(ctx context.Context) ([]domain.SearchEngine, error)
	All(ctx context.Context) (*domain.Catalog, error)
	Close()
}

// ListingStore - второй уровень кеша справочников, который переживает процесс (cache/file).
type ListingStore interface {
	Get(key string, out any) (bool, error)
	Set(key string, value any, ttl time.Duration) error
}

// CatalogServiceDeps - зависимости CatalogService. Store опционален.
type CatalogServiceDeps struct {
	Client  search.Client
	TTL     time.Duration
	Store   ListingStore
	Metrics *metrics.Metrics
	Logger  *zap.Logger
}

type catalogService struct {
	client  search.Client
	ttl     time.Duration
	store   ListingStore
	metrics *metrics.Metrics
	logger  *zap.Logger

	hl            *memory.Cache[[]domain.HL]
	gl            *memory.Cache[[]domain.GL]
	locations     *memory.Cache[[]domain.Location]
	searchEngines *memory.Cache[[]domain.SearchEngine]
}

func NewCatalogService(deps CatalogServiceDeps) CatalogService {
	if deps.TTL == 0 {
		deps.TTL = time.Hour
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &catalogService{
		client:        deps.Client,
		ttl:           deps.TTL,
		store:         deps.Store,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
		hl:            memory.New[[]domain.HL](),
		gl:            memory.New[[]domain.GL](),
		locations:     memory.New[[]domain.Location](),
		searchEngines: memory.New[[]domain.SearchEngine](),
	}
}

func (s *catalogService) HL(ctx context.Context) ([]domain.HL, error) {
	return cachedListing(ctx, s, s.hl, listingHL, s.client.HL)
}

func (s *catalogService) GL(ctx context.Context) ([]domain.GL, error) {
	return cachedListing(ctx, s, s.gl, listingGL, s.client.GL)
}

func (s *catalogService) Locations(ctx context.Context) ([]domain.Location, error) {
	return cachedListing(ctx, s, s.locations, listingLocations, s.client.Locations)
}

func (s *catalogService) SearchEngines(ctx context.Context) ([]domain.SearchEngine, error) {
	return cachedListing(ctx, s, s.searchEngines, listingSearchEngines, s.client.SearchEngines)
}

// All грузит все четыре справочника параллельно; первая ошибка отменяет остальные.
func (s *catalogService) All(ctx context.Context) (*domain.Catalog, error) {
	var cat domain.Catalog
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		cat.HL, err = s.HL(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cat.GL, err = s.GL(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cat.Locations, err = s.Locations(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		cat.SearchEngines, err = s.SearchEngines(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &cat, nil
}

func (s *catalogService) Close() {
	s.hl.Stop()
	s.gl.Stop()
	s.locations.Stop()
	s.searchEngines.Stop()
}

func cachedListing[T any](
	ctx context.Context,
	s *catalogService,
	cache *memory.Cache[[]T],
	listing string,
	fetch func(context.Context) ([]T, error),
) ([]T, error) {
	if cached, ok := cache.Get(listing); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit(listing)
		}
		return cached, nil
	}

	if s.store != nil {
		var stored []T
		ok, err := s.store.Get(listing, &stored)
		if err != nil {
			s.logger.Warn("listing store read failed", zap.String("listing", listing), zap.Error(err))
		}
		if ok {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(listing)
			}
			cache.Set(listing, stored, s.ttl)
			return stored, nil
		}
	}

	if s.metrics != nil {
		s.metrics.RecordCacheMiss(listing)
	}

	var items []T
	err := observe(s.metrics, listing, func() error {
		var err error
		items, err = fetch(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.Set(listing, items, s.ttl)
	if s.store != nil {
		if err := s.store.Set(listing, items, s.ttl); err != nil {
			s.logger.Warn("listing store write failed", zap.String("listing", listing), zap.Error(err))
		}
	}
	s.logger.Debug("listing cached",
		zap.String("listing", listing),
		zap.Int("count", len(items)),
	)
	return items, nil
}
