package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/zenserp-go/internal/domain"
	"github.com/kitbuilder587/zenserp-go/internal/metrics"
	"github.com/kitbuilder587/zenserp-go/internal/ratelimit"
	"github.com/kitbuilder587/zenserp-go/internal/repository"
	"github.com/kitbuilder587/zenserp-go/internal/search"
)

type SearchService interface {
	Status(ctx context.Context) (*domain.Status, error)
	Search(ctx context.Context, in domain.SearchInput) (domain.SERP, error)
	History(ctx context.Context, limit int) ([]domain.SearchRecord, error)
}

// SearchServiceDeps - зависимости SearchService. Все, кроме Client и APIKey, опционально.
// Limiter живет в памяти процесса, SharedLimiter считает по журналу (обычно по History)
// и ограничивает все процессы, пишущие в одну базу.
type SearchServiceDeps struct {
	Client        search.Client
	APIKey        string
	Limiter       *ratelimit.Limiter
	SharedLimiter *ratelimit.Shared
	History       repository.HistoryRepository
	Metrics       *metrics.Metrics
	Logger        *zap.Logger
}

type searchService struct {
	client        search.Client
	apiKey        string
	limiter       *ratelimit.Limiter
	sharedLimiter *ratelimit.Shared
	history       repository.HistoryRepository
	metrics       *metrics.Metrics
	logger        *zap.Logger
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &searchService{
		client:        deps.Client,
		apiKey:        deps.APIKey,
		limiter:       deps.Limiter,
		sharedLimiter: deps.SharedLimiter,
		history:       deps.History,
		metrics:       deps.Metrics,
		logger:        deps.Logger,
	}
}

func (s *searchService) Status(ctx context.Context) (*domain.Status, error) {
	var status *domain.Status
	err := observe(s.metrics, "status", func() error {
		var err error
		status, err = s.client.Status(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.SetRemainingRequests(status.RemainingRequests)
	}
	return status, nil
}

func (s *searchService) Search(ctx context.Context, in domain.SearchInput) (domain.SERP, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkRateLimit(ctx); err != nil {
		return nil, err
	}

	var serp domain.SERP
	err := observe(s.metrics, "search", func() error {
		var err error
		serp, err = s.client.Search(ctx, in)
		return err
	})

	s.record(ctx, in, err)

	if err != nil {
		return nil, err
	}
	return serp, nil
}

func (s *searchService) History(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if s.history == nil {
		return nil, domain.ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = domain.DefaultHistoryLimit
	}
	return s.history.ListRecent(ctx, limit)
}

func (s *searchService) checkRateLimit(ctx context.Context) error {
	if s.limiter != nil && !s.limiter.Allow(s.apiKey) {
		return s.rateLimited(s.limiter.ResetTime(s.apiKey))
	}

	if s.sharedLimiter != nil {
		ok, err := s.sharedLimiter.Allow(ctx)
		if err != nil {
			// журнал недоступен - не блокируем поиск
			s.logger.Warn("shared rate limit check failed", zap.Error(err))
			return nil
		}
		if !ok {
			return s.rateLimited(s.sharedLimiter.ResetTime())
		}
	}
	return nil
}

func (s *searchService) rateLimited(retryAfter time.Time) error {
	if s.metrics != nil {
		s.metrics.RecordRateLimitHit()
	}
	s.logger.Warn("search rejected by local rate limit",
		zap.Time("retry_after", retryAfter),
	)
	return domain.ErrRateLimited
}

// record пишет поиск в историю; ошибка записи не валит сам поиск
func (s *searchService) record(ctx context.Context, in domain.SearchInput, searchErr error) {
	if s.history == nil {
		return
	}

	// исходный ctx мог уже истечь, а запись все равно нужна
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	rec := domain.NewSearchRecord(in, searchErr)
	if err := s.history.Create(ctx, rec); err != nil {
		s.logger.Warn("failed to record search history",
			zap.Error(err),
			zap.String("query", in.Query),
		)
	}
}
