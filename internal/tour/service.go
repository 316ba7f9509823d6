package tour

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourapi/internal/cache"
	"tourapi/internal/limiter"
	"tourapi/internal/logger"
	"tourapi/internal/platform/tourapi"
)

var errEmptyPage = errors.New("empty page")

// Service fetches a category page and enriches every item with its detail
// record. Detail failures degrade single items; only a failed list call
// fails the request.
type Service struct {
	upstream Upstream
	details  *cache.Store[tourapi.Item]
	results  *cache.Store[[]tourapi.Item]
	limiter  *limiter.Limiter

	areaCode string
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Service)

func WithAreaCode(code string) Option {
	return func(s *Service) { s.areaCode = code }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires the aggregator. results must not remember failures
// (NegativeTTL 0) so that an empty or failed page is fetched again.
func NewService(upstream Upstream, details *cache.Store[tourapi.Item], results *cache.Store[[]tourapi.Item], lim *limiter.Limiter, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		details:  details,
		results:  results,
		limiter:  lim,
		areaCode: "1",
		now:      time.Now,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the enriched items of one page in upstream order.
func (s *Service) List(ctx context.Context, q Query) ([]tourapi.Item, error) {
	category, ok := LookupCategory(q.Type)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidCategory, q.Type)
	}

	items, err := s.results.GetOrFetch(ctx, q.signature(), func(ctx context.Context) ([]tourapi.Item, error) {
		params := category.Params(q, s.areaCode, s.now().Format("20060102"))
		items, err := s.upstream.List(ctx, category.Endpoint, params)
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, errEmptyPage
		}
		return s.enrich(ctx, items), nil
	})
	switch {
	case errors.Is(err, errEmptyPage):
		return []tourapi.Item{}, nil
	case err != nil:
		return nil, fmt.Errorf("list %s: %w", q.Type, err)
	}
	return items, nil
}

func (s *Service) enrich(ctx context.Context, items []tourapi.Item) []tourapi.Item {
	out := make([]tourapi.Item, len(items))

	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			out[i] = s.enrichOne(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *Service) enrichOne(ctx context.Context, item tourapi.Item) tourapi.Item {
	id := item.String("contentid")
	if id == "" {
		return Merge(item, nil)
	}

	detail, err := s.details.GetOrFetch(ctx, id, func(ctx context.Context) (tourapi.Item, error) {
		return limiter.Do(ctx, s.limiter, func(ctx context.Context) (tourapi.Item, error) {
			return s.upstream.Detail(ctx, id)
		})
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("detail fetch failed",
			zap.String("contentid", id),
			zap.Error(err),
		)
		return Merge(item, nil)
	}
	return Merge(item, detail)
}
