package course

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourapi/internal/cache"
	"tourapi/internal/limiter"
	"tourapi/internal/logger"
	"tourapi/internal/platform/tourapi"
)

// Service aggregates travel courses. Once the course list is fetched every
// course yields a record; overview, place list and place details are each
// best effort.
type Service struct {
	upstream Upstream
	details  *cache.Store[tourapi.Item]
	courses  *cache.Store[Course]
	limiter  *limiter.Limiter

	areaCode string
	logger   *zap.Logger
}

type Option func(*Service)

func WithAreaCode(code string) Option {
	return func(s *Service) { s.areaCode = code }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService wires the aggregator. details may be shared with other
// aggregators; lim bounds place detail calls.
func NewService(upstream Upstream, details *cache.Store[tourapi.Item], courses *cache.Store[Course], lim *limiter.Limiter, opts ...Option) *Service {
	s := &Service{
		upstream: upstream,
		details:  details,
		courses:  courses,
		limiter:  lim,
		areaCode: "1",
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns one Course per upstream course row, in upstream order.
func (s *Service) List(ctx context.Context, q Query) ([]Course, error) {
	params := url.Values{}
	params.Set("pageNo", "1")
	params.Set("numOfRows", strconv.Itoa(q.NumOfRows))
	params.Set("arrange", "Q")
	params.Set("areaCode", s.areaCode)
	params.Set("contentTypeId", ContentTypeID)

	items, err := s.upstream.List(ctx, tourapi.EndpointAreaBasedList, params)
	if err != nil {
		return nil, fmt.Errorf("course list: %w", err)
	}

	out := make([]Course, len(items))
	var g errgroup.Group
	for i, item := range items {
		g.Go(func() error {
			out[i] = s.course(ctx, item)
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

func (s *Service) course(ctx context.Context, item tourapi.Item) Course {
	id := item.String("contentid")
	if id == "" {
		return newCourse(item)
	}

	// building a course never fails, so the error is always nil unless ctx
	// ended while waiting on a shared build
	c, err := s.courses.GetOrFetch(ctx, id, func(ctx context.Context) (Course, error) {
		return s.build(ctx, item), nil
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("course build abandoned",
			zap.String("contentid", id),
			zap.Error(err),
		)
		return newCourse(item)
	}
	return c
}

func (s *Service) build(ctx context.Context, item tourapi.Item) Course {
	c := newCourse(item)
	c.Overview = s.overview(ctx, c.ContentID)
	c.Places = s.places(ctx, s.placeList(ctx, c.ContentID))
	return c
}

func (s *Service) overview(ctx context.Context, id string) *string {
	detail, err := s.details.GetOrFetch(ctx, id, func(ctx context.Context) (tourapi.Item, error) {
		return s.upstream.Detail(ctx, id)
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("course overview failed",
			zap.String("contentid", id),
			zap.Error(err),
		)
		return nil
	}
	if v, ok := detail["overview"]; !ok || v == nil {
		return nil
	}
	overview := detail.String("overview")
	return &overview
}

func (s *Service) placeList(ctx context.Context, id string) []tourapi.Item {
	places, err := s.upstream.DetailInfo(ctx, id, ContentTypeID)
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("course places failed",
			zap.String("contentid", id),
			zap.Error(err),
		)
		return []tourapi.Item{}
	}
	return places
}

func (s *Service) places(ctx context.Context, raw []tourapi.Item) []tourapi.Item {
	out := make([]tourapi.Item, len(raw))

	var g errgroup.Group
	for i, p := range raw {
		g.Go(func() error {
			out[i] = s.place(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	return out
}

func (s *Service) place(ctx context.Context, p tourapi.Item) tourapi.Item {
	sub := p.String("subcontentid")
	if sub == "" {
		return MergePlace(p, nil)
	}

	detail, err := s.details.GetOrFetch(ctx, sub, func(ctx context.Context) (tourapi.Item, error) {
		return limiter.Do(ctx, s.limiter, func(ctx context.Context) (tourapi.Item, error) {
			return s.upstream.Detail(ctx, sub)
		})
	})
	if err != nil {
		logger.FromContext(ctx, s.logger).Warn("place detail failed",
			zap.String("subcontentid", sub),
			zap.Error(err),
		)
		return MergePlace(p, nil)
	}
	return MergePlace(p, detail)
}
