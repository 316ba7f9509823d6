// Package app wires the upstream client, caches, limiters and aggregators
// from configuration. Both the HTTP server and the CLI build on it.
package app

import (
	"go.uber.org/zap"

	"tourapi/internal/cache"
	"tourapi/internal/config"
	"tourapi/internal/course"
	"tourapi/internal/limiter"
	"tourapi/internal/metrics"
	"tourapi/internal/platform/tourapi"
	"tourapi/internal/tour"
)

// App holds the long-lived components of one process. The caches live as
// long as the App and are never persisted.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	Client *tourapi.Client

	Details       *cache.Store[tourapi.Item]
	TourResults   *cache.Store[[]tourapi.Item]
	CourseResults *cache.Store[course.Course]

	TourLimiter  *limiter.Limiter
	PlaceLimiter *limiter.Limiter

	Tours   *tour.Service
	Courses *course.Service
}

type Option func(*options)

type options struct {
	clientOpts []tourapi.Option
}

// WithClientOptions passes extra options to the upstream client, such as a
// custom *http.Client in tests.
func WithClientOptions(opts ...tourapi.Option) Option {
	return func(o *options) { o.clientOpts = append(o.clientOpts, opts...) }
}

// New builds an App. m may be nil to disable metrics.
func New(cfg *config.Config, log *zap.Logger, m *metrics.Metrics, opts ...Option) *App {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	clientOpts := append([]tourapi.Option{
		tourapi.WithLogger(log),
		tourapi.WithMetrics(m),
	}, o.clientOpts...)

	client := tourapi.NewClient(tourapi.Config{
		BaseURL:    cfg.TourAPI.BaseURL,
		ServiceKey: cfg.TourAPI.ServiceKey,
		MobileOS:   cfg.TourAPI.MobileOS,
		MobileApp:  cfg.TourAPI.MobileApp,
		Timeout:    cfg.TourAPI.ListTimeout,
	}, clientOpts...)

	a := &App{
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		Client:  client,
		Details: cache.New[tourapi.Item]("detail", cache.Options{
			Capacity:    cfg.Cache.DetailCapacity,
			TTL:         cfg.Cache.DetailTTL,
			NegativeTTL: cfg.Cache.NegativeTTL,
			Metrics:     m,
		}),
		// empty pages and failed lists must be fetched again
		TourResults: cache.New[[]tourapi.Item]("tour-result", cache.Options{
			Capacity: cfg.Cache.ResultCapacity,
			TTL:      cfg.Cache.ResultTTL,
			Metrics:  m,
		}),
		CourseResults: cache.New[course.Course]("course-result", cache.Options{
			Capacity: cfg.Cache.ResultCapacity,
			TTL:      cfg.Cache.ResultTTL,
			Metrics:  m,
		}),
		TourLimiter: limiter.New("tour-detail", cfg.Limits.TourDetail,
			limiter.WithGauge(m.LimiterInFlight("tour-detail")),
			limiter.WithWaitCounter(m.LimiterWaits("tour-detail")),
		),
		PlaceLimiter: limiter.New("place-detail", cfg.Limits.PlaceDetail,
			limiter.WithGauge(m.LimiterInFlight("place-detail")),
			limiter.WithWaitCounter(m.LimiterWaits("place-detail")),
		),
	}

	a.Tours = tour.NewService(client, a.Details, a.TourResults, a.TourLimiter,
		tour.WithAreaCode(cfg.TourAPI.AreaCode),
		tour.WithLogger(log),
	)
	a.Courses = course.NewService(client.WithTimeout(cfg.TourAPI.CourseTimeout), a.Details, a.CourseResults, a.PlaceLimiter,
		course.WithAreaCode(cfg.TourAPI.AreaCode),
		course.WithLogger(log),
	)

	return a
}

// ClearCaches empties every cache and returns the number of entries
// dropped per cache.
func (a *App) ClearCaches() map[string]int {
	return map[string]int{
		a.Details.Name():       a.Details.Clear(),
		a.TourResults.Name():   a.TourResults.Clear(),
		a.CourseResults.Name(): a.CourseResults.Clear(),
	}
}
