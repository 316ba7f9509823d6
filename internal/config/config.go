package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App     AppConfig
	Log     LogConfig
	TourAPI TourAPIConfig
	Limits  LimitConfig
	Cache   CacheConfig
	HTTP    HTTPConfig
}

type AppConfig struct {
	Addr string
	Env  string
}

type LogConfig struct {
	Level  string
	Format string
}

// TourAPIConfig describes the upstream KorService2 endpoint and the
// per-call-site timeouts.
type TourAPIConfig struct {
	BaseURL       string
	ServiceKey    string
	MobileOS      string
	MobileApp     string
	AreaCode      string
	ListTimeout   time.Duration
	CourseTimeout time.Duration
}

// LimitConfig caps simultaneous outbound detail calls.
type LimitConfig struct {
	TourDetail  int
	PlaceDetail int
}

// CacheConfig sizes the in-process caches. A zero TTL never expires and a
// zero capacity never evicts.
type CacheConfig struct {
	DetailCapacity int
	DetailTTL      time.Duration
	ResultCapacity int
	ResultTTL      time.Duration
	NegativeTTL    time.Duration
}

type HTTPConfig struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	InternalSecret string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

var defaults = map[string]any{
	"APP_ADDR":                 ":8080",
	"APP_ENV":                  "development",
	"LOG_LEVEL":                "info",
	"LOG_FORMAT":               "",
	"TOUR_API_BASE":            "http://apis.data.go.kr/B551011/KorService2",
	"TOUR_API_SERVICE_KEY":     "",
	"TOUR_API_MOBILE_OS":       "ETC",
	"TOUR_API_MOBILE_APP":      "AppTest",
	"TOUR_AREA_CODE":           "1",
	"TOUR_LIST_TIMEOUT":        "10s",
	"COURSE_TIMEOUT":           "5s",
	"TOUR_DETAIL_CONCURRENCY":  20,
	"PLACE_DETAIL_CONCURRENCY": 10,
	"CACHE_DETAIL_CAPACITY":    10000,
	"CACHE_DETAIL_TTL":         "0s",
	"CACHE_RESULT_CAPACITY":    1000,
	"CACHE_RESULT_TTL":         "30m",
	"CACHE_NEGATIVE_TTL":       "30s",
	"FRONTEND_URL":             "http://localhost:3000",
	"RATE_LIMIT_RPS":           20.0,
	"RATE_LIMIT_BURST":         40,
	"INTERNAL_SECRET":          "",
	"HTTP_READ_TIMEOUT":        "5s",
	"HTTP_WRITE_TIMEOUT":       "60s",
	"HTTP_IDLE_TIMEOUT":        "60s",
}

// Load reads .env.local and .env when present, then resolves every setting
// from the environment with built-in defaults.
func Load() (*Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Addr: v.GetString("APP_ADDR"),
			Env:  v.GetString("APP_ENV"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		TourAPI: TourAPIConfig{
			BaseURL:       strings.TrimRight(v.GetString("TOUR_API_BASE"), "/"),
			ServiceKey:    v.GetString("TOUR_API_SERVICE_KEY"),
			MobileOS:      v.GetString("TOUR_API_MOBILE_OS"),
			MobileApp:     v.GetString("TOUR_API_MOBILE_APP"),
			AreaCode:      v.GetString("TOUR_AREA_CODE"),
			ListTimeout:   v.GetDuration("TOUR_LIST_TIMEOUT"),
			CourseTimeout: v.GetDuration("COURSE_TIMEOUT"),
		},
		Limits: LimitConfig{
			TourDetail:  v.GetInt("TOUR_DETAIL_CONCURRENCY"),
			PlaceDetail: v.GetInt("PLACE_DETAIL_CONCURRENCY"),
		},
		Cache: CacheConfig{
			DetailCapacity: v.GetInt("CACHE_DETAIL_CAPACITY"),
			DetailTTL:      v.GetDuration("CACHE_DETAIL_TTL"),
			ResultCapacity: v.GetInt("CACHE_RESULT_CAPACITY"),
			ResultTTL:      v.GetDuration("CACHE_RESULT_TTL"),
			NegativeTTL:    v.GetDuration("CACHE_NEGATIVE_TTL"),
		},
		HTTP: HTTPConfig{
			AllowedOrigins: splitList(v.GetString("FRONTEND_URL")),
			RateLimitRPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			RateLimitBurst: v.GetInt("RATE_LIMIT_BURST"),
			InternalSecret: v.GetString("INTERNAL_SECRET"),
			ReadTimeout:    v.GetDuration("HTTP_READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("HTTP_WRITE_TIMEOUT"),
			IdleTimeout:    v.GetDuration("HTTP_IDLE_TIMEOUT"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the aggregators cannot run with. A missing
// service key is allowed; the upstream will answer with an empty envelope.
func (c *Config) Validate() error {
	if c.TourAPI.BaseURL == "" {
		return fmt.Errorf("TOUR_API_BASE is required")
	}
	if c.TourAPI.ListTimeout <= 0 || c.TourAPI.CourseTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}
	if c.Limits.TourDetail <= 0 || c.Limits.PlaceDetail <= 0 {
		return fmt.Errorf("detail concurrency limits must be positive")
	}
	if c.Cache.DetailCapacity < 0 || c.Cache.ResultCapacity < 0 {
		return fmt.Errorf("cache capacities must not be negative")
	}
	if c.Cache.NegativeTTL < 0 || c.Cache.DetailTTL < 0 || c.Cache.ResultTTL < 0 {
		return fmt.Errorf("cache TTLs must not be negative")
	}
	return nil
}

// IsProduction reports whether the app runs with APP_ENV=production.
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
