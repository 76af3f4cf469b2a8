package library

import (
	"log/slog"
	"net/http"
	"time"
)

type Config struct {
	URL       string        `env:"API_URL,required"`
	PageSize  int           `env:"API_PAGE_SIZE" envDefault:"12"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"10s"`
	RateLimit float64       `env:"API_RATE_LIMIT" envDefault:"0"`
	RateBurst int           `env:"API_RATE_BURST" envDefault:"10"`
}

// NewFromConfig builds a client from cfg, then applies opts.
func NewFromConfig(cfg Config, log *slog.Logger, opts ...Option) (*Client, error) {
	base := []Option{
		WithPageSize(cfg.PageSize),
		WithRateLimit(cfg.RateLimit, cfg.RateBurst),
		WithLogger(log),
	}
	if cfg.Timeout > 0 {
		base = append(base, WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	return New(cfg.URL, append(base, opts...)...)
}
