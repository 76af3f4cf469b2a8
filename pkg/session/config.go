package session

import "time"

type Config struct {
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"shelf_session"`
	MaxAge     time.Duration `env:"SESSION_MAX_AGE" envDefault:"1440h"`
	Secure     bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
}

const (
	defaultCookieName = "shelf_session"
	defaultMaxAge     = 60 * 24 * time.Hour
)

func (c Config) withDefaults() Config {
	if c.CookieName == "" {
		c.CookieName = defaultCookieName
	}
	if c.MaxAge <= 0 {
		c.MaxAge = defaultMaxAge
	}
	return c
}
