package cookie

// Config is loaded from the environment. Secrets are comma separated; the
// first one signs and encrypts, the rest are accepted for reading so keys
// can be rotated without logging everyone out.
type Config struct {
	Secrets []string `env:"COOKIE_SECRETS,required" envSeparator:","`
	Domain  string   `env:"COOKIE_DOMAIN"`
}

func NewFromConfig(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.Domain != "" {
		opts = append([]Option{WithDomain(cfg.Domain)}, opts...)
	}
	return New(cfg.Secrets, opts...)
}
