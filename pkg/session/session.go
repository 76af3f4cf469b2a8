package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/shelfadmin/pkg/cookie"
)

// Data is what the application knows about the current user.
type Data struct {
	UserToken string
	UserID    int
	UserName  string
}

// IsAuthenticated reports whether all three fields are present.
func (d Data) IsAuthenticated() bool {
	return d.UserToken != "" && d.UserID > 0 && d.UserName != ""
}

type payload struct {
	Token     string `json:"token"`
	UserID    int    `json:"user_id"`
	UserName  string `json:"user_name"`
	ExpiresAt int64  `json:"expires_at"`
}

// Manager issues, reads and clears the session cookie.
type Manager struct {
	cookies *cookie.Manager
	cfg     Config
	now     func() time.Time
}

type Option func(*Manager)

// WithClock replaces time.Now when stamping and checking expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func New(cookies *cookie.Manager, cfg Config, opts ...Option) *Manager {
	m := &Manager{cookies: cookies, cfg: cfg.withDefaults(), now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) cookieOptions() []cookie.Option {
	return []cookie.Option{
		cookie.WithPath("/"),
		cookie.WithHTTPOnly(true),
		cookie.WithSameSite(http.SameSiteLaxMode),
		cookie.WithSecure(m.cfg.Secure),
	}
}

// Create writes a fresh session cookie for the user.
func (m *Manager) Create(w http.ResponseWriter, token string, userID int, userName string) error {
	d := Data{UserToken: token, UserID: userID, UserName: userName}
	if !d.IsAuthenticated() {
		return ErrIncompleteSession
	}

	raw, err := json.Marshal(payload{
		Token:     token,
		UserID:    userID,
		UserName:  userName,
		ExpiresAt: m.now().Add(m.cfg.MaxAge).Unix(),
	})
	if err != nil {
		return errors.Join(ErrEncodeFailed, err)
	}

	opts := append(m.cookieOptions(), cookie.WithMaxAge(int(m.cfg.MaxAge.Seconds())))
	if err := m.cookies.SetEncrypted(w, m.cfg.CookieName, string(raw), opts...); err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	return nil
}

// Read returns the session carried by r, or the zero Data.
func (m *Manager) Read(r *http.Request) Data {
	raw, err := m.cookies.GetEncrypted(r, m.cfg.CookieName)
	if err != nil {
		return Data{}
	}

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Data{}
	}
	if p.ExpiresAt <= m.now().Unix() {
		return Data{}
	}

	d := Data{UserToken: p.Token, UserID: p.UserID, UserName: p.UserName}
	if !d.IsAuthenticated() {
		return Data{}
	}
	return d
}

// Destroy tells the client to drop the session cookie.
func (m *Manager) Destroy(w http.ResponseWriter) {
	m.cookies.Delete(w, m.cfg.CookieName, m.cookieOptions()...)
}

// Middleware reads the session once and stores it in the request context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), m.Read(r))))
	})
}

type contextKey struct{}

func WithContext(ctx context.Context, d Data) context.Context {
	return context.WithValue(ctx, contextKey{}, d)
}

// FromContext returns the session stored by Middleware, or the zero Data.
func FromContext(ctx context.Context) Data {
	d, _ := ctx.Value(contextKey{}).(Data)
	return d
}

// LoggerExtractor adds "user_id" to records logged for signed-in requests.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if d := FromContext(ctx); d.UserID > 0 {
			return slog.Int("user_id", d.UserID), true
		}
		return slog.Attr{}, false
	}
}
