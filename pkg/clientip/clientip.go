package clientip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
)

var ErrInvalidProxy = errors.New("clientip.invalid_proxy")

// Config lists the proxies allowed to report the client address. Entries are
// single addresses or CIDR ranges, comma separated.
type Config struct {
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Trusted is a set of proxy ranges. The zero value trusts nobody, so
// forwarding headers are ignored and the TCP peer is the client.
type Trusted []netip.Prefix

// ParseTrusted accepts "10.0.0.0/8" style ranges and bare addresses.
func ParseTrusted(entries []string) (Trusted, error) {
	trusted := make(Trusted, 0, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		if strings.Contains(e, "/") {
			p, err := netip.ParsePrefix(e)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, e)
			}
			trusted = append(trusted, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(e)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidProxy, e)
		}
		addr = addr.Unmap()
		trusted = append(trusted, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return trusted, nil
}

func (t Trusted) contains(addr netip.Addr) bool {
	for _, p := range t {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// FromRequest returns the normalized client IP, or "" if none can be parsed.
//
// Forwarding headers are read only when the TCP peer is a trusted proxy.
// X-Forwarded-For is walked right to left and the first hop that is not
// itself a trusted proxy wins; X-Real-IP is the fallback.
func (t Trusted) FromRequest(r *http.Request) string {
	peer, ok := peerAddr(r.RemoteAddr)
	if !ok {
		return ""
	}
	if !t.contains(peer) {
		return peer.String()
	}

	if xff := r.Header.Values("X-Forwarded-For"); len(xff) > 0 {
		hops := strings.Split(strings.Join(xff, ","), ",")
		for i := len(hops) - 1; i >= 0; i-- {
			addr, ok := parse(hops[i])
			if !ok {
				break
			}
			if !t.contains(addr) {
				return addr.String()
			}
		}
	}
	if addr, ok := parse(r.Header.Get("X-Real-IP")); ok {
		return addr.String()
	}
	return peer.String()
}

// FromRequest resolves the client IP without trusting any proxy.
func FromRequest(r *http.Request) string {
	return Trusted(nil).FromRequest(r)
}

func peerAddr(remote string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		host = remote
	}
	return parse(host)
}

func parse(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}

type contextKey struct{}

func WithContext(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

func FromContext(ctx context.Context) string {
	ip, _ := ctx.Value(contextKey{}).(string)
	return ip
}

// Middleware resolves the client IP once and stores it in the request context.
func Middleware(trusted Trusted) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithContext(r.Context(), trusted.FromRequest(r))))
		})
	}
}
