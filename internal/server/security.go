package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/osse101/JackpotEngine_Go/internal/logger"
	"github.com/osse101/JackpotEngine_Go/internal/metrics"
)

// ProxyList holds the networks allowed to report the client address in X-Forwarded-For
type ProxyList []netip.Prefix

// ParseProxies accepts bare addresses and CIDR ranges. Invalid entries are logged and skipped.
func ParseProxies(entries []string) ProxyList {
	proxies := make(ProxyList, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			proxies = append(proxies, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			slog.Warn(LogMsgInvalidProxy, "entry", entry, "error", err)
			continue
		}
		proxies = append(proxies, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return proxies
}

func (p ProxyList) trusts(host string) bool {
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, prefix := range p {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// clientIP returns the connecting address, or the last X-Forwarded-For hop when the
// connection comes from a trusted proxy.
func clientIP(r *http.Request, proxies ProxyList) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	if !proxies.trusts(remoteIP) {
		return remoteIP
	}
	forwarded := r.Header.Get(HeaderForwardedFor)
	if forwarded == "" {
		return remoteIP
	}
	hops := strings.Split(forwarded, ",")
	if hop := strings.TrimSpace(hops[len(hops)-1]); hop != "" {
		return hop
	}
	return remoteIP
}

// Guard counts requests and failed operator logins per client in fixed windows
type Guard struct {
	mu          sync.Mutex
	limit       int
	window      time.Duration
	now         func() time.Time
	windowStart time.Time
	requests    map[string]int
	failedAuth  map[string]int
}

// NewGuard allows limit requests per client per window. A non-positive limit disables rate limiting.
func NewGuard(limit int, window time.Duration) *Guard {
	g := &Guard{
		limit:      limit,
		window:     window,
		now:        time.Now,
		requests:   make(map[string]int),
		failedAuth: make(map[string]int),
	}
	g.windowStart = g.now()
	return g
}

// Allow records one request from ip and reports whether it is within the limit
func (g *Guard) Allow(ip string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollWindow()
	g.requests[ip]++
	count := g.requests[ip]

	if g.limit <= 0 || count <= g.limit {
		return true
	}
	// First rejection and every hundredth after it
	if (count-g.limit-1)%100 == 0 {
		slog.Warn(SecurityAlertHighRate, "ip", ip, "count", count, "window", g.window)
	}
	return false
}

// RecordFailedAuth records a rejected operator key and returns the count in the current window
func (g *Guard) RecordFailedAuth(ip string) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.rollWindow()
	g.failedAuth[ip]++
	count := g.failedAuth[ip]
	if count >= FailedAuthAlertCount {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", count)
	}
	return count
}

// caller holds g.mu
func (g *Guard) rollWindow() {
	now := g.now()
	if now.Sub(g.windowStart) < g.window {
		return
	}
	g.requests = make(map[string]int)
	g.failedAuth = make(map[string]int)
	g.windowStart = now
}

// AuthMiddleware checks the operator API key. An empty configured key rejects every request.
func AuthMiddleware(apiKey string, proxies ProxyList, guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			providedKey := r.Header.Get(HeaderAPIKey)

			if apiKey == "" || subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := clientIP(r, proxies)
				attempts := guard.RecordFailedAuth(ip)
				metrics.SecurityEvents.WithLabelValues(metrics.SecurityReasonAuthFailed).Inc()

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip,
					"attempts", attempts)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware rejects clients over the guard's limit. Probe and scrape paths are exempt.
func RateLimitMiddleware(proxies ProxyList, guard *Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isQuietPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			if !guard.Allow(clientIP(r, proxies)) {
				metrics.SecurityEvents.WithLabelValues(metrics.SecurityReasonRateLimited).Inc()
				w.Header().Set(HeaderRetryAfter, retryAfterSeconds(guard.window))
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func retryAfterSeconds(window time.Duration) string {
	secs := int(window / time.Second)
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}

// RequestSizeLimitMiddleware caps request bodies at maxBytes
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets hardening headers. API responses carry round state and are never cached.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set(HeaderContentType, HeaderValueNoSniff)
			h.Set(HeaderFrameOptions, HeaderValueSameOrigin)
			h.Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			if strings.HasPrefix(r.URL.Path, APIPathPrefix) {
				h.Set(HeaderCacheControl, HeaderValueNoStore)
			}

			next.ServeHTTP(w, r)
		})
	}
}
