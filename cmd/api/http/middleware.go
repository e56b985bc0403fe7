package http

import (
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/catalog-service/cmd/api/auth"
	"github.com/catalog-service/cmd/api/pkgerrors"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-Id"

/* Turns a panic in a downstream handler into a 500 response and closes the connection. */
func recoverPanic(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				level.Error(logger).Log("msg", "recovered from panic", "method", r.Method, "path", r.URL.Path, "err", fmt.Sprint(err))
				responseJSON(w, http.StatusInternalServerError, pkgerrors.ErrResponseInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

/* Tags every request with an id, echoed in the X-Request-Id header, and logs its outcome. */
func logRequest(logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)

		level.Debug(logger).Log(
			"msg", "request served",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"took", time.Since(start),
		)
	})
}

type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

/* Token bucket rate limiting per client IP. Clients idle for three minutes are forgotten. */
func rateLimit(config LimiterConfig, next http.Handler) http.Handler {
	if !config.Enabled {
		return next
	}

	var (
		mu        sync.Mutex
		clients   = make(map[string]*client)
		lastSweep = time.Now()
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		mu.Lock()
		now := time.Now()
		if now.Sub(lastSweep) > time.Minute {
			for addr, c := range clients {
				if now.Sub(c.lastSeen) > 3*time.Minute {
					delete(clients, addr)
				}
			}
			lastSweep = now
		}

		c, found := clients[ip]
		if !found {
			c = &client{limiter: rate.NewLimiter(rate.Limit(config.RPS), config.Burst)}
			clients[ip] = c
		}
		c.lastSeen = now
		allowed := c.limiter.Allow()
		mu.Unlock()

		if !allowed {
			responseJSON(w, http.StatusTooManyRequests, pkgerrors.ErrResponseRateLimitExceeded)
			return
		}
		next.ServeHTTP(w, r)
	})
}

/* Resolves the bearer token of a request into the caller identity. Requests without
credentials go through as anonymous; requests with bad credentials are turned down. */
func authenticate(verifier auth.Verifier, logger log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, ok := auth.ExtractBearerToken(header)
		if !ok {
			unauthenticated(w)
			return
		}

		id, err := verifier.Verify(r.Context(), token)
		if err != nil {
			level.Warn(logger).Log("msg", "rejecting bearer token", "err", err)
			unauthenticated(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.NewContext(r.Context(), id)))
	})
}

func unauthenticated(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	responseJSON(w, http.StatusUnauthorized, pkgerrors.ErrResponseUnauthenticated)
}
