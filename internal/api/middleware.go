package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"shareit/internal/config"
	"shareit/internal/metrics"
	"shareit/internal/models"
	"shareit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	requestIDHeader = "X-Request-ID"
	ctxRequestID    = "request_id"
	ctxActorID      = "actor_id"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := logger.Info()
		if status >= http.StatusInternalServerError {
			event = logger.Error()
		}
		event = event.
			Str("request_id", c.GetString(ctxRequestID)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start))
		if id, ok := c.Get(ctxActorID); ok {
			event = event.Int64("actor_id", id.(int64))
		}
		event.Msg("http request")
	}
}

func countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.IncHTTP(c.Request.Method+" "+route, strconv.Itoa(c.Writer.Status()))
	}
}

// apiKeyAuth enforces API keys when enabled and a token bucket per client.
func apiKeyAuth(cfg config.APIConfig) gin.HandlerFunc {
	keys := newAPIKeys(cfg.Auth)
	limiter := newKeyLimiter(cfg.RateLimit)

	return func(c *gin.Context) {
		apiKey := strings.TrimSpace(c.GetHeader(keys.header))

		if cfg.Auth.Enabled {
			if apiKey == "" {
				abortJSON(c, http.StatusUnauthorized, "unauthenticated", "missing api key")
				return
			}
			if _, ok := keys.lookup(apiKey); !ok {
				abortJSON(c, http.StatusUnauthorized, "unauthenticated", "invalid api key")
				return
			}
		}

		key := apiKey
		if key == "" {
			key = remoteHost(c.Request)
		}
		if !limiter.allow(key) {
			metrics.IncRateLimited("api_key")
			abortJSON(c, http.StatusTooManyRequests, "rate_limited", "rate limit exceeded")
			return
		}
		c.Next()
	}
}

// actor parses the caller id header and applies the per-actor limit.
func actor(limiter *service.RateLimitService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(models.UserIDHeader))
		if raw == "" {
			abortJSON(c, http.StatusBadRequest, "invalid_request", "missing "+models.UserIDHeader+" header")
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			abortJSON(c, http.StatusBadRequest, "invalid_request", "invalid "+models.UserIDHeader+" header")
			return
		}
		c.Set(ctxActorID, id)

		if !limiter.Allow(c.Request.Context(), id) {
			abortJSON(c, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		c.Next()
	}
}

func actorID(c *gin.Context) int64 {
	return c.GetInt64(ctxActorID)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return clientKeyUnknown
}
