package middleware

import (
	"fmt"
	"net/http"
	"time"

	"tallerpro/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiter is a fixed-window limiter backed by Redis, so the count holds
// across instances and restarts. The key is prefijo + client IP; the first
// hit of a window sets the TTL. On Redis failure it fails OPEN: an outage
// of the limiter must not take down login.
func RateLimiter(rdb *redis.Client, prefijo string, limite int, ventana time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", prefijo, c.ClientIP())

		n, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Err(err).
				Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if n == 1 {
			// Primer hit de la ventana: arrancar el TTL.
			rdb.Expire(c.Request.Context(), key, ventana)
		}

		if n > int64(limite) {
			c.Header("Retry-After", fmt.Sprintf("%d", int(ventana.Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return RateLimiter(rdb, "login", 20, time.Minute)
}

// ResetRateLimiter throttles the public password-reset endpoint per IP. The
// per-user hourly cap lives in the service layer; this guard only blunts
// bulk probing of the endpoint itself.
func ResetRateLimiter(rdb *redis.Client) gin.HandlerFunc {
	return RateLimiter(rdb, "reset", 10, time.Minute)
}
