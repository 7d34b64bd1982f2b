package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrNotAvailable),
		errors.Is(err, domain.ErrNotAllowed):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortJSON(c *gin.Context, status int, kind, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": kind, "message": message})
}

// fail writes err as a JSON error response. Internal errors are logged and
// their detail is withheld from the client.
func (s *HTTPServer) fail(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("request_id", c.GetString(ctxRequestID)).Msg("request failed")
		message = "internal error"
	}
	abortJSON(c, status, domain.Kind(err), message)
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidRequest}, args...)...)
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid %s %q", name, c.Param(name))
	}
	return id, nil
}

func queryInt(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, badRequest("invalid %s %q", name, raw)
	}
	return v, nil
}

// page reads from and size, defaulting to 0 and the configured page size.
func (s *HTTPServer) page(c *gin.Context) (int, int, error) {
	from, err := queryInt(c, "from", 0)
	if err != nil {
		return 0, 0, err
	}
	def := s.cfg.Booking.DefaultPageSize
	if def <= 0 {
		def = models.DefaultPageSize
	}
	size, err := queryInt(c, "size", def)
	if err != nil {
		return 0, 0, err
	}
	return from, size, nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return badRequest("%s", err.Error())
	}
	return nil
}
