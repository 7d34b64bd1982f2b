package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Services are the collaborators the REST handlers call into.
type Services struct {
	Bookings domain.BookingService
	Items    domain.ItemService
	Users    domain.UserService
	Requests domain.RequestService
	// ActorLimiter caps requests per X-Sharer-User-Id. Nil disables it.
	ActorLimiter *service.RateLimitService
	Health       Pinger
}

// HTTPServer exposes the REST API.
type HTTPServer struct {
	cfg    config.Config
	svc    Services
	engine *gin.Engine
	server *http.Server
	log    zerolog.Logger
}

func NewHTTPServer(cfg config.Config, svc Services, logger *zerolog.Logger) *HTTPServer {
	log := zerolog.Nop()
	if logger != nil {
		log = logger.With().Str("component", "http").Logger()
	}

	s := &HTTPServer{cfg: cfg, svc: svc, log: log}
	s.engine = s.routes()
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.API.HTTP.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

// Handler returns the router, for tests and embedding.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

func (s *HTTPServer) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(&s.log), countRequests())

	r.GET("/healthz", s.healthz)
	r.GET("/readyz", s.readyz)

	api := r.Group("/", apiKeyAuth(s.cfg.API))

	users := api.Group("/users")
	users.POST("", s.createUser)
	users.GET("", s.listUsers)
	users.GET("/:id", s.getUser)
	users.PATCH("/:id", s.updateUser)
	users.DELETE("/:id", s.deleteUser)

	withActor := api.Group("/", actor(s.svc.ActorLimiter))

	items := withActor.Group("/items")
	items.POST("", s.createItem)
	items.GET("", s.listOwnerItems)
	items.GET("/search", s.searchItems)
	items.GET("/:id", s.getItem)
	items.PATCH("/:id", s.updateItem)
	items.DELETE("/:id", s.deleteItem)
	items.POST("/:id/comment", s.addComment)

	bookings := withActor.Group("/bookings")
	bookings.POST("", s.createBooking)
	bookings.GET("", s.listBookerBookings)
	bookings.GET("/owner", s.listOwnerBookings)
	bookings.GET("/owner/export", s.exportOwnerBookings)
	bookings.GET("/:id", s.getBooking)
	bookings.PATCH("/:id", s.changeBookingStatus)

	requests := withActor.Group("/requests")
	requests.POST("", s.createRequest)
	requests.GET("", s.listOwnRequests)
	requests.GET("/all", s.listOtherRequests)
	requests.GET("/:id", s.getRequest)

	return r
}

func (s *HTTPServer) Start() error {
	if s.server == nil {
		return fmt.Errorf("http server is not initialized")
	}
	s.log.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *HTTPServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *HTTPServer) readyz(c *gin.Context) {
	if s.svc.Health != nil {
		if err := s.svc.Health.Ping(c.Request.Context()); err != nil {
			s.log.Warn().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
