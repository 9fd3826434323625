// Package httpapi serves the profile API over HTTP/JSON with gin.
//
// Every response is an envelope {"code", "message", "user", "token"} where
// code is one of the USER-* success codes or an error code such as
// UNAUTHORIZED or INVALID-INPUT.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/logging"
	"github.com/dmitrijs2005/gophprofile/internal/server/users"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserService is what the handlers need from the users package.
type UserService interface {
	Register(ctx context.Context, p users.Profile) (*users.User, error)
	Login(ctx context.Context, email, password string) (string, *users.User, error)
	Get(ctx context.Context, id string) (*users.User, error)
	Update(ctx context.Context, id string, p users.Profile) (*users.User, error)
	UserIDFromToken(token string) (string, error)
}

type Server struct {
	address string
	users   UserService
	logger  logging.Logger
	engine  *gin.Engine
}

func NewServer(address string, us UserService, l logging.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		address: address,
		users:   us,
		logger:  l.With("module", "http_server"),
	}
	s.engine = s.routes()
	return s
}

// Handler exposes the routed engine, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestID())
	router.Use(s.accessLog())

	router.GET("/health", s.handleHealth)

	u := router.Group("/users")
	{
		u.POST("/register", s.handleRegister)
		u.POST("/login", s.handleLogin)

		authed := u.Group("")
		authed.Use(s.authenticate())
		{
			authed.GET("/details", s.handleDetails)
			authed.PUT("/edit", s.handleEdit)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, response{Code: CodeNotFound, Message: "Route not found."})
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info(ctx, "Stopping HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
