package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moviecatalog/auth"
	"moviecatalog/director"
	"moviecatalog/errs"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/pkg/jwt"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"
	"moviecatalog/user"

	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Server struct {
	// Router is the Echo router instance
	Router *echo.Echo

	// Addr represents the address the server will listen on
	Addr string

	// Allowed origins for CORS
	AllowOrigins []string

	Logger *zap.SugaredLogger

	// Tokens verifies bearer tokens and backs the refresh route.
	Tokens *jwt.JWTProvider

	MovieService    movie.Service
	DirectorService director.Service
	GenreService    genre.Service
	UserService     user.Service
	AuthService     auth.Service
}

func Default(cfg *config.Config) *Server {
	s := Server{
		Router:       echo.New(),
		Addr:         ":8080",
		AllowOrigins: []string{"*"},
		Logger:       logger.NOOPLogger,
		Tokens:       jwt.NewJWTProvider(cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret, cfg.AccessTTL(), cfg.RefreshTTL()),
	}
	if cfg.Port != 0 {
		s.Addr = fmt.Sprintf(":%d", cfg.Port)
	}
	if origins := splitOrigins(cfg.AllowOrigins); len(origins) > 0 {
		s.AllowOrigins = origins
	}

	s.Router.HideBanner = true
	s.Router.Validator = NewValidator()
	s.Router.HTTPErrorHandler = s.handleError
	s.RegisterGlobalMiddlewares()

	api := s.Router.Group("/api")

	// PUBLIC: credentials travel in a Basic header or a refresh token
	s.RegisterAuthRoutes(api)

	// BEARER: anonymous requests pass, a presented token must verify
	secured := api.Group("", s.authenticate)
	s.RegisterPrivateAuthRoutes(secured)
	s.RegisterMovieRoutes(secured)
	s.RegisterDirectorRoutes(secured)
	s.RegisterGenreRoutes(secured)
	s.RegisterUserRoutes(secured)

	s.RegisterHealthRoutes()
	s.RegisterSwaggerRoutes()
	return &s
}

func (s *Server) RegisterGlobalMiddlewares() {
	s.Router.Use(middleware.Recover())
	s.Router.Use(middleware.Secure())
	s.Router.Use(middleware.RequestID())
	s.Router.Use(middleware.Gzip())
	s.Router.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	s.Router.Use(s.logResponseTime)

	// CORS
	if len(s.AllowOrigins) > 0 {
		s.Router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.AllowOrigins,
		}))
	}
}

func (s *Server) Start() error {
	return s.Router.Start(s.Addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Router.Shutdown(ctx)
}

func (s *Server) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return logger.NOOPLogger
	}
	return s.Logger
}

// logResponseTime logs "[METHOD] path Nms" once the handler returns.
func (s *Server) logResponseTime(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		req := c.Request()
		s.logger().Infow(
			fmt.Sprintf("[%s] %s %dms", req.Method, req.URL.Path, time.Since(start).Milliseconds()),
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		return err
	}
}

// handleError maps application errors to HTTP statuses and writes the
// error envelope. Server-side failures are logged and sent to Sentry.
func (s *Server) handleError(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "Internal server error"

	// Check if it's an Echo HTTPError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		message = fmt.Sprint(he.Message)
	} else {
		code = statusCode(err)
		if code != http.StatusInternalServerError {
			message = errs.ErrorMessage(err)
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger().Errorw("request failed",
			"error", err,
			"path", c.Request().URL.Path,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)
		sentry.WithContext(c).
			WithTags(map[string]string{"route": c.Path(), "method": c.Request().Method}).
			Error(err)
	}

	// Don't write response if already committed
	if !c.Response().Committed {
		if werr := writeError(c, code, message, http.StatusText(code), err); werr != nil {
			s.logger().Errorw("write error response", "error", werr)
		}
	}
}

func statusCode(err error) int {
	switch errs.ErrorCode(err) {
	case errs.EINVALID:
		return http.StatusBadRequest
	case errs.ENOTFOUND:
		return http.StatusNotFound
	case errs.ECONFLICT:
		return http.StatusConflict
	case errs.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case errs.EFORBIDDEN:
		return http.StatusForbidden
	case errs.ENOTIMPLEMENTED:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func splitOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
