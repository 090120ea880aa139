package httpserver

import (
	"errors"

	"moviecatalog/auth"
	"moviecatalog/director"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/config"
	"moviecatalog/user"

	"go.uber.org/zap"
)

type Options func(s *Server) error

// New builds the default server for cfg and applies options in order.
func New(cfg *config.Config, options ...Options) (*Server, error) {
	if cfg == nil {
		cfg = config.Empty
	}
	s := Default(cfg)
	for _, fn := range options {
		if err := fn(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func WithLogger(l *zap.SugaredLogger) Options {
	return func(s *Server) error {
		if l == nil {
			return errors.New("httpserver: nil logger")
		}
		s.Logger = l
		return nil
	}
}

func WithMovieService(svc movie.Service) Options {
	return func(s *Server) error {
		s.MovieService = svc
		return nil
	}
}

func WithDirectorService(svc director.Service) Options {
	return func(s *Server) error {
		s.DirectorService = svc
		return nil
	}
}

func WithGenreService(svc genre.Service) Options {
	return func(s *Server) error {
		s.GenreService = svc
		return nil
	}
}

func WithUserService(svc user.Service) Options {
	return func(s *Server) error {
		s.UserService = svc
		return nil
	}
}

func WithAuthService(svc auth.Service) Options {
	return func(s *Server) error {
		s.AuthService = svc
		return nil
	}
}
