package cache

import (
	"context"

	"moviecatalog/director"
	"moviecatalog/genre"
	"moviecatalog/movie"
	"moviecatalog/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DirectorService invalidates cached movies whenever a director they embed
// changes or goes away.
type DirectorService struct {
	director.Service

	movies *Cache[movie.Movie]
	logger *zap.SugaredLogger
}

func NewDirectorService(next director.Service, rc *redis.Client, l *zap.SugaredLogger) *DirectorService {
	if l == nil {
		l = logger.NOOPLogger
	}
	return &DirectorService{
		Service: next,
		movies:  New[movie.Movie](rc, moviePrefix, 0),
		logger:  l,
	}
}

func (s *DirectorService) UpdateDirector(ctx context.Context, id int64, in director.UpdateInput) (director.Director, error) {
	d, err := s.Service.UpdateDirector(ctx, id, in)
	if err != nil {
		return director.Director{}, err
	}
	invalidateMovies(ctx, s.movies, s.logger, "director_id", id)
	return d, nil
}

func (s *DirectorService) DeleteDirector(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.Service.DeleteDirector(ctx, id)
	if err != nil {
		return 0, err
	}
	invalidateMovies(ctx, s.movies, s.logger, "director_id", id)
	return deleted, nil
}

// GenreService invalidates cached movies on genre renames and deletes.
type GenreService struct {
	genre.Service

	movies *Cache[movie.Movie]
	logger *zap.SugaredLogger
}

func NewGenreService(next genre.Service, rc *redis.Client, l *zap.SugaredLogger) *GenreService {
	if l == nil {
		l = logger.NOOPLogger
	}
	return &GenreService{
		Service: next,
		movies:  New[movie.Movie](rc, moviePrefix, 0),
		logger:  l,
	}
}

func (s *GenreService) UpdateGenre(ctx context.Context, id int64, name string) (genre.Genre, error) {
	g, err := s.Service.UpdateGenre(ctx, id, name)
	if err != nil {
		return genre.Genre{}, err
	}
	invalidateMovies(ctx, s.movies, s.logger, "genre_id", id)
	return g, nil
}

func (s *GenreService) DeleteGenre(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.Service.DeleteGenre(ctx, id)
	if err != nil {
		return 0, err
	}
	invalidateMovies(ctx, s.movies, s.logger, "genre_id", id)
	return deleted, nil
}
