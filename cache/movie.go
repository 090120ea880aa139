package cache

import (
	"context"
	"strconv"
	"time"

	"moviecatalog/movie"
	"moviecatalog/pkg/logger"
	"moviecatalog/pkg/sentry"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const moviePrefix = "movie"

// MovieService serves GetMovie from redis and invalidates cached movies on
// writes. Redis failures are logged and the call falls through to next.
type MovieService struct {
	movie.Service

	cache  *Cache[movie.Movie]
	logger *zap.SugaredLogger
}

func NewMovieService(next movie.Service, rc *redis.Client, ttl time.Duration, l *zap.SugaredLogger) *MovieService {
	if l == nil {
		l = logger.NOOPLogger
	}
	return &MovieService{
		Service: next,
		cache:   New[movie.Movie](rc, moviePrefix, ttl),
		logger:  l,
	}
}

func (s *MovieService) GetMovie(ctx context.Context, id int64) (movie.Movie, error) {
	key := strconv.FormatInt(id, 10)

	cached, gen, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warnw("movie cache read failed", "movie_id", id, "error", err)
	}
	if cached != nil {
		return *cached, nil
	}

	m, err := s.Service.GetMovie(ctx, id)
	if err != nil {
		return movie.Movie{}, err
	}
	if err := s.cache.Set(ctx, gen, key, &m); err != nil {
		s.logger.Warnw("movie cache write failed", "movie_id", id, "error", err)
	}
	return m, nil
}

func (s *MovieService) UpdateMovie(ctx context.Context, id int64, in movie.UpdateInput) (movie.Movie, error) {
	m, err := s.Service.UpdateMovie(ctx, id, in)
	if err != nil {
		return movie.Movie{}, err
	}
	invalidateMovies(ctx, s.cache, s.logger, "movie_id", id)
	return m, nil
}

func (s *MovieService) DeleteMovie(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.Service.DeleteMovie(ctx, id)
	if err != nil {
		return 0, err
	}
	invalidateMovies(ctx, s.cache, s.logger, "movie_id", id)
	return deleted, nil
}

// invalidateMovies reports failures to sentry too: cached movies stay stale
// until CACHE_TTL runs out.
func invalidateMovies(ctx context.Context, c *Cache[movie.Movie], l *zap.SugaredLogger, key string, id int64) {
	if err := c.Invalidate(ctx); err != nil {
		l.Warnw("movie cache invalidation failed", key, id, "error", err)
		sentry.WithTags(map[string]string{"cache": moviePrefix}).
			WithExtras(map[string]interface{}{key: id, "error": err.Error()}).
			Warning("movie cache invalidation failed")
	}
}
