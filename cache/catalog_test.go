package cache_test

import (
	"context"
	"testing"
	"time"

	"moviecatalog/cache"
	"moviecatalog/director"
	"moviecatalog/genre"
	"moviecatalog/movie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDirectorService struct {
	director.Service
	mock.Mock
}

func (m *MockDirectorService) UpdateDirector(ctx context.Context, id int64, in director.UpdateInput) (director.Director, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(director.Director), args.Error(1)
}

func (m *MockDirectorService) DeleteDirector(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockGenreService struct {
	genre.Service
	mock.Mock
}

func (m *MockGenreService) UpdateGenre(ctx context.Context, id int64, name string) (genre.Genre, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(genre.Genre), args.Error(1)
}

func (m *MockGenreService) DeleteGenre(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestDirectorService(t *testing.T) {
	t.Run("should refresh cached movies after a director rename", func(t *testing.T) {
		_, rc := newRedis(t)
		movies := new(MockMovieService)
		directors := new(MockDirectorService)
		movieService := cache.NewMovieService(movies, rc, time.Minute, nil)
		directorService := cache.NewDirectorService(directors, rc, nil)
		name := "Christopher Nolan"
		in := director.UpdateInput{Name: &name}

		before := movie.Movie{ID: 1, Title: "Interstellar", Director: director.Director{ID: 2, Name: "C. Nolan"}}
		after := movie.Movie{ID: 1, Title: "Interstellar", Director: director.Director{ID: 2, Name: name}}
		movies.On("GetMovie", mock.Anything, int64(1)).Return(before, nil).Once()
		movies.On("GetMovie", mock.Anything, int64(1)).Return(after, nil).Once()
		directors.On("UpdateDirector", mock.Anything, int64(2), in).Return(director.Director{ID: 2, Name: name}, nil).Once()

		_, err := movieService.GetMovie(context.Background(), 1)
		require.NoError(t, err)
		_, err = directorService.UpdateDirector(context.Background(), 2, in)
		require.NoError(t, err)
		got, err := movieService.GetMovie(context.Background(), 1)
		require.NoError(t, err)

		assert.Equal(t, name, got.Director.Name)
		movies.AssertExpectations(t)
		directors.AssertExpectations(t)
	})

	t.Run("should keep the cache when the write fails", func(t *testing.T) {
		_, rc := newRedis(t)
		directors := new(MockDirectorService)
		s := cache.NewDirectorService(directors, rc, nil)
		directors.On("DeleteDirector", mock.Anything, int64(2)).Return(int64(0), director.ErrDirectorInUse).Once()

		_, err := s.DeleteDirector(context.Background(), 2)

		assert.Equal(t, director.ErrDirectorInUse, err)
		gen, err := cache.New[movie.Movie](rc, "movie", 0).Generation(context.Background())
		require.NoError(t, err)
		assert.Zero(t, gen)
	})
}

func TestGenreService(t *testing.T) {
	_, rc := newRedis(t)
	genres := new(MockGenreService)
	s := cache.NewGenreService(genres, rc, nil)
	generation := func() int64 {
		gen, err := cache.New[movie.Movie](rc, "movie", 0).Generation(context.Background())
		require.NoError(t, err)
		return gen
	}

	genres.On("UpdateGenre", mock.Anything, int64(4), "Sci-Fi").Return(genre.Genre{ID: 4, Name: "Sci-Fi"}, nil).Once()
	_, err := s.UpdateGenre(context.Background(), 4, "Sci-Fi")
	require.NoError(t, err)
	assert.Equal(t, int64(1), generation())

	genres.On("DeleteGenre", mock.Anything, int64(4)).Return(int64(4), nil).Once()
	_, err = s.DeleteGenre(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), generation())

	genres.AssertExpectations(t)
}
