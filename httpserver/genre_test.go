package httpserver_test

import (
	"context"
	"net/http"
	"testing"

	"moviecatalog/genre"
	"moviecatalog/httpserver"
	"moviecatalog/pagination"
	"moviecatalog/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGenreService struct {
	mock.Mock
}

func (m *MockGenreService) CreateGenre(ctx context.Context, g genre.Genre) (genre.Genre, error) {
	args := m.Called(ctx, g)
	return args.Get(0).(genre.Genre), args.Error(1)
}

func (m *MockGenreService) ListGenres(ctx context.Context, p pagination.Page) ([]genre.Genre, int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]genre.Genre), args.Get(1).(int64), args.Error(2)
}

func (m *MockGenreService) GetGenre(ctx context.Context, id int64) (genre.Genre, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(genre.Genre), args.Error(1)
}

func (m *MockGenreService) UpdateGenre(ctx context.Context, id int64, name string) (genre.Genre, error) {
	args := m.Called(ctx, id, name)
	return args.Get(0).(genre.Genre), args.Error(1)
}

func (m *MockGenreService) DeleteGenre(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func TestGenreRoutes(t *testing.T) {
	server := httpserver.Default(testConfig())
	svc := new(MockGenreService)
	server.GenreService = svc
	admin := signTestToken(t, user.RoleAdmin)

	t.Run("should create a genre", func(t *testing.T) {
		svc.On("CreateGenre", mock.Anything, genre.Genre{Name: "Noir"}).Return(genre.Genre{ID: 1, Name: "Noir"}, nil).Once()

		rec := serve(server, newRequest(t, http.MethodPost, "/api/genres", map[string]string{"name": "Noir"}, admin))

		assert.Equal(t, http.StatusCreated, rec.Code)
		var result genre.Genre
		decodeAPIResult(t, decodeAPIResponse(t, rec).Result, &result)
		assert.Equal(t, int64(1), result.ID)
	})

	t.Run("should return 409 for an existing name", func(t *testing.T) {
		svc.On("CreateGenre", mock.Anything, genre.Genre{Name: "Drama"}).Return(genre.Genre{}, genre.ErrGenreExists).Once()

		rec := serve(server, newRequest(t, http.MethodPost, "/api/genres", map[string]string{"name": "Drama"}, admin))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "genre: name already exists", decodeAPIResponse(t, rec).Message)
	})

	t.Run("should return 400 for a blank name", func(t *testing.T) {
		rec := serve(server, newRequest(t, http.MethodPost, "/api/genres", map[string]string{"name": " "}, admin))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeAPIResponse(t, rec).Message, "name failed on notblank")
	})

	t.Run("should rename a genre", func(t *testing.T) {
		svc.On("UpdateGenre", mock.Anything, int64(1), "Film Noir").Return(genre.Genre{ID: 1, Name: "Film Noir"}, nil).Once()

		rec := serve(server, newRequest(t, http.MethodPatch, "/api/genres/1", map[string]string{"name": "Film Noir"}, admin))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("should return 404 for a missing genre", func(t *testing.T) {
		svc.On("GetGenre", mock.Anything, int64(42)).Return(genre.Genre{}, genre.ErrGenreNotFound).Once()

		rec := serve(server, newRequest(t, http.MethodGet, "/api/genres/42", nil, admin))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("should reject a page size above the maximum", func(t *testing.T) {
		rec := serve(server, newRequest(t, http.MethodGet, "/api/genres?take=500", nil, admin))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "ListGenres", mock.Anything, mock.Anything)
	})

	svc.AssertExpectations(t)
}
