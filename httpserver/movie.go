package httpserver

import (
	"net/http"

	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterMovieRoutes(g *echo.Group) {
	g.GET("/movies", s.handleListMovies)
	g.GET("/movies/:id", s.handleGetMovie)

	admin := []echo.MiddlewareFunc{requireAccess, requireRole(user.RoleAdmin)}
	g.POST("/movies", s.handleCreateMovie, admin...)
	g.PATCH("/movies/:id", s.handleUpdateMovie, admin...)
	g.DELETE("/movies/:id", s.handleDeleteMovie, admin...)
}

// handleListMovies godoc
// @Summary List Movies
// @Description Cursor paged movie list, optionally filtered by title
// @Tags movies
// @Produce json
// @Param title query string false "Case-insensitive title substring"
// @Param cursor query string false "Cursor from a previous page"
// @Param order query []string false "Order tokens such as likeCount_DESC"
// @Param take query int false "Page size (1-100), default 5"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/movies [get]
func (s *Server) handleListMovies(c echo.Context) error {
	var req ListMoviesRequest
	if err := c.Bind(&req); err != nil {
		return ErrInvalidBody
	}
	req.splitOrder()
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := s.MovieService.ListMovies(c.Request().Context(), req.ToQuery())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, page)
}

// handleGetMovie godoc
// @Summary Get Movie
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [get]
func (s *Server) handleGetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	m, err := s.MovieService.GetMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, m)
}

// handleCreateMovie godoc
// @Summary Create Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movie body CreateMovieRequest true "Movie Data"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/movies [post]
func (s *Server) handleCreateMovie(c echo.Context) error {
	var req CreateMovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.CreateMovie(c.Request().Context(), req.ToInput())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, m)
}

// handleUpdateMovie godoc
// @Summary Update Movie
// @Tags movies
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Param movie body UpdateMovieRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [patch]
func (s *Server) handleUpdateMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateMovieRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	m, err := s.MovieService.UpdateMovie(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, m)
}

// handleDeleteMovie godoc
// @Summary Delete Movie
// @Tags movies
// @Produce json
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/movies/{id} [delete]
func (s *Server) handleDeleteMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := s.MovieService.DeleteMovie(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeDeleted(c, deleted)
}
