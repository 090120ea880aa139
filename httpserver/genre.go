package httpserver

import (
	"net/http"

	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterGenreRoutes(g *echo.Group) {
	g.GET("/genres", s.handleListGenres, requireAccess)
	g.GET("/genres/:id", s.handleGetGenre, requireAccess)

	admin := []echo.MiddlewareFunc{requireAccess, requireRole(user.RoleAdmin)}
	g.POST("/genres", s.handleCreateGenre, admin...)
	g.PATCH("/genres/:id", s.handleUpdateGenre, admin...)
	g.DELETE("/genres/:id", s.handleDeleteGenre, admin...)
}

// handleListGenres godoc
// @Summary List Genres
// @Tags genres
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, default 1"
// @Param take query int false "Page size (1-100), default 5"
// @Success 200 {object} APIResponse
// @Router /api/genres [get]
func (s *Server) handleListGenres(c echo.Context) error {
	var req PageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	page := req.ToPage()
	genres, total, err := s.GenreService.ListGenres(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return writePagedList(c, http.StatusOK, genres, page.Page, page.Take, total)
}

func (s *Server) handleGetGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	g, err := s.GenreService.GetGenre(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, g)
}

// handleCreateGenre godoc
// @Summary Create Genre
// @Tags genres
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param genre body GenreRequest true "Genre Data"
// @Success 201 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/genres [post]
func (s *Server) handleCreateGenre(c echo.Context) error {
	var req GenreRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	g, err := s.GenreService.CreateGenre(c.Request().Context(), req.ToGenre())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, g)
}

func (s *Server) handleUpdateGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req GenreRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	g, err := s.GenreService.UpdateGenre(c.Request().Context(), id, req.Name)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, g)
}

func (s *Server) handleDeleteGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := s.GenreService.DeleteGenre(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeDeleted(c, deleted)
}
