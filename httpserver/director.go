package httpserver

import (
	"net/http"

	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterDirectorRoutes(g *echo.Group) {
	g.GET("/directors", s.handleListDirectors, requireAccess)
	g.GET("/directors/:id", s.handleGetDirector, requireAccess)

	admin := []echo.MiddlewareFunc{requireAccess, requireRole(user.RoleAdmin)}
	g.POST("/directors", s.handleCreateDirector, admin...)
	g.PATCH("/directors/:id", s.handleUpdateDirector, admin...)
	g.DELETE("/directors/:id", s.handleDeleteDirector, admin...)
}

// handleListDirectors godoc
// @Summary List Directors
// @Tags directors
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, default 1"
// @Param take query int false "Page size (1-100), default 5"
// @Success 200 {object} APIResponse
// @Router /api/directors [get]
func (s *Server) handleListDirectors(c echo.Context) error {
	var req PageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	page := req.ToPage()
	directors, total, err := s.DirectorService.ListDirectors(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return writePagedList(c, http.StatusOK, directors, page.Page, page.Take, total)
}

// handleGetDirector godoc
// @Summary Get Director
// @Tags directors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Director ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/directors/{id} [get]
func (s *Server) handleGetDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	d, err := s.DirectorService.GetDirector(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, d)
}

// handleCreateDirector godoc
// @Summary Create Director
// @Tags directors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param director body CreateDirectorRequest true "Director Data"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Router /api/directors [post]
func (s *Server) handleCreateDirector(c echo.Context) error {
	var req CreateDirectorRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	d, err := s.DirectorService.CreateDirector(c.Request().Context(), req.ToDirector())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, d)
}

// handleUpdateDirector godoc
// @Summary Update Director
// @Tags directors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Director ID"
// @Param director body UpdateDirectorRequest true "Fields to change"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Router /api/directors/{id} [patch]
func (s *Server) handleUpdateDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateDirectorRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	d, err := s.DirectorService.UpdateDirector(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, d)
}

// handleDeleteDirector godoc
// @Summary Delete Director
// @Tags directors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Director ID"
// @Success 200 {object} APIResponse
// @Failure 404 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/directors/{id} [delete]
func (s *Server) handleDeleteDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := s.DirectorService.DeleteDirector(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeDeleted(c, deleted)
}
