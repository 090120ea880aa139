package httpserver

import (
	"net/http"

	"moviecatalog/user"

	"github.com/labstack/echo/v4"
)

func (s *Server) RegisterUserRoutes(g *echo.Group) {
	users := g.Group("/users", requireAccess, requireRole(user.RoleAdmin))
	users.GET("", s.handleListUsers)
	users.POST("", s.handleAddUser)
	users.GET("/:id", s.handleGetUser)
	users.PATCH("/:id", s.handleUpdateUser)
	users.DELETE("/:id", s.handleDeleteUser)
}

// handleAddUser godoc
// @Summary Create User
// @Description Add a new user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body CreateUserRequest true "User Data"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/users [post]
func (s *Server) handleAddUser(c echo.Context) error {
	var req CreateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	u, err := s.UserService.CreateUser(c.Request().Context(), req.ToUser())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, u)
}

// handleListUsers godoc
// @Summary List Users
// @Description Get a page of users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, default 1"
// @Param take query int false "Page size (1-100), default 5"
// @Success 200 {object} APIResponse
// @Router /api/users [get]
func (s *Server) handleListUsers(c echo.Context) error {
	var req PageRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	page := req.ToPage()
	users, total, err := s.UserService.ListUsers(c.Request().Context(), page)
	if err != nil {
		return err
	}
	return writePagedList(c, http.StatusOK, users, page.Page, page.Take, total)
}

func (s *Server) handleGetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	u, err := s.UserService.GetUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, u)
}

func (s *Server) handleUpdateUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req UpdateUserRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	u, err := s.UserService.UpdateUser(c.Request().Context(), id, req.ToInput())
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	deleted, err := s.UserService.DeleteUser(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return writeDeleted(c, deleted)
}
