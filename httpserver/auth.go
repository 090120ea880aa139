package httpserver

import (
	"net/http"

	"moviecatalog/pkg/jwt"

	gojwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// refreshTokenKey is where echo-jwt stores the verified refresh token.
const refreshTokenKey = "refresh_token"

func (s *Server) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/auth/register", s.handleRegister)
	g.POST("/auth/login", s.handleLogin)
	g.POST("/auth/token/access", s.handleRotateAccessToken, echojwt.WithConfig(echojwt.Config{
		ContextKey:    refreshTokenKey,
		KeyFunc:       s.Tokens.KeyFunc(jwt.TypeRefresh),
		SigningMethod: gojwt.SigningMethodHS256.Alg(),
		NewClaimsFunc: func(echo.Context) gojwt.Claims {
			return new(jwt.Claims)
		},
		ErrorHandler: func(echo.Context, error) error {
			return jwt.ErrInvalidToken
		},
	}))
}

func (s *Server) RegisterPrivateAuthRoutes(g *echo.Group) {
	g.GET("/auth/private", s.handlePrivate, requireAccess)
}

// handleRegister godoc
// @Summary User Register
// @Description Register a regular user from a Basic authorization header
// @Tags auth
// @Produce json
// @Param Authorization header string true "Basic base64(email:password)"
// @Success 201 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 409 {object} APIResponse
// @Router /api/auth/register [post]
func (s *Server) handleRegister(c echo.Context) error {
	u, err := s.AuthService.Register(
		c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization),
	)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusCreated, u)
}

// handleLogin godoc
// @Summary User Login
// @Description Authenticate a Basic authorization header and return access + refresh tokens
// @Tags auth
// @Produce json
// @Param Authorization header string true "Basic base64(email:password)"
// @Success 200 {object} APIResponse
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/auth/login [post]
func (s *Server) handleLogin(c echo.Context) error {
	tokens, err := s.AuthService.Login(
		c.Request().Context(),
		c.Request().Header.Get(echo.HeaderAuthorization),
	)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, tokens)
}

// handleRotateAccessToken godoc
// @Summary Rotate Access Token
// @Description Issue a new access token for a valid refresh token
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer <refresh token>"
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/token/access [post]
func (s *Server) handleRotateAccessToken(c echo.Context) error {
	token, ok := c.Get(refreshTokenKey).(*gojwt.Token)
	if !ok {
		return jwt.ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.Claims)
	if !ok || claims.Type != jwt.TypeRefresh {
		return jwt.ErrTokenType
	}
	userID, err := claims.UserID()
	if err != nil {
		return err
	}

	accessToken, err := s.AuthService.RotateAccessToken(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return writeSuccess(c, http.StatusOK, map[string]string{
		"accessToken": accessToken,
	})
}

// handlePrivate godoc
// @Summary Who Am I
// @Description Echo the claims of the presented access token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/auth/private [get]
func (s *Server) handlePrivate(c echo.Context) error {
	claims, _ := claimsFrom(c)
	return writeSuccess(c, http.StatusOK, map[string]interface{}{
		"sub":  claims.Subject,
		"role": claims.Role,
		"type": claims.Type,
	})
}
