package controller

import (
	"errors"
	"net/http"

	"github.com/alimikegami/storefront-service/internal/auth"
	"github.com/alimikegami/storefront-service/internal/dto"
	"github.com/alimikegami/storefront-service/internal/service"
	"github.com/alimikegami/storefront-service/pkg/errs"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// AdminController answers with the flat bodies the admin pages expect rather than the envelope.
type AdminController struct {
	service    service.AdminService
	sessions   *auth.Sessions
	authorizer *auth.Authorizer
}

func CreateAdminController(g *echo.Group, service service.AdminService, sessions *auth.Sessions, authorizer *auth.Authorizer, requireAdmin echo.MiddlewareFunc) {
	c := AdminController{
		service:    service,
		sessions:   sessions,
		authorizer: authorizer,
	}
	g.POST("/admin/login", c.Login)
	g.GET("/admin/check", c.Check)
	g.POST("/admin/logout", c.Logout)
	g.POST("/revalidate", c.Revalidate, requireAdmin)
}

func (c *AdminController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := e.Bind(&payload); err != nil {
		log.Ctx(e.Request().Context()).Warn().Err(err).Str("component", "Login").Msg("malformed login body")
		return e.JSON(http.StatusBadRequest, dto.LoginResponse{Success: false, Message: errs.ErrClient.Error()})
	}

	session, err := c.service.Login(e.Request().Context(), payload)
	if errors.Is(err, errs.ErrInvalidCredentials) {
		return e.JSON(http.StatusUnauthorized, dto.LoginResponse{Success: false, Message: errs.ErrInvalidCredentials.Error()})
	}
	if err != nil {
		return e.JSON(http.StatusInternalServerError, dto.LoginResponse{Success: false, Message: errs.ErrInternalServer.Error()})
	}

	e.SetCookie(c.sessions.Cookie(session.Token, session.ExpiresAt))
	return e.JSON(http.StatusOK, dto.LoginResponse{Success: true})
}

// Check never fails; an absent or invalid session is reported as isAdmin false.
func (c *AdminController) Check(e echo.Context) error {
	return e.JSON(http.StatusOK, dto.SessionResponse{IsAdmin: c.authorizer.IsAdmin(e.Request())})
}

func (c *AdminController) Logout(e echo.Context) error {
	e.SetCookie(c.sessions.ClearCookie())
	return e.JSON(http.StatusOK, dto.LoginResponse{Success: true})
}

func (c *AdminController) Revalidate(e echo.Context) error {
	payload := dto.RevalidateRequest{}
	if err := e.Bind(&payload); err != nil {
		return e.JSON(http.StatusBadRequest, dto.RevalidateResponse{Error: errs.ErrClient.Error()})
	}
	if err := e.Validate(&payload); err != nil {
		return e.JSON(http.StatusBadRequest, dto.RevalidateResponse{Error: "path must start with /"})
	}

	if err := c.service.Revalidate(e.Request().Context(), payload.Path); err != nil {
		log.Ctx(e.Request().Context()).Error().Err(err).Str("component", "Revalidate").Str("path", payload.Path).Msg("")
		return e.JSON(http.StatusInternalServerError, dto.RevalidateResponse{Error: "Error revalidating"})
	}

	return e.JSON(http.StatusOK, dto.RevalidateResponse{Revalidated: true, Path: payload.Path})
}
