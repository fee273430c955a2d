package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Googleログインと本人情報のAPI
type AuthHandler struct {
	uc *usecase.UserUsecase
}

func NewAuthHandler(uc *usecase.UserUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type GoogleLoginRequest struct {
	AccessToken string `json:"access_token"`
}

type AddressUpdateRequest struct {
	State string `json:"state"`
	LGA   string `json:"lga"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/auth/google", h.googleLogin)

	me := e.Group("/users/me")
	me.Use(middleware.AuthJWT(cfg))
	me.GET("", h.me)
	me.PUT("/address", h.updateAddress)
	me.GET("/expense-insight", h.expenseInsight)
}

func (h *AuthHandler) googleLogin(c echo.Context) error {
	var req GoogleLoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.Authenticate(c.Request().Context(), req.AccessToken)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) me(c echo.Context) error {
	email, ok := c.Get(middleware.CtxUserEmailKey).(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMe(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) expenseInsight(c echo.Context) error {
	email, ok := c.Get(middleware.CtxUserEmailKey).(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ExpenseInsight(c.Request().Context(), email)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) updateAddress(c echo.Context) error {
	email, ok := c.Get(middleware.CtxUserEmailKey).(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req AddressUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.uc.EditAddress(c.Request().Context(), email, req.State, req.LGA); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}
