package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminDashboardHandler struct {
	dashboard  *usecase.DashboardUsecase
	newsletter *usecase.NewsletterUsecase
}

func NewAdminDashboardHandler(dashboard *usecase.DashboardUsecase, newsletter *usecase.NewsletterUsecase) *AdminDashboardHandler {
	return &AdminDashboardHandler{dashboard: dashboard, newsletter: newsletter}
}

func (h *AdminDashboardHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/dashboard", h.summary)
	admin.GET("/dashboard/sales", h.sales)
	admin.GET("/newsletter", h.subscribers)
	admin.DELETE("/newsletter/:email", h.unsubscribe)
}

func (h *AdminDashboardHandler) summary(c echo.Context) error {
	out, err := h.dashboard.Summary(c.Request().Context(), time.Now())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminDashboardHandler) sales(c echo.Context) error {
	months := 6
	if v := c.QueryParam("months"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid months"})
		}
		months = m
	}

	out, err := h.dashboard.SalesOverview(c.Request().Context(), time.Now(), months)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"series": out})
}

func (h *AdminDashboardHandler) subscribers(c echo.Context) error {
	out, err := h.newsletter.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"items": out})
}

func (h *AdminDashboardHandler) unsubscribe(c echo.Context) error {
	if err := h.newsletter.Remove(c.Request().Context(), c.Param("email")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "removed"})
}
