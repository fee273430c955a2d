package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminUserHandler struct {
	users *usecase.UserUsecase
	audit *usecase.AuditUsecase
}

func NewAdminUserHandler(users *usecase.UserUsecase, audit *usecase.AuditUsecase) *AdminUserHandler {
	return &AdminUserHandler{users: users, audit: audit}
}

type AssignRoleRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (h *AdminUserHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/users", h.list)

	// 破壊的な操作とロール変更はsuperuserのみ
	super := e.Group("/admin")
	super.Use(middleware.AuthJWT(cfg))
	super.Use(middleware.RequireRole(model.RoleSuperuser))

	super.DELETE("/users/:id", h.delete)
	super.PUT("/users/role", h.assignRole)
	super.GET("/audit-logs", h.auditLogs)
}

func (h *AdminUserHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.users.List(c.Request().Context(), page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminUserHandler) delete(c echo.Context) error {
	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.users.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminUserHandler) assignRole(c echo.Context) error {
	var req AssignRoleRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.users.AssignRole(c.Request().Context(), actor, req.Email, model.Role(req.Role)); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminUserHandler) auditLogs(c echo.Context) error {
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.audit.List(c.Request().Context(), repo.AuditLogFilter{
		ActorEmail: c.QueryParam("actor"),
		Action:     c.QueryParam("action"),
		Limit:      limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"items": out})
}
