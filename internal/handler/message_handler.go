package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// ストアからのお知らせ。読むのは誰でも、出す・消すのは管理者。
type MessageHandler struct {
	uc *usecase.MessageUsecase
}

func NewMessageHandler(uc *usecase.MessageUsecase) *MessageHandler {
	return &MessageHandler{uc: uc}
}

type SendMessageRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (h *MessageHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/messages", h.get)

	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/messages", h.send)
	admin.DELETE("/messages", h.delete)
}

func (h *MessageHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) send(c echo.Context) error {
	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	out, err := h.uc.Send(c.Request().Context(), actor, req.Title, req.Message)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *MessageHandler) delete(c echo.Context) error {
	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.uc.Delete(c.Request().Context(), actor); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}
