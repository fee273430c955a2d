package handler

import (
	"net/http"

	"app/internal/payment"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 決済プロバイダからのwebhook受け口。
// 署名検証はusecase側で行う。
type WebhookHandler struct {
	uc *usecase.WebhookUsecase
}

func NewWebhookHandler(uc *usecase.WebhookUsecase) *WebhookHandler {
	return &WebhookHandler{uc: uc}
}

func (h *WebhookHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/webhook", h.receive)
}

func (h *WebhookHandler) receive(c echo.Context) error {
	var ev payment.WebhookEvent
	if err := c.Bind(&ev); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	signature := c.Request().Header.Get(payment.SignatureHeader)

	if err := h.uc.Receive(c.Request().Context(), signature, ev); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
