package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewAdminOrderHandler(uc *usecase.OrderUsecase) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc}
}

type OrderEditRequest struct {
	OrderStatus   *string `json:"order_status"`
	State         *string `json:"state"`
	LGA           *string `json:"lga"`
	StreetAddress *string `json:"street_address"`
	CustomerNote  *string `json:"customer_note"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/orders", h.list)
	admin.PATCH("/orders/:id", h.edit)
	admin.POST("/orders/:id/cancel", h.cancel)
	admin.POST("/orders/:id/remind", h.remind)
	admin.POST("/orders/:id/payment-link", h.retryPaymentLink)
}

func (h *AdminOrderHandler) list(c echo.Context) error {
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

	var from *time.Time
	if v := c.QueryParam("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
		}
		from = &t
	}

	var to *time.Time
	if v := c.QueryParam("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
		}
		to = &t
	}

	items, total, err := h.uc.ListAdmin(c.Request().Context(), repo.AdminOrderListFilter{
		Page:          page,
		Limit:         limit,
		PaymentStatus: c.QueryParam("payment_status"),
		OrderStatus:   c.QueryParam("order_status"),
		Email:         c.QueryParam("email"),
		From:          from,
		To:            to,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": total,
	})
}

func (h *AdminOrderHandler) edit(c echo.Context) error {
	var req OrderEditRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	in := usecase.EditOrderInput{
		State:  req.State,
		LGA:    req.LGA,
		Street: req.StreetAddress,
		Note:   req.CustomerNote,
	}
	if req.OrderStatus != nil {
		st := model.OrderStatus(*req.OrderStatus)
		in.OrderStatus = &st
	}

	out, err := h.uc.Edit(c.Request().Context(), c.Param("id"), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) cancel(c echo.Context) error {
	if err := h.uc.Cancel(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *AdminOrderHandler) remind(c echo.Context) error {
	if err := h.uc.SendReminder(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "reminder sent"})
}

// リンク未発行の注文に対してもう一度発行を試す
func (h *AdminOrderHandler) retryPaymentLink(c echo.Context) error {
	out, err := h.uc.RetryPaymentLink(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
