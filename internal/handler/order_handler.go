package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 注文の公開API（作成・照会）と本人向けAPI
type OrderHandler struct {
	uc         *usecase.OrderUsecase
	adminEmail string
}

func NewOrderHandler(uc *usecase.OrderUsecase, adminEmail string) *OrderHandler {
	return &OrderHandler{uc: uc, adminEmail: adminEmail}
}

type CreateOrderRequest struct {
	CustomerName  string                   `json:"customer_name"`
	CustomerEmail string                   `json:"customer_email"`
	CustomerPhone string                   `json:"customer_phone"`
	CustomerNote  string                   `json:"customer_note"`
	State         string                   `json:"state"`
	LGA           string                   `json:"lga"`
	StreetAddress string                   `json:"street_address"`
	Items         []usecase.OrderItemInput `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/orders", h.create)
	e.GET("/orders/:id", h.detail)
	e.POST("/orders/:id/claim-payment", h.claimPayment)

	// ログイン済みユーザーの注文履歴
	mine := e.Group("/users/me/orders")
	mine.Use(middleware.AuthJWT(cfg))
	mine.GET("", h.listMine)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.uc.CreateOrder(c.Request().Context(), usecase.CreateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		CustomerNote:  req.CustomerNote,
		State:         req.State,
		LGA:           req.LGA,
		StreetAddress: req.StreetAddress,
		Items:         req.Items,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 「支払ったのに反映されない」をサポート窓口へ流す
func (h *OrderHandler) claimPayment(c echo.Context) error {
	if err := h.uc.ClaimPayment(c.Request().Context(), c.Param("id"), h.adminEmail); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusAccepted, map[string]string{"status": "claim received"})
}

type orderListResponse struct {
	Items []usecase.OrderOutput `json:"items"`
	Total int64                 `json:"total"`
}

func (h *OrderHandler) listMine(c echo.Context) error {
	email, ok := c.Get(middleware.CtxUserEmailKey).(string)
	if !ok || email == "" {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	items, total, err := h.uc.ListByCustomer(c.Request().Context(), email, page, limit)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, orderListResponse{Items: items, Total: total})
}
