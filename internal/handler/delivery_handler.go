package handler

import (
	"net/http"
	"strconv"

	"app/internal/delivery"

	"github.com/labstack/echo/v4"
)

// 配送対象の州と送料の公開API
type DeliveryHandler struct{}

func NewDeliveryHandler() *DeliveryHandler {
	return &DeliveryHandler{}
}

func (h *DeliveryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/delivery/states", h.states)
	e.GET("/delivery/fee", h.fee)
}

func (h *DeliveryHandler) states(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"states": delivery.States()})
}

type deliveryFeeResponse struct {
	State    string  `json:"state"`
	Quantity int     `json:"quantity"`
	Fee      float64 `json:"fee"`
}

func (h *DeliveryHandler) fee(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "state is required"})
	}

	quantity := 1
	if v := c.QueryParam("quantity"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
		}
		quantity = q
	}

	fee, ok := delivery.FeeForQuantity(state, quantity)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "delivery is not available for this state"})
	}

	return c.JSON(http.StatusOK, deliveryFeeResponse{State: state, Quantity: quantity, Fee: fee})
}
