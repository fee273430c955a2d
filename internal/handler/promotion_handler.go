package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 現在のセール情報とバナーの公開API
type PromotionHandler struct {
	uc      *usecase.PromotionUsecase
	banners *usecase.BannerUsecase
}

func NewPromotionHandler(uc *usecase.PromotionUsecase, banners *usecase.BannerUsecase) *PromotionHandler {
	return &PromotionHandler{uc: uc, banners: banners}
}

func (h *PromotionHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/promotions/current", h.current)
	e.GET("/promotions/banner", h.banner)
}

func (h *PromotionHandler) current(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *PromotionHandler) banner(c echo.Context) error {
	out, err := h.banners.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
