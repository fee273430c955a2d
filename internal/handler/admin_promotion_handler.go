package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminPromotionHandler struct {
	uc      *usecase.PromotionUsecase
	banners *usecase.BannerUsecase
}

func NewAdminPromotionHandler(uc *usecase.PromotionUsecase, banners *usecase.BannerUsecase) *AdminPromotionHandler {
	return &AdminPromotionHandler{uc: uc, banners: banners}
}

type SaveBannerRequest struct {
	Message     string `json:"message"`
	Description string `json:"description"`
	ProductID   string `json:"product_id"`
}

type SavePromotionRequest struct {
	DiscountPercentage float64  `json:"discount_percentage"`
	ApplicableTo       string   `json:"applicable_to"`
	ProductIDs         []string `json:"product_ids"`
	StartDate          string   `json:"start_date"`
	EndDate            string   `json:"end_date"`
	IsActive           bool     `json:"is_active"`
}

func (h *AdminPromotionHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.GET("/promotion", h.get)
	admin.PUT("/promotion", h.save)
	admin.PUT("/promotion/banner", h.saveBanner)
}

func (h *AdminPromotionHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 店舗セールは常に1件。PUTで上書きする。
func (h *AdminPromotionHandler) save(c echo.Context) error {
	var req SavePromotionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	start, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid start_date"})
	}
	end, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid end_date"})
	}

	out, err := h.uc.Save(c.Request().Context(), usecase.SavePromotionInput{
		DiscountPercentage: req.DiscountPercentage,
		ApplicableTo:       model.PromotionScope(req.ApplicableTo),
		ProductIDs:         req.ProductIDs,
		StartDate:          start,
		EndDate:            end,
		IsActive:           req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// バナーも1件だけ。作成と編集を分けない。
func (h *AdminPromotionHandler) saveBanner(c echo.Context) error {
	var req SaveBannerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.banners.Save(c.Request().Context(), usecase.SaveBannerInput{
		Message:     req.Message,
		Description: req.Description,
		ProductID:   req.ProductID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
