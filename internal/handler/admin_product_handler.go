package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminProductHandler struct {
	products    *usecase.ProductUsecase
	collections *usecase.CollectionUsecase
	buySets     *usecase.BuySetUsecase
}

func NewAdminProductHandler(products *usecase.ProductUsecase, collections *usecase.CollectionUsecase, buySets *usecase.BuySetUsecase) *AdminProductHandler {
	return &AdminProductHandler{products: products, collections: collections, buySets: buySets}
}

type SaveProductRequest struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	HasDiscount     bool     `json:"has_discount"`
	DiscountedPrice float64  `json:"discounted_price"`
	Collection      string   `json:"collection"`
	Stock           int64    `json:"stock"`
	AvailableColors []string `json:"available_colors"`
	Images          []string `json:"images"`
	Rating          float64  `json:"rating"`
	IsNew           bool     `json:"is_new"`
}

type SetStockRequest struct {
	Stock  int64  `json:"stock"`
	Reason string `json:"reason"`
}

type RestockRequest struct {
	Quantity int64  `json:"quantity"`
	Reason   string `json:"reason"`
}

type SaveBuySetRequest struct {
	CompleteSetID string   `json:"complete_set_id"`
	ProductIDs    []string `json:"product_ids"`
}

type CreateCollectionRequest struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Image string `json:"image"`
}

func (h *AdminProductHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.RequireRole(model.RoleAdmin))

	admin.POST("/products", h.create)
	admin.PUT("/products/:id", h.edit)
	admin.DELETE("/products/:id", h.delete)
	admin.PUT("/products/:id/stock", h.setStock)
	admin.POST("/products/:id/restock", h.restock)
	admin.PUT("/products/set", h.saveBuySet)
	admin.POST("/collections", h.createCollection)
}

func (r SaveProductRequest) toInput() usecase.SaveProductInput {
	return usecase.SaveProductInput{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		HasDiscount:     r.HasDiscount,
		DiscountedPrice: r.DiscountedPrice,
		Collection:      r.Collection,
		Stock:           r.Stock,
		AvailableColors: r.AvailableColors,
		Images:          r.Images,
		Rating:          r.Rating,
		IsNew:           r.IsNew,
	}
}

func (h *AdminProductHandler) create(c echo.Context) error {
	var req SaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	out, err := h.products.Create(c.Request().Context(), actor, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *AdminProductHandler) edit(c echo.Context) error {
	var req SaveProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	out, err := h.products.Edit(c.Request().Context(), actor, c.Param("id"), req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) delete(c echo.Context) error {
	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.products.Delete(c.Request().Context(), actor, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *AdminProductHandler) setStock(c echo.Context) error {
	var req SetStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.products.SetStock(c.Request().Context(), actor, c.Param("id"), req.Stock, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}

func (h *AdminProductHandler) restock(c echo.Context) error {
	var req RestockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	actor, _ := c.Get(middleware.CtxUserEmailKey).(string)
	if err := h.products.Restock(c.Request().Context(), actor, c.Param("id"), req.Quantity, req.Reason); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "restocked"})
}

// セット販売は常に1件。PUTで上書きする。
func (h *AdminProductHandler) saveBuySet(c echo.Context) error {
	var req SaveBuySetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.buySets.Save(c.Request().Context(), req.CompleteSetID, req.ProductIDs)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminProductHandler) createCollection(c echo.Context) error {
	var req CreateCollectionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.collections.Create(c.Request().Context(), req.Name, req.Slug, req.Image)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
