package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type PromotionUsecase struct {
	promos   repo.PromotionRepository
	products repo.ProductRepository
}

func NewPromotionUsecase(promos repo.PromotionRepository, products repo.ProductRepository) *PromotionUsecase {
	return &PromotionUsecase{promos: promos, products: products}
}

type SavePromotionInput struct {
	DiscountPercentage float64
	ApplicableTo       model.PromotionScope
	ProductIDs         []string
	StartDate          time.Time
	EndDate            time.Time
	IsActive           bool
}

// シングルトンのupsert。2件目は作れない。
func (u *PromotionUsecase) Save(ctx context.Context, in SavePromotionInput) (model.StorePromotion, error) {
	if in.DiscountPercentage < 0 || in.DiscountPercentage > 100 {
		return model.StorePromotion{}, NewHTTPError(http.StatusBadRequest, "discount percentage must be between 0 and 100")
	}
	if in.StartDate.IsZero() || in.EndDate.IsZero() {
		return model.StorePromotion{}, NewHTTPError(http.StatusBadRequest, "missing required fields")
	}
	if in.EndDate.Before(in.StartDate) {
		return model.StorePromotion{}, NewHTTPError(http.StatusBadRequest, "end date must be after start date")
	}

	switch in.ApplicableTo {
	case model.PromotionAllProducts:
		in.ProductIDs = nil
	case model.PromotionSelectedProducts:
		if len(in.ProductIDs) == 0 {
			return model.StorePromotion{}, NewHTTPError(http.StatusBadRequest, "please select a product to apply this discount to")
		}
	default:
		return model.StorePromotion{}, NewHTTPError(http.StatusBadRequest, "invalid applicable_to")
	}

	saved, err := u.promos.Upsert(ctx, model.StorePromotion{
		DiscountPercentage: in.DiscountPercentage,
		ApplicableTo:       in.ApplicableTo,
		ProductIDs:         in.ProductIDs,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		IsActive:           in.IsActive,
	})
	if err != nil {
		return model.StorePromotion{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

type PromotionOutput struct {
	Promotion model.StorePromotion `json:"promotion"`
	Products  []model.Product      `json:"products"`
}

func (u *PromotionUsecase) Get(ctx context.Context) (PromotionOutput, error) {
	p, ok, err := u.promos.GetCurrent(ctx)
	if err != nil {
		return PromotionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return PromotionOutput{}, NewHTTPError(http.StatusNotFound, "no promotion configured")
	}

	products, err := u.products.FindByIDs(ctx, p.ProductIDs)
	if err != nil {
		return PromotionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PromotionOutput{Promotion: p, Products: products}, nil
}
