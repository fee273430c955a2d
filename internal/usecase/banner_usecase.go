package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// トップのプロモバナー。商品1つに紐づくシングルトン。
type BannerUsecase struct {
	banners  repo.BannerRepository
	products repo.ProductRepository
}

func NewBannerUsecase(banners repo.BannerRepository, products repo.ProductRepository) *BannerUsecase {
	return &BannerUsecase{banners: banners, products: products}
}

type SaveBannerInput struct {
	Message     string
	Description string
	ProductID   string
}

func (u *BannerUsecase) Save(ctx context.Context, in SaveBannerInput) (model.PromoBanner, error) {
	if strings.TrimSpace(in.Message) == "" {
		return model.PromoBanner{}, NewHTTPError(http.StatusBadRequest, "message is required")
	}

	//存在しない商品のバナーは作らせない
	_, err := u.products.FindByID(ctx, in.ProductID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.PromoBanner{}, NewHTTPError(http.StatusBadRequest, "no product with this id")
	}
	if err != nil {
		return model.PromoBanner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	saved, err := u.banners.Upsert(ctx, model.PromoBanner{
		Message:     in.Message,
		Description: in.Description,
		ProductID:   in.ProductID,
	})
	if err != nil {
		return model.PromoBanner{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

type BannerOutput struct {
	Banner  model.PromoBanner `json:"banner"`
	Product *model.Product    `json:"product"`
}

func (u *BannerUsecase) Get(ctx context.Context) (BannerOutput, error) {
	b, ok, err := u.banners.Get(ctx)
	if err != nil {
		return BannerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return BannerOutput{}, NewHTTPError(http.StatusNotFound, "no banner configured")
	}

	out := BannerOutput{Banner: b}

	//紐づく商品が消えていてもバナー自体は返す
	p, err := u.products.FindByID(ctx, b.ProductID)
	if err == nil {
		out.Product = &p
	} else if !errors.Is(err, repo.ErrNotFound) {
		return BannerOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return out, nil
}
