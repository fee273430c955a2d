package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// セット販売。完成品1つ＋構成商品のシングルトン。
type BuySetUsecase struct {
	sets     repo.BuySetRepository
	products repo.ProductRepository
}

func NewBuySetUsecase(sets repo.BuySetRepository, products repo.ProductRepository) *BuySetUsecase {
	return &BuySetUsecase{sets: sets, products: products}
}

func (u *BuySetUsecase) Save(ctx context.Context, completeSetID string, productIDs []string) (model.BuySet, error) {
	if strings.TrimSpace(completeSetID) == "" {
		return model.BuySet{}, NewHTTPError(http.StatusBadRequest, "invalid complete set id")
	}

	//完成品＋構成商品を1回の検索でまとめて存在確認する
	ids := append([]string{completeSetID}, productIDs...)
	found, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return model.BuySet{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]struct{}, len(found))
	for _, p := range found {
		byID[p.ID] = struct{}{}
	}
	if _, ok := byID[completeSetID]; !ok {
		return model.BuySet{}, NewHTTPError(http.StatusBadRequest, "invalid complete set id")
	}
	for _, id := range productIDs {
		if _, ok := byID[id]; !ok {
			return model.BuySet{}, NewHTTPError(http.StatusBadRequest, "invalid product id found")
		}
	}

	saved, err := u.sets.Upsert(ctx, model.BuySet{
		CompleteSetID: completeSetID,
		ProductIDs:    productIDs,
	})
	if err != nil {
		return model.BuySet{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return saved, nil
}

type BuySetOutput struct {
	Set         model.BuySet    `json:"set"`
	CompleteSet model.Product   `json:"complete_set"`
	Products    []model.Product `json:"products"`
}

func (u *BuySetUsecase) Get(ctx context.Context) (BuySetOutput, error) {
	s, ok, err := u.sets.Get(ctx)
	if err != nil {
		return BuySetOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		return BuySetOutput{}, NewHTTPError(http.StatusNotFound, "no buy set configured")
	}

	complete, err := u.products.FindByID(ctx, s.CompleteSetID)
	if errors.Is(err, repo.ErrNotFound) {
		//完成品が消えたセットは提示できない
		return BuySetOutput{}, NewHTTPError(http.StatusNotFound, "no buy set configured")
	}
	if err != nil {
		return BuySetOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	products, err := u.products.FindByIDs(ctx, s.ProductIDs)
	if err != nil {
		return BuySetOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BuySetOutput{Set: s, CompleteSet: complete, Products: products}, nil
}
