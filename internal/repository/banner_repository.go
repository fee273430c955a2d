package repository

import (
	"context"

	"app/internal/domain/model"
)

type BannerRepository interface {
	// 2番目の返り値は「設定済みかどうか」
	Get(ctx context.Context) (model.PromoBanner, bool, error)
	Upsert(ctx context.Context, b model.PromoBanner) (model.PromoBanner, error)
}

type BuySetRepository interface {
	Get(ctx context.Context) (model.BuySet, bool, error)
	Upsert(ctx context.Context, s model.BuySet) (model.BuySet, error)
}
