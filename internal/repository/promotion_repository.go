package repository

import (
	"context"

	"app/internal/domain/model"
)

// ストアプロモーションは常に1行（PK固定）。
// 「どれか1件find」ではなく明示的なシングルトンとして読む。
type PromotionRepository interface {
	// 現在のプロモーション。まだ作られていなければ ok=false。
	GetCurrent(ctx context.Context) (model.StorePromotion, bool, error)

	// 固定PKでのupsert
	Upsert(ctx context.Context, p model.StorePromotion) (model.StorePromotion, error)
}
