package model

import "time"

type PromotionScope string

const (
	PromotionAllProducts      PromotionScope = "AllProducts"
	PromotionSelectedProducts PromotionScope = "SelectedProducts"
)

// ストア全体のプロモーション。常に1行だけ（PK固定）で運用する。
// 価格計算はIsActiveだけを見る。日付ウィンドウは現状未チェック（既知のギャップ）。
const StorePromotionSingletonID int64 = 1

type StorePromotion struct {
	ID                 int64          `gorm:"primaryKey" json:"id"`
	DiscountPercentage float64        `gorm:"not null" json:"discount_percentage"`
	ApplicableTo       PromotionScope `gorm:"type:varchar(30);not null" json:"applicable_to"`
	ProductIDs         StringSlice    `gorm:"type:jsonb" json:"product_ids"`
	StartDate          time.Time      `gorm:"not null" json:"start_date"`
	EndDate            time.Time      `gorm:"not null" json:"end_date"`
	IsActive           bool           `gorm:"not null;default:false" json:"is_active"`
	CreatedAt          time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
