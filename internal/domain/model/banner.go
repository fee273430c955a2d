package model

import "time"

// トップに出すプロモバナー。商品を1つ紐づけて常に1行だけ（PK固定）で運用する。
const PromoBannerSingletonID int64 = 1

type PromoBanner struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Message     string    `gorm:"type:varchar(255);not null" json:"message"`
	Description string    `gorm:"type:text" json:"description"`
	ProductID   string    `gorm:"type:varchar(36);not null" json:"product_id"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
