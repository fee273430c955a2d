package model

import "time"

// セット販売。「これを全部まとめた完成品」1つと構成商品のID群を持つ。
// プロモーション同様に1行だけ（PK固定）。
const BuySetSingletonID int64 = 1

type BuySet struct {
	ID            int64       `gorm:"primaryKey" json:"id"`
	CompleteSetID string      `gorm:"type:varchar(36);not null" json:"complete_set_id"`
	ProductIDs    StringSlice `gorm:"type:jsonb" json:"product_ids"`
	CreatedAt     time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
