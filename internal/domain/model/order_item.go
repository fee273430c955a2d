package model

import "time"

// 注文時点の商品スナップショット。以後カタログを編集しても注文履歴は変わらない。
type OrderItem struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID            string    `gorm:"type:varchar(36);not null;index" json:"order_id"`
	ProductID          string    `gorm:"type:varchar(36);not null;index" json:"product_id"`
	NameSnapshot       string    `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	PriceSnapshot      float64   `gorm:"not null" json:"price_snapshot"`
	HasDiscount        bool      `gorm:"not null;default:false" json:"has_discount"`
	DiscountedSnapshot float64   `gorm:"not null;default:0" json:"discounted_snapshot"`
	ColorPreference    string    `gorm:"type:varchar(60)" json:"color_preference"`
	CollectionSnapshot string    `gorm:"type:varchar(120)" json:"collection_snapshot"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
