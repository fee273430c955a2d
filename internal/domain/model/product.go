package model

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID              string         `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	Description     string         `gorm:"type:text" json:"description"`
	Price           float64        `gorm:"not null" json:"price"`
	HasDiscount     bool           `gorm:"not null;default:false" json:"has_discount"`
	DiscountedPrice float64        `gorm:"not null;default:0" json:"discounted_price"`
	Collection      string         `gorm:"type:varchar(120);not null;index" json:"collection"`
	Stock           int64          `gorm:"not null;default:0" json:"stock"`
	AvailableColors StringSlice    `gorm:"type:jsonb" json:"available_colors"`
	Images          StringSlice    `gorm:"type:jsonb" json:"images"`
	Rating          float64        `gorm:"not null;default:0" json:"rating"`
	IsNew           bool           `gorm:"not null;default:false" json:"is_new"`
	CreatedAt       time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// 自身の割引だけを適用した価格。ストアプロモーションはここでは見ない。
func (p Product) EffectivePrice() float64 {
	if p.HasDiscount {
		return p.DiscountedPrice
	}
	return p.Price
}
