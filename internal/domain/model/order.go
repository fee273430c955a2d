package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 決済リンクの取得状態。プロバイダ呼び出しが失敗しても注文は残すので、
// 「リンク未取得」を観測・再試行できる状態として持つ。
type PaymentLinkStatus string

const (
	PaymentLinkAwaiting PaymentLinkStatus = "AWAITING_LINK"
	PaymentLinkReady    PaymentLinkStatus = "READY"
)

type Order struct {
	ID            string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerName  string            `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerEmail string            `gorm:"type:varchar(255);not null;index" json:"customer_email"`
	CustomerPhone string            `gorm:"type:varchar(40)" json:"customer_phone"`
	CustomerNote  string            `gorm:"type:text" json:"customer_note"`
	State         string            `gorm:"type:varchar(80);not null" json:"state"`
	LGA           string            `gorm:"type:varchar(120)" json:"lga"`
	StreetAddress string            `gorm:"type:text" json:"street_address"`
	TotalAmount   float64           `gorm:"not null" json:"total_amount"`
	DeliveryFee   float64           `gorm:"not null" json:"delivery_fee"`
	PaymentStatus PaymentStatus     `gorm:"type:varchar(20);not null;index" json:"payment_status"`
	OrderStatus   OrderStatus       `gorm:"type:varchar(20);not null;index" json:"order_status"`
	PaymentLink   string            `gorm:"type:text;not null" json:"payment_link"`
	LinkStatus    PaymentLinkStatus `gorm:"type:varchar(20);not null" json:"link_status"`
	OrderDate     time.Time         `gorm:"not null;index" json:"order_date"`
	CreatedAt     time.Time         `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time         `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// totalAmount + deliveryFee。決済プロバイダに請求する金額。
func (o Order) GrandTotal() float64 {
	return o.TotalAmount + o.DeliveryFee
}
