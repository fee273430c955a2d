package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page          int
	Limit         int
	PaymentStatus string
	OrderStatus   string
	Email         string
	From          *time.Time
	To            *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByCustomerEmail(ctx context.Context, email string, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) error

	// 支払い未完の注文（新しい順）
	ListPendingByCustomer(ctx context.Context, email string) ([]model.Order, error)
	CancelOrders(ctx context.Context, orderIDs []string) error

	UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	UpdateFields(ctx context.Context, orderID string, fields map[string]interface{}) error

	// Pending→Paid を条件付きUPDATEひとつで行う。
	// 実際に遷移したときだけtrue（リプレイでは遷移しないのでfalse）。
	MarkPaidIfPending(ctx context.Context, orderID string) (bool, error)

	// 本人の支払い済み注文（支出集計用）
	ListPaidByCustomerEmail(ctx context.Context, email string) ([]model.Order, error)

	// 決済リンクの二段階書き込み
	SetPaymentLink(ctx context.Context, orderID string, link string) error

	// 管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// ダッシュボード向け集計
	PaidRevenue(ctx context.Context, from, to *time.Time) (float64, error)
	CountByPaymentStatus(ctx context.Context, status model.PaymentStatus) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
	ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error)
}
