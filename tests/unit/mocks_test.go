package unit

import (
	"context"
	"time"

	"app/internal/domain/model"
	"app/internal/mail"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（usecaseテスト共用）
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByCustomerEmail(ctx context.Context, email string, page, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, email, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) ListPendingByCustomer(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) CancelOrders(ctx context.Context, orderIDs []string) error {
	args := m.Called(ctx, orderIDs)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateFields(ctx context.Context, orderID string, fields map[string]interface{}) error {
	args := m.Called(ctx, orderID, fields)
	return args.Error(0)
}

func (m *OrderRepoMock) MarkPaidIfPending(ctx context.Context, orderID string) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *OrderRepoMock) ListPaidByCustomerEmail(ctx context.Context, email string) ([]model.Order, error) {
	args := m.Called(ctx, email)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) SetPaymentLink(ctx context.Context, orderID string, link string) error {
	args := m.Called(ctx, orderID, link)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) PaidRevenue(ctx context.Context, from, to *time.Time) (float64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(float64), args.Error(1)
}

func (m *OrderRepoMock) CountByPaymentStatus(ctx context.Context, status model.PaymentStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderIDs(ctx context.Context, orderIDs []string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderIDs)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByIDs(ctx context.Context, ids []string) ([]model.Product, error) {
	args := m.Called(ctx, ids)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) BestSelling(ctx context.Context, limit int) ([]model.Product, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) LatestDiscounted(ctx context.Context) (model.Product, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) SampleRandom(ctx context.Context, collection string, size int) ([]model.Product, error) {
	args := m.Called(ctx, collection, size)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID string, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

func (m *InventoryRepoMock) DecrementStockIfAvailable(ctx context.Context, productID string, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, productID string, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error {
	args := m.Called(ctx, adjustment)
	return args.Error(0)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) UpsertByEmail(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	saved, _ := args.Get(0).(model.User)
	return saved, args.Error(1)
}

func (m *UserRepoMock) UpdateAddress(ctx context.Context, email string, state, lga string) error {
	args := m.Called(ctx, email, state, lga)
	return args.Error(0)
}

func (m *UserRepoMock) UpdateRole(ctx context.Context, email string, role model.Role) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

func (m *UserRepoMock) IncrementRecentOrders(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *UserRepoMock) AddTotalSpent(ctx context.Context, email string, amount float64) error {
	args := m.Called(ctx, email, amount)
	return args.Error(0)
}

func (m *UserRepoMock) List(ctx context.Context, page, limit int) ([]model.User, int64, error) {
	args := m.Called(ctx, page, limit)
	users, _ := args.Get(0).([]model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *UserRepoMock) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepoMock) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type PromotionRepoMock struct{ mock.Mock }

func (m *PromotionRepoMock) GetCurrent(ctx context.Context) (model.StorePromotion, bool, error) {
	args := m.Called(ctx)
	p, _ := args.Get(0).(model.StorePromotion)
	return p, args.Bool(1), args.Error(2)
}

func (m *PromotionRepoMock) Upsert(ctx context.Context, p model.StorePromotion) (model.StorePromotion, error) {
	args := m.Called(ctx, p)
	saved, _ := args.Get(0).(model.StorePromotion)
	return saved, args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type BannerRepoMock struct{ mock.Mock }

func (m *BannerRepoMock) Get(ctx context.Context) (model.PromoBanner, bool, error) {
	args := m.Called(ctx)
	b, _ := args.Get(0).(model.PromoBanner)
	return b, args.Bool(1), args.Error(2)
}

func (m *BannerRepoMock) Upsert(ctx context.Context, b model.PromoBanner) (model.PromoBanner, error) {
	args := m.Called(ctx, b)
	saved, _ := args.Get(0).(model.PromoBanner)
	return saved, args.Error(1)
}

type BuySetRepoMock struct{ mock.Mock }

func (m *BuySetRepoMock) Get(ctx context.Context) (model.BuySet, bool, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(model.BuySet)
	return s, args.Bool(1), args.Error(2)
}

func (m *BuySetRepoMock) Upsert(ctx context.Context, s model.BuySet) (model.BuySet, error) {
	args := m.Called(ctx, s)
	saved, _ := args.Get(0).(model.BuySet)
	return saved, args.Error(1)
}

type MessageRepoMock struct{ mock.Mock }

func (m *MessageRepoMock) Get(ctx context.Context) (model.AdminMessage, bool, error) {
	args := m.Called(ctx)
	msg, _ := args.Get(0).(model.AdminMessage)
	return msg, args.Bool(1), args.Error(2)
}

func (m *MessageRepoMock) Upsert(ctx context.Context, msg model.AdminMessage) (model.AdminMessage, error) {
	args := m.Called(ctx, msg)
	saved, _ := args.Get(0).(model.AdminMessage)
	return saved, args.Error(1)
}

func (m *MessageRepoMock) Delete(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type NewsletterRepoMock struct{ mock.Mock }

func (m *NewsletterRepoMock) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *NewsletterRepoMock) Create(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *NewsletterRepoMock) List(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.NewsletterSubscriber)
	return items, args.Error(1)
}

func (m *NewsletterRepoMock) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type CollectionRepoMock struct{ mock.Mock }

func (m *CollectionRepoMock) List(ctx context.Context) ([]model.Collection, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Collection)
	return items, args.Error(1)
}

func (m *CollectionRepoMock) FindBySlug(ctx context.Context, slug string) (model.Collection, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Collection)
	return c, args.Error(1)
}

func (m *CollectionRepoMock) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	args := m.Called(ctx, c)
	created, _ := args.Get(0).(model.Collection)
	return created, args.Error(1)
}

// TxManagerMockはトランザクションを開かず同じモック群をそのまま渡す
type TxManagerMock struct {
	OrderRepo     *OrderRepoMock
	OrderItemRepo *OrderItemRepoMock
	ProductRepo   *ProductRepoMock
	InventoryRepo *InventoryRepoMock
	UserRepo      *UserRepoMock
	PromotionRepo *PromotionRepoMock
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m)
}

func (m *TxManagerMock) Orders() repo.OrderRepository         { return m.OrderRepo }
func (m *TxManagerMock) OrderItems() repo.OrderItemRepository { return m.OrderItemRepo }
func (m *TxManagerMock) Products() repo.ProductRepository     { return m.ProductRepo }
func (m *TxManagerMock) Inventory() repo.InventoryRepository  { return m.InventoryRepo }
func (m *TxManagerMock) Users() repo.UserRepository           { return m.UserRepo }
func (m *TxManagerMock) Promotions() repo.PromotionRepository { return m.PromotionRepo }

type ProviderMock struct{ mock.Mock }

func (m *ProviderMock) InitiatePayment(ctx context.Context, in payment.InitiateInput) (string, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Error(1)
}

func (m *ProviderMock) VerifyTransaction(ctx context.Context, transactionID int64) (payment.VerifyResult, error) {
	args := m.Called(ctx, transactionID)
	res, _ := args.Get(0).(payment.VerifyResult)
	return res, args.Error(1)
}

// MailerMockは送信内容を貯めるだけ
type MailerMock struct {
	Sent []mail.Message
	Err  error
}

func (m *MailerMock) Send(msg mail.Message) error {
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}
