package unit

import (
	"context"
	"errors"
	"testing"

	"app/internal/domain/model"
	"app/internal/payment"
	"app/internal/usecase"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, status, he.Status)
}

type orderFixture struct {
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	products  *ProductRepoMock
	users     *UserRepoMock
	promos    *PromotionRepoMock
	inventory *InventoryRepoMock
	provider  *ProviderMock
	mailer    *MailerMock
	uc        *usecase.OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		products:  new(ProductRepoMock),
		users:     new(UserRepoMock),
		promos:    new(PromotionRepoMock),
		inventory: new(InventoryRepoMock),
		provider:  new(ProviderMock),
		mailer:    &MailerMock{},
	}
	tx := &TxManagerMock{
		OrderRepo:     f.orders,
		OrderItemRepo: f.items,
		ProductRepo:   f.products,
		InventoryRepo: f.inventory,
		UserRepo:      f.users,
		PromotionRepo: f.promos,
	}
	f.uc = usecase.NewOrderUsecase(tx, f.orders, f.items, f.products, f.users, f.promos, f.provider, f.mailer, zerolog.Nop(), "https://shop.example.com")
	return f
}

func validCreateInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		CustomerName:  "Ada Obi",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "08012345678",
		State:         "Lagos",
		LGA:           "Ikeja",
		StreetAddress: "12 Allen Avenue",
		Items: []usecase.OrderItemInput{
			{ProductID: "p-1", Color: "black"},
		},
	}
}

func TestCreateOrder_EmptyCart(t *testing.T) {
	f := newOrderFixture()

	in := validCreateInput()
	in.Items = nil

	_, err := f.uc.CreateOrder(context.Background(), in)
	assertHTTPStatus(t, err, 400)
}

func TestCreateOrder_UnsupportedState(t *testing.T) {
	f := newOrderFixture()

	in := validCreateInput()
	in.State = "Atlantis"

	_, err := f.uc.CreateOrder(context.Background(), in)
	assertHTTPStatus(t, err, 400)

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newOrderFixture()

	f.orders.On("ListPendingByCustomer", mock.Anything, "ada@example.com").Return([]model.Order{}, nil)
	// 1件も引けない
	f.products.On("FindByIDs", mock.Anything, []string{"p-1"}).Return([]model.Product{}, nil)

	_, err := f.uc.CreateOrder(context.Background(), validCreateInput())
	assertHTTPStatus(t, err, 400)

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateOrder_Success(t *testing.T) {
	f := newOrderFixture()

	product := model.Product{ID: "p-1", Name: "Tote bag", Price: 2000, Collection: "bags"}

	f.orders.On("ListPendingByCustomer", mock.Anything, "ada@example.com").Return([]model.Order{}, nil)
	f.products.On("FindByIDs", mock.Anything, []string{"p-1"}).Return([]model.Product{product}, nil)
	f.promos.On("GetCurrent", mock.Anything).Return(model.StorePromotion{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.provider.On("InitiatePayment", mock.Anything, mock.Anything).Return("https://pay.example.com/x", nil)
	f.orders.On("SetPaymentLink", mock.Anything, mock.Anything, "https://pay.example.com/x").Return(nil)
	f.users.On("IncrementRecentOrders", mock.Anything, "ada@example.com").Return(nil)

	out, err := f.uc.CreateOrder(context.Background(), validCreateInput())
	assert.NoError(t, err)
	assert.False(t, out.PaymentLinkUnavailable)
	assert.Equal(t, "https://pay.example.com/x", out.Order.PaymentLink)
	assert.Equal(t, model.PaymentLinkReady, out.Order.LinkStatus)
	assert.Equal(t, float64(2000), out.Order.TotalAmount)
	// Lagos 1点の送料
	assert.Equal(t, float64(500), out.Order.DeliveryFee)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "Tote bag", out.Items[0].NameSnapshot)

	// 確認メールが飛ぶ
	assert.Len(t, f.mailer.Sent, 1)
	assert.Equal(t, "ada@example.com", f.mailer.Sent[0].To)

	f.orders.AssertExpectations(t)
	f.products.AssertExpectations(t)
}

func TestCreateOrder_ProviderDown_OrderStillCreated(t *testing.T) {
	f := newOrderFixture()

	product := model.Product{ID: "p-1", Name: "Tote bag", Price: 2000}

	f.orders.On("ListPendingByCustomer", mock.Anything, "ada@example.com").Return([]model.Order{}, nil)
	f.products.On("FindByIDs", mock.Anything, []string{"p-1"}).Return([]model.Product{product}, nil)
	f.promos.On("GetCurrent", mock.Anything).Return(model.StorePromotion{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.provider.On("InitiatePayment", mock.Anything, mock.Anything).Return("", errors.New("gateway timeout"))
	f.users.On("IncrementRecentOrders", mock.Anything, "ada@example.com").Return(nil)

	out, err := f.uc.CreateOrder(context.Background(), validCreateInput())
	assert.NoError(t, err)
	assert.True(t, out.PaymentLinkUnavailable)
	assert.Equal(t, model.PaymentLinkAwaiting, out.Order.LinkStatus)

	f.orders.AssertNotCalled(t, "SetPaymentLink", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_PromotionApplied(t *testing.T) {
	f := newOrderFixture()

	product := model.Product{ID: "p-1", Name: "Tote bag", Price: 1000}
	promo := model.StorePromotion{
		ID:                 model.StorePromotionSingletonID,
		DiscountPercentage: 10,
		ApplicableTo:       model.PromotionAllProducts,
		IsActive:           true,
	}

	f.orders.On("ListPendingByCustomer", mock.Anything, "ada@example.com").Return([]model.Order{}, nil)
	f.products.On("FindByIDs", mock.Anything, []string{"p-1"}).Return([]model.Product{product}, nil)
	f.promos.On("GetCurrent", mock.Anything).Return(promo, true, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.provider.On("InitiatePayment", mock.Anything, mock.Anything).Return("https://pay.example.com/x", nil)
	f.orders.On("SetPaymentLink", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.users.On("IncrementRecentOrders", mock.Anything, "ada@example.com").Return(nil)

	out, err := f.uc.CreateOrder(context.Background(), validCreateInput())
	assert.NoError(t, err)
	assert.Equal(t, float64(900), out.Order.TotalAmount)
}

func TestCreateOrder_FourthPendingCancelsOldest(t *testing.T) {
	f := newOrderFixture()

	// 新しい順。上限3を超えた末尾がキャンセル対象。
	pending := []model.Order{
		{ID: "o-4"}, {ID: "o-3"}, {ID: "o-2"}, {ID: "o-1"},
	}

	product := model.Product{ID: "p-1", Name: "Tote bag", Price: 2000}

	f.orders.On("ListPendingByCustomer", mock.Anything, "ada@example.com").Return(pending, nil)
	f.orders.On("CancelOrders", mock.Anything, []string{"o-1"}).Return(nil)
	f.products.On("FindByIDs", mock.Anything, []string{"p-1"}).Return([]model.Product{product}, nil)
	f.promos.On("GetCurrent", mock.Anything).Return(model.StorePromotion{}, false, nil)
	f.orders.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.items.On("CreateBulk", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.provider.On("InitiatePayment", mock.Anything, mock.Anything).Return("https://pay.example.com/x", nil)
	f.orders.On("SetPaymentLink", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.users.On("IncrementRecentOrders", mock.Anything, "ada@example.com").Return(nil)

	_, err := f.uc.CreateOrder(context.Background(), validCreateInput())
	assert.NoError(t, err)

	f.orders.AssertCalled(t, "CancelOrders", mock.Anything, []string{"o-1"})
}

func TestRetryPaymentLink_AlreadyReady(t *testing.T) {
	f := newOrderFixture()

	order := model.Order{ID: "o-1", LinkStatus: model.PaymentLinkReady}
	f.orders.On("FindByID", mock.Anything, "o-1").Return(order, nil)

	_, err := f.uc.RetryPaymentLink(context.Background(), "o-1")
	assertHTTPStatus(t, err, 409)

	f.provider.AssertNotCalled(t, "InitiatePayment", mock.Anything, mock.Anything)
}

func TestRetryPaymentLink_Success(t *testing.T) {
	f := newOrderFixture()

	order := model.Order{
		ID:            "o-1",
		CustomerEmail: "ada@example.com",
		LinkStatus:    model.PaymentLinkAwaiting,
		PaymentLink:   "pending",
		TotalAmount:   2000,
		DeliveryFee:   500,
	}
	f.orders.On("FindByID", mock.Anything, "o-1").Return(order, nil)
	f.provider.On("InitiatePayment", mock.Anything, mock.MatchedBy(func(in payment.InitiateInput) bool {
		return in.TxRef == "o-1" && in.Amount == 2500
	})).Return("https://pay.example.com/y", nil)
	f.orders.On("SetPaymentLink", mock.Anything, "o-1", "https://pay.example.com/y").Return(nil)
	f.items.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)

	out, err := f.uc.RetryPaymentLink(context.Background(), "o-1")
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentLinkReady, out.Order.LinkStatus)
	assert.Equal(t, "https://pay.example.com/y", out.Order.PaymentLink)
}

func TestEditOrder_ShippedSendsEmail(t *testing.T) {
	f := newOrderFixture()

	order := model.Order{ID: "o-1", CustomerEmail: "ada@example.com", OrderStatus: model.OrderStatusPending}
	f.orders.On("FindByID", mock.Anything, "o-1").Return(order, nil)
	f.orders.On("UpdateFields", mock.Anything, "o-1", mock.Anything).Return(nil)
	f.items.On("ListByOrderID", mock.Anything, "o-1").Return([]model.OrderItem{}, nil)

	shipped := model.OrderStatusShipped
	out, err := f.uc.Edit(context.Background(), "o-1", usecase.EditOrderInput{OrderStatus: &shipped})
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusShipped, out.Order.OrderStatus)
	assert.Len(t, f.mailer.Sent, 1)
}

func TestEditOrder_Cancelled(t *testing.T) {
	f := newOrderFixture()

	order := model.Order{ID: "o-1", OrderStatus: model.OrderStatusCancelled}
	f.orders.On("FindByID", mock.Anything, "o-1").Return(order, nil)

	note := "update me"
	_, err := f.uc.Edit(context.Background(), "o-1", usecase.EditOrderInput{Note: &note})
	assertHTTPStatus(t, err, 400)
}

func TestSendReminder_CancelledOrderRefused(t *testing.T) {
	f := newOrderFixture()

	order := model.Order{ID: "o-1", OrderStatus: model.OrderStatusCancelled}
	f.orders.On("FindByID", mock.Anything, "o-1").Return(order, nil)

	err := f.uc.SendReminder(context.Background(), "o-1")
	assertHTTPStatus(t, err, 400)
	assert.Empty(t, f.mailer.Sent)
}
