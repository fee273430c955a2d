package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"app/internal/delivery"
	"app/internal/domain/model"
	"app/internal/mail"
	"app/internal/payment"
	"app/internal/pricing"
	repo "app/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// 同一顧客が同時に持てるPENDING注文の上限。超過した古いものは自動キャンセル。
const maxPendingOrdersPerCustomer = 3

// プロバイダから返ってくるまでのプレースホルダ
const paymentLinkPlaceholder = "pending"

const paymentCurrency = "NGN"

type OrderUsecase struct {
	tx       repo.TransactionManager
	orders   repo.OrderRepository
	items    repo.OrderItemRepository
	products repo.ProductRepository
	users    repo.UserRepository
	promos   repo.PromotionRepository
	provider payment.Provider
	mailer   mail.Mailer
	log      zerolog.Logger

	clientURL string
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	products repo.ProductRepository,
	users repo.UserRepository,
	promos repo.PromotionRepository,
	provider payment.Provider,
	mailer mail.Mailer,
	log zerolog.Logger,
	clientURL string,
) *OrderUsecase {
	return &OrderUsecase{
		tx:        tx,
		orders:    orders,
		items:     items,
		products:  products,
		users:     users,
		promos:    promos,
		provider:  provider,
		mailer:    mailer,
		log:       log,
		clientURL: clientURL,
	}
}

type OrderItemInput struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
}

type CreateOrderInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	CustomerNote  string
	State         string
	LGA           string
	StreetAddress string
	Items         []OrderItemInput
}

type OrderOutput struct {
	Order model.Order       `json:"order"`
	Items []model.OrderItem `json:"items"`

	// リンクが取れなかったときだけtrue。注文自体は作成済み。
	PaymentLinkUnavailable bool `json:"payment_link_unavailable,omitempty"`
}

func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	email := strings.TrimSpace(strings.ToLower(in.CustomerEmail))
	if email == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer email is required")
	}
	if len(in.Items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cannot create an order without an item")
	}

	//配送先チェックは永続化より前に
	deliveryFee, ok := delivery.FeeForQuantity(in.State, len(in.Items))
	if !ok {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery to this location is not supported")
	}

	//PENDING上限：新しい3件を残して古いものをキャンセル
	if err := u.cancelExcessPending(ctx, email); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品解決（1件でも引けなければ拒否）
	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}

	found, err := u.products.FindByIDs(ctx, ids)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lineProducts := make([]model.Product, 0, len(in.Items))
	orderItems := make([]model.OrderItem, 0, len(in.Items))
	for _, it := range in.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "no valid product found for the order")
		}
		lineProducts = append(lineProducts, p)

		//スナップショット
		orderItems = append(orderItems, model.OrderItem{
			ProductID:          p.ID,
			NameSnapshot:       p.Name,
			PriceSnapshot:      p.Price,
			HasDiscount:        p.HasDiscount,
			DiscountedSnapshot: p.DiscountedPrice,
			ColorPreference:    it.Color,
			CollectionSnapshot: p.Collection,
		})
	}

	//プロモーション込みの合計。作成時に一度だけ計算し、以後再計算しない。
	promo, _, err := u.currentPromotion(ctx)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	totalAmount := pricing.Total(lineProducts, promo)

	now := time.Now()
	order := model.Order{
		ID:            uuid.NewString(),
		CustomerName:  in.CustomerName,
		CustomerEmail: email,
		CustomerPhone: in.CustomerPhone,
		CustomerNote:  in.CustomerNote,
		State:         in.State,
		LGA:           in.LGA,
		StreetAddress: in.StreetAddress,
		TotalAmount:   totalAmount,
		DeliveryFee:   deliveryFee,
		PaymentStatus: model.PaymentStatusPending,
		OrderStatus:   model.OrderStatusPending,
		PaymentLink:   paymentLinkPlaceholder,
		LinkStatus:    model.PaymentLinkAwaiting,
		OrderDate:     now,
	}

	//注文＋明細はトランザクション
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if err := r.Orders().Create(ctx, order); err != nil {
			return err
		}
		return r.OrderItems().CreateBulk(ctx, order.ID, orderItems)
	})
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderOutput{Order: order, Items: orderItems}

	//注文は確定済み。ここから先の失敗はログするだけでロールバックしない。
	link, err := u.requestPaymentLink(ctx, order)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment link initiation failed")
		out.PaymentLinkUnavailable = true
	} else {
		order.PaymentLink = link
		order.LinkStatus = model.PaymentLinkReady
		out.Order = order
	}

	if err := u.users.IncrementRecentOrders(ctx, email); err != nil {
		u.log.Error().Err(err).Str("email", email).Msg("recent order counter update failed")
	}

	u.sendOrderEmail(order, orderItems, email, mail.OrderConfirmation, "Order confirmation")

	return out, nil
}

// 4件目以降の古いPENDINGをキャンセルする
func (u *OrderUsecase) cancelExcessPending(ctx context.Context, email string) error {
	pending, err := u.orders.ListPendingByCustomer(ctx, email)
	if err != nil {
		return err
	}
	if len(pending) <= maxPendingOrdersPerCustomer {
		return nil
	}

	excess := make([]string, 0, len(pending)-maxPendingOrdersPerCustomer)
	for _, o := range pending[maxPendingOrdersPerCustomer:] {
		excess = append(excess, o.ID)
	}
	return u.orders.CancelOrders(ctx, excess)
}

func (u *OrderUsecase) currentPromotion(ctx context.Context) (*model.StorePromotion, bool, error) {
	p, ok, err := u.promos.GetCurrent(ctx)
	if err != nil {
		return nil, false, err
	}
	if !ok || !p.IsActive {
		return nil, false, nil
	}
	return &p, true, nil
}

func (u *OrderUsecase) requestPaymentLink(ctx context.Context, order model.Order) (string, error) {
	link, err := u.provider.InitiatePayment(ctx, payment.InitiateInput{
		TxRef:       order.ID,
		Amount:      order.GrandTotal(),
		Currency:    paymentCurrency,
		RedirectURL: u.clientURL + "/track-order/" + order.ID,
		Customer: payment.CustomerInfo{
			Name:        order.CustomerName,
			Email:       order.CustomerEmail,
			PhoneNumber: order.CustomerPhone,
		},
	})
	if err != nil {
		return "", err
	}

	if err := u.orders.SetPaymentLink(ctx, order.ID, link); err != nil {
		return "", err
	}
	return link, nil
}

// リンク未取得（AWAITING_LINK）の注文だけ再試行できる
func (u *OrderUsecase) RetryPaymentLink(ctx context.Context, orderID string) (OrderOutput, error) {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	if order.LinkStatus != model.PaymentLinkAwaiting {
		return OrderOutput{}, NewHTTPError(http.StatusConflict, "order already has a payment link")
	}
	if order.OrderStatus == model.OrderStatusCancelled {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order is cancelled")
	}

	link, err := u.requestPaymentLink(ctx, order)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment link retry failed")
		return OrderOutput{}, NewHTTPError(http.StatusBadGateway, "payment link could not be obtained")
	}

	order.PaymentLink = link
	order.LinkStatus = model.PaymentLinkReady

	items, err := u.items.ListByOrderID(ctx, order.ID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderOutput{Order: order, Items: items}, nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID string) (OrderOutput, error) {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return OrderOutput{Order: order, Items: items}, nil
}

func (u *OrderUsecase) ListByCustomer(ctx context.Context, email string, page, limit int) ([]OrderOutput, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	orders, total, err := u.orders.ListByCustomerEmail(ctx, email, page, limit)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		items, err := u.items.ListByOrderID(ctx, o.ID)
		if err != nil {
			return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		outs = append(outs, OrderOutput{Order: o, Items: items})
	}
	return outs, total, nil
}

func (u *OrderUsecase) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	orders, total, err := u.orders.ListAdmin(ctx, f)
	if err != nil {
		return nil, 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, total, nil
}

// キャンセル。返金処理は無い（メール文面上の案内のみ）。
func (u *OrderUsecase) Cancel(ctx context.Context, orderID string) error {
	if err := u.orders.UpdateOrderStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type EditOrderInput struct {
	OrderStatus *model.OrderStatus
	State       *string
	LGA         *string
	Street      *string
	Note        *string
}

func (u *OrderUsecase) Edit(ctx context.Context, orderID string, in EditOrderInput) (OrderOutput, error) {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	if order.OrderStatus == model.OrderStatusCancelled {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "order is cancelled")
	}

	fields := map[string]interface{}{}
	if in.OrderStatus != nil {
		switch *in.OrderStatus {
		case model.OrderStatusPending, model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
		default:
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order status")
		}
		fields["order_status"] = *in.OrderStatus
	}
	if in.State != nil {
		if _, ok := delivery.Fee(*in.State); !ok {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "delivery to this location is not supported")
		}
		fields["state"] = *in.State
	}
	if in.LGA != nil {
		fields["lga"] = *in.LGA
	}
	if in.Street != nil {
		fields["street_address"] = *in.Street
	}
	if in.Note != nil {
		fields["customer_note"] = *in.Note
	}
	if len(fields) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "nothing to update")
	}

	if err := u.orders.UpdateFields(ctx, orderID, fields); err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//発送への遷移で通知を送る
	if in.OrderStatus != nil && *in.OrderStatus == model.OrderStatusShipped && order.OrderStatus != model.OrderStatusShipped {
		order.OrderStatus = model.OrderStatusShipped
		u.sendOrderEmail(order, items, order.CustomerEmail, mail.OrderShipped, "Your order has shipped")
	} else if in.OrderStatus != nil {
		order.OrderStatus = *in.OrderStatus
	}

	return OrderOutput{Order: order, Items: items}, nil
}

// 支払いリマインダー（管理者が発火）。キャンセル済みには送らない。
func (u *OrderUsecase) SendReminder(ctx context.Context, orderID string) error {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if order.OrderStatus == model.OrderStatusCancelled {
		return NewHTTPError(http.StatusBadRequest, "user already cancelled the order")
	}

	items, err := u.items.ListByOrderID(ctx, orderID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.sendOrderEmail(order, items, order.CustomerEmail, mail.OrderReminder, "Order payment reminder")
	return nil
}

// ユーザーの「支払った」申告。注文は動かさず管理者へ通知するだけ。
func (u *OrderUsecase) ClaimPayment(ctx context.Context, orderID string, adminEmail string) error {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return err
	}

	html, err := mail.PaymentClaim(order)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment claim email render failed")
		return nil
	}
	if err := u.mailer.Send(mail.Message{To: adminEmail, Subject: "Payment claim", HTML: html}); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment claim email send failed")
	}
	return nil
}

func (u *OrderUsecase) findOrder(ctx context.Context, orderID string) (model.Order, error) {
	if strings.TrimSpace(orderID) == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return order, nil
}

// メールは投げっぱなし。失敗はログだけ。
func (u *OrderUsecase) sendOrderEmail(
	order model.Order,
	items []model.OrderItem,
	to string,
	render func(model.Order, []model.OrderItem) (string, error),
	subject string,
) {
	html, err := render(order, items)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("email render failed")
		return
	}
	if err := u.mailer.Send(mail.Message{To: to, Subject: subject, HTML: html}); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Str("to", to).Msg("email send failed")
	}
}
