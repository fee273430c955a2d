package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/mail"
	"app/internal/payment"
	repo "app/internal/repository"

	"github.com/rs/zerolog"
)

// 決済webhookの突合。署名 → 注文照合 → プロバイダ再照会 → Paid遷移の順。
// 遷移と在庫減算は「この呼び出しがPending→Paidを起こしたとき」だけ行うので
// 同じ通知が二度届いても在庫は二重に減らない。
type WebhookUsecase struct {
	orders     repo.OrderRepository
	items      repo.OrderItemRepository
	inventory  repo.InventoryRepository
	users      repo.UserRepository
	provider   payment.Provider
	mailer     mail.Mailer
	log        zerolog.Logger
	secretHash string
	adminEmail string
}

func NewWebhookUsecase(
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	inventory repo.InventoryRepository,
	users repo.UserRepository,
	provider payment.Provider,
	mailer mail.Mailer,
	log zerolog.Logger,
	secretHash string,
	adminEmail string,
) *WebhookUsecase {
	return &WebhookUsecase{
		orders:     orders,
		items:      items,
		inventory:  inventory,
		users:      users,
		provider:   provider,
		mailer:     mailer,
		log:        log,
		secretHash: secretHash,
		adminEmail: adminEmail,
	}
}

func (u *WebhookUsecase) Receive(ctx context.Context, signature string, ev payment.WebhookEvent) error {
	//署名不一致は状態を一切変えずに401
	if signature == "" || signature != u.secretHash {
		return NewHTTPError(http.StatusUnauthorized, "you are not allowed to make this request")
	}

	orderID := ev.Data.Meta.OrderID
	if orderID == "" {
		orderID = ev.Data.TxRef
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "missing order reference")
	}

	//突合は永続化済みの注文を正とする。webhookのmetaは相関にしか使わない。
	order, err := u.orders.FindByID(ctx, orderID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	switch ev.Data.Status {
	case payment.WebhookStatusFailed:
		return u.handleFailed(ctx, order, ev)
	case payment.WebhookStatusSuccessful:
		return u.handleSuccessful(ctx, order, ev)
	default:
		return NewHTTPError(http.StatusBadRequest, "unknown webhook status")
	}
}

// 失敗通知：注文は動かさず顧客に知らせるだけ
func (u *WebhookUsecase) handleFailed(_ context.Context, order model.Order, ev payment.WebhookEvent) error {
	html, err := mail.PaymentFailed(order, ev.Data.ProcessorResponse)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("failed-payment email render failed")
		return nil
	}
	if err := u.mailer.Send(mail.Message{To: order.CustomerEmail, Subject: "Payment failed", HTML: html}); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("failed-payment email send failed")
	}
	return nil
}

func (u *WebhookUsecase) handleSuccessful(ctx context.Context, order model.Order, ev payment.WebhookEvent) error {
	expected := order.GrandTotal()

	//過少支払い：Paidにはしない。顧客＋内部レビュアに通知して終わり。
	if ev.Data.Amount < expected {
		u.notifyUnderpaid(order, ev.Data.Amount)
		return nil
	}

	//webhookは署名までしか信用しない。プロバイダに取引を再照会する。
	verified, err := u.provider.VerifyTransaction(ctx, ev.Data.ID)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Int64("tx_id", ev.Data.ID).Msg("transaction verify failed")
		return NewHTTPError(http.StatusBadGateway, "verification unavailable")
	}
	//金額は完全一致のみ。過大報告も突合失敗として扱う。
	if verified.Status != payment.WebhookStatusSuccessful || verified.Amount != expected {
		return NewHTTPError(http.StatusUnauthorized, "verification mismatch")
	}

	//Pending→Paidを起こした呼び出しだけが在庫を減らす
	flipped, err := u.orders.MarkPaidIfPending(ctx, order.ID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !flipped {
		//リプレイ（既にPaid）。何もしないで正常応答。
		return nil
	}

	items, err := u.items.ListByOrderID(ctx, order.ID)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("order items load failed after paid transition")
		return nil
	}

	for _, it := range items {
		ok, err := u.inventory.DecrementStockIfAvailable(ctx, it.ProductID, 1)
		if err != nil {
			u.log.Error().Err(err).Str("order_id", order.ID).Str("product_id", it.ProductID).Msg("stock decrement failed")
			continue
		}
		if !ok {
			//売り越し。注文は支払い済みなので記録だけ残す。
			u.log.Warn().Str("order_id", order.ID).Str("product_id", it.ProductID).Msg("stock decrement skipped: out of stock")
		}
	}

	if err := u.users.AddTotalSpent(ctx, order.CustomerEmail, order.TotalAmount); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("total spent update failed")
	}

	order.PaymentStatus = model.PaymentStatusPaid
	html, err := mail.PaymentReceived(order, items)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment-received email render failed")
		return nil
	}
	if err := u.mailer.Send(mail.Message{To: order.CustomerEmail, Subject: "Payment received", HTML: html}); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("payment-received email send failed")
	}
	return nil
}

func (u *WebhookUsecase) notifyUnderpaid(order model.Order, amountPaid float64) {
	html, err := mail.Underpaid(order, amountPaid)
	if err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("underpaid email render failed")
		return
	}
	msg := mail.Message{
		To:      order.CustomerEmail,
		Subject: "Payment amount mismatch",
		HTML:    html,
		ReplyTo: u.adminEmail,
	}
	if err := u.mailer.Send(msg); err != nil {
		u.log.Error().Err(err).Str("order_id", order.ID).Msg("underpaid email send failed")
	}

	if u.adminEmail != "" {
		msg.To = u.adminEmail
		msg.Subject = "Underpaid order " + order.ID
		if err := u.mailer.Send(msg); err != nil {
			u.log.Error().Err(err).Str("order_id", order.ID).Msg("underpaid admin email send failed")
		}
	}
}
