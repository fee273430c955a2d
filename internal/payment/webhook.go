package payment

// webhookで届く通知。署名ヘッダ（verif-hash）は別途検証する。

const SignatureHeader = "verif-hash"

const (
	WebhookStatusSuccessful = "successful"
	WebhookStatusFailed     = "failed"
)

// 注文の相関ペイロード。注文IDと作成時の合計を持つ。
type WebhookMeta struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	DeliveryFee float64 `json:"delivery_fee"`
}

type WebhookCustomer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type WebhookData struct {
	ID                int64           `json:"id"`
	TxRef             string          `json:"tx_ref"`
	Amount            float64         `json:"amount"`
	Currency          string          `json:"currency"`
	Status            string          `json:"status"`
	ProcessorResponse string          `json:"processor_response"`
	Meta              WebhookMeta     `json:"meta"`
	Customer          WebhookCustomer `json:"customer"`
}

type WebhookEvent struct {
	Event string      `json:"event"`
	Data  WebhookData `json:"data"`
}
