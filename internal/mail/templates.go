package mail

import (
	"bytes"
	"fmt"
	"html/template"

	"app/internal/domain/model"
)

// 取引メールのHTML生成。文面は最小限、金額はNGN表記。

func FormatNaira(amount float64) string {
	return fmt.Sprintf("₦%.2f", amount)
}

type orderEmailData struct {
	Order model.Order
	Items []model.OrderItem
	Total string
	Fee   string
	Grand string
	Extra string
}

var orderTmpl = template.Must(template.New("order").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>{{.Extra}}</h2>
  <p>Hello {{.Order.CustomerName}},</p>
  <p>Order <strong>{{.Order.ID}}</strong></p>
  <table style="width:100%;border-collapse:collapse">
    {{range .Items}}
    <tr>
      <td style="padding:4px 0">{{.NameSnapshot}}{{if .ColorPreference}} ({{.ColorPreference}}){{end}}</td>
    </tr>
    {{end}}
  </table>
  <p>Items: {{.Total}}<br>Delivery: {{.Fee}}<br><strong>Total: {{.Grand}}</strong></p>
</div>
`))

func renderOrder(o model.Order, items []model.OrderItem, heading string) (string, error) {
	var buf bytes.Buffer
	err := orderTmpl.Execute(&buf, orderEmailData{
		Order: o,
		Items: items,
		Total: FormatNaira(o.TotalAmount),
		Fee:   FormatNaira(o.DeliveryFee),
		Grand: FormatNaira(o.GrandTotal()),
		Extra: heading,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func OrderConfirmation(o model.Order, items []model.OrderItem) (string, error) {
	return renderOrder(o, items, "Your order has been placed")
}

func PaymentReceived(o model.Order, items []model.OrderItem) (string, error) {
	return renderOrder(o, items, "Payment received, thank you!")
}

func OrderShipped(o model.Order, items []model.OrderItem) (string, error) {
	return renderOrder(o, items, "Your order has been shipped")
}

func OrderReminder(o model.Order, items []model.OrderItem) (string, error) {
	return renderOrder(o, items, "Reminder: your order is waiting for payment")
}

var failedTmpl = template.Must(template.New("failed").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Payment failed</h2>
  <p>Hello {{.Name}},</p>
  <p>The payment for order <strong>{{.OrderID}}</strong> did not go through.</p>
  {{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
  <p>You can retry from your payment link. No money was taken for this order.</p>
</div>
`))

func PaymentFailed(o model.Order, reason string) (string, error) {
	var buf bytes.Buffer
	err := failedTmpl.Execute(&buf, struct {
		Name, OrderID, Reason string
	}{o.CustomerName, o.ID, reason})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var underpaidTmpl = template.Must(template.New("underpaid").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Payment received was less than expected</h2>
  <p>Hello {{.Name}},</p>
  <p>We received {{.Paid}} for order <strong>{{.OrderID}}</strong>, but the order total is {{.Expected}}.</p>
  <p>The order stays unpaid until the full amount is received. Please contact support.</p>
</div>
`))

func Underpaid(o model.Order, amountPaid float64) (string, error) {
	var buf bytes.Buffer
	err := underpaidTmpl.Execute(&buf, struct {
		Name, OrderID, Paid, Expected string
	}{o.CustomerName, o.ID, FormatNaira(amountPaid), FormatNaira(o.GrandTotal())})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var claimTmpl = template.Must(template.New("claim").Parse(`
<div style="font-family:sans-serif;max-width:560px;margin:0 auto">
  <h2>Payment claim</h2>
  <p>Customer {{.Email}} claims to have paid for order <strong>{{.OrderID}}</strong> ({{.Grand}}).</p>
  <p>Please verify the payment manually.</p>
</div>
`))

// 管理者向け：ユーザーの「支払い済み」申告の通知
func PaymentClaim(o model.Order) (string, error) {
	var buf bytes.Buffer
	err := claimTmpl.Execute(&buf, struct {
		Email, OrderID, Grand string
	}{o.CustomerEmail, o.ID, FormatNaira(o.GrandTotal())})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
