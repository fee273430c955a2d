package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// 決済プロバイダ（Flutterwave互換API）のクライアント。
// initiate と verify の2つだけ使う。

type CustomerInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phonenumber,omitempty"`
}

type InitiateInput struct {
	TxRef       string // 注文IDを相関トークンとして渡す
	Amount      float64
	Currency    string
	RedirectURL string
	Customer    CustomerInfo
}

type VerifyResult struct {
	Status string
	Amount float64
}

type Provider interface {
	InitiatePayment(ctx context.Context, in InitiateInput) (string, error)
	VerifyTransaction(ctx context.Context, transactionID int64) (VerifyResult, error)
}

type Client struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: timeout},
	}
}

type initiateRequest struct {
	TxRef       string       `json:"tx_ref"`
	Amount      float64      `json:"amount"`
	Currency    string       `json:"currency"`
	RedirectURL string       `json:"redirect_url"`
	Customer    CustomerInfo `json:"customer"`
}

type initiateResponse struct {
	Status string `json:"status"`
	Data   struct {
		Link string `json:"link"`
	} `json:"data"`
}

// InitiatePayment は決済リンクを発行する。
func (c *Client) InitiatePayment(ctx context.Context, in InitiateInput) (string, error) {
	body, err := json.Marshal(initiateRequest{
		TxRef:       in.TxRef,
		Amount:      in.Amount,
		Currency:    in.Currency,
		RedirectURL: in.RedirectURL,
		Customer:    in.Customer,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("payment initiate: status %d: %s", resp.StatusCode, string(b))
	}

	var out initiateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("payment initiate: decode: %w", err)
	}
	if out.Data.Link == "" {
		return "", fmt.Errorf("payment initiate: empty link")
	}
	return out.Data.Link, nil
}

type verifyResponse struct {
	Status string `json:"status"`
	Data   struct {
		Status string  `json:"status"`
		Amount float64 `json:"amount"`
	} `json:"data"`
}

// VerifyTransaction はwebhookを鵜呑みにせず、プロバイダに取引を再照会する。
func (c *Client) VerifyTransaction(ctx context.Context, transactionID int64) (VerifyResult, error) {
	url := fmt.Sprintf("%s/transactions/%d/verify", c.baseURL, transactionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return VerifyResult{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return VerifyResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return VerifyResult{}, fmt.Errorf("payment verify: status %d", resp.StatusCode)
	}

	var out verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return VerifyResult{}, fmt.Errorf("payment verify: decode: %w", err)
	}

	return VerifyResult{Status: out.Data.Status, Amount: out.Data.Amount}, nil
}
