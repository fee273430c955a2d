package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Googleのuserinfoエンドポイントでアクセストークンを検証する。

type GoogleUser struct {
	Email     string `json:"email"`
	Picture   string `json:"picture"`
	GivenName string `json:"given_name"`
}

type IdentityProvider interface {
	FetchUser(ctx context.Context, accessToken string) (GoogleUser, error)
}

type GoogleClient struct {
	endpoint string
	http     *http.Client
}

func NewGoogleClient(timeout time.Duration) *GoogleClient {
	return &GoogleClient{
		endpoint: "https://www.googleapis.com/oauth2/v2/userinfo",
		http:     &http.Client{Timeout: timeout},
	}
}

func (c *GoogleClient) FetchUser(ctx context.Context, accessToken string) (GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return GoogleUser{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return GoogleUser{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleUser{}, fmt.Errorf("userinfo: status %d", resp.StatusCode)
	}

	var gu GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return GoogleUser{}, fmt.Errorf("userinfo: decode: %w", err)
	}
	return gu, nil
}
