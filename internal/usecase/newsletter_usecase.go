package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type NewsletterUsecase struct {
	subscribers repo.NewsletterRepository
}

func NewNewsletterUsecase(subscribers repo.NewsletterRepository) *NewsletterUsecase {
	return &NewsletterUsecase{subscribers: subscribers}
}

func (u *NewsletterUsecase) Join(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailPattern.MatchString(email) {
		return NewHTTPError(http.StatusBadRequest, "valid email is required")
	}

	exists, err := u.subscribers.Exists(ctx, email)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return NewHTTPError(http.StatusConflict, "you already joined the newsletter")
	}

	if err := u.subscribers.Create(ctx, email); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 管理者による購読解除
func (u *NewsletterUsecase) Remove(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	err := u.subscribers.Delete(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "subscriber not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *NewsletterUsecase) List(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	items, err := u.subscribers.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
