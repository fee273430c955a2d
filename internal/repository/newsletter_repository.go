package repository

import (
	"context"

	"app/internal/domain/model"
)

type NewsletterRepository interface {
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email string) error
	List(ctx context.Context) ([]model.NewsletterSubscriber, error)
	Delete(ctx context.Context, email string) error
}
