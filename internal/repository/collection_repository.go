package repository

import (
	"context"

	"app/internal/domain/model"
)

type CollectionRepository interface {
	List(ctx context.Context) ([]model.Collection, error)
	FindBySlug(ctx context.Context, slug string) (model.Collection, error)
	Create(ctx context.Context, c model.Collection) (model.Collection, error)
}
