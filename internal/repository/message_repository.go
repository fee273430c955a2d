package repository

import (
	"context"

	"app/internal/domain/model"
)

type MessageRepository interface {
	Get(ctx context.Context) (model.AdminMessage, bool, error)
	Upsert(ctx context.Context, m model.AdminMessage) (model.AdminMessage, error)
	Delete(ctx context.Context) error
}
