package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)

	// OAuthログイン時のupsert（初回はuserロールで作成）
	UpsertByEmail(ctx context.Context, u model.User) (model.User, error)

	UpdateAddress(ctx context.Context, email string, state, lga string) error
	UpdateRole(ctx context.Context, email string, role model.Role) error
	IncrementRecentOrders(ctx context.Context, email string) error
	AddTotalSpent(ctx context.Context, email string, amount float64) error

	List(ctx context.Context, page, limit int) ([]model.User, int64, error)
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}
