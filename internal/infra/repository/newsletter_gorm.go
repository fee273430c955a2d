package repository

import (
	"context"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type NewsletterGormRepository struct {
	db *gorm.DB
}

func NewNewsletterGormRepository(db *gorm.DB) *NewsletterGormRepository {
	return &NewsletterGormRepository{db: db}
}

func (r *NewsletterGormRepository) Exists(ctx context.Context, email string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.NewsletterSubscriber{}).
		Where("email = ?", email).
		Count(&n).Error
	return n > 0, err
}

func (r *NewsletterGormRepository) Create(ctx context.Context, email string) error {
	return r.db.WithContext(ctx).Create(&model.NewsletterSubscriber{Email: email}).Error
}

func (r *NewsletterGormRepository) List(ctx context.Context) ([]model.NewsletterSubscriber, error) {
	var items []model.NewsletterSubscriber
	err := r.db.WithContext(ctx).Order("created_at desc").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NewsletterGormRepository) Delete(ctx context.Context, email string) error {
	res := r.db.WithContext(ctx).Where("email = ?", email).Delete(&model.NewsletterSubscriber{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
