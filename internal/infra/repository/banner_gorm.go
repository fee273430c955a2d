package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BannerGormRepository struct {
	db *gorm.DB
}

func NewBannerGormRepository(db *gorm.DB) *BannerGormRepository {
	return &BannerGormRepository{db: db}
}

func (r *BannerGormRepository) Get(ctx context.Context) (model.PromoBanner, bool, error) {
	var b model.PromoBanner
	err := r.db.WithContext(ctx).
		Where("id = ?", model.PromoBannerSingletonID).
		First(&b).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.PromoBanner{}, false, nil
	}
	if err != nil {
		return model.PromoBanner{}, false, err
	}
	return b, true, nil
}

// PK固定のupsert。2行目は作れない。
func (r *BannerGormRepository) Upsert(ctx context.Context, b model.PromoBanner) (model.PromoBanner, error) {
	b.ID = model.PromoBannerSingletonID

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"message", "description", "product_id", "updated_at",
			}),
		}).
		Create(&b).Error
	if err != nil {
		return model.PromoBanner{}, err
	}
	return b, nil
}
