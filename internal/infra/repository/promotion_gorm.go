package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PromotionGormRepository struct {
	db *gorm.DB
}

func NewPromotionGormRepository(db *gorm.DB) *PromotionGormRepository {
	return &PromotionGormRepository{db: db}
}

func (r *PromotionGormRepository) GetCurrent(ctx context.Context) (model.StorePromotion, bool, error) {
	var p model.StorePromotion
	err := r.db.WithContext(ctx).
		Where("id = ?", model.StorePromotionSingletonID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.StorePromotion{}, false, nil
	}
	if err != nil {
		return model.StorePromotion{}, false, err
	}
	return p, true, nil
}

// PK固定のupsert。シングルトン性はDBの主キー制約で担保する。
func (r *PromotionGormRepository) Upsert(ctx context.Context, p model.StorePromotion) (model.StorePromotion, error) {
	p.ID = model.StorePromotionSingletonID

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"discount_percentage", "applicable_to", "product_ids",
				"start_date", "end_date", "is_active", "updated_at",
			}),
		}).
		Create(&p).Error
	if err != nil {
		return model.StorePromotion{}, err
	}
	return p, nil
}
