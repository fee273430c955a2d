package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BuySetGormRepository struct {
	db *gorm.DB
}

func NewBuySetGormRepository(db *gorm.DB) *BuySetGormRepository {
	return &BuySetGormRepository{db: db}
}

func (r *BuySetGormRepository) Get(ctx context.Context) (model.BuySet, bool, error) {
	var s model.BuySet
	err := r.db.WithContext(ctx).
		Where("id = ?", model.BuySetSingletonID).
		First(&s).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BuySet{}, false, nil
	}
	if err != nil {
		return model.BuySet{}, false, err
	}
	return s, true, nil
}

func (r *BuySetGormRepository) Upsert(ctx context.Context, s model.BuySet) (model.BuySet, error) {
	s.ID = model.BuySetSingletonID

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"complete_set_id", "product_ids", "updated_at",
			}),
		}).
		Create(&s).Error
	if err != nil {
		return model.BuySet{}, err
	}
	return s, nil
}
