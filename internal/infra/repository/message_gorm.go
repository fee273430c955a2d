package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageGormRepository struct {
	db *gorm.DB
}

func NewMessageGormRepository(db *gorm.DB) *MessageGormRepository {
	return &MessageGormRepository{db: db}
}

func (r *MessageGormRepository) Get(ctx context.Context) (model.AdminMessage, bool, error) {
	var m model.AdminMessage
	err := r.db.WithContext(ctx).
		Where("id = ?", model.AdminMessageSingletonID).
		First(&m).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AdminMessage{}, false, nil
	}
	if err != nil {
		return model.AdminMessage{}, false, err
	}
	return m, true, nil
}

func (r *MessageGormRepository) Upsert(ctx context.Context, m model.AdminMessage) (model.AdminMessage, error) {
	m.ID = model.AdminMessageSingletonID

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "message", "updated_at",
			}),
		}).
		Create(&m).Error
	if err != nil {
		return model.AdminMessage{}, err
	}
	return m, nil
}

func (r *MessageGormRepository) Delete(ctx context.Context) error {
	res := r.db.WithContext(ctx).
		Where("id = ?", model.AdminMessageSingletonID).
		Delete(&model.AdminMessage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
