package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CollectionGormRepository struct {
	db *gorm.DB
}

func NewCollectionGormRepository(db *gorm.DB) *CollectionGormRepository {
	return &CollectionGormRepository{db: db}
}

func (r *CollectionGormRepository) List(ctx context.Context) ([]model.Collection, error) {
	var items []model.Collection
	err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error
	if err != nil {
		return nil, err
	}

	var sums []struct {
		Collection string
		Total      int64
	}
	err = r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("collection, COALESCE(SUM(stock), 0) AS total").
		Group("collection").
		Scan(&sums).Error
	if err != nil {
		return nil, err
	}

	bySlug := make(map[string]int64, len(sums))
	for _, s := range sums {
		bySlug[s.Collection] = s.Total
	}
	for i := range items {
		items[i].RemainingStock = bySlug[items[i].Slug]
	}
	return items, nil
}

func (r *CollectionGormRepository) FindBySlug(ctx context.Context, slug string) (model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Collection{}, err
	}
	return c, nil
}

func (r *CollectionGormRepository) Create(ctx context.Context, c model.Collection) (model.Collection, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Collection{}, err
	}
	return c, nil
}
