package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CollectionUsecase struct {
	collections repo.CollectionRepository
	products    repo.ProductRepository
}

func NewCollectionUsecase(collections repo.CollectionRepository, products repo.ProductRepository) *CollectionUsecase {
	return &CollectionUsecase{collections: collections, products: products}
}

func (u *CollectionUsecase) List(ctx context.Context) ([]model.Collection, error) {
	items, err := u.collections.List(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CollectionUsecase) Products(ctx context.Context, slug string, page, limit int) (ProductListOutput, error) {
	if _, err := u.collections.FindBySlug(ctx, slug); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ProductListOutput{}, NewHTTPError(http.StatusNotFound, "collection not found")
		}
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:       page,
		Limit:      limit,
		Collection: slug,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *CollectionUsecase) Create(ctx context.Context, name, slug, image string) (model.Collection, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(strings.ToLower(slug))
	if name == "" || slug == "" {
		return model.Collection{}, NewHTTPError(http.StatusBadRequest, "name and slug are required")
	}

	if _, err := u.collections.FindBySlug(ctx, slug); err == nil {
		return model.Collection{}, NewHTTPError(http.StatusConflict, "collection already exists")
	} else if !errors.Is(err, repo.ErrNotFound) {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.collections.Create(ctx, model.Collection{Name: name, Slug: slug, Image: image})
	if err != nil {
		return model.Collection{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}
