package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type bannerFixture struct {
	banners  *BannerRepoMock
	products *ProductRepoMock
	uc       *usecase.BannerUsecase
}

func newBannerFixture() *bannerFixture {
	f := &bannerFixture{
		banners:  new(BannerRepoMock),
		products: new(ProductRepoMock),
	}
	f.uc = usecase.NewBannerUsecase(f.banners, f.products)
	return f
}

func TestBannerSave_UnknownProductRejected(t *testing.T) {
	f := newBannerFixture()

	f.products.On("FindByID", mock.Anything, "ghost").
		Return(model.Product{}, repo.ErrNotFound)

	_, err := f.uc.Save(context.Background(), usecase.SaveBannerInput{
		Message:   "Big sale",
		ProductID: "ghost",
	})
	assertHTTPStatus(t, err, 400)

	f.banners.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestBannerSave_MessageRequired(t *testing.T) {
	f := newBannerFixture()

	_, err := f.uc.Save(context.Background(), usecase.SaveBannerInput{
		Message:   "  ",
		ProductID: "p-1",
	})
	assertHTTPStatus(t, err, 400)
}

func TestBannerSave_SecondSaveOverwrites(t *testing.T) {
	f := newBannerFixture()

	f.products.On("FindByID", mock.Anything, "p-1").Return(model.Product{ID: "p-1"}, nil)
	f.products.On("FindByID", mock.Anything, "p-2").Return(model.Product{ID: "p-2"}, nil)

	// 常にID=1へのupsert。2行目は生まれない。
	f.banners.On("Upsert", mock.Anything, mock.MatchedBy(func(b model.PromoBanner) bool {
		return b.ProductID == "p-1"
	})).Return(model.PromoBanner{ID: 1, ProductID: "p-1"}, nil).Once()
	f.banners.On("Upsert", mock.Anything, mock.MatchedBy(func(b model.PromoBanner) bool {
		return b.ProductID == "p-2"
	})).Return(model.PromoBanner{ID: 1, ProductID: "p-2"}, nil).Once()

	first, err := f.uc.Save(context.Background(), usecase.SaveBannerInput{Message: "Sale", ProductID: "p-1"})
	assert.NoError(t, err)

	second, err := f.uc.Save(context.Background(), usecase.SaveBannerInput{Message: "Bigger sale", ProductID: "p-2"})
	assert.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	f.banners.AssertExpectations(t)
}

func TestBannerGet_NotConfigured(t *testing.T) {
	f := newBannerFixture()

	f.banners.On("Get", mock.Anything).Return(model.PromoBanner{}, false, nil)

	_, err := f.uc.Get(context.Background())
	assertHTTPStatus(t, err, 404)
}

func TestBannerGet_IncludesProduct(t *testing.T) {
	f := newBannerFixture()

	f.banners.On("Get", mock.Anything).
		Return(model.PromoBanner{ID: 1, Message: "Sale", ProductID: "p-1"}, true, nil)
	f.products.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Name: "Tote bag"}, nil)

	out, err := f.uc.Get(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, "Sale", out.Banner.Message)
	if assert.NotNil(t, out.Product) {
		assert.Equal(t, "Tote bag", out.Product.Name)
	}
}

func TestBannerGet_SurvivesDeletedProduct(t *testing.T) {
	f := newBannerFixture()

	f.banners.On("Get", mock.Anything).
		Return(model.PromoBanner{ID: 1, Message: "Sale", ProductID: "p-1"}, true, nil)
	f.products.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{}, repo.ErrNotFound)

	out, err := f.uc.Get(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, out.Product)
}
