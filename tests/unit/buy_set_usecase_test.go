package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type buySetFixture struct {
	sets     *BuySetRepoMock
	products *ProductRepoMock
	uc       *usecase.BuySetUsecase
}

func newBuySetFixture() *buySetFixture {
	f := &buySetFixture{
		sets:     new(BuySetRepoMock),
		products: new(ProductRepoMock),
	}
	f.uc = usecase.NewBuySetUsecase(f.sets, f.products)
	return f
}

func TestBuySetSave_UnknownCompleteSetRejected(t *testing.T) {
	f := newBuySetFixture()

	f.products.On("FindByIDs", mock.Anything, []string{"ghost", "p-1"}).
		Return([]model.Product{{ID: "p-1"}}, nil)

	_, err := f.uc.Save(context.Background(), "ghost", []string{"p-1"})
	assertHTTPStatus(t, err, 400)

	f.sets.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestBuySetSave_UnknownMemberRejected(t *testing.T) {
	f := newBuySetFixture()

	f.products.On("FindByIDs", mock.Anything, []string{"set-1", "p-1", "ghost"}).
		Return([]model.Product{{ID: "set-1"}, {ID: "p-1"}}, nil)

	_, err := f.uc.Save(context.Background(), "set-1", []string{"p-1", "ghost"})
	assertHTTPStatus(t, err, 400)

	f.sets.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestBuySetSave_Upserts(t *testing.T) {
	f := newBuySetFixture()

	f.products.On("FindByIDs", mock.Anything, []string{"set-1", "p-1", "p-2"}).
		Return([]model.Product{{ID: "set-1"}, {ID: "p-1"}, {ID: "p-2"}}, nil)
	f.sets.On("Upsert", mock.Anything, mock.MatchedBy(func(s model.BuySet) bool {
		return s.CompleteSetID == "set-1" && len(s.ProductIDs) == 2
	})).Return(model.BuySet{ID: 1, CompleteSetID: "set-1", ProductIDs: model.StringSlice{"p-1", "p-2"}}, nil)

	out, err := f.uc.Save(context.Background(), "set-1", []string{"p-1", "p-2"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)

	f.sets.AssertExpectations(t)
}

func TestBuySetGet_NotConfigured(t *testing.T) {
	f := newBuySetFixture()

	f.sets.On("Get", mock.Anything).Return(model.BuySet{}, false, nil)

	_, err := f.uc.Get(context.Background())
	assertHTTPStatus(t, err, 404)
}

func TestBuySetGet_HydratesProducts(t *testing.T) {
	f := newBuySetFixture()

	f.sets.On("Get", mock.Anything).
		Return(model.BuySet{ID: 1, CompleteSetID: "set-1", ProductIDs: model.StringSlice{"p-1", "p-2"}}, true, nil)
	f.products.On("FindByID", mock.Anything, "set-1").
		Return(model.Product{ID: "set-1", Name: "Full travel kit"}, nil)
	f.products.On("FindByIDs", mock.Anything, []string{"p-1", "p-2"}).
		Return([]model.Product{{ID: "p-1"}, {ID: "p-2"}}, nil)

	out, err := f.uc.Get(context.Background())
	assert.NoError(t, err)

	assert.Equal(t, "Full travel kit", out.CompleteSet.Name)
	assert.Len(t, out.Products, 2)
}
