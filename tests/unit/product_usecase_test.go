package unit

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type productFixture struct {
	products  *ProductRepoMock
	inventory *InventoryRepoMock
	promos    *PromotionRepoMock
	audit     *AuditRepoMock
	uc        *usecase.ProductUsecase
}

func newProductFixture() *productFixture {
	f := &productFixture{
		products:  new(ProductRepoMock),
		inventory: new(InventoryRepoMock),
		promos:    new(PromotionRepoMock),
		audit:     new(AuditRepoMock),
	}
	f.uc = usecase.NewProductUsecase(f.products, f.inventory, f.promos, f.audit)
	return f
}

func TestProductCreate_NameRequired(t *testing.T) {
	f := newProductFixture()

	_, err := f.uc.Create(context.Background(), "admin@example.com", usecase.SaveProductInput{
		Name:  "  ",
		Price: 1000,
	})
	assertHTTPStatus(t, err, 400)
}

func TestProductCreate_InvalidDiscount(t *testing.T) {
	f := newProductFixture()

	// 割引後価格が元値以上
	_, err := f.uc.Create(context.Background(), "admin@example.com", usecase.SaveProductInput{
		Name:            "Tote bag",
		Price:           1000,
		HasDiscount:     true,
		DiscountedPrice: 1200,
	})
	assertHTTPStatus(t, err, 400)

	f.products.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductCreate_WritesAudit(t *testing.T) {
	f := newProductFixture()

	f.products.On("Create", mock.Anything, mock.Anything).
		Return(model.Product{ID: "p-1", Name: "Tote bag"}, nil)
	f.audit.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == "product.create" && l.ActorEmail == "admin@example.com"
	})).Return(nil)

	created, err := f.uc.Create(context.Background(), "admin@example.com", usecase.SaveProductInput{
		Name:  "Tote bag",
		Price: 1000,
	})
	assert.NoError(t, err)
	assert.Equal(t, "p-1", created.ID)

	f.audit.AssertExpectations(t)
}

func TestSetStock_RecordsAdjustmentDelta(t *testing.T) {
	f := newProductFixture()

	f.products.On("FindByID", mock.Anything, "p-1").
		Return(model.Product{ID: "p-1", Stock: 10}, nil)
	f.inventory.On("SetStock", mock.Anything, "p-1", int64(4)).Return(nil)
	f.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == "p-1" && a.Delta == -6 && a.Reason == "damaged stock"
	})).Return(nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.uc.SetStock(context.Background(), "admin@example.com", "p-1", 4, "damaged stock")
	assert.NoError(t, err)

	f.inventory.AssertExpectations(t)
}

func TestSetStock_NegativeRejected(t *testing.T) {
	f := newProductFixture()

	err := f.uc.SetStock(context.Background(), "admin@example.com", "p-1", -1, "oops")
	assertHTTPStatus(t, err, 400)

	f.inventory.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuote_CountsDuplicates(t *testing.T) {
	f := newProductFixture()

	f.products.On("FindByIDs", mock.Anything, []string{"p-1", "p-1"}).
		Return([]model.Product{{ID: "p-1", Price: 1000}}, nil)
	f.promos.On("GetCurrent", mock.Anything).Return(model.StorePromotion{}, false, nil)

	out, err := f.uc.Quote(context.Background(), []string{"p-1", "p-1"})
	assert.NoError(t, err)
	assert.Equal(t, float64(2000), out.TotalAmount)
}

func TestSuggested_ClampsSampleSize(t *testing.T) {
	f := newProductFixture()

	// 上限は15件
	f.products.On("SampleRandom", mock.Anything, "", 15).
		Return([]model.Product{{ID: "p-1"}}, nil)

	out, err := f.uc.Suggested(context.Background(), "", 100)
	assert.NoError(t, err)
	assert.Len(t, out, 1)

	// 0以下はデフォルトの7件
	f.products.On("SampleRandom", mock.Anything, "footwear", 7).
		Return([]model.Product{}, nil)

	_, err = f.uc.Suggested(context.Background(), "footwear", 0)
	assert.NoError(t, err)

	f.products.AssertExpectations(t)
}

func TestRestock_RecordsPositiveDelta(t *testing.T) {
	f := newProductFixture()

	f.inventory.On("IncreaseStock", mock.Anything, "p-1", int64(6)).Return(nil)
	f.inventory.On("CreateAdjustment", mock.Anything, mock.MatchedBy(func(a model.InventoryAdjustment) bool {
		return a.ProductID == "p-1" && a.Delta == 6 && a.Reason == "new shipment"
	})).Return(nil)
	f.audit.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := f.uc.Restock(context.Background(), "admin@example.com", "p-1", 6, "new shipment")
	assert.NoError(t, err)

	f.inventory.AssertExpectations(t)
}

func TestRestock_NonPositiveQuantityRejected(t *testing.T) {
	f := newProductFixture()

	err := f.uc.Restock(context.Background(), "admin@example.com", "p-1", 0, "new shipment")
	assertHTTPStatus(t, err, 400)

	f.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}
