package pricing

import (
	"testing"
	"time"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func product(id string, price float64) model.Product {
	return model.Product{ID: id, Name: "p-" + id, Price: price}
}

func discounted(id string, price, dp float64) model.Product {
	p := product(id, price)
	p.HasDiscount = true
	p.DiscountedPrice = dp
	return p
}

func promo(scope model.PromotionScope, pct float64, ids ...string) *model.StorePromotion {
	return &model.StorePromotion{
		ID:                 model.StorePromotionSingletonID,
		DiscountPercentage: pct,
		ApplicableTo:       scope,
		ProductIDs:         ids,
		StartDate:          time.Now().AddDate(0, 0, -1),
		EndDate:            time.Now().AddDate(0, 0, 1),
		IsActive:           true,
	}
}

func TestTotal_NoPromotion(t *testing.T) {
	items := []model.Product{
		product("a", 1000),
		discounted("b", 2000, 1500),
	}

	assert.Equal(t, 2500.0, Total(items, nil))
}

func TestTotal_InactivePromotionIgnored(t *testing.T) {
	p := promo(model.PromotionAllProducts, 50)
	p.IsActive = false

	items := []model.Product{product("a", 1000)}
	assert.Equal(t, 1000.0, Total(items, p))
}

func TestTotal_AllProducts(t *testing.T) {
	items := []model.Product{
		product("a", 1000),
		product("b", 2000),
	}

	// 0%は無変化、50%は半額、100%は無料
	assert.Equal(t, 3000.0, Total(items, promo(model.PromotionAllProducts, 0)))
	assert.Equal(t, 1500.0, Total(items, promo(model.PromotionAllProducts, 50)))
	assert.Equal(t, 0.0, Total(items, promo(model.PromotionAllProducts, 100)))
}

func TestTotal_AllProducts_ExampleScenario(t *testing.T) {
	// 1000 + 2000 の 10% 引き → 2700.00
	items := []model.Product{
		product("a", 1000),
		product("b", 2000),
	}

	assert.Equal(t, 2700.0, Total(items, promo(model.PromotionAllProducts, 10)))
}

func TestTotal_SelectedProducts(t *testing.T) {
	items := []model.Product{
		product("a", 1000),
		product("b", 2000),
	}

	// aだけ対象：1000*0.9 + 2000 = 2900
	assert.Equal(t, 2900.0, Total(items, promo(model.PromotionSelectedProducts, 10, "a")))
}

func TestTotal_SelectedProducts_OwnDiscountExcluded(t *testing.T) {
	// 個別割引を持つ商品はIDが対象リストにあってもストア割引を受けない
	items := []model.Product{
		discounted("a", 1000, 800),
		product("b", 2000),
	}

	got := Total(items, promo(model.PromotionSelectedProducts, 50, "a", "b"))
	// a: 800（個別割引のみ）, b: 2000*0.5 = 1000
	assert.Equal(t, 1800.0, got)
}

func TestTotal_Rounding(t *testing.T) {
	items := []model.Product{product("a", 999.99)}

	// 999.99 * (1 - 1/3*...) みたいな端数でも2桁に丸める
	got := Total(items, promo(model.PromotionAllProducts, 33))
	assert.Equal(t, 669.99, got)
}

func TestTotal_EmptyItems(t *testing.T) {
	// 空リストの拒否は呼び出し側の責務。エンジンは0を返すだけ。
	assert.Equal(t, 0.0, Total(nil, promo(model.PromotionAllProducts, 10)))
}

func TestDiscountPercentage(t *testing.T) {
	pct, err := DiscountPercentage(2000, 1500)
	assert.NoError(t, err)
	assert.Equal(t, 25, pct)

	_, err = DiscountPercentage(0, 0)
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	_, err = DiscountPercentage(1000, 1200)
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}
