package pricing

import (
	"errors"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 商品ごとに適用する割引はひとつだけ。
// 個別割引を持つ商品はストアプロモーションの対象から外れる（重ね掛けしない）。

var ErrInvalidDiscount = errors.New("invalid price or discounted price")

// Total は商品リストとストアプロモーションから注文合計を計算する。
// プロモーションが無い/無効なら各商品の実効価格の合計。
// 返り値は小数2桁（四捨五入）の通貨額。
func Total(items []model.Product, promo *model.StorePromotion) float64 {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(decimal.NewFromFloat(it.EffectivePrice()))
	}

	if promo == nil || !promo.IsActive {
		return round2(sum)
	}

	rate := discountRate(promo.DiscountPercentage)

	if promo.ApplicableTo == model.PromotionAllProducts {
		return round2(sum.Mul(rate))
	}

	if promo.ApplicableTo == model.PromotionSelectedProducts {
		eligible := decimal.Zero
		rest := decimal.Zero
		for _, it := range items {
			price := decimal.NewFromFloat(it.EffectivePrice())
			// 個別割引持ちはIDが対象でもプロモーション対象外
			if !it.HasDiscount && promo.ProductIDs.Contains(it.ID) {
				eligible = eligible.Add(price)
			} else {
				rest = rest.Add(price)
			}
		}
		return round2(eligible.Mul(rate).Add(rest))
	}

	// 未知のスコープは割引なし扱い
	return round2(sum)
}

// DiscountPercentage は定価と割引価格から割引率（整数%）を出す。
// カタログ書き込み時のバリデーションを兼ねる。
func DiscountPercentage(price, discounted float64) (int, error) {
	if price <= 0 || discounted < 0 || discounted > price {
		return 0, ErrInvalidDiscount
	}
	p := decimal.NewFromFloat(price)
	d := decimal.NewFromFloat(discounted)
	pct := p.Sub(d).Div(p).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart()), nil
}

func discountRate(percentage float64) decimal.Decimal {
	pct := decimal.NewFromFloat(percentage).Div(decimal.NewFromInt(100))
	return decimal.NewFromInt(1).Sub(pct)
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
