package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"app/internal/domain/model"
	"app/internal/pricing"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

type ProductUsecase struct {
	products  repo.ProductRepository
	inventory repo.InventoryRepository
	promos    repo.PromotionRepository
	audit     repo.AuditLogRepository
}

func NewProductUsecase(
	products repo.ProductRepository,
	inventory repo.InventoryRepository,
	promos repo.PromotionRepository,
	audit repo.AuditLogRepository,
) *ProductUsecase {
	return &ProductUsecase{
		products:  products,
		inventory: inventory,
		promos:    promos,
		audit:     audit,
	}
}

type ListProductsInput struct {
	Page       int
	Limit      int
	Collection string
	Q          string
	Sort       string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit < 1 || in.Limit > 100 {
		in.Limit = 20
	}
	if len(in.Q) > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc", "rating":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.products.List(ctx, repo.ProductListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Collection: strings.TrimSpace(in.Collection),
		Q:          strings.TrimSpace(in.Q),
		Sort:       in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{Items: items, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID string) (model.Product, error) {
	if strings.TrimSpace(productID) == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

func (u *ProductUsecase) BestSelling(ctx context.Context, limit int) ([]model.Product, error) {
	items, err := u.products.BestSelling(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *ProductUsecase) LatestDiscounted(ctx context.Context) (model.Product, error) {
	p, err := u.products.LatestDiscounted(ctx)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "no discounted product")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 「あなたへのおすすめ」。コレクション指定は任意で、ランダムに数件返す。
func (u *ProductUsecase) Suggested(ctx context.Context, collection string, sample int) ([]model.Product, error) {
	if sample < 1 {
		sample = 7
	}
	if sample > 15 {
		sample = 15
	}

	items, err := u.products.SampleRandom(ctx, strings.TrimSpace(collection), sample)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type QuoteOutput struct {
	TotalAmount float64 `json:"total_amount"`
}

// カートの見積もり。注文前にクライアントが表示する金額で、IDの出現回数ぶん数える。
func (u *ProductUsecase) Quote(ctx context.Context, productIDs []string) (QuoteOutput, error) {
	if len(productIDs) == 0 {
		return QuoteOutput{}, NewHTTPError(http.StatusBadRequest, "product ids are required")
	}

	found, err := u.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return QuoteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	byID := make(map[string]model.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	items := make([]model.Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, ok := byID[id]
		if !ok {
			return QuoteOutput{}, NewHTTPError(http.StatusBadRequest, "no valid product found")
		}
		items = append(items, p)
	}

	promo, ok, err := u.activePromotion(ctx)
	if err != nil {
		return QuoteOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !ok {
		promo = nil
	}

	return QuoteOutput{TotalAmount: pricing.Total(items, promo)}, nil
}

func (u *ProductUsecase) activePromotion(ctx context.Context) (*model.StorePromotion, bool, error) {
	p, ok, err := u.promos.GetCurrent(ctx)
	if err != nil || !ok || !p.IsActive {
		return nil, false, err
	}
	return &p, true, nil
}

type SaveProductInput struct {
	Name            string
	Description     string
	Price           float64
	HasDiscount     bool
	DiscountedPrice float64
	Collection      string
	Stock           int64
	AvailableColors []string
	Images          []string
	Rating          float64
	IsNew           bool
}

// カタログ書き込み時のバリデーション。価格エンジンはここを信用する。
func validateProductInput(in SaveProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price <= 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if in.HasDiscount {
		if _, err := pricing.DiscountPercentage(in.Price, in.DiscountedPrice); err != nil {
			return NewHTTPError(http.StatusBadRequest, "invalid discounted price")
		}
	}
	return nil
}

func (u *ProductUsecase) Create(ctx context.Context, actorEmail string, in SaveProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		ID:              uuid.NewString(),
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		HasDiscount:     in.HasDiscount,
		DiscountedPrice: in.DiscountedPrice,
		Collection:      in.Collection,
		Stock:           in.Stock,
		AvailableColors: in.AvailableColors,
		Images:          in.Images,
		Rating:          in.Rating,
		IsNew:           in.IsNew,
	}

	created, err := u.products.Create(ctx, p)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorEmail, "product.create", created.ID, created.Name)
	return created, nil
}

func (u *ProductUsecase) Edit(ctx context.Context, actorEmail string, productID string, in SaveProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	p := model.Product{
		ID:              productID,
		Name:            in.Name,
		Description:     in.Description,
		Price:           in.Price,
		HasDiscount:     in.HasDiscount,
		DiscountedPrice: in.DiscountedPrice,
		Collection:      in.Collection,
		AvailableColors: in.AvailableColors,
		Images:          in.Images,
		Rating:          in.Rating,
		IsNew:           in.IsNew,
	}

	err := u.products.Update(ctx, p)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorEmail, "product.edit", productID, in.Name)
	return u.Get(ctx, productID)
}

func (u *ProductUsecase) Delete(ctx context.Context, actorEmail string, productID string) error {
	err := u.products.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorEmail, "product.delete", productID, "")
	return nil
}

// 在庫の直接設定。差分は調整履歴に残す。
func (u *ProductUsecase) SetStock(ctx context.Context, actorEmail string, productID string, newStock int64, reason string) error {
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventory.SetStock(ctx, productID, newStock); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	adj := model.InventoryAdjustment{
		ProductID:  productID,
		ActorEmail: actorEmail,
		Delta:      newStock - p.Stock,
		Reason:     reason,
	}
	if err := u.inventory.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorEmail, "product.set_stock", productID, fmt.Sprintf("stock=%d", newStock))
	return nil
}

// 入荷など在庫の積み増し。加算はDB側で行う（同時の減算と衝突しない）。
func (u *ProductUsecase) Restock(ctx context.Context, actorEmail string, productID string, qty int64, reason string) error {
	if qty <= 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be > 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
	}

	err := u.inventory.IncreaseStock(ctx, productID, qty)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	adj := model.InventoryAdjustment{
		ProductID:  productID,
		ActorEmail: actorEmail,
		Delta:      qty,
		Reason:     reason,
	}
	if err := u.inventory.CreateAdjustment(ctx, adj); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, actorEmail, "product.restock", productID, fmt.Sprintf("qty=%d", qty))
	return nil
}

func (u *ProductUsecase) writeAudit(ctx context.Context, actor, action, target, detail string) {
	//監査ログの失敗で操作は止めない
	_ = u.audit.Create(ctx, model.AuditLog{
		ActorEmail: actor,
		Action:     action,
		TargetID:   target,
		Detail:     detail,
	})
}
