package usecase

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"app/internal/auth"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/google/uuid"
)

var emailPattern = regexp.MustCompile(`^[\w.+-]+@[a-zA-Z\d.-]+\.[a-zA-Z]{2,}$`)

// アクセストークン発行の約束。実装はmainでDIする。
type TokenIssuer interface {
	Issue(email string, role model.Role, now time.Time) (string, time.Time, error)
}

type UserUsecase struct {
	users       repo.UserRepository
	orders      repo.OrderRepository
	items       repo.OrderItemRepository
	collections repo.CollectionRepository
	audit       repo.AuditLogRepository
	google      auth.IdentityProvider
	issuer      TokenIssuer
}

func NewUserUsecase(
	users repo.UserRepository,
	orders repo.OrderRepository,
	items repo.OrderItemRepository,
	collections repo.CollectionRepository,
	audit repo.AuditLogRepository,
	google auth.IdentityProvider,
	issuer TokenIssuer,
) *UserUsecase {
	return &UserUsecase{
		users:       users,
		orders:      orders,
		items:       items,
		collections: collections,
		audit:       audit,
		google:      google,
		issuer:      issuer,
	}
}

type AuthOutput struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// GoogleのアクセストークンからユーザーをupsertしてJWTを返す。
func (u *UserUsecase) Authenticate(ctx context.Context, googleAccessToken string) (AuthOutput, error) {
	if strings.TrimSpace(googleAccessToken) == "" {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "access token is required")
	}

	gu, err := u.google.FetchUser(ctx, googleAccessToken)
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}
	if gu.Email == "" {
		return AuthOutput{}, NewHTTPError(http.StatusUnauthorized, "invalid access token")
	}

	user, err := u.users.UpsertByEmail(ctx, model.User{
		ID:     uuid.NewString(),
		Email:  strings.ToLower(gu.Email),
		Name:   gu.GivenName,
		Avatar: gu.Picture,
		Role:   model.RoleUser,
	})
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	token, exp, err := u.issuer.Issue(user.Email, user.Role, time.Now())
	if err != nil {
		return AuthOutput{}, NewHTTPError(http.StatusInternalServerError, "token issue failed")
	}

	return AuthOutput{User: user, Token: token, ExpiresAt: exp}, nil
}

type MeOutput struct {
	User         model.User    `json:"user"`
	RecentOrders []model.Order `json:"recent_orders"`
	OrderCount   int64         `json:"order_count"`
}

// 「最近の注文」サマリは読むたびに更新する
func (u *UserUsecase) GetMe(ctx context.Context, email string) (MeOutput, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return MeOutput{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return MeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orders, total, err := u.orders.ListByCustomerEmail(ctx, email, 1, 5)
	if err != nil {
		return MeOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return MeOutput{User: user, RecentOrders: orders, OrderCount: total}, nil
}

type CategorySpend struct {
	Collection  string  `json:"collection"`
	AmountSpent float64 `json:"amount_spent"`
}

type ExpenseInsightOutput struct {
	TotalSpent float64         `json:"total_spent"`
	Breakdown  []CategorySpend `json:"breakdown"`
}

// カテゴリ別の支出集計。支払い済み注文の明細スナップショットを単価で積む。
// 購入のないコレクションも0で返す（グラフ表示の都合）。
func (u *UserUsecase) ExpenseInsight(ctx context.Context, email string) (ExpenseInsightOutput, error) {
	orders, err := u.orders.ListPaidByCustomerEmail(ctx, email)
	if err != nil {
		return ExpenseInsightOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	orderIDs := make([]string, 0, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID)
	}

	items, err := u.items.ListByOrderIDs(ctx, orderIDs)
	if err != nil {
		return ExpenseInsightOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	spent := make(map[string]float64)
	for _, it := range items {
		spent[it.CollectionSnapshot] += it.PriceSnapshot
	}

	collections, err := u.collections.List(ctx)
	if err != nil {
		return ExpenseInsightOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := ExpenseInsightOutput{Breakdown: make([]CategorySpend, 0, len(collections))}
	for _, c := range collections {
		amount := spent[c.Slug]
		out.Breakdown = append(out.Breakdown, CategorySpend{Collection: c.Slug, AmountSpent: amount})
		out.TotalSpent += amount
	}

	return out, nil
}

func (u *UserUsecase) EditAddress(ctx context.Context, email, state, lga string) error {
	if strings.TrimSpace(state) == "" {
		return NewHTTPError(http.StatusBadRequest, "state is required")
	}

	err := u.users.UpdateAddress(ctx, email, state, lga)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

type UserListOutput struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
}

func (u *UserUsecase) List(ctx context.Context, page, limit int) (UserListOutput, error) {
	items, total, err := u.users.List(ctx, page, limit)
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return UserListOutput{Items: items, Total: total}, nil
}

func (u *UserUsecase) Delete(ctx context.Context, actorEmail, userID string) error {
	err := u.users.Delete(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.audit.Create(ctx, model.AuditLog{
		ActorEmail: actorEmail,
		Action:     "user.delete",
		TargetID:   userID,
	})
	return nil
}

// モデレーター任命。superuserだけが呼べる（ハンドラ側のガード）。
func (u *UserUsecase) AssignRole(ctx context.Context, actorEmail, targetEmail string, role model.Role) error {
	if !emailPattern.MatchString(targetEmail) {
		return NewHTTPError(http.StatusBadRequest, "valid email is required")
	}
	switch role {
	case model.RoleUser, model.RoleAdmin:
	default:
		//superuserへの昇格はAPIからはさせない
		return NewHTTPError(http.StatusBadRequest, "invalid role")
	}

	err := u.users.UpdateRole(ctx, targetEmail, role)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "user not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	_ = u.audit.Create(ctx, model.AuditLog{
		ActorEmail: actorEmail,
		Action:     "user.assign_role",
		TargetID:   targetEmail,
		Detail:     string(role),
	})
	return nil
}
