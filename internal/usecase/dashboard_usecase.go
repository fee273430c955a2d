package usecase

import (
	"context"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type DashboardUsecase struct {
	orders repo.OrderRepository
	users  repo.UserRepository
}

func NewDashboardUsecase(orders repo.OrderRepository, users repo.UserRepository) *DashboardUsecase {
	return &DashboardUsecase{orders: orders, users: users}
}

type DashboardOutput struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalUsers         int64   `json:"total_users"`
	NewUsersThisMonth  int64   `json:"new_users_this_month"`
	SalesThisMonth     float64 `json:"sales_this_month"`
	SalesLastMonth     float64 `json:"sales_last_month"`
	SalesChangePercent float64 `json:"sales_change_percent"`
	PendingOrders      int64   `json:"pending_orders"`
	OrdersThisMonth    int64   `json:"orders_this_month"`
}

func (u *DashboardUsecase) Summary(ctx context.Context, now time.Time) (DashboardOutput, error) {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	endOfMonth := startOfMonth.AddDate(0, 1, 0).Add(-time.Nanosecond)
	startOfLastMonth := startOfMonth.AddDate(0, -1, 0)
	endOfLastMonth := startOfMonth.Add(-time.Nanosecond)

	revenue, err := u.orders.PaidRevenue(ctx, nil, nil)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	thisMonth, err := u.orders.PaidRevenue(ctx, &startOfMonth, &endOfMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	lastMonth, err := u.orders.PaidRevenue(ctx, &startOfLastMonth, &endOfLastMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//前月比。前月ゼロで今月売上ありなら100%扱い。
	change := 0.0
	if lastMonth > 0 {
		change = (thisMonth - lastMonth) / lastMonth * 100
	} else if thisMonth > 0 {
		change = 100
	}

	totalUsers, err := u.users.Count(ctx)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newUsers, err := u.users.CountCreatedBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	pending, err := u.orders.CountByPaymentStatus(ctx, model.PaymentStatusPending)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	ordersThisMonth, err := u.orders.CountCreatedBetween(ctx, startOfMonth, endOfMonth)
	if err != nil {
		return DashboardOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return DashboardOutput{
		TotalRevenue:       revenue,
		TotalUsers:         totalUsers,
		NewUsersThisMonth:  newUsers,
		SalesThisMonth:     thisMonth,
		SalesLastMonth:     lastMonth,
		SalesChangePercent: change,
		PendingOrders:      pending,
		OrdersThisMonth:    ordersThisMonth,
	}, nil
}

type MonthlySales struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

// 直近nヶ月の売上推移
func (u *DashboardUsecase) SalesOverview(ctx context.Context, now time.Time, months int) ([]MonthlySales, error) {
	if months <= 0 || months > 24 {
		months = 6
	}

	out := make([]MonthlySales, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)

		rev, err := u.orders.PaidRevenue(ctx, &start, &end)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = append(out, MonthlySales{Month: start.Format("2006-01"), Revenue: rev})
	}
	return out, nil
}
