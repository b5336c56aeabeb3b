package merchants

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/metrics"
)

const topCustomerLimit = 5

type merchantRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	CountByStatus(ctx context.Context) (map[enums.MerchantStatus]int64, error)
	LineItems(ctx context.Context, merchantID uuid.UUID) ([]repo.LineItemRow, error)
	CollectedRevenue(ctx context.Context, merchantID *uuid.UUID) (int64, error)
	ItemsReadyToShip(ctx context.Context, merchantID uuid.UUID) ([]repo.LineItemRow, error)
	TransactionsByInvoice(ctx context.Context, invoiceIDs []uuid.UUID) (map[uuid.UUID][]revenue.Transaction, error)
	TopCustomers(ctx context.Context, merchantID *uuid.UUID, limit int) ([]CustomerRank, error)
}

type discountCounter interface {
	CountByMerchant(ctx context.Context, merchantID uuid.UUID) (int64, error)
}

// Service builds the merchant and admin dashboards.
type Service interface {
	MerchantDashboard(ctx context.Context, merchantID uuid.UUID) (*MerchantDashboardDTO, error)
	AdminDashboard(ctx context.Context) (*AdminDashboardDTO, error)
}

type service struct {
	repo      merchantRepository
	discounts discountCounter
	metrics   *metrics.RevenueMetrics
}

// NewService builds a dashboard service; metrics may be nil.
func NewService(repo merchantRepository, discounts discountCounter, m *metrics.RevenueMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("merchant repository required")
	}
	if discounts == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	return &service{repo: repo, discounts: discounts, metrics: m}, nil
}

func (s *service) MerchantDashboard(ctx context.Context, merchantID uuid.UUID) (*MerchantDashboardDTO, error) {
	defer s.metrics.Since("merchant_dashboard", time.Now())

	merchant, err := s.repo.FindByID(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "merchant")
	}

	rows, err := s.repo.LineItems(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load merchant line items")
	}
	total, err := s.collectionRevenue(ctx, rows)
	if err != nil {
		return nil, err
	}

	discountCount, err := s.discounts.CountByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count bulk discounts")
	}
	ready, err := s.repo.ItemsReadyToShip(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load items ready to ship")
	}
	top, err := s.repo.TopCustomers(ctx, &merchantID, topCustomerLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top customers")
	}

	return &MerchantDashboardDTO{
		ID:             merchant.ID,
		Name:           merchant.Name,
		Status:         merchant.Status,
		Revenue:        total,
		RevenueDisplay: displayCents(total),
		DiscountCount:  discountCount,
		TopCustomers:   customerDTOs(top),
		ReadyToShip:    readyToShipDTOs(ready),
	}, nil
}

func (s *service) AdminDashboard(ctx context.Context) (*AdminDashboardDTO, error) {
	defer s.metrics.Since("admin_dashboard", time.Now())

	total, err := s.repo.CollectedRevenue(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum collected revenue")
	}

	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count merchants")
	}
	top, err := s.repo.TopCustomers(ctx, nil, topCustomerLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top customers")
	}

	return &AdminDashboardDTO{
		Revenue:           total,
		RevenueDisplay:    displayCents(total),
		EnabledMerchants:  counts[enums.MerchantStatusEnabled],
		DisabledMerchants: counts[enums.MerchantStatusDisabled],
		TopCustomers:      customerDTOs(top),
	}, nil
}

// collectionRevenue re-reads transactions on every call; results are never cached.
func (s *service) collectionRevenue(ctx context.Context, rows []repo.LineItemRow) (int64, error) {
	txs, err := s.repo.TransactionsByInvoice(ctx, repo.InvoiceIDs(rows))
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load transactions")
	}
	return revenue.CollectionRevenue(repo.Snapshots(rows), txs), nil
}
