package invoices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/discounts"
	"github.com/angelmondragon/bulkdiscount-backend/internal/repo"
	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/metrics"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/money"
)

type invoiceRepository interface {
	Snapshot(ctx context.Context, id uuid.UUID) (*revenue.Invoice, error)
	LineItem(ctx context.Context, invoiceID, invoiceItemID uuid.UUID) (*repo.LineItemRow, error)
	UpdateItemStatus(ctx context.Context, invoiceItemID uuid.UUID, status enums.InvoiceItemStatus) error
}

type ruleSource interface {
	ListByMerchants(ctx context.Context, merchantIDs []uuid.UUID) ([]models.BulkDiscount, error)
}

type merchantLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
}

// Service renders invoices with discount-aware revenue.
type Service interface {
	MerchantInvoice(ctx context.Context, merchantID, invoiceID uuid.UUID) (*MerchantInvoiceDTO, error)
	AdminInvoice(ctx context.Context, invoiceID uuid.UUID) (*AdminInvoiceDTO, error)
	UpdateItemStatus(ctx context.Context, merchantID, invoiceID, invoiceItemID uuid.UUID, status string) (*ItemStatusDTO, error)
}

type service struct {
	repo      invoiceRepository
	rules     ruleSource
	merchants merchantLookup
	metrics   *metrics.RevenueMetrics
}

// NewService builds an invoice service; metrics may be nil.
func NewService(repo invoiceRepository, rules ruleSource, merchants merchantLookup, m *metrics.RevenueMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if rules == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if merchants == nil {
		return nil, fmt.Errorf("merchant repository required")
	}
	return &service{repo: repo, rules: rules, merchants: merchants, metrics: m}, nil
}

func (s *service) MerchantInvoice(ctx context.Context, merchantID, invoiceID uuid.UUID) (*MerchantInvoiceDTO, error) {
	const op = "merchant_invoice"
	defer s.metrics.Since(op, time.Now())

	if _, err := s.merchants.FindByID(ctx, merchantID); err != nil {
		return nil, pkgerrors.FromLookup(err, "merchant")
	}
	inv, err := s.repo.Snapshot(ctx, invoiceID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "invoice")
	}
	items := revenue.MerchantItems(*inv, merchantID)
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
	}

	rules, err := s.loadRules(ctx, []uuid.UUID{merchantID})
	if err != nil {
		return nil, err
	}
	calc := revenue.NewCalculator(rules, inv.Transactions)
	lines, applied := lineItemDTOs(calc, items)
	s.metrics.AddDiscountsApplied(op, applied)

	gross := revenue.RevenueByMerchant(*inv, merchantID)
	discounted := revenue.DiscountedRevenueByMerchant(*inv, merchantID, rules)
	return &MerchantInvoiceDTO{
		ID:                                 inv.ID,
		Status:                             inv.Status,
		CreatedAt:                          inv.CreatedAt,
		CustomerName:                       inv.CustomerName,
		Paid:                               calc.Eligible,
		Items:                              lines,
		RevenueByMerchant:                  gross,
		RevenueByMerchantDisplay:           money.FormatCents(gross),
		DiscountedRevenueByMerchant:        discounted,
		DiscountedRevenueByMerchantDisplay: money.FormatCents(discounted),
	}, nil
}

func (s *service) AdminInvoice(ctx context.Context, invoiceID uuid.UUID) (*AdminInvoiceDTO, error) {
	const op = "admin_invoice"
	defer s.metrics.Since(op, time.Now())

	inv, err := s.repo.Snapshot(ctx, invoiceID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "invoice")
	}
	rules, err := s.loadRules(ctx, merchantIDs(inv.Items))
	if err != nil {
		return nil, err
	}
	calc := revenue.NewCalculator(rules, inv.Transactions)
	lines, applied := lineItemDTOs(calc, inv.Items)
	s.metrics.AddDiscountsApplied(op, applied)

	gross := revenue.Revenue(*inv)
	discounted := revenue.InvoiceDiscountedRevenue(*inv, rules)
	return &AdminInvoiceDTO{
		ID:                              inv.ID,
		Status:                          inv.Status,
		CreatedAt:                       inv.CreatedAt,
		CustomerName:                    inv.CustomerName,
		Paid:                            calc.Eligible,
		Items:                           lines,
		Revenue:                         gross,
		RevenueDisplay:                  money.FormatCents(gross),
		InvoiceDiscountedRevenue:        discounted,
		InvoiceDiscountedRevenueDisplay: money.FormatCents(discounted),
	}, nil
}

func (s *service) UpdateItemStatus(ctx context.Context, merchantID, invoiceID, invoiceItemID uuid.UUID, status string) (*ItemStatusDTO, error) {
	parsed, err := enums.ParseInvoiceItemStatus(strings.TrimSpace(status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid invoice item status")
	}

	row, err := s.repo.LineItem(ctx, invoiceID, invoiceItemID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "invoice item")
	}
	if row.MerchantID != merchantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice item not found")
	}
	if err := s.repo.UpdateItemStatus(ctx, invoiceItemID, parsed); err != nil {
		return nil, pkgerrors.FromLookup(err, "invoice item")
	}

	return &ItemStatusDTO{
		ID:        row.ID,
		InvoiceID: row.InvoiceID,
		ItemName:  row.ItemName,
		Status:    parsed,
	}, nil
}

func (s *service) loadRules(ctx context.Context, merchantIDs []uuid.UUID) (revenue.RuleSet, error) {
	rows, err := s.rules.ListByMerchants(ctx, merchantIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bulk discounts")
	}
	return revenue.GroupRules(discounts.ToRules(rows)), nil
}

func merchantIDs(items []revenue.LineItem) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	ids := make([]uuid.UUID, 0, len(items))
	for _, li := range items {
		if _, ok := seen[li.MerchantID]; ok {
			continue
		}
		seen[li.MerchantID] = struct{}{}
		ids = append(ids, li.MerchantID)
	}
	return ids
}
