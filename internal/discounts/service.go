package discounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/metrics"
)

type discountRepository interface {
	Create(ctx context.Context, discount *models.BulkDiscount) error
	Update(ctx context.Context, discount *models.BulkDiscount) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.BulkDiscount, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]models.BulkDiscount, error)
}

type merchantLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
}

// Service exposes bulk discount management for a merchant.
type Service interface {
	List(ctx context.Context, merchantID uuid.UUID) ([]DiscountDTO, error)
	Get(ctx context.Context, merchantID, discountID uuid.UUID) (*DiscountDTO, error)
	Create(ctx context.Context, merchantID uuid.UUID, input revenue.RuleInput) (*DiscountDTO, error)
	Update(ctx context.Context, merchantID, discountID uuid.UUID, input revenue.RuleInput) (*DiscountDTO, error)
	Delete(ctx context.Context, merchantID, discountID uuid.UUID) error
}

type service struct {
	repo      discountRepository
	merchants merchantLookup
	metrics   *metrics.RevenueMetrics
}

// NewService builds a discount service; metrics may be nil.
func NewService(repo discountRepository, merchants merchantLookup, m *metrics.RevenueMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("discount repository required")
	}
	if merchants == nil {
		return nil, fmt.Errorf("merchant repository required")
	}
	return &service{repo: repo, merchants: merchants, metrics: m}, nil
}

func (s *service) List(ctx context.Context, merchantID uuid.UUID) ([]DiscountDTO, error) {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bulk discounts")
	}
	out := make([]DiscountDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, merchantID, discountID uuid.UUID) (*DiscountDTO, error) {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, merchantID, discountID)
	if err != nil {
		return nil, err
	}
	dto := toDTO(*row)
	return &dto, nil
}

func (s *service) Create(ctx context.Context, merchantID uuid.UUID, input revenue.RuleInput) (*DiscountDTO, error) {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	rule, err := revenue.ParseRule(merchantID, input)
	if err != nil {
		s.metrics.IncValidationFailure("create_bulk_discount")
		return nil, validationError(err)
	}

	row := &models.BulkDiscount{
		MerchantID:      merchantID,
		PercentDiscount: rule.PercentDiscount,
		Threshold:       rule.Threshold,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if pkgerrors.IsConstraintViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "bulk discount rejected by database constraint")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bulk discount")
	}
	dto := toDTO(*row)
	return &dto, nil
}

// Update applies a partial edit: blank fields keep the stored value and the
// merged rule is validated as a whole.
func (s *service) Update(ctx context.Context, merchantID, discountID uuid.UUID, input revenue.RuleInput) (*DiscountDTO, error) {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return nil, err
	}
	row, err := s.load(ctx, merchantID, discountID)
	if err != nil {
		return nil, err
	}

	merged := revenue.RuleInput{
		PercentDiscount: keepIfBlank(input.PercentDiscount, row.PercentDiscount),
		Threshold:       keepIfBlank(input.Threshold, row.Threshold),
	}
	rule, err := revenue.ParseRule(merchantID, merged)
	if err != nil {
		s.metrics.IncValidationFailure("update_bulk_discount")
		return nil, validationError(err)
	}

	row.PercentDiscount = rule.PercentDiscount
	row.Threshold = rule.Threshold
	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.FromLookup(err, "bulk discount")
	}
	dto := toDTO(*row)
	return &dto, nil
}

func (s *service) Delete(ctx context.Context, merchantID, discountID uuid.UUID) error {
	if err := s.ensureMerchant(ctx, merchantID); err != nil {
		return err
	}
	if _, err := s.load(ctx, merchantID, discountID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, discountID); err != nil {
		return pkgerrors.FromLookup(err, "bulk discount")
	}
	return nil
}

func (s *service) ensureMerchant(ctx context.Context, merchantID uuid.UUID) error {
	if _, err := s.merchants.FindByID(ctx, merchantID); err != nil {
		return pkgerrors.FromLookup(err, "merchant")
	}
	return nil
}

// load fetches a discount and hides discounts owned by other merchants.
func (s *service) load(ctx context.Context, merchantID, discountID uuid.UUID) (*models.BulkDiscount, error) {
	row, err := s.repo.FindByID(ctx, discountID)
	if err != nil {
		return nil, pkgerrors.FromLookup(err, "bulk discount")
	}
	if row.MerchantID != merchantID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bulk discount not found")
	}
	return row, nil
}

func keepIfBlank(raw string, stored int) string {
	if strings.TrimSpace(raw) == "" {
		return strconv.Itoa(stored)
	}
	return raw
}

func validationError(err error) error {
	var verr *revenue.ValidationError
	if !errors.As(err, &verr) {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bulk discount")
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, strings.Join(verr.Messages(), ", ")).WithDetails(map[string]any{
		"messages":   verr.Messages(),
		"kinds":      verr.Kinds(),
		"violations": verr.Violations,
	})
}
