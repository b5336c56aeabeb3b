package discounts

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/internal/merchants"
	"github.com/angelmondragon/bulkdiscount-backend/internal/revenue"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/dbtest"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/bulkdiscount-backend/pkg/errors"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/metrics"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	db := dbtest.Open(t)
	svc, err := NewService(NewRepository(db), merchants.NewRepository(db), metrics.NewRevenueMetrics(prometheus.NewRegistry()))
	require.NoError(t, err)
	return svc, db
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) *pkgerrors.Error {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
	return typed
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(nil, stubMerchants{}, nil)
	assert.Error(t, err)
	_, err = NewService(&stubRepo{}, nil, nil)
	assert.Error(t, err)
}

func TestServiceCreateAndList(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)

	created, err := svc.Create(ctx, merchant.ID, revenue.RuleInput{PercentDiscount: "20", Threshold: "10"})
	require.NoError(t, err)
	assert.Equal(t, merchant.ID, created.MerchantID)
	assert.Equal(t, "20%", created.Label)
	assert.Equal(t, "Threshold: 10 items", created.ThresholdLabel)

	_, err = svc.Create(ctx, merchant.ID, revenue.RuleInput{PercentDiscount: "15", Threshold: "5"})
	require.NoError(t, err)

	list, err := svc.List(ctx, merchant.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 5, list[0].Threshold)
	assert.Equal(t, created.ID, list[1].ID)
}

func TestServiceCreateValidation(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)

	_, err := svc.Create(ctx, merchant.ID, revenue.RuleInput{PercentDiscount: "", Threshold: "abc"})
	typed := requireCode(t, err, pkgerrors.CodeValidation)

	details, ok := typed.Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []string{"Percent discount can't be blank", "Threshold is not a number"}, details["messages"])
	assert.Equal(t, []revenue.ViolationKind{revenue.PercentDiscountBlank, revenue.ThresholdNotANumber}, details["kinds"])

	var verr *revenue.ValidationError
	assert.True(t, errors.As(err, &verr))

	list, err := svc.List(ctx, merchant.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestServiceUnknownMerchant(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, uuid.New(), revenue.RuleInput{PercentDiscount: "20", Threshold: "10"})
	requireCode(t, err, pkgerrors.CodeNotFound)
	_, err = svc.List(ctx, uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceScopesDiscountsToMerchant(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	owner := dbtest.Merchant(t, db, "Owner", enums.MerchantStatusEnabled)
	intruder := dbtest.Merchant(t, db, "Intruder", enums.MerchantStatusEnabled)
	discount := dbtest.BulkDiscount(t, db, owner.ID, 20, 10)

	_, err := svc.Get(ctx, intruder.ID, discount.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
	_, err = svc.Update(ctx, intruder.ID, discount.ID, revenue.RuleInput{PercentDiscount: "50"})
	requireCode(t, err, pkgerrors.CodeNotFound)
	requireCode(t, svc.Delete(ctx, intruder.ID, discount.ID), pkgerrors.CodeNotFound)

	got, err := svc.Get(ctx, owner.ID, discount.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.PercentDiscount)
}

func TestServiceUpdateKeepsBlankFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)
	discount := dbtest.BulkDiscount(t, db, merchant.ID, 20, 10)

	updated, err := svc.Update(ctx, merchant.ID, discount.ID, revenue.RuleInput{Threshold: "12"})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.PercentDiscount)
	assert.Equal(t, 12, updated.Threshold)

	_, err = svc.Update(ctx, merchant.ID, discount.ID, revenue.RuleInput{PercentDiscount: "100"})
	typed := requireCode(t, err, pkgerrors.CodeValidation)
	details := typed.Details().(map[string]any)
	assert.Equal(t, []string{"Percent discount must be less than 100"}, details["messages"])

	var stored models.BulkDiscount
	require.NoError(t, db.First(&stored, "id = ?", discount.ID).Error)
	assert.Equal(t, 20, stored.PercentDiscount)
	assert.Equal(t, 12, stored.Threshold)
}

func TestServiceDelete(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)
	discount := dbtest.BulkDiscount(t, db, merchant.ID, 20, 10)

	require.NoError(t, svc.Delete(ctx, merchant.ID, discount.ID))
	_, err := svc.Get(ctx, merchant.ID, discount.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceDependencyError(t *testing.T) {
	svc, err := NewService(&stubRepo{err: errors.New("boom")}, stubMerchants{}, nil)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeDependency)
	_, err = svc.Get(context.Background(), uuid.New(), uuid.New())
	requireCode(t, err, pkgerrors.CodeDependency)
}

type stubMerchants struct{}

func (stubMerchants) FindByID(_ context.Context, id uuid.UUID) (*models.Merchant, error) {
	return &models.Merchant{ID: id, Name: "stub"}, nil
}

type stubRepo struct {
	err error
}

func (s *stubRepo) Create(context.Context, *models.BulkDiscount) error { return s.err }
func (s *stubRepo) Update(context.Context, *models.BulkDiscount) error { return s.err }
func (s *stubRepo) Delete(context.Context, uuid.UUID) error            { return s.err }
func (s *stubRepo) FindByID(context.Context, uuid.UUID) (*models.BulkDiscount, error) {
	return nil, s.err
}
func (s *stubRepo) ListByMerchant(context.Context, uuid.UUID) ([]models.BulkDiscount, error) {
	return nil, s.err
}
