package merchants

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/dbtest"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

func TestRepositoryFindByID(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)
	got, err := repo.FindByID(ctx, merchant.ID)
	require.NoError(t, err)
	assert.Equal(t, "Schroeder-Jerde", got.Name)
	assert.Equal(t, enums.MerchantStatusEnabled, got.Status)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestRepositoryCountByStatus(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)

	dbtest.Merchant(t, db, "A", enums.MerchantStatusEnabled)
	dbtest.Merchant(t, db, "B", enums.MerchantStatusEnabled)
	dbtest.Merchant(t, db, "C", enums.MerchantStatusDisabled)

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[enums.MerchantStatusEnabled])
	assert.Equal(t, int64(1), counts[enums.MerchantStatusDisabled])
}

func TestRepositoryItemsReadyToShip(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)
	other := dbtest.Merchant(t, db, "Other", enums.MerchantStatusEnabled)
	widget := dbtest.Item(t, db, merchant.ID, "Widget", 1000)
	gadget := dbtest.Item(t, db, merchant.ID, "Gadget", 500)
	foreign := dbtest.Item(t, db, other.ID, "Foreign", 500)
	customer := dbtest.Customer(t, db, "Joey", "Ondricka")

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := dbtest.Invoice(t, db, customer.ID, base.Add(48*time.Hour))
	older := dbtest.Invoice(t, db, customer.ID, base)

	dbtest.InvoiceItem(t, db, newer.ID, widget.ID, 1, 1000, enums.InvoiceItemStatusPending)
	dbtest.InvoiceItem(t, db, older.ID, widget.ID, 2, 1000, enums.InvoiceItemStatusPackaged)
	dbtest.InvoiceItem(t, db, older.ID, gadget.ID, 2, 500, enums.InvoiceItemStatusShipped)
	dbtest.InvoiceItem(t, db, older.ID, foreign.ID, 2, 500, enums.InvoiceItemStatusPending)

	rows, err := repo.ItemsReadyToShip(ctx, merchant.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, older.ID, rows[0].InvoiceID)
	assert.Equal(t, "Widget", rows[0].ItemName)
	assert.Equal(t, enums.InvoiceItemStatusPackaged, rows[0].Status)
	assert.Equal(t, newer.ID, rows[1].InvoiceID)
	assert.True(t, rows[0].InvoiceCreatedAt.Before(rows[1].InvoiceCreatedAt))

	all, err := repo.LineItems(ctx, merchant.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestRepositoryTopCustomers(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db)
	ctx := context.Background()

	merchant := dbtest.Merchant(t, db, "Schroeder-Jerde", enums.MerchantStatusEnabled)
	other := dbtest.Merchant(t, db, "Other", enums.MerchantStatusEnabled)
	item := dbtest.Item(t, db, merchant.ID, "Widget", 1000)
	foreign := dbtest.Item(t, db, other.ID, "Foreign", 1000)
	now := time.Now().UTC()

	successes := []int{1, 4, 2, 6, 3, 5}
	customers := make([]uuid.UUID, 0, len(successes))
	for i, n := range successes {
		customer := dbtest.Customer(t, db, "Customer", string(rune('A'+i)))
		customers = append(customers, customer.ID)
		inv := dbtest.Invoice(t, db, customer.ID, now)
		dbtest.InvoiceItem(t, db, inv.ID, item.ID, 1, 1000, enums.InvoiceItemStatusPending)
		for j := 0; j < n; j++ {
			dbtest.Transaction(t, db, inv.ID, enums.TransactionResultSuccess)
		}
		dbtest.Transaction(t, db, inv.ID, enums.TransactionResultFailed)
	}

	loyal := dbtest.Customer(t, db, "Only", "Elsewhere")
	elsewhere := dbtest.Invoice(t, db, loyal.ID, now)
	dbtest.InvoiceItem(t, db, elsewhere.ID, foreign.ID, 1, 1000, enums.InvoiceItemStatusPending)
	for j := 0; j < 10; j++ {
		dbtest.Transaction(t, db, elsewhere.ID, enums.TransactionResultSuccess)
	}

	platform, err := repo.TopCustomers(ctx, nil, 5)
	require.NoError(t, err)
	require.Len(t, platform, 5)
	assert.Equal(t, loyal.ID, platform[0].ID)
	assert.Equal(t, int64(10), platform[0].SuccessfulTransactions)
	assert.Equal(t, customers[3], platform[1].ID)

	scoped, err := repo.TopCustomers(ctx, &merchant.ID, 5)
	require.NoError(t, err)
	require.Len(t, scoped, 5)
	assert.Equal(t, customers[3], scoped[0].ID)
	assert.Equal(t, int64(6), scoped[0].SuccessfulTransactions)
	assert.Equal(t, customers[5], scoped[1].ID)
	assert.Equal(t, customers[2], scoped[4].ID)
	for _, rank := range scoped {
		assert.NotEqual(t, loyal.ID, rank.ID)
	}
}
