// Package dbtest opens throwaway sqlite databases with the full schema and
// seeds rows for repository and service tests.
package dbtest

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/angelmondragon/bulkdiscount-backend/pkg/db/models"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/enums"
)

// Open returns an isolated in-memory database migrated from the models.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, conn.AutoMigrate(models.All()...))
	return conn
}

func Merchant(t *testing.T, db *gorm.DB, name string, status enums.MerchantStatus) *models.Merchant {
	t.Helper()
	m := &models.Merchant{Name: name, Status: status}
	require.NoError(t, db.Create(m).Error)
	return m
}

func Item(t *testing.T, db *gorm.DB, merchantID uuid.UUID, name string, unitPrice int64) *models.Item {
	t.Helper()
	item := &models.Item{MerchantID: merchantID, Name: name, Description: name, UnitPrice: unitPrice}
	require.NoError(t, db.Create(item).Error)
	return item
}

func Customer(t *testing.T, db *gorm.DB, first, last string) *models.Customer {
	t.Helper()
	c := &models.Customer{FirstName: first, LastName: last}
	require.NoError(t, db.Create(c).Error)
	return c
}

// Invoice creates an invoice; createdAt orders invoices for fulfilment lists.
func Invoice(t *testing.T, db *gorm.DB, customerID uuid.UUID, createdAt time.Time) *models.Invoice {
	t.Helper()
	inv := &models.Invoice{CustomerID: customerID, Status: enums.InvoiceStatusInProgress, CreatedAt: createdAt}
	require.NoError(t, db.Create(inv).Error)
	return inv
}

func InvoiceItem(t *testing.T, db *gorm.DB, invoiceID, itemID uuid.UUID, qty int, unitPrice int64, status enums.InvoiceItemStatus) *models.InvoiceItem {
	t.Helper()
	ii := &models.InvoiceItem{InvoiceID: invoiceID, ItemID: itemID, Quantity: qty, UnitPrice: unitPrice, Status: status}
	require.NoError(t, db.Create(ii).Error)
	return ii
}

func Transaction(t *testing.T, db *gorm.DB, invoiceID uuid.UUID, result enums.TransactionResult) *models.Transaction {
	t.Helper()
	tx := &models.Transaction{InvoiceID: invoiceID, CreditCardNumber: "4654405418249632", Result: result}
	require.NoError(t, db.Create(tx).Error)
	return tx
}

func BulkDiscount(t *testing.T, db *gorm.DB, merchantID uuid.UUID, percent, threshold int) *models.BulkDiscount {
	t.Helper()
	d := &models.BulkDiscount{MerchantID: merchantID, PercentDiscount: percent, Threshold: threshold}
	require.NoError(t, db.Create(d).Error)
	return d
}
