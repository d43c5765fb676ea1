package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildInvoice_TotalIsExactSumOfSubtotals(t *testing.T) {
	items := []RawItem{
		{ProductID: uuid.New(), Name: "Tomatoes", Price: 5000, Quantity: 2},  // 100.00
		{ProductID: uuid.New(), Name: "Onions", Price: 7500, Quantity: 2},    // 150.00
	}

	inv := BuildInvoice(items, InvoiceMetadata{})

	require.Len(t, inv.Items, 2)
	assert.Equal(t, int64(10000), inv.Items[0].Subtotal)
	assert.Equal(t, int64(15000), inv.Items[1].Subtotal)
	assert.Equal(t, int64(25000), inv.TotalAmount)
}

func TestBuildInvoice_CoercesDegenerateLines(t *testing.T) {
	items := []RawItem{
		{ProductID: uuid.New(), Name: "", Price: -500, Quantity: 0},
	}

	inv := BuildInvoice(items, InvoiceMetadata{})

	require.Len(t, inv.Items, 1)
	line := inv.Items[0]
	assert.Equal(t, "Item", line.Name)
	assert.Equal(t, int64(0), line.Price)
	assert.Equal(t, 1, line.Quantity)
	assert.Equal(t, int64(0), line.Subtotal)
	assert.Equal(t, int64(0), inv.TotalAmount)
}

func TestBuildInvoice_QuantityFlooredToOne(t *testing.T) {
	items := []RawItem{
		{ProductID: uuid.New(), Name: "Milk", Price: 6000, Quantity: -3},
	}

	inv := BuildInvoice(items, InvoiceMetadata{})

	assert.Equal(t, 1, inv.Items[0].Quantity)
	assert.Equal(t, int64(6000), inv.TotalAmount)
}

func TestBuildInvoice_GeneratesInvoiceNumberAndDate(t *testing.T) {
	before := time.Now()
	inv := BuildInvoice(nil, InvoiceMetadata{})

	assert.True(t, strings.HasPrefix(inv.InvoiceNo, "INV"))
	assert.False(t, inv.Date.Before(before))
	assert.Empty(t, inv.Items)
	assert.Equal(t, int64(0), inv.TotalAmount)
}

func TestBuildInvoice_KeepsCallerMetadata(t *testing.T) {
	buyerID := uuid.New()
	date := time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC)

	inv := BuildInvoice(nil, InvoiceMetadata{
		InvoiceNo: "INV1748773800000",
		Date:      date,
		BuyerID:   buyerID,
		BuyerName: "Asha",
	})

	assert.Equal(t, "INV1748773800000", inv.InvoiceNo)
	assert.Equal(t, date, inv.Date)
	assert.Equal(t, buyerID, inv.BuyerID)
	assert.Equal(t, "Asha", inv.BuyerName)
}

func TestBuildInvoice_CarriesFarmerIdentity(t *testing.T) {
	farmerID := uuid.New()
	items := []RawItem{
		{
			ProductID:   uuid.New(),
			Name:        "Wheat",
			Price:       2500,
			Quantity:    4,
			FarmerID:    farmerID,
			FarmerEmail: "farmer@example.com",
			FarmerName:  "Ravi",
		},
	}

	inv := BuildInvoice(items, InvoiceMetadata{})

	line := inv.Items[0]
	assert.Equal(t, farmerID, line.FarmerID)
	assert.Equal(t, "farmer@example.com", line.FarmerEmail)
	assert.Equal(t, "Ravi", line.FarmerName)
}
