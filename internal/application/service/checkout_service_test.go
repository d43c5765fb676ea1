package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
)

type checkoutFixture struct {
	svc         *CheckoutService
	cartRepo    *fakeCartRepo
	invoiceRepo *fakeInvoiceRepo
	productRepo *fakeProductRepo
	userRepo    *fakeUserRepo
	orderRepo   *fakeOrderRepo
	buyer       *entity.User
}

func newCheckoutFixture(products ...*entity.Product) *checkoutFixture {
	cartRepo := newFakeCartRepo()
	invoiceRepo := newFakeInvoiceRepo()
	productRepo := newFakeProductRepo(products...)
	userRepo := newFakeUserRepo()
	orderRepo := newFakeOrderRepo()

	cartService := NewCartService(cartRepo, productRepo)

	return &checkoutFixture{
		svc:         NewCheckoutService(cartService, invoiceRepo, productRepo, userRepo, orderRepo),
		cartRepo:    cartRepo,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
		buyer:       &entity.User{ID: uuid.New(), Name: "Asha", Email: "asha@example.com", Role: enum.RoleBuyer},
	}
}

func farmProduct(farmer *entity.User, name string, price int64, stock int) *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		FarmerID: farmer.ID,
		Name:     name,
		Price:    price,
		Quantity: stock,
		Farmer:   *farmer,
	}
}

func TestBeginCheckout_EmptyCartIsRejected(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.svc.BeginCheckout(context.Background(), fx.buyer)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestBeginCheckout_BuildsAndStoresPendingInvoice(t *testing.T) {
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	product := farmProduct(farmer, "Tomatoes", 5000, 10)
	fx := newCheckoutFixture(product)

	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: product.ID, Quantity: 2}}

	inv, err := fx.svc.BeginCheckout(context.Background(), fx.buyer)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, int64(10000), inv.TotalAmount)
	assert.Equal(t, fx.buyer.ID, inv.BuyerID)
	assert.Equal(t, "Asha", inv.BuyerName)

	pending := fx.invoiceRepo.pending[fx.buyer.ID]
	require.NotNil(t, pending)
	assert.Equal(t, inv.InvoiceNo, pending.InvoiceNo)

	// Starting a billing session must not consume the cart
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 1)
}

func TestSubmitPayment_WithoutSessionIsRejected(t *testing.T) {
	fx := newCheckoutFixture()

	_, err := fx.svc.SubmitPayment(context.Background(), fx.buyer)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)
}

func TestSubmitPayment_SplitsOrdersByFarmer(t *testing.T) {
	ctx := context.Background()
	farmerA := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	farmerB := &entity.User{ID: uuid.New(), Name: "Meena", Email: "meena@example.com", Role: enum.RoleFarmer}

	tomatoes := farmProduct(farmerA, "Tomatoes", 5000, 10)
	onions := farmProduct(farmerA, "Onions", 2500, 10)
	milk := farmProduct(farmerB, "Milk", 6000, 10)

	fx := newCheckoutFixture(tomatoes, onions, milk)
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{
		{ProductID: tomatoes.ID, Quantity: 1},
		{ProductID: onions.ID, Quantity: 2},
		{ProductID: milk.ID, Quantity: 1},
	}

	_, err := fx.svc.BeginCheckout(ctx, fx.buyer)
	require.NoError(t, err)

	inv, err := fx.svc.SubmitPayment(ctx, fx.buyer)
	require.NoError(t, err)

	// One order per farmer, and the order totals partition the invoice total
	require.Len(t, inv.OrderIDs, 2)
	require.Len(t, fx.orderRepo.orders, 2)

	var sum int64
	byFarmer := map[uuid.UUID]*entity.Order{}
	for _, order := range fx.orderRepo.orders {
		sum += order.TotalAmount
		require.NotEmpty(t, order.Items)
		byFarmer[order.Items[0].FarmerID] = order
		assert.Equal(t, enum.OrderStatusPlaced, order.OrderStatus)
		assert.Equal(t, fx.buyer.ID, order.BuyerID)
		assert.Equal(t, inv.InvoiceNo, order.InvoiceNo)
		for _, item := range order.Items {
			assert.Equal(t, order.Items[0].FarmerID, item.FarmerID)
		}
	}
	assert.Equal(t, inv.TotalAmount, sum)
	assert.Equal(t, int64(16000), inv.TotalAmount)

	require.Contains(t, byFarmer, farmerA.ID)
	require.Contains(t, byFarmer, farmerB.ID)
	assert.Len(t, byFarmer[farmerA.ID].Items, 2)
	assert.Len(t, byFarmer[farmerB.ID].Items, 1)

	// Cart cleared, session closed, receipt stamped
	assert.Empty(t, fx.cartRepo.carts[fx.buyer.ID])
	assert.Nil(t, fx.invoiceRepo.pending[fx.buyer.ID])
	receipt := fx.invoiceRepo.receipts[fx.buyer.ID]
	require.NotNil(t, receipt)
	require.NotNil(t, receipt.PaidAt)
	assert.Len(t, receipt.OrderIDs, 2)

	// Stock reserved
	assert.Equal(t, 9, fx.productRepo.products[tomatoes.ID].Quantity)
	assert.Equal(t, 8, fx.productRepo.products[onions.ID].Quantity)
}

func TestSubmitPayment_CapturesPriceAtPurchase(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	product := farmProduct(farmer, "Tomatoes", 5000, 10)

	fx := newCheckoutFixture(product)
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: product.ID, Quantity: 2}}

	_, err := fx.svc.BeginCheckout(ctx, fx.buyer)
	require.NoError(t, err)

	// Catalog price changes between billing and payment
	product.Price = 9000

	_, err = fx.svc.SubmitPayment(ctx, fx.buyer)
	require.NoError(t, err)

	for _, order := range fx.orderRepo.orders {
		require.Len(t, order.Items, 1)
		assert.Equal(t, int64(5000), order.Items[0].PriceAtPurchase)
		assert.Equal(t, int64(10000), order.TotalAmount)
	}
}

func TestSubmitPayment_ReportsAllInvalidLinesAtOnce(t *testing.T) {
	ctx := context.Background()
	fx := newCheckoutFixture()

	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: uuid.New(), Quantity: 1}}
	fx.invoiceRepo.pending[fx.buyer.ID] = &entity.Invoice{
		InvoiceNo: "INV1",
		BuyerID:   fx.buyer.ID,
		Items: []entity.InvoiceLine{
			{ProductID: uuid.Nil, Name: "Ghost", Price: 1000, Quantity: 1},
			{ProductID: uuid.New(), Name: "Freebie", Price: 0, Quantity: 2},
		},
	}

	_, err := fx.svc.SubmitPayment(ctx, fx.buyer)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	// Line 0 is missing product and farmer info, line 1 has no price and no
	// farmer info; every failure is reported, none short-circuits
	assert.GreaterOrEqual(t, len(appErr.Errors), 4)

	fields := map[string]bool{}
	for _, fe := range appErr.Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["items[0]"])
	assert.True(t, fields["items[1]"])

	// Failed validation leaves cart and session untouched
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 1)
	assert.NotNil(t, fx.invoiceRepo.pending[fx.buyer.ID])
	assert.Empty(t, fx.orderRepo.orders)
}

func TestSubmitPayment_TamperedTotalIsRejected(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	tomato := farmProduct(farmer, "Tomatoes", 5000, 10)
	fx := newCheckoutFixture(tomato)

	// Stored total disagrees with the line sum (2 × 5000)
	fx.invoiceRepo.pending[fx.buyer.ID] = &entity.Invoice{
		InvoiceNo:   "INV1",
		BuyerID:     fx.buyer.ID,
		TotalAmount: 1,
		Items: []entity.InvoiceLine{
			{ProductID: tomato.ID, Name: "Tomatoes", Price: 5000, Quantity: 2, FarmerID: farmer.ID, FarmerEmail: farmer.Email},
		},
	}

	_, err := fx.svc.SubmitPayment(ctx, fx.buyer)
	require.Error(t, err)
	assert.Equal(t, 400, apperror.GetAppError(err).Code)

	assert.Empty(t, fx.orderRepo.orders)
	assert.Equal(t, 10, fx.productRepo.products[tomato.ID].Quantity)
	assert.NotNil(t, fx.invoiceRepo.pending[fx.buyer.ID])
}

func TestSubmitPayment_ResolvesFarmerThroughCatalogThenDirectory(t *testing.T) {
	ctx := context.Background()
	farmerID := uuid.New()

	// Catalog record has no preloaded farmer; identity comes from the
	// user directory
	product := &entity.Product{
		ID:       uuid.New(),
		FarmerID: farmerID,
		Name:     "Wheat",
		Price:    2500,
		Quantity: 10,
	}
	fx := newCheckoutFixture(product)
	fx.userRepo.users[farmerID] = &entity.User{ID: farmerID, Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}

	fx.invoiceRepo.pending[fx.buyer.ID] = &entity.Invoice{
		InvoiceNo:   "INV2",
		BuyerID:     fx.buyer.ID,
		TotalAmount: 2500,
		Items: []entity.InvoiceLine{
			{ProductID: product.ID, Name: "Wheat", Price: 2500, Quantity: 1},
		},
	}

	inv, err := fx.svc.SubmitPayment(ctx, fx.buyer)
	require.NoError(t, err)
	require.Len(t, inv.OrderIDs, 1)

	for _, order := range fx.orderRepo.orders {
		assert.Equal(t, farmerID, order.Items[0].FarmerID)
	}
}

func TestSubmitPayment_InsufficientStockAbortsWholeCheckout(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	plenty := farmProduct(farmer, "Tomatoes", 5000, 10)
	scarce := farmProduct(farmer, "Saffron", 90000, 1)

	fx := newCheckoutFixture(plenty, scarce)
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{
		{ProductID: plenty.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 5},
	}

	_, err := fx.svc.BeginCheckout(ctx, fx.buyer)
	require.NoError(t, err)

	_, err = fx.svc.SubmitPayment(ctx, fx.buyer)
	require.Error(t, err)

	appErr := apperror.GetAppError(err)
	assert.Equal(t, 409, appErr.Code)
	assert.Contains(t, appErr.Message, "Saffron")

	// Nothing was sold, nothing was cleared
	assert.Empty(t, fx.orderRepo.orders)
	assert.Equal(t, 10, fx.productRepo.products[plenty.ID].Quantity)
	assert.Equal(t, 1, fx.productRepo.products[scarce.ID].Quantity)
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 2)
	assert.NotNil(t, fx.invoiceRepo.pending[fx.buyer.ID])
}

func TestSubmitPayment_OrderCreationFailureRestoresStock(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	product := farmProduct(farmer, "Tomatoes", 5000, 10)

	fx := newCheckoutFixture(product)
	fx.orderRepo.createErr = errors.New("db unavailable")
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: product.ID, Quantity: 3}}

	_, err := fx.svc.BeginCheckout(ctx, fx.buyer)
	require.NoError(t, err)

	_, err = fx.svc.SubmitPayment(ctx, fx.buyer)
	require.Error(t, err)

	assert.Equal(t, 10, fx.productRepo.products[product.ID].Quantity)
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 1)
	assert.NotNil(t, fx.invoiceRepo.pending[fx.buyer.ID])
	assert.Nil(t, fx.invoiceRepo.receipts[fx.buyer.ID])
}

func TestBuyNow_BypassesCart(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	product := farmProduct(farmer, "Milk", 6000, 5)

	fx := newCheckoutFixture(product)
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: uuid.New(), Quantity: 1}}

	inv, err := fx.svc.BuyNow(ctx, fx.buyer, product.ID, 2)
	require.NoError(t, err)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, int64(12000), inv.TotalAmount)

	// Cart is untouched by buy-now
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 1)
}

func TestAbandonCheckout_KeepsCart(t *testing.T) {
	ctx := context.Background()
	farmer := &entity.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com", Role: enum.RoleFarmer}
	product := farmProduct(farmer, "Tomatoes", 5000, 10)

	fx := newCheckoutFixture(product)
	fx.cartRepo.carts[fx.buyer.ID] = []entity.CartLine{{ProductID: product.ID, Quantity: 1}}

	_, err := fx.svc.BeginCheckout(ctx, fx.buyer)
	require.NoError(t, err)

	require.NoError(t, fx.svc.AbandonCheckout(ctx, fx.buyer.ID))

	assert.Nil(t, fx.invoiceRepo.pending[fx.buyer.ID])
	assert.Len(t, fx.cartRepo.carts[fx.buyer.ID], 1)
}
