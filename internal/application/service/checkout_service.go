package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
)

// unknownFarmerKey groups lines whose farmer identity could not be resolved.
// It can only be reached when validation is bypassed; SubmitPayment rejects
// such lines up front.
const unknownFarmerKey = "unknown"

// CheckoutService orchestrates cart assembly into an invoice, payment
// submission, per-farmer order splitting and the reconciliation of cart and
// invoice state afterwards. It is the single place that decides whether a
// checkout failure is recoverable; the cart and invoice stores never mutate
// on a failed submission, so retrying is always safe.
type CheckoutService struct {
	cartService *CartService
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	orderRepo   repository.OrderRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	cartService *CartService,
	invoiceRepo repository.InvoiceRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	orderRepo repository.OrderRepository,
) *CheckoutService {
	return &CheckoutService{
		cartService: cartService,
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		orderRepo:   orderRepo,
	}
}

// BeginCheckout builds an invoice from the buyer's cart and stores it as the
// in-progress billing session, so a page reload during billing does not lose
// the checkout
func (s *CheckoutService) BeginCheckout(ctx context.Context, buyer *entity.User) (*entity.Invoice, error) {
	items, err := s.cartService.GetCart(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperror.NewBadRequestError("Cart is empty")
	}

	raws := make([]RawItem, len(items))
	for i, item := range items {
		raws[i] = RawItemFromResolved(item)
	}

	inv := BuildInvoice(raws, InvoiceMetadata{BuyerID: buyer.ID, BuyerName: buyer.Name})
	if err := s.invoiceRepo.SavePending(ctx, buyer.ID, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// BuyNow builds a single-product billing session without touching the cart
func (s *CheckoutService) BuyNow(ctx context.Context, buyer *entity.User, productID uuid.UUID, quantity int) (*entity.Invoice, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	raw := RawItem{
		ProductID:   product.ID,
		Name:        product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		FarmerID:    product.FarmerID,
		FarmerEmail: product.Farmer.Email,
		FarmerName:  product.Farmer.Name,
	}
	if product.Image != nil {
		raw.Image = *product.Image
	}

	inv := BuildInvoice([]RawItem{raw}, InvoiceMetadata{BuyerID: buyer.ID, BuyerName: buyer.Name})
	if err := s.invoiceRepo.SavePending(ctx, buyer.ID, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// GetPendingInvoice returns the in-progress billing session, if any
func (s *CheckoutService) GetPendingInvoice(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	return s.invoiceRepo.GetPending(ctx, buyerID)
}

// GetReceipt returns the buyer's last completed invoice, if any
func (s *CheckoutService) GetReceipt(ctx context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetReceipt(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	// A stored receipt without a payment stamp is stale session debris, not
	// something to show the buyer.
	if inv != nil && !inv.IsPaid() {
		return nil, nil
	}
	return inv, nil
}

// AbandonCheckout drops the in-progress billing session, leaving the cart as is
func (s *CheckoutService) AbandonCheckout(ctx context.Context, buyerID uuid.UUID) error {
	return s.invoiceRepo.DeletePending(ctx, buyerID)
}

// SubmitPayment validates the pending invoice, splits its lines by farmer,
// creates one order per farmer group and reconciles local state:
//
//   - every line is checked and every failure reported at once, indexed by
//     line, so the buyer sees the full picture before retrying;
//   - each order item carries priceAtPurchase from the invoice line, never
//     the live catalog price;
//   - the cart is cleared only after order creation is confirmed, and the
//     invoice is stamped with paidAt and the created order IDs;
//   - on any failure the cart and pending invoice are left untouched.
func (s *CheckoutService) SubmitPayment(ctx context.Context, buyer *entity.User) (*entity.Invoice, error) {
	if buyer == nil || buyer.ID == uuid.Nil {
		return nil, apperror.ErrUnauthorized
	}

	inv, err := s.invoiceRepo.GetPending(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NewBadRequestError("No billing session in progress. Return to your cart and check out again.")
	}
	if len(inv.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice has no items")
	}

	products, err := s.fetchProducts(ctx, inv.Items)
	if err != nil {
		return nil, err
	}

	lines, ferrs := s.normalizeLines(ctx, inv.Items, products)
	if len(ferrs) > 0 {
		return nil, apperror.NewValidationError(ferrs)
	}

	// The session store is outside the transactional boundary, so the stored
	// total is re-checked against the lines before any money-bearing step.
	var lineSum int64
	for _, line := range lines {
		lineSum += line.Price * int64(line.Quantity)
	}
	if inv.TotalAmount != lineSum {
		return nil, apperror.NewBadRequestError("Invoice total does not match its items")
	}

	// Reserve stock before creating any order; a cart spanning several
	// farmers must not oversell one of them.
	decrements := make(map[uuid.UUID]int)
	for _, line := range lines {
		decrements[line.ProductID] += line.Quantity
	}
	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, decrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		for _, id := range failedIDs {
			if p, ok := products[id]; ok {
				names = append(names, p.Name)
			} else {
				names = append(names, id.String())
			}
		}
		return nil, apperror.NewConflictError("Insufficient stock for: " + strings.Join(names, ", "))
	}

	orders := s.splitByFarmer(buyer, inv, lines)

	if err := s.orderRepo.CreateBatch(ctx, orders); err != nil {
		// Give the reserved stock back; the cart stays untouched so the
		// buyer can retry.
		_ = s.productRepo.AtomicIncrementBatch(ctx, decrements)
		return nil, err
	}

	if err := s.cartService.ClearCart(ctx, buyer.ID); err != nil {
		// The orders exist and are authoritative; a stale cart is annoying
		// but not a correctness problem.
		log.Printf("checkout: failed to clear cart for buyer %s: %v", buyer.ID, err)
	}

	now := time.Now()
	inv.PaidAt = &now
	inv.OrderIDs = make([]uuid.UUID, len(orders))
	for i, order := range orders {
		inv.OrderIDs[i] = order.ID
	}

	if err := s.invoiceRepo.SaveReceipt(ctx, buyer.ID, inv); err != nil {
		log.Printf("checkout: failed to store receipt for buyer %s: %v", buyer.ID, err)
	}
	if err := s.invoiceRepo.DeletePending(ctx, buyer.ID); err != nil {
		log.Printf("checkout: failed to drop billing session for buyer %s: %v", buyer.ID, err)
	}

	return inv, nil
}

// fetchProducts batch-loads the catalog records referenced by the invoice
func (s *CheckoutService) fetchProducts(ctx context.Context, lines []entity.InvoiceLine) (map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		if line.ProductID != uuid.Nil {
			ids = append(ids, line.ProductID)
		}
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*entity.Product{}, nil
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	m := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		m[products[i].ID] = &products[i]
	}
	return m, nil
}

// normalizeLines validates every invoice line and resolves missing farmer
// identity, preferring the line's own fields, then the catalog record, then a
// last-resort lookup through the user directory. All failures are collected;
// nothing fails fast.
func (s *CheckoutService) normalizeLines(ctx context.Context, lines []entity.InvoiceLine, products map[uuid.UUID]*entity.Product) ([]entity.InvoiceLine, []apperror.FieldError) {
	var ferrs []apperror.FieldError
	normalized := make([]entity.InvoiceLine, len(lines))

	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			ferrs = append(ferrs, apperror.NewLineError(i, "missing product reference"))
		}
		if line.Name == "" {
			ferrs = append(ferrs, apperror.NewLineError(i, "missing name"))
		}
		if line.Price <= 0 {
			ferrs = append(ferrs, apperror.NewLineError(i, "invalid price"))
		}
		if line.Quantity <= 0 {
			ferrs = append(ferrs, apperror.NewLineError(i, "invalid quantity"))
		}

		if line.FarmerEmail == "" {
			if product := products[line.ProductID]; product != nil {
				line.FarmerID = product.FarmerID
				line.FarmerEmail = product.Farmer.Email
				line.FarmerName = product.Farmer.Name

				if line.FarmerEmail == "" {
					if farmer, err := s.userRepo.GetByID(ctx, product.FarmerID); err == nil && farmer != nil {
						line.FarmerEmail = farmer.Email
						line.FarmerName = farmer.Name
					}
				}
			}
		}
		if line.FarmerEmail == "" && line.FarmerID == uuid.Nil {
			ferrs = append(ferrs, apperror.NewLineError(i, "missing farmer information"))
		}

		normalized[i] = line
	}

	return normalized, ferrs
}

// splitByFarmer groups invoice lines by resolved farmer identity and builds
// one PLACED order per group. Group order follows first appearance in the
// invoice so the split is deterministic.
func (s *CheckoutService) splitByFarmer(buyer *entity.User, inv *entity.Invoice, lines []entity.InvoiceLine) []*entity.Order {
	groups := make(map[string][]entity.InvoiceLine)
	var keys []string

	for _, line := range lines {
		key := farmerKey(line)
		if _, seen := groups[key]; !seen {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], line)
	}

	now := time.Now()
	orders := make([]*entity.Order, 0, len(keys))
	for _, key := range keys {
		group := groups[key]

		var total int64
		items := make([]entity.OrderItem, len(group))
		for i, line := range group {
			total += line.Price * int64(line.Quantity)
			items[i] = entity.OrderItem{
				ProductID:       line.ProductID,
				FarmerID:        line.FarmerID,
				Quantity:        line.Quantity,
				PriceAtPurchase: line.Price,
			}
		}

		orders = append(orders, &entity.Order{
			BuyerID:     buyer.ID,
			InvoiceNo:   inv.InvoiceNo,
			OrderDate:   now,
			OrderStatus: enum.OrderStatusPlaced,
			TotalAmount: total,
			Items:       items,
		})
	}
	return orders
}

// farmerKey resolves the grouping identity for a line: email first, then the
// farmer ID, then the unknown sentinel
func farmerKey(line entity.InvoiceLine) string {
	if line.FarmerEmail != "" {
		return line.FarmerEmail
	}
	if line.FarmerID != uuid.Nil {
		return line.FarmerID.String()
	}
	return unknownFarmerKey
}
