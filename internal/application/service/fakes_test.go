package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/agriconnect/agriconnect-api/internal/domain/entity"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/domain/repository"
	"github.com/agriconnect/agriconnect-api/pkg/pagination"
)

// In-memory fakes for the repository interfaces. Error injection fields let
// tests exercise the failure paths without a real database.

type fakeCartRepo struct {
	carts   map[uuid.UUID][]entity.CartLine
	loadErr error
	saveErr error
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[uuid.UUID][]entity.CartLine{}}
}

func (f *fakeCartRepo) Load(_ context.Context, userID uuid.UUID) ([]entity.CartLine, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	lines := f.carts[userID]
	out := make([]entity.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (f *fakeCartRepo) Save(_ context.Context, userID uuid.UUID, lines []entity.CartLine) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	saved := make([]entity.CartLine, len(lines))
	copy(saved, lines)
	f.carts[userID] = saved
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	delete(f.carts, userID)
	return nil
}

type fakeInvoiceRepo struct {
	pending  map[uuid.UUID]*entity.Invoice
	receipts map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		pending:  map[uuid.UUID]*entity.Invoice{},
		receipts: map[uuid.UUID]*entity.Invoice{},
	}
}

func (f *fakeInvoiceRepo) SavePending(_ context.Context, buyerID uuid.UUID, inv *entity.Invoice) error {
	f.pending[buyerID] = inv
	return nil
}

func (f *fakeInvoiceRepo) GetPending(_ context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	return f.pending[buyerID], nil
}

func (f *fakeInvoiceRepo) DeletePending(_ context.Context, buyerID uuid.UUID) error {
	delete(f.pending, buyerID)
	return nil
}

func (f *fakeInvoiceRepo) SaveReceipt(_ context.Context, buyerID uuid.UUID, inv *entity.Invoice) error {
	f.receipts[buyerID] = inv
	return nil
}

func (f *fakeInvoiceRepo) GetReceipt(_ context.Context, buyerID uuid.UUID) (*entity.Invoice, error) {
	return f.receipts[buyerID], nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProductRepo) ListByFarmer(_ context.Context, farmerID uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.FarmerID == farmerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]int) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := f.products[id]
		if !ok || p.Quantity < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		f.products[id].Quantity -= qty
	}
	return nil, nil
}

func (f *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]int) error {
	for id, qty := range increments {
		if p, ok := f.products[id]; ok {
			p.Quantity += qty
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.User, int64, error) {
	var out []entity.User
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{}}
}

func (f *fakeOrderRepo) CreateBatch(_ context.Context, orders []*entity.Order) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, order := range orders {
		if order.ID == uuid.Nil {
			order.ID = uuid.New()
		}
		for i := range order.Items {
			if order.Items[i].ID == uuid.Nil {
				order.Items[i].ID = uuid.New()
			}
			order.Items[i].OrderID = order.ID
		}
		order.CreatedAt = time.Now()
		f.orders[order.ID] = order
	}
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	copied.Items = append([]entity.OrderItem(nil), order.Items...)
	return &copied, nil
}

func (f *fakeOrderRepo) ListByBuyer(_ context.Context, buyerID uuid.UUID) ([]entity.Order, error) {
	var out []entity.Order
	for _, order := range f.orders {
		if order.BuyerID == buyerID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context, _ *pagination.PaginationParams) ([]entity.Order, int64, error) {
	var out []entity.Order
	for _, order := range f.orders {
		out = append(out, *order)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.OrderStatus) error {
	if order, ok := f.orders[id]; ok {
		order.OrderStatus = status
	}
	return nil
}

type fakeOrderItemRepo struct {
	orderRepo *fakeOrderRepo
}

func (f *fakeOrderItemRepo) ListByFarmer(_ context.Context, farmerID uuid.UUID) ([]entity.OrderItem, error) {
	var out []entity.OrderItem
	for _, order := range f.orderRepo.orders {
		for _, item := range order.Items {
			if item.FarmerID == farmerID {
				out = append(out, item)
			}
		}
	}
	return out, nil
}

func (f *fakeOrderItemRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) ([]entity.OrderItem, error) {
	order, ok := f.orderRepo.orders[orderID]
	if !ok {
		return nil, nil
	}
	return append([]entity.OrderItem(nil), order.Items...), nil
}
