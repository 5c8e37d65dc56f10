package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	addressModel "storefront-backend/internal/domains/address/model"
	cartModel "storefront-backend/internal/domains/cart/model"
	catalogModel "storefront-backend/internal/domains/catalog/model"
	couponModel "storefront-backend/internal/domains/coupon/model"
	"storefront-backend/internal/domains/order/model"
	userModel "storefront-backend/internal/domains/user/model"
	walletModel "storefront-backend/internal/domains/wallet/model"
	"storefront-backend/pkg/database"
)

type ledgerEntry struct {
	UserID uuid.UUID
	Type   string
	Amount decimal.Decimal
}

// memStore backs every collaborator the order service writes through, so a
// failed transaction can be undone by restoring a snapshot.
type memStore struct {
	products map[uuid.UUID]*catalogModel.Product
	users    map[uuid.UUID]*userModel.User
	wallets  map[uuid.UUID]decimal.Decimal
	ledger   []ledgerEntry
	carts    map[uuid.UUID]*cartModel.Cart
	orders   map[uuid.UUID]*model.Order
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		products: map[uuid.UUID]*catalogModel.Product{},
		users:    map[uuid.UUID]*userModel.User{},
		wallets:  map[uuid.UUID]decimal.Decimal{},
		carts:    map[uuid.UUID]*cartModel.Cart{},
		orders:   map[uuid.UUID]*model.Order{},
		clock:    time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func copyOrder(o *model.Order) *model.Order {
	cp := *o
	cp.Lines = append([]model.Line(nil), o.Lines...)
	return &cp
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	c.clock = s.clock
	for id, p := range s.products {
		cp := *p
		cp.Sizes = append([]catalogModel.ProductSize(nil), p.Sizes...)
		c.products[id] = &cp
	}
	for id, u := range s.users {
		c.users[id] = u
	}
	for id, b := range s.wallets {
		c.wallets[id] = b
	}
	c.ledger = append([]ledgerEntry(nil), s.ledger...)
	for id, cart := range s.carts {
		cp := *cart
		cp.Items = append([]cartModel.Item(nil), cart.Items...)
		c.carts[id] = &cp
	}
	for id, o := range s.orders {
		c.orders[id] = copyOrder(o)
	}
	return c
}

func (s *memStore) restore(from *memStore) {
	*s = *from
}

func (s *memStore) stock(productID uuid.UUID, size string) int {
	sz, _ := s.products[productID].Size(size)
	return sz.Stock
}

// ----- TxManager -----

type snapshotTx struct {
	store *memStore
}

func (m *snapshotTx) WithinTx(_ context.Context, fn database.TxFunc) error {
	snap := m.store.clone()
	if err := fn(nil); err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

// ----- CatalogReader / StockWriter -----

func (s *memStore) GetPricedProduct(_ context.Context, id uuid.UUID) (*catalogModel.PricedProduct, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, catalogModel.NewCatalogError(catalogModel.ErrCodeProductNotFound, "Product not found", catalogModel.ErrProductNotFound)
	}
	cp := *p
	return catalogModel.NewPricedProduct(&cp, nil), nil
}

func (s *memStore) sizeIndex(productID uuid.UUID, size string) (*catalogModel.Product, int) {
	p, ok := s.products[productID]
	if !ok {
		return nil, -1
	}
	for i, sz := range p.Sizes {
		if strings.EqualFold(sz.Name, size) {
			return p, i
		}
	}
	return p, -1
}

func (s *memStore) DecrementStockWithTx(_ context.Context, _ pgx.Tx, productID uuid.UUID, size string, qty int) error {
	p, i := s.sizeIndex(productID, size)
	if i < 0 {
		return catalogModel.ErrSizeNotFound
	}
	if p.Sizes[i].Stock < qty {
		return catalogModel.ErrInsufficientStock
	}
	p.Sizes[i].Stock -= qty
	return nil
}

func (s *memStore) IncrementStockWithTx(_ context.Context, _ pgx.Tx, productID uuid.UUID, size string, qty int) error {
	p, i := s.sizeIndex(productID, size)
	if i < 0 {
		return catalogModel.ErrSizeNotFound
	}
	p.Sizes[i].Stock += qty
	return nil
}

// ----- WalletLedger -----

func (s *memStore) DebitWithTx(_ context.Context, _ pgx.Tx, userID uuid.UUID, amount decimal.Decimal, _ string) (*walletModel.Wallet, error) {
	balance, ok := s.wallets[userID]
	if !ok {
		return nil, walletModel.ErrWalletNotFound
	}
	if balance.LessThan(amount) {
		return nil, walletModel.ErrInsufficientFunds
	}
	s.wallets[userID] = balance.Sub(amount)
	s.ledger = append(s.ledger, ledgerEntry{UserID: userID, Type: walletModel.TxDebit, Amount: amount})
	return &walletModel.Wallet{UserID: userID, Balance: s.wallets[userID]}, nil
}

func (s *memStore) CreditWithTx(_ context.Context, _ pgx.Tx, userID uuid.UUID, txType string, amount decimal.Decimal, _ string) (*walletModel.Wallet, error) {
	s.wallets[userID] = s.wallets[userID].Add(amount)
	s.ledger = append(s.ledger, ledgerEntry{UserID: userID, Type: txType, Amount: amount})
	return &walletModel.Wallet{UserID: userID, Balance: s.wallets[userID]}, nil
}

// ----- CartStore -----

func (s *memStore) GetByUserID(_ context.Context, userID uuid.UUID) (*cartModel.Cart, error) {
	c, ok := s.carts[userID]
	if !ok {
		return nil, cartModel.ErrCartNotFound
	}
	cp := *c
	cp.Items = append([]cartModel.Item(nil), c.Items...)
	return &cp, nil
}

func (s *memStore) ClearWithTx(_ context.Context, _ pgx.Tx, userID uuid.UUID) error {
	if c, ok := s.carts[userID]; ok {
		c.Items = nil
		c.TotalAmount = decimal.Zero
	}
	return nil
}

// ----- UserReader -----

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (*userModel.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, userModel.ErrUserNotFound
	}
	return u, nil
}

// ----- order repository -----

func (s *memStore) CreateWithTx(_ context.Context, _ pgx.Tx, o *model.Order) error {
	s.clock = s.clock.Add(time.Minute)
	o.OrderDate = s.clock
	o.UpdatedAt = s.clock
	s.orders[o.ID] = copyOrder(o)
	return nil
}

func (s *memStore) GetForUpdateWithTx(ctx context.Context, _ pgx.Tx, id uuid.UUID) (*model.Order, error) {
	return s.GetByID(ctx, id)
}

func (s *memStore) UpdateWithTx(_ context.Context, _ pgx.Tx, o *model.Order) error {
	if _, ok := s.orders[o.ID]; !ok {
		return model.ErrOrderNotFound
	}
	s.orders[o.ID] = copyOrder(o)
	return nil
}

func (s *memStore) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, model.ErrOrderNotFound
	}
	return copyOrder(o), nil
}

func (s *memStore) List(_ context.Context, filter model.ListOrdersFilter) ([]model.Order, int, error) {
	var all []model.Order
	for _, o := range s.orders {
		if filter.UserID != nil && o.UserID != *filter.UserID {
			continue
		}
		if filter.Status != "" && o.OrderStatus != filter.Status {
			continue
		}
		all = append(all, *copyOrder(o))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].OrderDate.After(all[j].OrderDate) })

	start := (filter.Page - 1) * filter.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + filter.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

// ----- address book -----

type fakeAddresses struct {
	entries map[uuid.UUID]*addressModel.Address
}

func (f *fakeAddresses) GetForUser(_ context.Context, userID, id uuid.UUID) (*addressModel.Address, error) {
	a, ok := f.entries[id]
	if !ok || a.UserID != userID {
		return nil, addressModel.NewAddressError(addressModel.ErrCodeAddressNotFound, "Address not found", addressModel.ErrAddressNotFound)
	}
	cp := *a
	return &cp, nil
}

// ----- coupons / payments / events / tasks -----

type fakeCoupons struct {
	percent map[string]int64
}

func (f *fakeCoupons) Quote(_ context.Context, code string, amount decimal.Decimal) (*couponModel.Quote, error) {
	pct, ok := f.percent[strings.ToUpper(code)]
	if !ok {
		return nil, couponModel.NewCouponError(couponModel.ErrCodeCouponNotFound, "Coupon not found", couponModel.ErrCouponNotFound)
	}
	discount := amount.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)).Round(2)
	return &couponModel.Quote{
		Code:          strings.ToUpper(code),
		Amount:        amount,
		Discount:      discount,
		PayableAmount: amount.Sub(discount),
	}, nil
}

type fakeVerifier struct {
	valid bool
}

func (f *fakeVerifier) VerifySignature(orderRef, paymentRef, signature string) bool {
	return f.valid && orderRef != "" && paymentRef != "" && signature != ""
}

type fakeEvents struct {
	events []model.Event
	keys   []string
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, key string, event interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.keys = append(f.keys, key)
	f.events = append(f.events, event.(model.Event))
	return nil
}

func (f *fakeEvents) types() []string {
	out := make([]string, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Type)
	}
	return out
}

type fakeTasks struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeTasks) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

var errBrokerDown = errors.New("broker down")
