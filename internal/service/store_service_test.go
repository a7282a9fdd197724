package service

import (
	"context"
	"testing"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeProductStore struct {
	products map[string]*model.Product
}

func (f *fakeProductStore) ListEnabled() ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if p.Enabled {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) ListAll() ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductStore) FindByID(id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeProductStore) FindByIDs(ids []string) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductStore) Create(p *model.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Update(p *model.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductStore) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeCartStore struct {
	carts map[string][]model.CartLine
}

func (f *fakeCartStore) Load(ctx context.Context, userID string) ([]model.CartLine, error) {
	return f.carts[userID], nil
}

func (f *fakeCartStore) Save(ctx context.Context, userID string, lines []model.CartLine) error {
	f.carts[userID] = lines
	return nil
}

func (f *fakeCartStore) Clear(ctx context.Context, userID string) error {
	delete(f.carts, userID)
	return nil
}

func newStoreFixture(t *testing.T) (*StoreService, *fakeProductStore, *fakeCartStore) {
	t.Helper()
	products := &fakeProductStore{products: map[string]*model.Product{
		"prod_vip": {
			UUIDBase: model.UUIDBase{ID: "prod_vip"},
			NameKey:  "store.vip.name", Price: 19.99, Enabled: true,
		},
		"prod_car": {
			UUIDBase: model.UUIDBase{ID: "prod_car"},
			NameKey:  "store.car.name", Price: 9.99, Enabled: true,
		},
		"prod_hidden": {
			UUIDBase: model.UUIDBase{ID: "prod_hidden"},
			NameKey:  "store.hidden.name", Price: 4.99, Enabled: false,
		},
	}}
	carts := &fakeCartStore{carts: map[string][]model.CartLine{}}
	return NewStoreService(products, carts, &fakeAuditStore{}), products, carts
}

func TestAddToCartDerivesTotals(t *testing.T) {
	svc, _, _ := newStoreFixture(t)
	ctx := context.Background()

	summary, err := svc.AddToCart(ctx, "u1", "prod_vip")
	assert.NoError(t, err)
	summary, err = svc.AddToCart(ctx, "u1", "prod_vip")
	assert.NoError(t, err)
	summary, err = svc.AddToCart(ctx, "u1", "prod_car")
	assert.NoError(t, err)

	assert.Len(t, summary.Items, 2)
	assert.Equal(t, 3, summary.TotalItems)
	assert.InDelta(t, 2*19.99+9.99, summary.TotalPrice, 0.001)
}

func TestAddUnknownProductRejected(t *testing.T) {
	svc, _, _ := newStoreFixture(t)

	_, err := svc.AddToCart(context.Background(), "u1", "nope")
	assert.Equal(t, util.ErrProductNotFound, err)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, _, carts := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_vip")
	_, _ = svc.AddToCart(ctx, "u1", "prod_car")

	summary, err := svc.SetQuantity(ctx, "u1", "prod_vip", 0)
	assert.NoError(t, err)
	assert.Len(t, summary.Items, 1)
	assert.Equal(t, "prod_car", summary.Items[0].ID)
	assert.Len(t, carts.carts["u1"], 1)
}

func TestSetQuantityPinsLine(t *testing.T) {
	svc, _, _ := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_car")
	summary, err := svc.SetQuantity(ctx, "u1", "prod_car", 5)
	assert.NoError(t, err)
	assert.Equal(t, 5, summary.TotalItems)
	assert.InDelta(t, 5*9.99, summary.TotalPrice, 0.001)
}

func TestRemoveLastUnit(t *testing.T) {
	svc, _, _ := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_car")
	summary, err := svc.RemoveFromCart(ctx, "u1", "prod_car")
	assert.NoError(t, err)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.TotalItems)
	assert.Equal(t, 0.0, summary.TotalPrice)
}

func TestDisabledProductsDropFromCart(t *testing.T) {
	svc, products, _ := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_vip")
	products.products["prod_vip"].Enabled = false

	summary, err := svc.Cart(ctx, "u1")
	assert.NoError(t, err)
	assert.Empty(t, summary.Items)
}

func TestClearCart(t *testing.T) {
	svc, _, carts := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_vip")
	assert.NoError(t, svc.ClearCart(ctx, "u1"))
	assert.Empty(t, carts.carts["u1"])
}

func TestCartsAreUserScoped(t *testing.T) {
	svc, _, _ := newStoreFixture(t)
	ctx := context.Background()

	_, _ = svc.AddToCart(ctx, "u1", "prod_vip")

	summary, err := svc.Cart(ctx, "u2")
	assert.NoError(t, err)
	assert.Empty(t, summary.Items)
}
