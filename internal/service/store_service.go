package service

import (
	"context"
	"fmt"

	"horizon_backend/internal/model"
	"horizon_backend/internal/util"

	"gorm.io/gorm"
)

// ProductStore is the catalog contract, satisfied by the gorm product
// repository.
type ProductStore interface {
	ListEnabled() ([]model.Product, error)
	ListAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	FindByIDs(ids []string) ([]model.Product, error)
	Create(*model.Product) error
	Update(*model.Product) error
	Delete(id string) error
}

// CartStore is the per-user cart contract, satisfied by the Redis cart
// repository.
type CartStore interface {
	Load(ctx context.Context, userID string) ([]model.CartLine, error)
	Save(ctx context.Context, userID string, lines []model.CartLine) error
	Clear(ctx context.Context, userID string) error
}

type ProductInput struct {
	NameKey        string  `json:"nameKey" binding:"required"`
	DescriptionKey string  `json:"descriptionKey" binding:"required"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	ImageURL       string  `json:"imageUrl"`
	Enabled        bool    `json:"enabled"`
}

// StoreService covers the storefront: catalog reads, admin catalog
// mutations and the cart. Cart totals are derived on every read so a
// price change lands in every open cart immediately.
type StoreService struct {
	Products ProductStore
	Carts    CartStore
	Audit    AuditWriter
}

func NewStoreService(products ProductStore, carts CartStore, audit AuditWriter) *StoreService {
	return &StoreService{Products: products, Carts: carts, Audit: audit}
}

func (s *StoreService) ListProducts() ([]model.Product, error) {
	return s.Products.ListEnabled()
}

func (s *StoreService) ListAllProducts() ([]model.Product, error) {
	return s.Products.ListAll()
}

func (s *StoreService) CreateProduct(admin *util.Claims, in *ProductInput) (*model.Product, error) {
	p := &model.Product{
		UUIDBase:       model.UUIDBase{ID: model.GenerateUUID()},
		NameKey:        in.NameKey,
		DescriptionKey: in.DescriptionKey,
		Price:          in.Price,
		ImageURL:       in.ImageURL,
		Enabled:        in.Enabled,
	}
	if err := s.Products.Create(p); err != nil {
		return nil, err
	}
	s.auditProduct(admin, "Created product '%s'", p.NameKey)
	return p, nil
}

func (s *StoreService) UpdateProduct(admin *util.Claims, id string, in *ProductInput) (*model.Product, error) {
	p, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	p.NameKey = in.NameKey
	p.DescriptionKey = in.DescriptionKey
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.Enabled = in.Enabled

	if err := s.Products.Update(p); err != nil {
		return nil, err
	}
	s.auditProduct(admin, "Updated product '%s'", p.NameKey)
	return p, nil
}

func (s *StoreService) DeleteProduct(admin *util.Claims, id string) error {
	p, err := s.findProduct(id)
	if err != nil {
		return err
	}
	if err := s.Products.Delete(id); err != nil {
		return err
	}
	s.auditProduct(admin, "Deleted product '%s'", p.NameKey)
	return nil
}

// Cart returns the user's cart joined with the current catalog. Lines
// whose product vanished or was disabled are dropped silently.
func (s *StoreService) Cart(ctx context.Context, userID string) (*model.CartSummary, error) {
	lines, err := s.Carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.summarize(lines)
}

// AddToCart increments the line for a product, creating it at quantity 1.
func (s *StoreService) AddToCart(ctx context.Context, userID, productID string) (*model.CartSummary, error) {
	if _, err := s.findProduct(productID); err != nil {
		return nil, err
	}

	lines, err := s.Carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		lines = append(lines, model.CartLine{ProductID: productID, Quantity: 1})
	}

	return s.saveAndSummarize(ctx, userID, lines)
}

// SetQuantity pins a line's quantity. Zero or below removes the line.
func (s *StoreService) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*model.CartSummary, error) {
	lines, err := s.Carts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	next := lines[:0]
	for _, line := range lines {
		if line.ProductID == productID {
			if quantity <= 0 {
				continue
			}
			line.Quantity = quantity
		}
		next = append(next, line)
	}

	return s.saveAndSummarize(ctx, userID, next)
}

func (s *StoreService) RemoveFromCart(ctx context.Context, userID, productID string) (*model.CartSummary, error) {
	return s.SetQuantity(ctx, userID, productID, 0)
}

func (s *StoreService) ClearCart(ctx context.Context, userID string) error {
	return s.Carts.Clear(ctx, userID)
}

func (s *StoreService) saveAndSummarize(ctx context.Context, userID string, lines []model.CartLine) (*model.CartSummary, error) {
	if err := s.Carts.Save(ctx, userID, lines); err != nil {
		return nil, err
	}
	return s.summarize(lines)
}

func (s *StoreService) summarize(lines []model.CartLine) (*model.CartSummary, error) {
	summary := &model.CartSummary{Items: []model.CartItem{}}
	if len(lines) == 0 {
		return summary, nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.Products.FindByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok || !p.Enabled {
			continue
		}
		summary.Items = append(summary.Items, model.CartItem{Product: p, Quantity: line.Quantity})
		summary.TotalItems += line.Quantity
		summary.TotalPrice += p.Price * float64(line.Quantity)
	}
	return summary, nil
}

func (s *StoreService) findProduct(id string) (*model.Product, error) {
	p, err := s.Products.FindByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrProductNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *StoreService) auditProduct(admin *util.Claims, format, nameKey string) {
	if s.Audit == nil {
		return
	}
	_ = s.Audit.Append(&model.AuditLogEntry{
		AdminID:       admin.UserID,
		AdminUsername: admin.Username,
		Action:        fmt.Sprintf(format, nameKey),
	})
}
