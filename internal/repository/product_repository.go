package repository

import (
	"horizon_backend/internal/model"

	"gorm.io/gorm"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) ListEnabled() ([]model.Product, error) {
	var products []model.Product
	err := r.DB.Where("enabled = ?", true).Order("created_at asc").Find(&products).Error
	return products, err
}

func (r *ProductRepository) ListAll() ([]model.Product, error) {
	var products []model.Product
	err := r.DB.Order("created_at asc").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(id string) (*model.Product, error) {
	var p model.Product
	err := r.DB.First(&p, "id = ?", id).Error
	return &p, err
}

func (r *ProductRepository) FindByIDs(ids []string) ([]model.Product, error) {
	var products []model.Product
	err := r.DB.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *ProductRepository) Create(p *model.Product) error {
	return r.DB.Create(p).Error
}

func (r *ProductRepository) Update(p *model.Product) error {
	return r.DB.Save(p).Error
}

func (r *ProductRepository) Delete(id string) error {
	return r.DB.Delete(&model.Product{}, "id = ?", id).Error
}
