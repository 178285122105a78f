package repository

import (
	"strings"

	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductFilter holds the optional list filters. Nil means "not filtered".
type ProductFilter struct {
	Search     string
	CategoryID *uint
	Active     *bool
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindPaginated(filter ProductFilter, page, perPage int) ([]model.Product, int64, error)
	FindByID(id uint) (*model.Product, error)
	Exists(id uint) (bool, error)
	Update(product *model.Product) error
	Delete(id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return translateError(r.db.Omit(clause.Associations).Create(product).Error)
}

// withAssociations preloads category {id, name} and the attached stocks.
func withAssociations(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Category", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("ProductStocks", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_stock.id ASC")
		}).
		Preload("ProductStocks.Stock", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "unit", "active")
		})
}

func (r *productRepo) FindPaginated(filter ProductFilter, page, perPage int) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	query := r.db.Model(&model.Product{})

	if s := strings.TrimSpace(filter.Search); s != "" {
		query = query.Where("products.name ILIKE ?", "%"+s+"%")
	}
	if filter.CategoryID != nil {
		query = query.Where("products.category_id = ?", *filter.CategoryID)
	}
	if filter.Active != nil {
		query = query.Where("products.active = ?", *filter.Active)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	offset := (page - 1) * perPage
	err := withAssociations(query).
		Order("products.id DESC").
		Offset(offset).
		Limit(perPage).
		Find(&products).Error
	if err != nil {
		return nil, 0, translateError(err)
	}

	return products, total, nil
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := withAssociations(r.db).First(&product, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func (r *productRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *productRepo) Update(product *model.Product) error {
	return translateError(r.db.Omit(clause.Associations).Save(product).Error)
}

// Delete removes the product; its product_stock rows go with it (ON DELETE CASCADE).
func (r *productRepo) Delete(id uint) error {
	result := r.db.Delete(&model.Product{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
