package repository

import (
	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
)

type StockRepository interface {
	Create(stock *model.Stock) error
	FindAll() ([]model.Stock, error)
	FindByID(id uint) (*model.Stock, error)
	Exists(id uint) (bool, error)
	// ExistsByName ignores the row with excludeID (0 excludes nothing).
	ExistsByName(name string, excludeID uint) (bool, error)
	Update(stock *model.Stock) error
	Delete(id uint) error
}

type stockRepo struct {
	db *gorm.DB
}

func NewStockRepo(db *gorm.DB) StockRepository {
	return &stockRepo{db}
}

func (r *stockRepo) Create(stock *model.Stock) error {
	return translateError(r.db.Create(stock).Error)
}

func (r *stockRepo) FindAll() ([]model.Stock, error) {
	var stocks []model.Stock
	err := r.db.Order("name ASC").Find(&stocks).Error
	return stocks, translateError(err)
}

func (r *stockRepo) FindByID(id uint) (*model.Stock, error) {
	var stock model.Stock
	if err := r.db.First(&stock, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &stock, nil
}

func (r *stockRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.Stock{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *stockRepo) ExistsByName(name string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.Model(&model.Stock{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, translateError(err)
}

func (r *stockRepo) Update(stock *model.Stock) error {
	return translateError(r.db.Save(stock).Error)
}

// Delete fails with ErrReferenced while product_stock rows still point at
// the stock (ON DELETE RESTRICT).
func (r *stockRepo) Delete(id uint) error {
	result := r.db.Delete(&model.Stock{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
