package repository

import (
	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	FindAll() ([]model.ProductCategory, error)
	Exists(id uint) (bool, error)
	ExistsByName(name string) (bool, error)
	Create(category *model.ProductCategory) error
	FirstOrCreate(name string) (*model.ProductCategory, error)
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) FindAll() ([]model.ProductCategory, error) {
	var categories []model.ProductCategory
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, translateError(err)
}

func (r *categoryRepo) Exists(id uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProductCategory{}).Where("id = ?", id).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *categoryRepo) ExistsByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProductCategory{}).Where("name = ?", name).Count(&count).Error
	return count > 0, translateError(err)
}

func (r *categoryRepo) Create(category *model.ProductCategory) error {
	return translateError(r.db.Create(category).Error)
}

func (r *categoryRepo) FirstOrCreate(name string) (*model.ProductCategory, error) {
	category := model.ProductCategory{Name: name}
	if err := r.db.Where("name = ?", name).FirstOrCreate(&category).Error; err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}
