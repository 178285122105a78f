package repository

import (
	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductStockRepository is the single access path to the product_stock
// pivot, shared by the product and stock services.
type ProductStockRepository interface {
	// Upsert inserts the pair or overwrites qty/active of the existing row,
	// then reloads ps from the database.
	Upsert(ps *model.ProductStock) error
	FindByPair(productID, stockID uint) (*model.ProductStock, error)
	Exists(productID, stockID uint) (bool, error)
	// UpdateFields changes only the given columns and returns the number of
	// rows touched.
	UpdateFields(productID, stockID uint, fields map[string]interface{}) (int64, error)
	Delete(productID, stockID uint) (int64, error)
	FindAttached(productID uint) ([]model.AttachedStockRow, error)
}

type productStockRepo struct {
	db *gorm.DB
}

func NewProductStockRepo(db *gorm.DB) ProductStockRepository {
	return &productStockRepo{db: db}
}

// Upsert is a single INSERT ... ON CONFLICT (product_id, stock_id) DO UPDATE,
// so concurrent attaches of the same pair still end in exactly one row.
func (r *productStockRepo) Upsert(ps *model.ProductStock) error {
	err := r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "stock_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"qty", "active", "updated_at"}),
		}).
		Omit(clause.Associations).
		Create(ps).Error
	if err != nil {
		return translateError(err)
	}

	stored, err := r.FindByPair(ps.ProductID, ps.StockID)
	if err != nil {
		return err
	}
	*ps = *stored
	return nil
}

func (r *productStockRepo) FindByPair(productID, stockID uint) (*model.ProductStock, error) {
	var ps model.ProductStock
	err := r.db.
		Where("product_id = ? AND stock_id = ?", productID, stockID).
		First(&ps).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &ps, nil
}

func (r *productStockRepo) Exists(productID, stockID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.ProductStock{}).
		Where("product_id = ? AND stock_id = ?", productID, stockID).
		Count(&count).Error
	return count > 0, translateError(err)
}

func (r *productStockRepo) UpdateFields(productID, stockID uint, fields map[string]interface{}) (int64, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	result := r.db.Model(&model.ProductStock{}).
		Where("product_id = ? AND stock_id = ?", productID, stockID).
		Updates(fields)
	return result.RowsAffected, translateError(result.Error)
}

func (r *productStockRepo) Delete(productID, stockID uint) (int64, error) {
	result := r.db.
		Where("product_id = ? AND stock_id = ?", productID, stockID).
		Delete(&model.ProductStock{})
	return result.RowsAffected, translateError(result.Error)
}

// FindAttached lists the stocks attached to a product with their pivot
// fields, ordered by stock name.
func (r *productStockRepo) FindAttached(productID uint) ([]model.AttachedStockRow, error) {
	var rows []model.AttachedStockRow
	err := r.db.Table("product_stock").
		Select(`
			stocks.id AS stock_id,
			stocks.name AS name,
			stocks.unit AS unit,
			stocks.qty AS stock_qty,
			stocks.buy_price AS stock_buy_price,
			stocks.active AS stock_active,
			product_stock.id AS pivot_id,
			product_stock.qty AS pivot_qty,
			product_stock.active AS pivot_active
		`).
		Joins("JOIN stocks ON stocks.id = product_stock.stock_id").
		Where("product_stock.product_id = ?", productID).
		Order("stocks.name ASC").
		Scan(&rows).Error
	return rows, translateError(err)
}
