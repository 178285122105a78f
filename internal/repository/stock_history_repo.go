package repository

import (
	"go-mesinkasir/internal/model"

	"gorm.io/gorm"
)

// StockHistoryRepository only appends and reads; history rows are immutable.
type StockHistoryRepository interface {
	Append(history *model.StockHistory) error
	FindByStock(stockID uint, limit int) ([]model.StockHistory, error)
}

type stockHistoryRepo struct {
	db *gorm.DB
}

func NewStockHistoryRepo(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db: db}
}

func (r *stockHistoryRepo) Append(history *model.StockHistory) error {
	return translateError(r.db.Omit("Stock", "Product", "ActorUser").Create(history).Error)
}

func (r *stockHistoryRepo) FindByStock(stockID uint, limit int) ([]model.StockHistory, error) {
	var histories []model.StockHistory
	query := r.db.Where("stock_id = ?", stockID).Order("logged_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&histories).Error
	return histories, translateError(err)
}
