package repository

import "gorm.io/gorm"

// Repositories bundles every repository built on one connection.
type Repositories struct {
	Users        UserRepository
	Categories   CategoryRepository
	Products     ProductRepository
	Stocks       StockRepository
	ProductStock ProductStockRepository
	Histories    StockHistoryRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepo(db),
		Categories:   NewCategoryRepo(db),
		Products:     NewProductRepo(db),
		Stocks:       NewStockRepo(db),
		ProductStock: NewProductStockRepo(db),
		Histories:    NewStockHistoryRepo(db),
	}
}
