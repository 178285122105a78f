package model

import "time"

// StockHistory is an append-only log of stock quantity events. The
// application never updates or deletes rows.
type StockHistory struct {
	BaseModel
	StockID     uint      `gorm:"not null;index:idx_stock_histories_stock_logged,priority:1" json:"stock_id"`
	ProductID   uint      `gorm:"not null;index:idx_stock_histories_product_logged,priority:1" json:"product_id"`
	Qty         int64     `gorm:"not null" json:"qty"`
	Unit        string    `gorm:"type:varchar(20);not null" json:"unit"`
	LoggedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index:idx_stock_histories_stock_logged,priority:2;index:idx_stock_histories_product_logged,priority:2" json:"logged_at"`
	ActorUserID *uint     `json:"actor_user_id"`

	Stock     *Stock   `gorm:"foreignKey:StockID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	ActorUser *User    `gorm:"foreignKey:ActorUserID;constraint:OnDelete:SET NULL" json:"-"`
}

func (StockHistory) TableName() string {
	return "stock_histories"
}
