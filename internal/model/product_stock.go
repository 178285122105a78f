package model

// ProductStock is the product <-> stock pivot. It is addressable on its own
// (own id) and carries the amount of stock used per unit of product.
// (product_id, stock_id) is unique.
type ProductStock struct {
	BaseModel
	ProductID uint     `gorm:"not null;uniqueIndex:idx_product_stock_pair,priority:1" json:"product_id"`
	StockID   uint     `gorm:"not null;uniqueIndex:idx_product_stock_pair,priority:2;index" json:"stock_id"`
	Qty       int64    `gorm:"not null;default:0" json:"qty"`
	Active    bool     `gorm:"not null" json:"active"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Stock     *Stock   `gorm:"foreignKey:StockID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}

func (ProductStock) TableName() string {
	return "product_stock"
}

// PivotRef is the pivot part of an attached-stock listing.
type PivotRef struct {
	ID     uint  `json:"id"`
	Qty    int64 `json:"qty"`
	Active bool  `json:"active"`
}

// AttachedStockRow is one row of the product_stock JOIN stocks listing.
type AttachedStockRow struct {
	StockID       uint
	Name          string
	Unit          StockUnit
	StockQty      int64
	StockBuyPrice int64
	StockActive   bool
	PivotID       uint
	PivotQty      int64
	PivotActive   bool
}

// AttachedStock is the product-side view of an attached stock.
type AttachedStock struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Unit   StockUnit `json:"unit"`
	Active bool      `json:"active"`
	Pivot  PivotRef  `json:"pivot"`
}

// AttachedStockDetail is the stock-side view, which also carries the stock's
// own qty and buy_price.
type AttachedStockDetail struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Unit     StockUnit `json:"unit"`
	Qty      int64     `json:"qty"`
	BuyPrice int64     `json:"buy_price"`
	Active   bool      `json:"active"`
	Pivot    PivotRef  `json:"pivot"`
}

func (r AttachedStockRow) pivot() PivotRef {
	return PivotRef{ID: r.PivotID, Qty: r.PivotQty, Active: r.PivotActive}
}

func (r AttachedStockRow) ToAttachedStock() AttachedStock {
	return AttachedStock{
		ID:     r.StockID,
		Name:   r.Name,
		Unit:   r.Unit,
		Active: r.StockActive,
		Pivot:  r.pivot(),
	}
}

func (r AttachedStockRow) ToAttachedStockDetail() AttachedStockDetail {
	return AttachedStockDetail{
		ID:       r.StockID,
		Name:     r.Name,
		Unit:     r.Unit,
		Qty:      r.StockQty,
		BuyPrice: r.StockBuyPrice,
		Active:   r.StockActive,
		Pivot:    r.pivot(),
	}
}
