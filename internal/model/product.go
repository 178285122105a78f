package model

import (
	"go-mesinkasir/pkg/format"

	"gorm.io/gorm"
)

type Product struct {
	BaseModel
	CategoryID uint             `gorm:"not null;index" json:"category_id"`
	Category   *ProductCategory `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Name       string           `gorm:"type:varchar(120);not null" json:"name"`
	Price      int64            `gorm:"not null;default:0" json:"price"`
	Qty        int64            `gorm:"not null;default:0" json:"qty"`
	// no gorm default here: a default tag would turn an explicit false into true on insert
	Active bool `gorm:"not null" json:"active"`

	// Computed, not stored
	PriceLabel string `gorm:"-" json:"price_label"`

	// Relasi. The product_stock -> products FK is created from this side.
	ProductStocks []ProductStock `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) AfterFind(tx *gorm.DB) error {
	p.PriceLabel = format.Rupiah(p.Price)
	return nil
}

func (p *Product) AfterSave(tx *gorm.DB) error {
	p.PriceLabel = format.Rupiah(p.Price)
	return nil
}

// ProductResponse is the product as returned by the API, with its category
// and attached stocks projected down to their public fields.
type ProductResponse struct {
	Product
	Category *CategoryRef `json:"category"`
	Stocks   *[]StockRef  `json:"stocks,omitempty"`
}

// ToResponse converts Product to ProductResponse. withStocks controls whether
// the stocks key is rendered (list/show include it, create/update do not).
func (p *Product) ToResponse(withStocks bool) ProductResponse {
	p.PriceLabel = format.Rupiah(p.Price)
	resp := ProductResponse{Product: *p}

	if p.Category != nil {
		resp.Category = &CategoryRef{ID: p.Category.ID, Name: p.Category.Name}
	}

	if withStocks {
		stocks := make([]StockRef, 0, len(p.ProductStocks))
		for _, ps := range p.ProductStocks {
			if ps.Stock == nil {
				continue
			}
			stocks = append(stocks, ps.Stock.ToRef())
		}
		resp.Stocks = &stocks
	}

	return resp
}
