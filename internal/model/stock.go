package model

type StockUnit string

const (
	UnitPcs  StockUnit = "pcs"
	UnitGram StockUnit = "gram"
	UnitKg   StockUnit = "kg"
)

// Stock is a raw material / ingredient tracked by the store (gula, kopi, cup).
type Stock struct {
	BaseModel
	Name        string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`
	Unit        StockUnit `gorm:"type:varchar(10);not null" json:"unit"`
	UnitMeasure *string   `gorm:"column:unitmeasure;type:varchar(50)" json:"unitmeasure"`
	Qty         int64     `gorm:"not null;default:0" json:"qty"`
	BuyPrice    int64     `gorm:"not null;default:0" json:"buy_price"`
	Active      bool      `gorm:"not null" json:"active"`
}

func (Stock) TableName() string {
	return "stocks"
}

// StockRef is the {id, name, unit, active} projection used by product
// listings and the stock master list.
type StockRef struct {
	ID     uint      `json:"id"`
	Name   string    `json:"name"`
	Unit   StockUnit `json:"unit"`
	Active bool      `json:"active"`
}

func (s *Stock) ToRef() StockRef {
	return StockRef{
		ID:     s.ID,
		Name:   s.Name,
		Unit:   s.Unit,
		Active: s.Active,
	}
}
