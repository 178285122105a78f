package model

// ProductCategory groups products on the cashier screen.
type ProductCategory struct {
	BaseModel
	Name string `gorm:"type:varchar(80);uniqueIndex;not null" json:"name"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// CategoryRef is the {id, name} projection embedded in product responses.
type CategoryRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
