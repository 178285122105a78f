package model

import (
	"time"
)

// BaseModel handles the integer primary key and timestamps. Rows are hard
// deleted, so there is no DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
