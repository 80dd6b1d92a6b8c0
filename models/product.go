package models

import (
	"time"
)

// Product is a store item shown on the marketing site
type Product struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	CategoryID    uint            `json:"category_id" gorm:"not null;index"`
	Category      ProductCategory `json:"category" gorm:"foreignKey:CategoryID"`
	Name          string          `json:"name" gorm:"type:varchar(200);not null"`
	Slug          string          `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description   string          `json:"description" gorm:"type:text"`
	Price         float64         `json:"price" gorm:"type:decimal(12,2);not null"`
	ImageURL      string          `json:"image_url" gorm:"type:varchar(500)"`
	ImagePublicID string          `json:"-" gorm:"type:varchar(255)"`
	IsVisible     bool            `json:"is_visible" gorm:"default:true"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}
