package models

import (
	"time"
)

// TargetType tags which collection a discount target points into
type TargetType string

const (
	TargetProduct    TargetType = "product"
	TargetHotel      TargetType = "hotel"
	TargetGrooming   TargetType = "grooming"
	TargetAddon      TargetType = "addon"
	TargetPhotoshoot TargetType = "photoshoot"
)

// Valid checks if the target type is one of the five known tags
func (t TargetType) Valid() bool {
	switch t {
	case TargetProduct, TargetHotel, TargetGrooming, TargetAddon, TargetPhotoshoot:
		return true
	default:
		return false
	}
}

// Discount is a time-bound percentage promotion. StartDate and EndDate are
// calendar dates stored at midnight UTC.
type Discount struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"type:varchar(200);not null"`
	Slug            string    `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description     string    `json:"description" gorm:"type:text"`
	DiscountPercent float64   `json:"discount_percent" gorm:"type:decimal(5,2);not null"`
	StartDate       time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate         time.Time `json:"end_date" gorm:"type:date;not null"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	ImageURL        string    `json:"image_url" gorm:"type:varchar(500)"`
	ImagePublicID   string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}

// DiscountTarget associates a discount with exactly one catalog row. The
// TargetID is a weak reference: it is only meaningful relative to TargetType
// and carries no cross-table foreign key.
type DiscountTarget struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	DiscountID uint       `json:"discount_id" gorm:"not null;index"`
	TargetType TargetType `json:"target_type" gorm:"type:varchar(20);not null"`
	TargetID   uint       `json:"target_id" gorm:"not null"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName specifies the table name for DiscountTarget
func (DiscountTarget) TableName() string {
	return "discount_targets"
}
