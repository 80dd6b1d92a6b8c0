package models

import (
	"time"
)

// GroomingService is a bookable grooming offering
type GroomingService struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	Slug          string    `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	ImageURL      string    `json:"image_url" gorm:"type:varchar(500)"`
	ImagePublicID string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for GroomingService
func (GroomingService) TableName() string {
	return "grooming_services"
}
