package models

import (
	"time"
)

// Branch is a physical store location listed on the site
type Branch struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(200);not null"`
	Slug          string    `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	MapLink       string    `json:"map_link" gorm:"type:varchar(500)"`
	ContactNumber string    `json:"contact_number" gorm:"type:varchar(30)"`
	ImageURL      string    `json:"image_url" gorm:"type:varchar(500)"`
	ImagePublicID string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Branch model
func (Branch) TableName() string {
	return "branches"
}
