package models

import (
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// PhotoshootPackage is a pet photoshoot offering with a feature list
type PhotoshootPackage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"type:varchar(200);not null"`
	Slug          string    `json:"slug" gorm:"type:varchar(220);uniqueIndex;not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(12,2);not null"`
	Features      []string  `json:"features" gorm:"-"` // Stored as JSON
	FeaturesJSON  string    `json:"-" gorm:"column:features;type:json"`
	ImageURL      string    `json:"image_url" gorm:"type:varchar(500)"`
	ImagePublicID string    `json:"-" gorm:"type:varchar(255)"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for PhotoshootPackage
func (PhotoshootPackage) TableName() string {
	return "photoshoot_packages"
}

// BeforeSave hook to convert the features slice to JSON
func (p *PhotoshootPackage) BeforeSave(tx *gorm.DB) error {
	if p.Features == nil {
		p.Features = []string{}
	}
	featuresJSON, err := json.Marshal(p.Features)
	if err != nil {
		return err
	}
	p.FeaturesJSON = string(featuresJSON)
	return nil
}

// AfterFind hook to convert JSON back to the features slice
func (p *PhotoshootPackage) AfterFind(tx *gorm.DB) error {
	if p.FeaturesJSON != "" {
		return json.Unmarshal([]byte(p.FeaturesJSON), &p.Features)
	}
	return nil
}
