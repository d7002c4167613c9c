package models

import "time"

// Category optionally belongs to a brand and owns at most one image file.
// BrandID is a plain column; deleting a brand leaves its categories in place.
type Category struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Slug        string    `gorm:"column:slug;not null;uniqueIndex"`
	DisplayName *string   `gorm:"column:display_name"`
	Image       *string   `gorm:"column:image"`
	BrandID     *uint     `gorm:"column:brand_id;index"`
	Brand       *Brand    `gorm:"foreignKey:BrandID;references:ID;constraint:false"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Category) TableName() string { return "categories" }
