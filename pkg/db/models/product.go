package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Product is a catalog listing. Image is the ordered gallery of blob paths the
// product exclusively owns.
type Product struct {
	ID          uint                        `gorm:"column:id;primaryKey"`
	Name        string                      `gorm:"column:name;not null"`
	Slug        string                      `gorm:"column:slug;not null;uniqueIndex"`
	Description string                      `gorm:"column:description;not null;default:''"`
	Price       decimal.Decimal             `gorm:"column:price;type:numeric(12,2);not null"`
	Brand       *string                     `gorm:"column:brand"`
	Image       datatypes.JSONSlice[string] `gorm:"column:image;not null"`
	CategoryID  uint                        `gorm:"column:category_id;not null;index"`
	Category    *Category                   `gorm:"foreignKey:CategoryID;references:ID"`
	Volume      *string                     `gorm:"column:volume"`
	Type        *string                     `gorm:"column:type"`
	Group       *string                     `gorm:"column:group"`
	Diameter    *string                     `gorm:"column:diameter"`
	Height      *string                     `gorm:"column:height"`
	Length      *string                     `gorm:"column:length"`
	Variants    []ProductVariant            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
