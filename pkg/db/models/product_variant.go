package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductVariant has no identity across edits; the set is replaced on every product update.
type ProductVariant struct {
	ID        uint            `gorm:"column:id;primaryKey"`
	ProductID uint            `gorm:"column:product_id;not null;index"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock     int             `gorm:"column:stock;not null;default:0"`
	SKU       *string         `gorm:"column:sku"`
	Image     *string         `gorm:"column:image"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (ProductVariant) TableName() string { return "product_variants" }
