package models

import (
	"time"

	"gorm.io/datatypes"
)

// SiteSettingsID is the fixed key of the singleton settings row.
const SiteSettingsID uint = 1

type Banner struct {
	Name        string `json:"name"`
	BannerImage string `json:"banner_image"`
	CategoryID  *uint  `json:"categoryId,omitempty"`
}

type SiteSettings struct {
	ID          uint                        `gorm:"column:id;primaryKey;autoIncrement:false"`
	Phone       string                      `gorm:"column:phone;not null;default:''"`
	Email       string                      `gorm:"column:email;not null;default:''"`
	Address     string                      `gorm:"column:address;not null;default:''"`
	MapURL      string                      `gorm:"column:map_url;not null;default:''"`
	FacebookURL string                      `gorm:"column:facebook_url;not null;default:''"`
	YoutubeURL  string                      `gorm:"column:youtube_url;not null;default:''"`
	Banners     datatypes.JSONSlice[Banner] `gorm:"column:banners"`
	CreatedAt   time.Time                   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                   `gorm:"column:updated_at;autoUpdateTime"`
}

func (SiteSettings) TableName() string { return "site_settings" }
