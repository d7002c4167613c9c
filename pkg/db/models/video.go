package models

import "time"

type Video struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null;default:''"`
	VideoURL    string    `gorm:"column:video_url;not null"`
	Thumbnail   *string   `gorm:"column:thumbnail"`
	Date        time.Time `gorm:"column:date;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Video) TableName() string { return "videos" }
