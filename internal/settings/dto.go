package settings

import (
	"github.com/tankstore/storefront-backend/internal/assets"
	"github.com/tankstore/storefront-backend/pkg/db/models"
)

// SettingsDTO is the public site settings payload.
type SettingsDTO struct {
	ID          uint        `json:"id,omitempty"`
	Phone       string      `json:"phone"`
	Email       string      `json:"email"`
	Address     string      `json:"address"`
	MapURL      string      `json:"mapUrl"`
	FacebookURL string      `json:"facebookUrl"`
	YoutubeURL  string      `json:"youtubeUrl"`
	Banners     []BannerDTO `json:"banners"`
}

type BannerDTO struct {
	Name        string `json:"name"`
	BannerImage string `json:"banner_image"`
	CategoryID  *uint  `json:"categoryId,omitempty"`
}

// BannerMetadata is one entry of the banners_metadata form field. Entries
// flagged isNewUpload take the next file from banner_files.
type BannerMetadata struct {
	Name        string `json:"name"`
	BannerImage string `json:"banner_image"`
	CategoryID  *uint  `json:"categoryId"`
	IsNewUpload bool   `json:"isNewUpload"`
}

// SettingsInput carries the parsed multipart form of PUT /settings.
type SettingsInput struct {
	Phone       string
	Email       string
	Address     string
	MapURL      string
	FacebookURL string
	YoutubeURL  string
	// BannersMetadata is the raw JSON list of BannerMetadata.
	BannersMetadata string
	// BannerFiles are the uploads sent under banner_files, in order.
	BannerFiles []assets.Upload
}

// Empty is returned while no settings row exists.
func Empty() *SettingsDTO {
	return &SettingsDTO{Banners: []BannerDTO{}}
}

func FromModel(s *models.SiteSettings) *SettingsDTO {
	if s == nil {
		return Empty()
	}
	banners := make([]BannerDTO, 0, len(s.Banners))
	for _, b := range s.Banners {
		banners = append(banners, BannerDTO{Name: b.Name, BannerImage: b.BannerImage, CategoryID: b.CategoryID})
	}
	return &SettingsDTO{
		ID:          s.ID,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		MapURL:      s.MapURL,
		FacebookURL: s.FacebookURL,
		YoutubeURL:  s.YoutubeURL,
		Banners:     banners,
	}
}

func bannerPaths(banners []models.Banner) []string {
	out := make([]string, 0, len(banners))
	for _, b := range banners {
		if b.BannerImage != "" {
			out = append(out, b.BannerImage)
		}
	}
	return out
}
