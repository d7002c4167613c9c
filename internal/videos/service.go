package videos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tankstore/storefront-backend/pkg/db/models"
	pkgerrors "github.com/tankstore/storefront-backend/pkg/errors"
)

const videoDeletedMessage = "Video deleted"

// Service manages the video gallery. Videos reference external embeds and own
// no blob files.
type Service interface {
	List(ctx context.Context) ([]VideoDTO, error)
	Create(ctx context.Context, input VideoInput) (*VideoDTO, error)
	Update(ctx context.Context, id uint, input VideoInput) (*VideoDTO, error)
	Delete(ctx context.Context, id uint) (string, error)
}

type videoRepository interface {
	List(ctx context.Context) ([]models.Video, error)
	FindByID(ctx context.Context, id uint) (*models.Video, error)
	Create(ctx context.Context, video *models.Video) error
	Update(ctx context.Context, video *models.Video) error
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo videoRepository
	now  func() time.Time
}

func NewService(repo videoRepository, now func() time.Time) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now}, nil
}

func (s *service) List(ctx context.Context) ([]VideoDTO, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return FromModels(list), nil
}

func (s *service) Create(ctx context.Context, input VideoInput) (*VideoDTO, error) {
	if err := validate(input); err != nil {
		return nil, err
	}
	date := s.now().UTC()
	if input.Date != nil && !input.Date.IsZero() {
		date = input.Date.UTC()
	}
	video := &models.Video{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		VideoURL:    strings.TrimSpace(input.VideoURL),
		Thumbnail:   input.Thumbnail,
		Date:        date,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, err
	}
	return FromModel(video), nil
}

func (s *service) Update(ctx context.Context, id uint, input VideoInput) (*VideoDTO, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate(input); err != nil {
		return nil, err
	}
	current.Title = strings.TrimSpace(input.Title)
	current.Description = input.Description
	current.VideoURL = strings.TrimSpace(input.VideoURL)
	current.Thumbnail = input.Thumbnail
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}
	return FromModel(current), nil
}

func (s *service) Delete(ctx context.Context, id uint) (string, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return videoDeletedMessage, nil
}

func validate(input VideoInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if strings.TrimSpace(input.VideoURL) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "videoUrl is required")
	}
	return nil
}
