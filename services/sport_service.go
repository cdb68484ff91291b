package services

import (
	"context"

	"github.com/hopon-app/hopon/models"
)

// GenericSportTitle показывается на экране действий для неизвестного вида спорта.
const GenericSportTitle = "Selected Sport"

type SportService interface {
	GetAllSports(ctx context.Context) ([]models.Sport, error)
	GetSportByID(ctx context.Context, id string) (*models.Sport, error)
	// ActionsTitle никогда не возвращает ошибку: неизвестный id даёт GenericSportTitle.
	ActionsTitle(id string) string
}

type sportService struct{}

// NewSportService возвращает сервис поверх статического каталога.
func NewSportService() SportService {
	return &sportService{}
}

func (s *sportService) GetAllSports(_ context.Context) ([]models.Sport, error) {
	return models.Sports(), nil
}

func (s *sportService) GetSportByID(_ context.Context, id string) (*models.Sport, error) {
	sport, ok := models.FindSport(id)
	if !ok {
		return nil, ErrSportNotFound
	}
	return &sport, nil
}

func (s *sportService) ActionsTitle(id string) string {
	if sport, ok := models.FindSport(id); ok {
		return sport.Name
	}
	return GenericSportTitle
}
