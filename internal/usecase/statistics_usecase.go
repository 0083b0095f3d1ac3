package usecase

import (
	"context"

	"clinic-portal/internal/domain/entity"
	"clinic-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type StatisticsUsecase interface {
	GetStatistics(ctx context.Context) (*entity.ClinicStats, error)
}

type statisticsUsecase struct {
	log            *logrus.Logger
	statisticsRepo repository.StatisticsRepository
}

func NewStatisticsUsecase(log *logrus.Logger, statisticsRepo repository.StatisticsRepository) StatisticsUsecase {
	return &statisticsUsecase{
		log:            log,
		statisticsRepo: statisticsRepo,
	}
}

func (u *statisticsUsecase) GetStatistics(ctx context.Context) (*entity.ClinicStats, error) {
	stats, err := u.statisticsRepo.Find(ctx)
	if err != nil {
		u.log.Warnf("Failed to find clinic statistics: %+v", err)
		return nil, err
	}
	return stats, nil
}
