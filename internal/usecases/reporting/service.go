// Package reporting monta os dados do dashboard a partir dos lançamentos gravados.
package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

type Reporter interface {
	GetDashboardData(ctx context.Context, start, end time.Time) (*domain.DashboardData, error)
	GetDailyData(ctx context.Context, start, end time.Time) ([]domain.DayEntry, error)
	GetBusinessDayAverages(ctx context.Context, start, end time.Time) (*domain.BusinessDayAverages, error)
	GetRanking(ctx context.Context, start, end time.Time) (*domain.Ranking, error)
}

type Service struct {
	releaseRepository repository.ReleaseRepository
}

func NewService(releaseRepository repository.ReleaseRepository) Reporter {
	return &Service{
		releaseRepository: releaseRepository,
	}
}

func (s *Service) GetDashboardData(ctx context.Context, start, end time.Time) (*domain.DashboardData, error) {
	releases, err := s.releases(ctx, start, end)
	if err != nil {
		return nil, err
	}

	data := Aggregate(releases, start, end)

	log.ForContext(ctx).WithFields(log.Fields{
		"lancamentos": len(releases),
		"vendedores":  len(data.Sellers),
		"canais":      len(data.Channels),
	}).Debug("Dados do dashboard agregados")

	return data, nil
}

func (s *Service) GetDailyData(ctx context.Context, start, end time.Time) ([]domain.DayEntry, error) {
	releases, err := s.releases(ctx, start, end)
	if err != nil {
		return nil, err
	}

	return Timeline(releases, start, end), nil
}

func (s *Service) GetBusinessDayAverages(ctx context.Context, start, end time.Time) (*domain.BusinessDayAverages, error) {
	releases, err := s.releases(ctx, start, end)
	if err != nil {
		return nil, err
	}

	averages := Aggregate(releases, start, end).BusinessDays
	return &averages, nil
}

func (s *Service) GetRanking(ctx context.Context, start, end time.Time) (*domain.Ranking, error) {
	releases, err := s.releases(ctx, start, end)
	if err != nil {
		return nil, err
	}

	data := Aggregate(releases, start, end)

	return &domain.Ranking{
		Period:   data.Period,
		Sellers:  RankSellers(data.Sellers),
		Channels: RankChannels(data.Channels),
	}, nil
}

func (s *Service) releases(ctx context.Context, start, end time.Time) ([]*domain.Release, error) {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return nil, ErrInvalidPeriod
	}

	releases, err := s.releaseRepository.ListByPeriod(ctx, domain.ReleaseFilters{
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar lançamentos do período")
		return nil, NewReportError(ErrFetchReleases, apiErrors.ErrDatabaseOperation, err.Error())
	}

	return releases, nil
}
