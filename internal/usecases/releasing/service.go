// Package releasing cuida da manutenção manual dos lançamentos diários.
package releasing

import (
	"context"
	"errors"
	"time"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

type Releaser interface {
	ListReleases(ctx context.Context, filters domain.ReleaseFilters) ([]*domain.Release, error)
	GetRelease(ctx context.Context, id string) (*domain.Release, error)
	CreateRelease(ctx context.Context, input *domain.ReleaseInput) (*domain.Release, error)
	UpdateRelease(ctx context.Context, id string, input *domain.ReleaseInput) (*domain.Release, error)
	DeleteRelease(ctx context.Context, id string) error
}

type Service struct {
	releaseRepository repository.ReleaseRepository
}

func NewService(releaseRepository repository.ReleaseRepository) Releaser {
	return &Service{
		releaseRepository: releaseRepository,
	}
}

// ListReleases lista os lançamentos do período, do mais recente para o mais antigo.
func (s *Service) ListReleases(ctx context.Context, filters domain.ReleaseFilters) ([]*domain.Release, error) {
	if filters.StartDate.IsZero() || filters.EndDate.IsZero() || filters.StartDate.After(filters.EndDate) {
		return nil, NewReleaseError(ErrInvalidPeriod, apiErrors.ErrInvalidRequest, "informe data inicial e final, com a inicial antes da final")
	}

	releases, err := s.releaseRepository.ListByPeriod(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar lançamentos")
		return nil, NewReleaseError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar lançamentos")
	}

	return releases, nil
}

func (s *Service) GetRelease(ctx context.Context, id string) (*domain.Release, error) {
	release, err := s.releaseRepository.GetByID(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("release_id", id).Error("Erro ao buscar lançamento")
		return nil, NewReleaseErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao buscar lançamento")
	}
	if release == nil {
		return nil, NewReleaseErrorWithID(ErrReleaseNotFound, apiErrors.ErrReleaseNotFound, id, "")
	}

	return release, nil
}

func (s *Service) CreateRelease(ctx context.Context, input *domain.ReleaseInput) (*domain.Release, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	date := utils.Noon(input.DateRelease)
	if err := s.ensureAvailable(ctx, "", input.SellerID, input.ChannelID, date); err != nil {
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, NewReleaseError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	release := &domain.Release{
		ID:          id,
		SellerID:    input.SellerID,
		ChannelID:   input.ChannelID,
		DateRelease: date,
		Leads:       input.Leads,
		Sales:       input.Sales,
		Bats:        input.Bats,
	}

	if err := s.releaseRepository.Create(ctx, release); err != nil {
		return nil, s.writeError(ctx, err, id)
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"release_id": id,
		"seller_id":  release.SellerID,
		"channel_id": release.ChannelID,
	}).Info("Lançamento criado")

	return s.reload(ctx, release)
}

func (s *Service) UpdateRelease(ctx context.Context, id string, input *domain.ReleaseInput) (*domain.Release, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	release, err := s.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}

	date := utils.Noon(input.DateRelease)
	if err := s.ensureAvailable(ctx, id, input.SellerID, input.ChannelID, date); err != nil {
		return nil, err
	}

	release.SellerID = input.SellerID
	release.ChannelID = input.ChannelID
	release.DateRelease = date
	release.Leads = input.Leads
	release.Sales = input.Sales
	release.Bats = input.Bats

	if err := s.releaseRepository.Update(ctx, release); err != nil {
		return nil, s.writeError(ctx, err, id)
	}

	return s.reload(ctx, release)
}

func (s *Service) DeleteRelease(ctx context.Context, id string) error {
	deleted, err := s.releaseRepository.Delete(ctx, id)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("release_id", id).Error("Erro ao remover lançamento")
		return NewReleaseErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao remover lançamento")
	}
	if !deleted {
		return NewReleaseErrorWithID(ErrReleaseNotFound, apiErrors.ErrReleaseNotFound, id, "")
	}

	return nil
}

// ensureAvailable garante que nenhum outro lançamento ocupa a chave natural.
func (s *Service) ensureAvailable(ctx context.Context, id, sellerID, channelID string, date time.Time) error {
	existing, err := s.releaseRepository.FindByNaturalKey(ctx, sellerID, channelID, date)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao verificar lançamento existente")
		return NewReleaseError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao verificar lançamento existente")
	}
	if existing != nil && existing.ID != id {
		return NewReleaseErrorWithID(ErrReleaseConflict, apiErrors.ErrReleaseConflict, existing.ID, "")
	}
	return nil
}

func (s *Service) writeError(ctx context.Context, err error, id string) error {
	if errors.Is(err, repository.ErrDuplicateRelease) {
		return NewReleaseErrorWithID(ErrReleaseConflict, apiErrors.ErrReleaseConflict, id, "")
	}

	log.ForContext(ctx).WithError(err).WithField("release_id", id).Error("Erro ao gravar lançamento")
	return NewReleaseErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "Falha ao gravar lançamento")
}

// reload busca o lançamento gravado para devolver os nomes de vendedor e canal.
func (s *Service) reload(ctx context.Context, release *domain.Release) (*domain.Release, error) {
	saved, err := s.releaseRepository.GetByID(ctx, release.ID)
	if err != nil || saved == nil {
		return release, nil
	}
	return saved, nil
}
