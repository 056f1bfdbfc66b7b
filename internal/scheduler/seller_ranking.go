// Package scheduler contém os serviços agendados do dashboard
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

// ErrSyncAlreadyRunning é retornado quando já existe uma atualização do ranking em andamento.
var ErrSyncAlreadyRunning = errors.New("atualização do ranking de vendedores já está em execução")

const monthLayout = "01-2006"

type SellerRankingConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

type SellerRankingService struct {
	scheduler           *gocron.Scheduler
	releaseRepo         repository.ReleaseRepository
	rankingRepo         repository.SellerRankingRepository
	config              SellerRankingConfig
	location            *time.Location
	now                 func() time.Time
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       string
}

func NewSellerRankingService(
	releaseRepo repository.ReleaseRepository,
	rankingRepo repository.SellerRankingRepository,
	cfg *config.Config,
) *SellerRankingService {
	rankingConfig := SellerRankingConfig{
		CronSchedule: cfg.SellerRanking.CronSchedule, // Default: 6h da manhã todos os dias
		SyncEnabled:  cfg.SellerRanking.SyncEnabled,  // Default: desabilitado
	}

	location := cfg.App.Location
	if location == nil {
		location = time.Local
	}

	log.L.WithField("cron_schedule", rankingConfig.CronSchedule).
		Info("Configuração do agendador do ranking de vendedores carregada")

	return &SellerRankingService{
		scheduler:   gocron.NewScheduler(location),
		releaseRepo: releaseRepo,
		rankingRepo: rankingRepo,
		config:      rankingConfig,
		location:    location,
		now:         time.Now,
	}
}

func (s *SellerRankingService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		log.L.Info("Cron do ranking de vendedores desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do ranking de vendedores")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.UpdateSellerRanking(context.Background()); err != nil {
			log.L.WithError(err).Error("Erro na atualização do ranking de vendedores")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do ranking de vendedores: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron do ranking de vendedores")
		s.scheduler.Stop()
	}()

	return nil
}

// UpdateSellerRanking recalcula o ranking do mês de ontem.
func (s *SellerRankingService) UpdateSellerRanking(ctx context.Context) error {
	if !s.tryStart() {
		log.L.Warn("Atualização do ranking de vendedores já está em execução")
		return ErrSyncAlreadyRunning
	}

	log.L.Info("Iniciando atualização do ranking de vendedores")

	_, err := s.processSellerRankingWithDate(ctx, s.now().In(s.location))
	s.finish(err)
	if err != nil {
		return err
	}

	log.L.Info("Atualização do ranking de vendedores concluída")
	return nil
}

// processSellerRankingWithDate soma os lançamentos do primeiro dia do mês até ontem,
// ordena por vendas e compara as posições com o ranking já gravado para o mês.
func (s *SellerRankingService) processSellerRankingWithDate(ctx context.Context, processingDate time.Time) ([]*domain.SellerRankingItem, error) {
	yesterday := processingDate.AddDate(0, 0, -1)
	firstDayOfMonth := getFirstDayOfMonth(yesterday)
	month := yesterday.Format(monthLayout)

	releases, err := s.releaseRepo.ListByPeriod(ctx, domain.ReleaseFilters{
		StartDate: firstDayOfMonth,
		EndDate:   yesterday,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar lançamentos do mês %s: %w", month, err)
	}

	positionsBefore, err := s.rankingRepo.GetPositions(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ranking anterior do mês %s: %w", month, err)
	}

	sellers := reporting.Aggregate(releases, firstDayOfMonth, yesterday).Sellers

	updatedRankings := make([]*domain.SellerRankingItem, 0, len(sellers))
	for _, seller := range sellers {
		updatedRankings = append(updatedRankings, &domain.SellerRankingItem{
			SellerID:       seller.SellerID,
			Month:          month,
			SellerName:     seller.SellerName,
			Leads:          seller.Leads,
			Sales:          seller.Sales,
			Bats:           seller.Bats,
			ConversionRate: seller.ConversionRate,
		})
	}

	updatedRankings = s.updatePositions(updatedRankings, positionsBefore)

	if len(updatedRankings) == 0 {
		log.L.WithField("month", month).Info("Nenhum lançamento no mês, ranking de vendedores não alterado")
		return updatedRankings, nil
	}

	if err := s.rankingRepo.SaveOrUpdateSellerRanking(ctx, updatedRankings); err != nil {
		return updatedRankings, fmt.Errorf("erro ao salvar ranking de vendedores: %w", err)
	}

	log.L.WithFields(log.Fields{
		"month":      month,
		"vendedores": len(updatedRankings),
	}).Info("Ranking de vendedores atualizado")

	return updatedRankings, nil
}

// updatePositions ordena por vendas (empates mantêm a ordem de entrada) e calcula a
// variação em relação à posição anterior: positivo subiu, negativo desceu.
func (*SellerRankingService) updatePositions(
	updatedRankings []*domain.SellerRankingItem,
	positionsBefore map[string]int,
) []*domain.SellerRankingItem {
	summaries := make([]domain.SellerSummary, 0, len(updatedRankings))
	byID := make(map[string]*domain.SellerRankingItem, len(updatedRankings))
	for _, ranking := range updatedRankings {
		summaries = append(summaries, domain.SellerSummary{
			SellerID: ranking.SellerID,
			Metrics:  domain.Metrics{Sales: ranking.Sales},
		})
		byID[ranking.SellerID] = ranking
	}

	sorted := make([]*domain.SellerRankingItem, 0, len(updatedRankings))
	for _, summary := range reporting.RankSellers(summaries) {
		ranking := byID[summary.SellerID]
		ranking.Position = summary.Rank
		ranking.PositionChange = 0

		if before, exists := positionsBefore[ranking.SellerID]; exists && before > 0 {
			ranking.PositionChange = before - ranking.Position
		}
		sorted = append(sorted, ranking)
	}

	return sorted
}

// TriggerManualSync inicia manualmente uma atualização do ranking
func (s *SellerRankingService) TriggerManualSync() error {
	s.syncMutex.Lock()
	running := s.syncRunning
	s.syncMutex.Unlock()

	if running {
		log.L.Info("Atualização do ranking de vendedores já em andamento, ignorando solicitação manual")
		return ErrSyncAlreadyRunning
	}

	log.L.Info("Iniciando atualização manual do ranking de vendedores")
	go func() {
		if err := s.UpdateSellerRanking(context.Background()); err != nil {
			log.L.WithError(err).Error("Erro na atualização manual do ranking de vendedores")
		}
	}()

	return nil
}

// GetStatus retorna o status atual do agendador
func (s *SellerRankingService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.SyncEnabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_sync_error":        s.lastSyncError,
	}
}

func (s *SellerRankingService) tryStart() bool {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		return false
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	return true
}

func (s *SellerRankingService) finish(err error) {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	s.syncRunning = false
	s.lastSyncCompletedAt = time.Now()
	s.lastSyncError = ""
	if err != nil {
		s.lastSyncError = err.Error()
	}
}

func getFirstDayOfMonth(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
}
