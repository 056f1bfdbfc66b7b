package importing

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

const defaultLookupConcurrency = 8

type Importer interface {
	PreviewAttendance(ctx context.Context, rows []domain.Row) ([]domain.AttendanceCount, error)
	ImportLeads(ctx context.Context, rows []domain.Row, referenceDate time.Time) (*domain.ImportReport, error)
	ImportSales(ctx context.Context, workbook domain.Workbook, referenceDate time.Time) (*domain.ImportReport, error)
	ImportCombined(ctx context.Context, rows []domain.Row, workbook domain.Workbook, referenceDate time.Time) (*domain.ImportReport, error)
	UpsertReleases(ctx context.Context, drafts []domain.ReleaseDraft) (created int, updated int, err error)
}

type Service struct {
	releaseRepository repository.ReleaseRepository
	sellerRepository  repository.SellerRepository
	channelRepository repository.ChannelRepository
	catalog           *ChannelCatalog
	lookupConcurrency int
}

func NewService(
	releaseRepository repository.ReleaseRepository,
	sellerRepository repository.SellerRepository,
	channelRepository repository.ChannelRepository,
	cfg *config.Config,
) Importer {
	concurrency := cfg.Import.LookupConcurrency
	if concurrency <= 0 {
		concurrency = defaultLookupConcurrency
	}

	return &Service{
		releaseRepository: releaseRepository,
		sellerRepository:  sellerRepository,
		channelRepository: channelRepository,
		catalog:           NewChannelCatalog(cfg.Import.ChannelAliases),
		lookupConcurrency: concurrency,
	}
}

func (s *Service) PreviewAttendance(ctx context.Context, rows []domain.Row) ([]domain.AttendanceCount, error) {
	return s.catalog.ProcessAttendanceData(rows)
}

func (s *Service) ImportLeads(ctx context.Context, rows []domain.Row, referenceDate time.Time) (*domain.ImportReport, error) {
	if referenceDate.IsZero() {
		return nil, ErrInvalidDate
	}

	attendance, err := s.catalog.ProcessAttendanceData(rows)
	if err != nil {
		return nil, err
	}

	sellers, channels, err := s.loadEntities(ctx)
	if err != nil {
		return nil, err
	}

	records, diag := s.catalog.PrepareLeadsRecords(attendance, referenceDate, sellers, channels)

	return s.persist(ctx, "leads", referenceDate, records, diag)
}

func (s *Service) ImportSales(ctx context.Context, workbook domain.Workbook, referenceDate time.Time) (*domain.ImportReport, error) {
	if referenceDate.IsZero() {
		return nil, ErrInvalidDate
	}

	sellers, channels, err := s.loadEntities(ctx)
	if err != nil {
		return nil, err
	}

	sales, diag, err := s.catalog.ConvertSalesSheetToRecords(workbook, referenceDate, sellers, channels)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, "vendas", referenceDate, sales.Records, diag)
}

// ImportCombined processa atendimentos e vendas do mesmo dia e grava tudo em um único upsert.
func (s *Service) ImportCombined(
	ctx context.Context,
	rows []domain.Row,
	workbook domain.Workbook,
	referenceDate time.Time,
) (*domain.ImportReport, error) {
	if referenceDate.IsZero() {
		return nil, ErrInvalidDate
	}

	attendance, err := s.catalog.ProcessAttendanceData(rows)
	if err != nil {
		return nil, err
	}

	sellers, channels, err := s.loadEntities(ctx)
	if err != nil {
		return nil, err
	}

	leads, diag := s.catalog.PrepareLeadsRecords(attendance, referenceDate, sellers, channels)

	sales, salesDiag, err := s.catalog.ConvertSalesSheetToRecords(workbook, referenceDate, sellers, channels)
	if err != nil {
		return nil, err
	}
	diag.merge(salesDiag)

	return s.persist(ctx, "leads e vendas", referenceDate, MergeLeadsAndSales(leads, sales.Records), diag)
}

func (s *Service) persist(
	ctx context.Context,
	kind string,
	referenceDate time.Time,
	records []domain.ReleaseDraft,
	diag *Diagnostics,
) (*domain.ImportReport, error) {
	logger := log.ForContext(ctx)

	created, updated, err := s.UpsertReleases(ctx, records)
	if err != nil {
		logger.WithError(err).Errorf("Erro ao gravar lançamentos de %s", kind)
		return nil, err
	}

	report := &domain.ImportReport{
		ReferenceDate: utils.Noon(referenceDate),
		Created:       created,
		Updated:       updated,
	}
	diag.fill(report)

	logger.WithFields(log.Fields{
		"criados":     report.Created,
		"atualizados": report.Updated,
		"ignorados":   report.Skipped,
	}).Infof("Importação de %s concluída: %d importados, %d ignorados", kind, report.Imported(), report.Skipped)

	return report, nil
}

// UpsertReleases grava os lançamentos pela chave natural (vendedor, canal, dia).
// As buscas dos lançamentos existentes rodam em paralelo; a gravação acontece em dois
// lotes, primeiro as atualizações e depois as criações.
func (s *Service) UpsertReleases(ctx context.Context, drafts []domain.ReleaseDraft) (int, int, error) {
	folded := foldByNaturalKey(drafts)
	if len(folded) == 0 {
		return 0, 0, nil
	}

	existing := make([]*domain.Release, len(folded))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.lookupConcurrency)

	for i := range folded {
		i := i
		g.Go(func() error {
			draft := folded[i]
			release, err := s.releaseRepository.FindByNaturalKey(gctx, draft.SellerID, draft.ChannelID, draft.DateRelease)
			if err != nil {
				return NewImportError(ErrLookupRelease, apiErrors.ErrDatabaseOperation,
					fmt.Sprintf("vendedor %s canal %s: %v", draft.SellerID, draft.ChannelID, err))
			}
			existing[i] = release
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	var updates, creates []*domain.Release
	for i, draft := range folded {
		if existing[i] != nil {
			draft.ApplyTo(existing[i])
			updates = append(updates, existing[i])
			continue
		}

		id, err := utils.GenerateID()
		if err != nil {
			return 0, 0, err
		}

		release := &domain.Release{
			ID:          id,
			SellerID:    draft.SellerID,
			ChannelID:   draft.ChannelID,
			DateRelease: utils.Noon(draft.DateRelease),
		}
		draft.ApplyTo(release)
		creates = append(creates, release)
	}

	if len(updates) > 0 {
		if err := s.releaseRepository.UpdateAll(ctx, updates); err != nil {
			return 0, 0, NewImportError(ErrSaveReleases, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	if len(creates) > 0 {
		if err := s.releaseRepository.CreateAll(ctx, creates); err != nil {
			return 0, len(updates), NewImportError(ErrSaveReleases, apiErrors.ErrDatabaseOperation, err.Error())
		}
	}

	return len(creates), len(updates), nil
}

func (s *Service) loadEntities(ctx context.Context) ([]domain.Seller, []domain.Channel, error) {
	sellers, err := s.sellerRepository.ListActive(ctx)
	if err != nil {
		return nil, nil, NewImportError(ErrFetchSellers, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if len(sellers) == 0 {
		return nil, nil, ErrNoSellers
	}

	channels, err := s.channelRepository.List(ctx)
	if err != nil {
		return nil, nil, NewImportError(ErrFetchChannels, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if len(channels) == 0 {
		return nil, nil, ErrNoChannels
	}

	return sellers, channels, nil
}

// foldByNaturalKey junta lançamentos repetidos do mesmo lote; campos informados depois prevalecem.
func foldByNaturalKey(drafts []domain.ReleaseDraft) []domain.ReleaseDraft {
	index := make(map[string]int, len(drafts))
	folded := make([]domain.ReleaseDraft, 0, len(drafts))

	for _, draft := range drafts {
		key := draft.NaturalKey()
		i, ok := index[key]
		if !ok {
			index[key] = len(folded)
			folded = append(folded, copyDraft(draft))
			continue
		}

		if draft.Leads != nil {
			folded[i].Leads = domain.Count(*draft.Leads)
		}
		if draft.Sales != nil {
			folded[i].Sales = domain.Count(*draft.Sales)
		}
		if draft.Bats != nil {
			folded[i].Bats = domain.Count(*draft.Bats)
		}
	}

	return folded
}
