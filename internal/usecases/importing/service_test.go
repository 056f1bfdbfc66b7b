package importing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

type serviceMocks struct {
	releases *mocks.MockReleaseRepository
	sellers  *mocks.MockSellerRepository
	channels *mocks.MockChannelRepository
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		releases: mocks.NewMockReleaseRepository(ctrl),
		sellers:  mocks.NewMockSellerRepository(ctrl),
		channels: mocks.NewMockChannelRepository(ctrl),
	}

	cfg := &config.Config{Import: config.Import{LookupConcurrency: 4}}
	service := NewService(m.releases, m.sellers, m.channels, cfg).(*Service)

	return service, m
}

// memoryStore simula a tabela de lançamentos para os testes de upsert.
type memoryStore struct {
	mu       sync.Mutex
	releases map[string]domain.Release
}

func newMemoryStore() *memoryStore {
	return &memoryStore{releases: make(map[string]domain.Release)}
}

func (s *memoryStore) find(_ context.Context, sellerID, channelID string, date time.Time) (*domain.Release, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	release, ok := s.releases[domain.NaturalKey(sellerID, channelID, date)]
	if !ok {
		return nil, nil
	}
	return &release, nil
}

func (s *memoryStore) save(_ context.Context, releases []*domain.Release) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, release := range releases {
		s.releases[release.NaturalKey()] = *release
	}
	return nil
}

func (s *memoryStore) wire(m serviceMocks) {
	m.releases.EXPECT().FindByNaturalKey(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(s.find).AnyTimes()
	m.releases.EXPECT().UpdateAll(gomock.Any(), gomock.Any()).DoAndReturn(s.save).AnyTimes()
	m.releases.EXPECT().CreateAll(gomock.Any(), gomock.Any()).DoAndReturn(s.save).AnyTimes()
}

func TestService_UpsertReleases(t *testing.T) {
	ctx := context.Background()

	t.Run("atualiza apenas os campos informados e cria os ausentes", func(t *testing.T) {
		service, m := newTestService(t)

		existing := &domain.Release{
			ID:          "r1",
			SellerID:    "s-ana",
			ChannelID:   "c-fb",
			DateRelease: referenceDate,
			Leads:       7,
		}

		m.releases.EXPECT().
			FindByNaturalKey(gomock.Any(), "s-ana", "c-fb", referenceDate).
			Return(existing, nil)
		m.releases.EXPECT().
			FindByNaturalKey(gomock.Any(), "s-ana", "c-google", referenceDate).
			Return(nil, nil)

		var updated, created []*domain.Release
		gomock.InOrder(
			m.releases.EXPECT().UpdateAll(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r []*domain.Release) error {
				updated = r
				return nil
			}),
			m.releases.EXPECT().CreateAll(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r []*domain.Release) error {
				created = r
				return nil
			}),
		)

		createdCount, updatedCount, err := service.UpsertReleases(ctx, []domain.ReleaseDraft{
			salesDraft("s-ana", "c-fb", 2, 1),
			salesDraft("s-ana", "c-google", 1, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, createdCount)
		assert.Equal(t, 1, updatedCount)

		require.Len(t, updated, 1)
		assert.Equal(t, "r1", updated[0].ID)
		assert.Equal(t, 7, updated[0].Leads)
		assert.Equal(t, 2, updated[0].Sales)
		assert.Equal(t, 1, updated[0].Bats)

		require.Len(t, created, 1)
		assert.Len(t, created[0].ID, 12)
		assert.Equal(t, 0, created[0].Leads)
		assert.Equal(t, 1, created[0].Sales)
	})

	t.Run("lote vazio não acessa o banco", func(t *testing.T) {
		service, _ := newTestService(t)

		createdCount, updatedCount, err := service.UpsertReleases(ctx, nil)
		assert.NoError(t, err)
		assert.Zero(t, createdCount)
		assert.Zero(t, updatedCount)
	})

	t.Run("chaves repetidas no lote viram um único lançamento", func(t *testing.T) {
		service, m := newTestService(t)

		m.releases.EXPECT().FindByNaturalKey(gomock.Any(), "s-ana", "c-fb", referenceDate).Return(nil, nil).Times(1)
		m.releases.EXPECT().CreateAll(ctx, gomock.Len(1)).Return(nil)

		createdCount, _, err := service.UpsertReleases(ctx, []domain.ReleaseDraft{
			leadsDraft("s-ana", "c-fb", 5),
			salesDraft("s-ana", "c-fb", 2, 1),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, createdCount)
	})

	t.Run("erro na busca aborta antes de gravar", func(t *testing.T) {
		service, m := newTestService(t)

		m.releases.EXPECT().
			FindByNaturalKey(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("conexão perdida")).
			MinTimes(1)

		_, _, err := service.UpsertReleases(ctx, []domain.ReleaseDraft{
			salesDraft("s-ana", "c-fb", 1, 0),
			salesDraft("s-bruno", "c-fb", 1, 0),
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrLookupRelease)
	})

	t.Run("erro ao gravar é propagado", func(t *testing.T) {
		service, m := newTestService(t)

		m.releases.EXPECT().FindByNaturalKey(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		m.releases.EXPECT().CreateAll(ctx, gomock.Any()).Return(errors.New("disco cheio"))

		_, _, err := service.UpsertReleases(ctx, []domain.ReleaseDraft{salesDraft("s-ana", "c-fb", 1, 0)})
		assert.ErrorIs(t, err, ErrSaveReleases)
	})
}

func TestService_UpsertReleases_Idempotent(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(t)

	store := newMemoryStore()
	store.wire(m)

	merged := MergeLeadsAndSales(
		[]domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5), leadsDraft("s-bruno", "c-insta", 3)},
		[]domain.ReleaseDraft{salesDraft("s-ana", "c-fb", 2, 1), salesDraft("s-ana", "c-google", 1, 0)},
	)

	_, _, err := service.UpsertReleases(ctx, merged)
	require.NoError(t, err)
	first := make(map[string]domain.Release, len(store.releases))
	for key, release := range store.releases {
		first[key] = release
	}

	created, updated, err := service.UpsertReleases(ctx, MergeLeadsAndSales(
		[]domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5), leadsDraft("s-bruno", "c-insta", 3)},
		[]domain.ReleaseDraft{salesDraft("s-ana", "c-fb", 2, 1), salesDraft("s-ana", "c-google", 1, 0)},
	))
	require.NoError(t, err)

	assert.Zero(t, created)
	assert.Equal(t, 3, updated)
	require.Len(t, store.releases, 3)
	for key, release := range store.releases {
		assert.Equal(t, first[key].ID, release.ID)
		assert.Equal(t, first[key].Leads, release.Leads)
		assert.Equal(t, first[key].Sales, release.Sales)
		assert.Equal(t, first[key].Bats, release.Bats)
	}

	ana := store.releases[domain.NaturalKey("s-ana", "c-fb", referenceDate)]
	assert.Equal(t, 5, ana.Leads)
	assert.Equal(t, 2, ana.Sales)
	assert.Equal(t, 1, ana.Bats)
}

func TestService_ImportLeads(t *testing.T) {
	ctx := context.Background()

	t.Run("gera lançamentos de leads e relatório", func(t *testing.T) {
		service, m := newTestService(t)
		store := newMemoryStore()
		store.wire(m)

		m.sellers.EXPECT().ListActive(ctx).Return(testSellers, nil)
		m.channels.EXPECT().List(ctx).Return(testChannels, nil)

		rows := []domain.Row{
			attendanceRow("Ana", "1", "facebook"),
			attendanceRow("Ana", "2", "fb, instagram"),
			attendanceRow("Ana", "2", "google"),
			attendanceRow("Fulano", "3", "google"),
		}

		report, err := service.ImportLeads(ctx, rows, referenceDate)
		require.NoError(t, err)

		assert.Equal(t, 2, report.Created)
		assert.Equal(t, 0, report.Updated)
		assert.Equal(t, 1, report.Skipped)
		assert.Equal(t, []string{"Fulano"}, report.UnresolvedSellers)

		facebook := store.releases[domain.NaturalKey("s-ana", "c-fb", referenceDate)]
		assert.Equal(t, 2, facebook.Leads)
		assert.Equal(t, 0, facebook.Sales)

		instagram := store.releases[domain.NaturalKey("s-ana", "c-insta", referenceDate)]
		assert.Equal(t, 1, instagram.Leads)
	})

	t.Run("grafias diferentes do atendente somam no mesmo lançamento", func(t *testing.T) {
		service, m := newTestService(t)
		store := newMemoryStore()
		store.wire(m)

		m.sellers.EXPECT().ListActive(ctx).Return(testSellers, nil)
		m.channels.EXPECT().List(ctx).Return(testChannels, nil)

		rows := []domain.Row{
			attendanceRow("Ana", "1", "facebook"),
			attendanceRow("Ana", "2", "facebook"),
			attendanceRow("ANA", "3", "facebook"),
			attendanceRow("Ana Souza", "4", "facebook"),
		}

		report, err := service.ImportLeads(ctx, rows, referenceDate)
		require.NoError(t, err)

		assert.Equal(t, 1, report.Created)
		facebook := store.releases[domain.NaturalKey("s-ana", "c-fb", referenceDate)]
		assert.Equal(t, 4, facebook.Leads)
	})

	t.Run("colunas ausentes não consultam o banco", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ImportLeads(ctx, []domain.Row{{"Atendente": "Ana"}}, referenceDate)
		assert.ErrorIs(t, err, ErrMissingColumns)
	})

	t.Run("sem vendedores ativos", func(t *testing.T) {
		service, m := newTestService(t)
		m.sellers.EXPECT().ListActive(ctx).Return([]domain.Seller{}, nil)

		_, err := service.ImportLeads(ctx, []domain.Row{attendanceRow("Ana", "1", "fb")}, referenceDate)
		assert.ErrorIs(t, err, ErrNoSellers)
	})

	t.Run("data de referência obrigatória", func(t *testing.T) {
		service, _ := newTestService(t)

		_, err := service.ImportLeads(ctx, []domain.Row{attendanceRow("Ana", "1", "fb")}, time.Time{})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestService_ImportCombined(t *testing.T) {
	ctx := context.Background()
	service, m := newTestService(t)
	store := newMemoryStore()
	store.wire(m)

	m.sellers.EXPECT().ListActive(ctx).Return(testSellers, nil)
	m.channels.EXPECT().List(ctx).Return(testChannels, nil)

	rows := []domain.Row{
		attendanceRow("Ana", "1", "facebook"),
		attendanceRow("Ana", "2", "facebook"),
	}
	workbook := domain.Workbook{
		{Name: "Ana", Rows: []domain.Row{
			{ColumnOrderDate: "15/03/2024", ColumnChannel: "Facebook", ColumnBrand: "BATS"},
			{ColumnOrderDate: "15/03/2024", ColumnChannel: "Google"},
		}},
	}

	report, err := service.ImportCombined(ctx, rows, workbook, referenceDate)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)

	facebook := store.releases[domain.NaturalKey("s-ana", "c-fb", referenceDate)]
	assert.Equal(t, 2, facebook.Leads)
	assert.Equal(t, 1, facebook.Sales)
	assert.Equal(t, 1, facebook.Bats)

	google := store.releases[domain.NaturalKey("s-ana", "c-google", referenceDate)]
	assert.Equal(t, 0, google.Leads)
	assert.Equal(t, 1, google.Sales)
}

func TestService_PreviewAttendance(t *testing.T) {
	service, _ := newTestService(t)

	result, err := service.PreviewAttendance(context.Background(), []domain.Row{attendanceRow("Ana", "1", "lp")})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 1, result[0].ChannelCounts[ChannelLandingPages])
}
