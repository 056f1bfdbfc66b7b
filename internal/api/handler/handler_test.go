package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/leads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/financing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/releasing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/middleware"
)

// serve executa a requisição pelo roteador como se o usuário já estivesse autenticado.
func serve(routes []router.Route, role int, req *http.Request) *httptest.ResponseRecorder {
	claims := &domain.Claims{UserID: 1, UserRoleID: role}
	req = req.WithContext(context.WithValue(req.Context(), middleware.ContextKeyUser, claims))

	rec := httptest.NewRecorder()
	router.New(router.WithRoutes(routes...)).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestReleaseHandlers(t *testing.T) {
	newRoutes := func(t *testing.T) ([]router.Route, *mocks.MockReleaseRepository) {
		ctrl := gomock.NewController(t)
		releases := mocks.NewMockReleaseRepository(ctrl)
		return Releases(releasing.NewService(releases), PeriodOptions{Location: time.UTC}), releases
	}

	t.Run("cria lançamento com data brasileira", func(t *testing.T) {
		routes, releases := newRoutes(t)
		day := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)

		releases.EXPECT().FindByNaturalKey(gomock.Any(), "s1", "c1", day).Return(nil, nil)
		releases.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		releases.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(nil, nil)

		body := `{"seller_id":"s1","channel_id":"c1","date_release":"15/03/2024","leads":10,"vendas":3,"bats":1}`
		rec := serve(routes, middleware.RoleManager, httptest.NewRequest(http.MethodPost, "/v1/releases", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		var release domain.Release
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &release))
		assert.Equal(t, "s1", release.SellerID)
		assert.Equal(t, 3, release.Sales)
		assert.True(t, release.DateRelease.Equal(day))
	})

	t.Run("bats maior que vendas é rejeitado", func(t *testing.T) {
		routes, _ := newRoutes(t)

		body := `{"seller_id":"s1","channel_id":"c1","date_release":"2024-03-15","leads":10,"vendas":1,"bats":2}`
		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/releases", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		errBody := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidRequest, errBody.Code)
		assert.Contains(t, errBody.Details, "bats")
	})

	t.Run("data inválida", func(t *testing.T) {
		routes, _ := newRoutes(t)

		body := `{"seller_id":"s1","channel_id":"c1","date_release":"31/02/2024"}`
		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/releases", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})

	t.Run("conflito de chave natural", func(t *testing.T) {
		routes, releases := newRoutes(t)
		releases.EXPECT().FindByNaturalKey(gomock.Any(), "s1", "c1", gomock.Any()).Return(&domain.Release{ID: "r9"}, nil)

		body := `{"seller_id":"s1","channel_id":"c1","date_release":"2024-03-15","leads":1}`
		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/releases", strings.NewReader(body)))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrReleaseConflict, decodeError(t, rec).Code)
	})

	t.Run("visualizador não pode criar", func(t *testing.T) {
		routes, _ := newRoutes(t)

		rec := serve(routes, middleware.RoleViewer, httptest.NewRequest(http.MethodPost, "/v1/releases", strings.NewReader(`{}`)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("lançamento inexistente", func(t *testing.T) {
		routes, releases := newRoutes(t)
		releases.EXPECT().GetByID(gomock.Any(), "nao-existe").Return(nil, nil)

		rec := serve(routes, middleware.RoleViewer, httptest.NewRequest(http.MethodGet, "/v1/releases/nao-existe", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrReleaseNotFound, decodeError(t, rec).Code)
	})

	t.Run("remove lançamento", func(t *testing.T) {
		routes, releases := newRoutes(t)
		releases.EXPECT().Delete(gomock.Any(), "r1").Return(true, nil)

		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodDelete, "/v1/releases/r1", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("listagem com período gigante é recusada sem consultar o banco", func(t *testing.T) {
		routes, _ := newRoutes(t)

		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/releases?start_date=0001-01-01&end_date=9999-12-31", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
	})

	t.Run("listagem exige período", func(t *testing.T) {
		routes, _ := newRoutes(t)

		rec := serve(routes, middleware.RoleViewer, httptest.NewRequest(http.MethodGet, "/v1/releases?start_date=2024-03-01", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDashboardHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	releases := mocks.NewMockReleaseRepository(ctrl)
	routes := Dashboard(reporting.NewService(releases), PeriodOptions{Location: time.UTC, MaxDays: 31})

	day := time.Date(2024, time.March, 12, 12, 0, 0, 0, time.UTC)
	fixture := []*domain.Release{
		{ID: "r1", SellerID: "s1", SellerName: "Ana", ChannelID: "c1", ChannelName: "Facebook", DateRelease: day, Leads: 10, Sales: 4, Bats: 1},
		{ID: "r2", SellerID: "s2", SellerName: "Bia", ChannelID: "c1", ChannelName: "Facebook", DateRelease: day, Leads: 5, Sales: 1},
	}

	t.Run("totais do período", func(t *testing.T) {
		releases.EXPECT().ListByPeriod(gomock.Any(), gomock.Any()).Return(fixture, nil)

		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard?start_date=2024-03-11&end_date=2024-03-13", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var data domain.DashboardData
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &data))
		assert.Equal(t, 15, data.Totals.Leads)
		assert.Equal(t, 5, data.Totals.Sales)
		assert.Len(t, data.Sellers, 2)
		assert.Equal(t, 3, data.BusinessDays.BusinessDays)
	})

	t.Run("série diária preenchida", func(t *testing.T) {
		releases.EXPECT().ListByPeriod(gomock.Any(), gomock.Any()).Return(fixture, nil)

		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard/daily?start_date=2024-03-11&end_date=2024-03-13", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var days []domain.DayEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
		require.Len(t, days, 3)
		assert.Equal(t, 0, days[0].Leads)
		assert.Equal(t, 15, days[1].Leads)
	})

	t.Run("período invertido", func(t *testing.T) {
		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard?start_date=2024-03-13&end_date=2024-03-11", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("período no limite é aceito", func(t *testing.T) {
		releases.EXPECT().ListByPeriod(gomock.Any(), gomock.Any()).Return(nil, nil)

		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard/daily?start_date=2024-03-01&end_date=2024-03-31", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var days []domain.DayEntry
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
		assert.Len(t, days, 31)
	})

	t.Run("período acima do máximo", func(t *testing.T) {
		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard?start_date=2024-03-01&end_date=2024-04-01", nil))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, apiErrors.ErrInvalidRequest, body.Code)
		assert.Equal(t, map[string]any{"max_days": float64(31)}, body.Details)
	})

	t.Run("falha do banco vira 500", func(t *testing.T) {
		releases.EXPECT().ListByPeriod(gomock.Any(), gomock.Any()).Return(nil, errors.New("offline"))

		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodGet, "/v1/dashboard/ranking?start_date=2024-03-11&end_date=2024-03-13", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeError(t, rec).Code)
	})
}

func attendanceWorkbook(t *testing.T, rows ...[]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Atendente", "Nome", "Tags"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func multipartRequest(t *testing.T, path string, files map[string][]byte, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	for field, content := range files {
		part, err := writer.CreateFormFile(field, field+".xlsx")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	service := importing.NewService(
		mocks.NewMockReleaseRepository(ctrl),
		mocks.NewMockSellerRepository(ctrl),
		mocks.NewMockChannelRepository(ctrl),
		&config.Config{},
	)
	routes := Imports(service, ImportOptions{MaxUploadSizeMB: 1, Location: time.UTC})

	t.Run("prévia de atendimentos", func(t *testing.T) {
		file := attendanceWorkbook(t,
			[]any{"Ana", "Cliente 1", "lp"},
			[]any{"Ana", "Cliente 2", "facebook"},
		)

		rec := serve(routes, middleware.RoleManager,
			multipartRequest(t, "/v1/imports/attendance/preview", map[string][]byte{"file": file}, nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var counts []domain.AttendanceCount
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
		require.Len(t, counts, 1)
		assert.Equal(t, "Ana", counts[0].AttendantName)
		assert.Equal(t, 1, counts[0].ChannelCounts[importing.ChannelLandingPages])
		assert.Equal(t, 1, counts[0].ChannelCounts[importing.ChannelFacebook])
	})

	t.Run("arquivo ausente", func(t *testing.T) {
		rec := serve(routes, middleware.RoleManager,
			multipartRequest(t, "/v1/imports/leads", nil, map[string]string{"reference_date": "2024-03-15"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrUnreadableFile, decodeError(t, rec).Code)
	})

	t.Run("arquivo que não é planilha", func(t *testing.T) {
		rec := serve(routes, middleware.RoleManager,
			multipartRequest(t, "/v1/imports/attendance/preview", map[string][]byte{"file": []byte("texto")}, nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrUnreadableFile, decodeError(t, rec).Code)
	})

	t.Run("colunas ausentes", func(t *testing.T) {
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"Atendente", "Telefone"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"Ana", "4399"}))
		buf, err := f.WriteToBuffer()
		require.NoError(t, err)

		rec := serve(routes, middleware.RoleManager,
			multipartRequest(t, "/v1/imports/attendance/preview", map[string][]byte{"file": buf.Bytes()}, nil))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingColumns, decodeError(t, rec).Code)
	})

	t.Run("data de referência inválida", func(t *testing.T) {
		rec := serve(routes, middleware.RoleManager,
			multipartRequest(t, "/v1/imports/leads", nil, map[string]string{"reference_date": "15-03-2024"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestFinanceHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	finances := mocks.NewMockFinanceRepository(ctrl)
	releases := mocks.NewMockReleaseRepository(ctrl)
	service := financing.NewService(finances, reporting.NewService(releases), &config.Config{})
	routes := Finances(service, PeriodOptions{Location: time.UTC})

	t.Run("ticket médio padrão", func(t *testing.T) {
		finances.EXPECT().GetLatest(gomock.Any()).Return(nil, nil)

		rec := serve(routes, middleware.RoleViewer, httptest.NewRequest(http.MethodGet, "/v1/finances/ticket-medio", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var finance domain.Finance
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &finance))
		assert.Equal(t, 237.0, finance.TicketMedio)
	})

	t.Run("ticket médio negativo", func(t *testing.T) {
		rec := serve(routes, middleware.RoleAdmin,
			httptest.NewRequest(http.MethodPut, "/v1/finances/ticket-medio", strings.NewReader(`{"ticket_medio":-1}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("visualizador não altera ticket", func(t *testing.T) {
		rec := serve(routes, middleware.RoleViewer,
			httptest.NewRequest(http.MethodPut, "/v1/finances/ticket-medio", strings.NewReader(`{"ticket_medio":300}`)))

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

type fakeCronJob struct {
	triggered int
	err       error
}

func (f *fakeCronJob) TriggerManualSync() error {
	f.triggered++
	return f.err
}

func (f *fakeCronJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": false}
}

func TestCronHandlers(t *testing.T) {
	t.Run("dispara a cron job informada", func(t *testing.T) {
		job := &fakeCronJob{}
		routes := CronJobs(CronJobServices{CronJobTypeSellerRanking: job})

		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/cron/seller-ranking/run", nil))

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, job.triggered)
	})

	t.Run("tipo desconhecido", func(t *testing.T) {
		routes := CronJobs(CronJobServices{CronJobTypeSellerRanking: &fakeCronJob{}})

		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/cron/meta/run", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sincronização em andamento", func(t *testing.T) {
		routes := CronJobs(CronJobServices{CronJobTypeSellerRanking: &fakeCronJob{err: scheduler.ErrSyncAlreadyRunning}})

		rec := serve(routes, middleware.RoleAdmin, httptest.NewRequest(http.MethodPost, "/v1/cron/all/run", nil))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrSyncAlreadyActive, decodeError(t, rec).Code)
	})

	t.Run("status de todas as jobs", func(t *testing.T) {
		routes := CronJobs(CronJobServices{CronJobTypeSellerRanking: &fakeCronJob{}})

		rec := serve(routes, middleware.RoleManager, httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), CronJobTypeSellerRanking)
	})
}

func TestRouterFallbacks(t *testing.T) {
	rec := serve(Healthcheck(), middleware.RoleViewer, httptest.NewRequest(http.MethodGet, "/v1/inexistente", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrRouteNotFound, decodeError(t, rec).Code)
}
