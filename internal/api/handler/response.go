package handler

import (
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/spreadsheet"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/financing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/releasing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}

const defaultMaxPeriodDays = 731

var errPeriodTooLong = errors.New("período excede o máximo permitido")

// PeriodOptions controla a leitura de start_date/end_date nas rotas por período.
type PeriodOptions struct {
	Location *time.Location
	MaxDays  int
}

func (o PeriodOptions) maxDays() int {
	if o.MaxDays <= 0 {
		return defaultMaxPeriodDays
	}
	return o.MaxDays
}

// parsePeriod lê start_date e end_date (AAAA-MM-DD), ambos obrigatórios. O intervalo,
// contando os dois extremos, não pode passar de opts.MaxDays.
func parsePeriod(r *http.Request, opts PeriodOptions) (time.Time, time.Time, error) {
	query := r.URL.Query()

	start, err := utils.ParseDate(query.Get("start_date"), opts.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := utils.ParseDate(query.Get("end_date"), opts.Location)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if start == nil || end == nil {
		return time.Time{}, time.Time{}, errors.New("start_date e end_date são obrigatórios")
	}
	if start.After(*end) {
		return time.Time{}, time.Time{}, errors.New("start_date não pode ser posterior a end_date")
	}

	day := 24 * time.Hour
	if days := int(end.Sub(*start).Round(day)/day) + 1; days > opts.maxDays() {
		return time.Time{}, time.Time{}, errors.Wrapf(errPeriodTooLong, "%d dias (máximo %d)", days, opts.maxDays())
	}

	return *start, *end, nil
}

func writePeriodError(w http.ResponseWriter, err error, opts PeriodOptions) {
	var details any
	if errors.Is(err, errPeriodTooLong) {
		details = map[string]any{"max_days": opts.maxDays()}
	}
	apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), details)
}

// writeServiceError traduz os erros dos casos de uso para a resposta padronizada.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.ForContext(r.Context()).WithError(err)

	var (
		authErr         *authenticating.AuthError
		releaseErr      *releasing.ReleaseError
		releaseFieldErr *releasing.ValidationError
		importErr       *importing.ImportError
		columnsErr      *importing.ValidationError
		reportErr       *reporting.ReportError
		financeErr      *financing.FinanceError
	)

	switch {
	case errors.As(err, &releaseFieldErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Lançamento inválido", releaseFieldErr.Fields)
	case errors.As(err, &columnsErr):
		apiErrors.WriteError(w, apiErrors.ErrMissingColumns, "Colunas obrigatórias ausentes na planilha", map[string]any{
			"missing": columnsErr.Missing,
		})
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
	case errors.As(err, &releaseErr):
		logger.Warn("Erro ao processar lançamento")
		var details any
		if releaseErr.ReleaseID != "" {
			details = map[string]any{"release_id": releaseErr.ReleaseID}
		}
		apiErrors.WriteError(w, releaseErr.Code, releaseErr.Error(), details)
	case errors.As(err, &importErr):
		logger.Error("Erro ao importar planilha")
		apiErrors.WriteError(w, importErr.Code, importErr.Error(), nil)
	case errors.As(err, &reportErr):
		logger.Error("Erro ao gerar relatório")
		apiErrors.WriteError(w, reportErr.Code, reportErr.Error(), nil)
	case errors.As(err, &financeErr):
		logger.Error("Erro na operação financeira")
		apiErrors.WriteError(w, financeErr.Code, financeErr.Error(), nil)
	case errors.Is(err, importing.ErrEmptySpreadsheet):
		apiErrors.WriteError(w, apiErrors.ErrEmptySpreadsheet, "Planilha sem linhas", nil)
	case errors.Is(err, spreadsheet.ErrUnreadableFile), errors.Is(err, spreadsheet.ErrNoSheets):
		apiErrors.WriteError(w, apiErrors.ErrUnreadableFile, err.Error(), nil)
	case errors.Is(err, importing.ErrNoSellers), errors.Is(err, importing.ErrNoChannels):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	case errors.Is(err, importing.ErrInvalidDate),
		errors.Is(err, reporting.ErrInvalidPeriod),
		errors.Is(err, ranking.ErrInvalidMonth):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		logger.Error(fallback)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, fallback, nil)
	}
}
