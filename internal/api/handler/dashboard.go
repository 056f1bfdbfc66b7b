package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

// periodHandler concentra a leitura do período e o envio da resposta das rotas do dashboard.
func periodHandler(opts PeriodOptions, fetch func(r *http.Request, start, end time.Time) (any, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parsePeriod(r, opts)
		if err != nil {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"start_date": r.URL.Query().Get("start_date"),
				"end_date":   r.URL.Query().Get("end_date"),
			}).Warn("dashboard: período inválido")
			writePeriodError(w, err, opts)
			return
		}

		body, err := fetch(r, start, end)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao gerar dados do dashboard")
			return
		}

		writeJSON(w, r, http.StatusOK, body)
	}
}

func GetDashboardData(service reporting.Reporter, opts PeriodOptions) http.HandlerFunc {
	return periodHandler(opts, func(r *http.Request, start, end time.Time) (any, error) {
		return service.GetDashboardData(r.Context(), start, end)
	})
}

func GetDailyData(service reporting.Reporter, opts PeriodOptions) http.HandlerFunc {
	return periodHandler(opts, func(r *http.Request, start, end time.Time) (any, error) {
		return service.GetDailyData(r.Context(), start, end)
	})
}

func GetBusinessDayAverages(service reporting.Reporter, opts PeriodOptions) http.HandlerFunc {
	return periodHandler(opts, func(r *http.Request, start, end time.Time) (any, error) {
		return service.GetBusinessDayAverages(r.Context(), start, end)
	})
}

func GetDashboardRanking(service reporting.Reporter, opts PeriodOptions) http.HandlerFunc {
	return periodHandler(opts, func(r *http.Request, start, end time.Time) (any, error) {
		return service.GetRanking(r.Context(), start, end)
	})
}
