package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/usecases/financing"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
)

type TicketMedioRequest struct {
	TicketMedio float64 `json:"ticket_medio"`
}

// GetTicketMedio nunca falha: sem registro gravado devolve o valor padrão
func GetTicketMedio(service financing.Financer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.GetTicketMedio(r.Context()))
	}
}

func UpdateTicketMedio(service financing.Financer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TicketMedioRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		finance, err := service.UpdateTicketMedio(r.Context(), req.TicketMedio)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar ticket médio")
			return
		}

		writeJSON(w, r, http.StatusOK, finance)
	}
}

func GetRevenueEstimate(service financing.Financer, opts PeriodOptions) http.HandlerFunc {
	return periodHandler(opts, func(r *http.Request, start, end time.Time) (any, error) {
		return service.EstimateRevenue(r.Context(), start, end)
	})
}
