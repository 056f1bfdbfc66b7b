package handler

import (
	"net/http"

	"github.com/vfg2006/leads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
)

// GetSellerRanking retorna o ranking mensal persistido; ?month=MM-AAAA, padrão é o mês de ontem
func GetSellerRanking(service ranking.RankingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.GetSellerRanking(r.Context(), r.URL.Query().Get("month"))
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar ranking de vendedores")
			return
		}

		if result == nil {
			apiErrors.WriteError(w, apiErrors.ErrRankingNotFound, "Nenhum ranking encontrado", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	}
}
