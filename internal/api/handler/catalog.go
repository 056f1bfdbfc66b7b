package handler

import (
	"net/http"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

// ListSellers retorna os vendedores ativos
func ListSellers(sellerRepository repository.SellerRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sellers, err := sellerRepository.ListActive(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar vendedores")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar vendedores", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, sellers)
	}
}

func ListChannels(channelRepository repository.ChannelRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		channels, err := channelRepository.List(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar canais")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar canais", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, channels)
	}
}
