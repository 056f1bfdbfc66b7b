package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/releasing"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/datekey"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

// releaseRequest aceita a data como AAAA-MM-DD, DD/MM/AAAA ou timestamp ISO.
type releaseRequest struct {
	SellerID    string `json:"seller_id"`
	ChannelID   string `json:"channel_id"`
	DateRelease string `json:"date_release"`
	Leads       int    `json:"leads"`
	Sales       int    `json:"vendas"`
	Bats        int    `json:"bats"`
}

func (req releaseRequest) toInput(loc *time.Location) (*domain.ReleaseInput, error) {
	input := &domain.ReleaseInput{
		SellerID:  req.SellerID,
		ChannelID: req.ChannelID,
		Leads:     req.Leads,
		Sales:     req.Sales,
		Bats:      req.Bats,
	}

	if req.DateRelease == "" {
		return input, nil
	}

	key, err := datekey.Normalize(req.DateRelease)
	if err != nil {
		return nil, err
	}
	date, err := utils.ParseDate(key, loc)
	if err != nil {
		return nil, err
	}
	input.DateRelease = *date

	return input, nil
}

func decodeReleaseInput(w http.ResponseWriter, r *http.Request, loc *time.Location) (*domain.ReleaseInput, bool) {
	var req releaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
		return nil, false
	}

	input, err := req.toInput(loc)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data do lançamento inválida", map[string]any{
			"date_release": req.DateRelease,
		})
		return nil, false
	}

	return input, true
}

// ListReleases lista os lançamentos do período com busca opcional por vendedor/canal (?search=) e canal (?channel_id=)
func ListReleases(service releasing.Releaser, opts PeriodOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, end, err := parsePeriod(r, opts)
		if err != nil {
			writePeriodError(w, err, opts)
			return
		}

		releases, err := service.ListReleases(r.Context(), domain.ReleaseFilters{
			StartDate: start,
			EndDate:   end,
			Search:    r.URL.Query().Get("search"),
			ChannelID: r.URL.Query().Get("channel_id"),
		})
		if err != nil {
			writeServiceError(w, r, err, "Erro ao listar lançamentos")
			return
		}

		writeJSON(w, r, http.StatusOK, releases)
	}
}

func GetRelease(service releasing.Releaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		release, err := service.GetRelease(r.Context(), id)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao buscar lançamento")
			return
		}

		writeJSON(w, r, http.StatusOK, release)
	}
}

func CreateRelease(service releasing.Releaser, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		input, ok := decodeReleaseInput(w, r, loc)
		if !ok {
			return
		}

		release, err := service.CreateRelease(r.Context(), input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao criar lançamento")
			return
		}

		writeJSON(w, r, http.StatusCreated, release)
	}
}

func UpdateRelease(service releasing.Releaser, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		input, ok := decodeReleaseInput(w, r, loc)
		if !ok {
			return
		}

		release, err := service.UpdateRelease(r.Context(), id, input)
		if err != nil {
			writeServiceError(w, r, err, "Erro ao atualizar lançamento")
			return
		}

		writeJSON(w, r, http.StatusOK, release)
	}
}

func DeleteRelease(service releasing.Releaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteRelease(r.Context(), id); err != nil {
			writeServiceError(w, r, err, "Erro ao remover lançamento")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
