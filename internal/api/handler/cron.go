package handler

import (
	"net/http"
	"sort"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"

	"github.com/vfg2006/leads-dashboard-api/internal/scheduler"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

// CronJobType define o tipo de cron job que será executada
const (
	CronJobTypeSellerRanking = "seller-ranking"
	CronJobTypeAll           = "all"
)

// CronJob é um serviço agendado que também pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync() error
	GetStatus() map[string]any
}

// CronJobServices indexa as cron jobs pelo tipo usado na URL
type CronJobServices map[string]CronJob

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		logger := log.ForContext(r.Context()).WithField("type", cronType)

		var jobs []string
		switch {
		case cronType == CronJobTypeAll:
			for name := range services {
				jobs = append(jobs, name)
			}
			sort.Strings(jobs)
		case services[cronType] != nil:
			jobs = []string{cronType}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]any{
				"accepted": acceptedCronTypes(services),
			})
			return
		}

		for _, name := range jobs {
			if err := services[name].TriggerManualSync(); err != nil {
				if errors.Is(err, scheduler.ErrSyncAlreadyRunning) {
					apiErrors.WriteError(w, apiErrors.ErrSyncAlreadyActive, "Sincronização já em andamento", map[string]any{"type": name})
					return
				}
				logger.WithError(err).Error("Erro ao disparar cron job")
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao disparar cron job", nil)
				return
			}
		}

		logger.Info("Cron job disparada manualmente")
		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(services))
		for name, job := range services {
			status[name] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}

func acceptedCronTypes(services CronJobServices) []string {
	types := []string{CronJobTypeAll}
	for name := range services {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}
