package handler

import (
	"net/http"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/financing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/importing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/releasing"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me/password",
			Method:      http.MethodPut,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}

func Dashboard(service reporting.Reporter, opts PeriodOptions) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboardData(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/daily",
			Method:      http.MethodGet,
			Handler:     GetDailyData(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/business-days",
			Method:      http.MethodGet,
			Handler:     GetBusinessDayAverages(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/dashboard/ranking",
			Method:      http.MethodGet,
			Handler:     GetDashboardRanking(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func SellerRanking(service ranking.RankingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellers/ranking",
			Method:      http.MethodGet,
			Handler:     GetSellerRanking(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Releases(service releasing.Releaser, opts PeriodOptions) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/releases",
			Method:      http.MethodGet,
			Handler:     ListReleases(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/releases",
			Method:      http.MethodPost,
			Handler:     CreateRelease(service, opts.Location),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/releases/:id",
			Method:      http.MethodGet,
			Handler:     GetRelease(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/releases/:id",
			Method:      http.MethodPut,
			Handler:     UpdateRelease(service, opts.Location),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/releases/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteRelease(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

func Catalog(sellerRepository repository.SellerRepository, channelRepository repository.ChannelRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/sellers",
			Method:      http.MethodGet,
			Handler:     ListSellers(sellerRepository),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/channels",
			Method:      http.MethodGet,
			Handler:     ListChannels(channelRepository),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Imports(service importing.Importer, opts ImportOptions) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/imports/attendance/preview",
			Method:      http.MethodPost,
			Handler:     PreviewAttendance(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/imports/leads",
			Method:      http.MethodPost,
			Handler:     ImportLeads(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/imports/sales",
			Method:      http.MethodPost,
			Handler:     ImportSales(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/imports/combined",
			Method:      http.MethodPost,
			Handler:     ImportCombined(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}

func Finances(service financing.Financer, opts PeriodOptions) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/finances/ticket-medio",
			Method:      http.MethodGet,
			Handler:     GetTicketMedio(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/finances/ticket-medio",
			Method:      http.MethodPut,
			Handler:     UpdateTicketMedio(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
		{
			Path:        "/v1/finances/revenue",
			Method:      http.MethodGet,
			Handler:     GetRevenueEstimate(service, opts),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrManager()},
		},
	}
}
