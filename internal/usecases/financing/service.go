// Package financing guarda o ticket médio e estima o faturamento a partir das vendas.
package financing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/leads-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/leads-dashboard-api/internal/config"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/leads-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

const defaultTicketMedio = 237

type Financer interface {
	GetTicketMedio(ctx context.Context) *domain.Finance
	UpdateTicketMedio(ctx context.Context, value float64) (*domain.Finance, error)
	EstimateRevenue(ctx context.Context, start, end time.Time) (*domain.RevenueEstimate, error)
}

type Service struct {
	financeRepository  repository.FinanceRepository
	reporter           reporting.Reporter
	defaultTicketMedio float64
}

func NewService(financeRepository repository.FinanceRepository, reporter reporting.Reporter, cfg *config.Config) Financer {
	ticket := cfg.Finance.DefaultTicketMedio
	if ticket <= 0 {
		ticket = defaultTicketMedio
	}

	return &Service{
		financeRepository:  financeRepository,
		reporter:           reporter,
		defaultTicketMedio: ticket,
	}
}

// GetTicketMedio devolve o último ticket médio gravado. Sem registro, ou com erro
// de leitura, devolve o valor padrão para não travar o dashboard.
func (s *Service) GetTicketMedio(ctx context.Context) *domain.Finance {
	finance, err := s.financeRepository.GetLatest(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao buscar ticket médio, usando valor padrão")
		return &domain.Finance{TicketMedio: s.defaultTicketMedio}
	}
	if finance == nil {
		return &domain.Finance{TicketMedio: s.defaultTicketMedio}
	}
	return finance
}

func (s *Service) UpdateTicketMedio(ctx context.Context, value float64) (*domain.Finance, error) {
	if value <= 0 {
		return nil, NewFinanceError(ErrInvalidTicketMedio, apiErrors.ErrInvalidRequest, "")
	}

	finance, err := s.financeRepository.GetLatest(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao buscar ticket médio atual")
		return nil, NewFinanceError(ErrSaveFinance, apiErrors.ErrDatabaseOperation, err.Error())
	}
	if finance == nil {
		finance = &domain.Finance{}
	}
	finance.TicketMedio = value

	saved, err := s.financeRepository.Save(ctx, finance)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao gravar ticket médio")
		return nil, NewFinanceError(ErrSaveFinance, apiErrors.ErrDatabaseOperation, err.Error())
	}

	log.ForContext(ctx).WithField("ticket_medio", value).Info("Ticket médio atualizado")
	return saved, nil
}

// EstimateRevenue multiplica as vendas do período pelo ticket médio e divide pelos dias úteis.
func (s *Service) EstimateRevenue(ctx context.Context, start, end time.Time) (*domain.RevenueEstimate, error) {
	data, err := s.reporter.GetDashboardData(ctx, start, end)
	if err != nil {
		return nil, err
	}

	ticket := s.GetTicketMedio(ctx).TicketMedio
	revenue, perDay := Revenue(ticket, data.Totals.Sales, data.BusinessDays.BusinessDays)

	return &domain.RevenueEstimate{
		Period:                data.Period,
		TicketMedio:           ticket,
		Sales:                 data.Totals.Sales,
		EstimatedRevenue:      revenue,
		BusinessDays:          data.BusinessDays.BusinessDays,
		RevenuePerBusinessDay: perDay,
	}, nil
}

// Revenue calcula faturamento e faturamento por dia útil com duas casas decimais.
// Sem dias úteis, o valor por dia é zero.
func Revenue(ticketMedio float64, sales, businessDays int) (float64, float64) {
	total := decimal.NewFromFloat(ticketMedio).Mul(decimal.NewFromInt(int64(sales))).Round(2)

	perDay := decimal.Zero
	if businessDays > 0 {
		perDay = total.Div(decimal.NewFromInt(int64(businessDays))).Round(2)
	}

	totalValue, _ := total.Float64()
	perDayValue, _ := perDay.Float64()
	return totalValue, perDayValue
}
