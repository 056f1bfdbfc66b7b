package domain

import "time"

type Finance struct {
	ID          int       `json:"id"`
	TicketMedio float64   `json:"ticket_medio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type RevenueEstimate struct {
	Period                Period  `json:"period"`
	TicketMedio           float64 `json:"ticket_medio"`
	Sales                 int     `json:"vendas"`
	EstimatedRevenue      float64 `json:"faturamento_estimado"`
	BusinessDays          int     `json:"business_days"`
	RevenuePerBusinessDay float64 `json:"faturamento_por_dia_util"`
}
