package domain

import "time"

type SellerRankingResponse struct {
	Ranking    []SellerRankingItem `json:"ranking"`
	LastUpdate time.Time           `json:"last_update"`
}

type SellerRankingItem struct {
	ID             int       `json:"id"`
	SellerID       string    `json:"seller_id"`
	Month          string    `json:"month"` // Formato mm-yyyy (ex: 01-2024)
	SellerName     string    `json:"seller_name"`
	Leads          int       `json:"leads"`
	Sales          int       `json:"vendas"`
	Bats           int       `json:"bats"`
	ConversionRate float64   `json:"taxa_conversao"`
	Position       int       `json:"position"`
	PositionChange int       `json:"position_change"` // positivo = subiu, negativo = desceu, 0 = manteve
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
