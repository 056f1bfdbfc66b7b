package domain

import "time"

type Metrics struct {
	Leads          int     `json:"leads"`
	Sales          int     `json:"vendas"`
	Bats           int     `json:"bats"`
	ConversionRate float64 `json:"taxa_conversao"`
	BatsRate       float64 `json:"taxa_bats"`
}

type ChannelSummary struct {
	ChannelID   string `json:"channel_id"`
	ChannelName string `json:"channel_name"`
	Metrics
	Rank  int    `json:"rank"`
	Color string `json:"color,omitempty"`
}

type SellerSummary struct {
	SellerID   string `json:"seller_id"`
	SellerName string `json:"seller_name"`
	Metrics
	Rank     int              `json:"rank"`
	Color    string           `json:"color,omitempty"`
	Channels []ChannelSummary `json:"channels"`
}

type DaySeller struct {
	SellerID   string `json:"seller_id"`
	SellerName string `json:"seller_name"`
	Metrics
}

type DayEntry struct {
	DateKey       string `json:"date_key"`
	DateFormatted string `json:"date_formatted"`
	Metrics
	Sellers []DaySeller `json:"sellers"`
}

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type BusinessDayAverages struct {
	BusinessDays int     `json:"business_days"`
	LeadsPerDay  float64 `json:"leads_per_day"`
	SalesPerDay  float64 `json:"vendas_per_day"`
	BatsPerDay   float64 `json:"bats_per_day"`
}

type DashboardData struct {
	Period       Period              `json:"period"`
	Totals       Metrics             `json:"totals"`
	Sellers      []SellerSummary     `json:"seller_data"`
	Channels     []ChannelSummary    `json:"channel_data"`
	Timeline     []DayEntry          `json:"timeline,omitempty"`
	BusinessDays BusinessDayAverages `json:"business_days"`
}

type Ranking struct {
	Period   Period           `json:"period"`
	Sellers  []SellerSummary  `json:"sellers"`
	Channels []ChannelSummary `json:"channels"`
}
