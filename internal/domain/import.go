package domain

import "time"

type ImportReport struct {
	ReferenceDate      time.Time `json:"reference_date"`
	Created            int       `json:"created"`
	Updated            int       `json:"updated"`
	Skipped            int       `json:"skipped"`
	DateParseMisses    int       `json:"date_parse_misses"`
	UnresolvedSellers  []string  `json:"unresolved_sellers"`
	UnresolvedChannels []string  `json:"unresolved_channels"`
	Warnings           []string  `json:"warnings"`
}

// Imported é o total de lançamentos gravados (criados + atualizados).
func (r *ImportReport) Imported() int {
	return r.Created + r.Updated
}

type SalesImport struct {
	Records                 []ReleaseDraft          `json:"-"`
	Counts                  []SalesCount            `json:"sales"`
	SalesBySellerAndChannel SalesBySellerAndChannel `json:"sales_by_seller_and_channel"`
}
