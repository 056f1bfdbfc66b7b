package importing

import "github.com/vfg2006/leads-dashboard-api/internal/domain"

// MergeLeadsAndSales junta os lançamentos de leads e de vendas do mesmo dia.
// Vendas de um par já presente nos leads sobrescrevem vendas/BATS desse lançamento;
// vendas sem leads viram um novo lançamento com leads = 0. A ordem de saída é a dos
// leads seguida dos lançamentos criados a partir das vendas.
func MergeLeadsAndSales(leads, sales []domain.ReleaseDraft) []domain.ReleaseDraft {
	merged := make([]domain.ReleaseDraft, 0, len(leads)+len(sales))
	index := make(map[string]int, len(leads))

	for _, record := range leads {
		key := record.NaturalKey()
		if i, ok := index[key]; ok {
			if record.Leads != nil {
				merged[i].Leads = domain.Count(*record.Leads)
			}
			continue
		}
		index[key] = len(merged)
		merged = append(merged, copyDraft(record))
	}

	for _, record := range sales {
		key := record.NaturalKey()
		if i, ok := index[key]; ok {
			merged[i].Sales = domain.Count(valueOrZero(record.Sales))
			merged[i].Bats = domain.Count(valueOrZero(record.Bats))
			continue
		}

		index[key] = len(merged)
		merged = append(merged, domain.ReleaseDraft{
			SellerID:    record.SellerID,
			ChannelID:   record.ChannelID,
			DateRelease: record.DateRelease,
			Leads:       domain.Count(0),
			Sales:       domain.Count(valueOrZero(record.Sales)),
			Bats:        domain.Count(valueOrZero(record.Bats)),
		})
	}

	return merged
}

func copyDraft(d domain.ReleaseDraft) domain.ReleaseDraft {
	out := d
	if d.Leads != nil {
		out.Leads = domain.Count(*d.Leads)
	}
	if d.Sales != nil {
		out.Sales = domain.Count(*d.Sales)
	}
	if d.Bats != nil {
		out.Bats = domain.Count(*d.Bats)
	}
	return out
}

func valueOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}
