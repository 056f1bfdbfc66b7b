package importing

import (
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

// PrepareLeadsRecords liga atendentes e chaves de canal às entidades cadastradas e gera
// um lançamento por par (vendedor, canal) com leads > 0. Vendas e BATS começam zerados.
// Atendentes diferentes que resolvem para o mesmo vendedor têm os leads somados.
func (c *ChannelCatalog) PrepareLeadsRecords(
	attendance []domain.AttendanceCount,
	referenceDate time.Time,
	sellers []domain.Seller,
	channels []domain.Channel,
) ([]domain.ReleaseDraft, *Diagnostics) {
	diag := newDiagnostics()
	date := utils.Noon(referenceDate)
	keys := c.Keys()

	var records []domain.ReleaseDraft
	index := make(map[string]int)
	for _, entry := range attendance {
		seller := ResolveSeller(entry.AttendantName, sellers)
		if seller == nil {
			log.L.WithField("atendente", entry.AttendantName).Warn("Vendedor não encontrado para o atendente, ignorando")
			diag.sellerMiss(entry.AttendantName)
			diag.Skipped++
			continue
		}

		for _, key := range keys {
			leads := entry.ChannelCounts[key]
			if leads <= 0 {
				continue
			}

			channel := c.ResolveChannel(key, channels)
			if channel == nil {
				log.L.WithField("canal", key).Warn("Canal não cadastrado, leads ignorados")
				diag.channelMiss(key)
				diag.Skipped++
				continue
			}

			draft := domain.ReleaseDraft{
				SellerID:    seller.ID,
				ChannelID:   channel.ID,
				DateRelease: date,
				Leads:       domain.Count(leads),
				Sales:       domain.Count(0),
				Bats:        domain.Count(0),
			}

			if i, ok := index[draft.NaturalKey()]; ok {
				*records[i].Leads += leads
				continue
			}
			index[draft.NaturalKey()] = len(records)
			records = append(records, draft)
		}
	}

	return records, diag
}
