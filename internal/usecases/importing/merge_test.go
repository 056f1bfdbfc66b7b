package importing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

func leadsDraft(sellerID, channelID string, leads int) domain.ReleaseDraft {
	return domain.ReleaseDraft{
		SellerID:    sellerID,
		ChannelID:   channelID,
		DateRelease: referenceDate,
		Leads:       domain.Count(leads),
		Sales:       domain.Count(0),
		Bats:        domain.Count(0),
	}
}

func salesDraft(sellerID, channelID string, sales, bats int) domain.ReleaseDraft {
	return domain.ReleaseDraft{
		SellerID:    sellerID,
		ChannelID:   channelID,
		DateRelease: referenceDate,
		Sales:       domain.Count(sales),
		Bats:        domain.Count(bats),
	}
}

func TestMergeLeadsAndSales(t *testing.T) {
	t.Run("vendas sobrescrevem vendas e bats do mesmo par", func(t *testing.T) {
		merged := MergeLeadsAndSales(
			[]domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5)},
			[]domain.ReleaseDraft{salesDraft("s-ana", "c-fb", 2, 1)},
		)

		require.Len(t, merged, 1)
		assert.Equal(t, 5, *merged[0].Leads)
		assert.Equal(t, 2, *merged[0].Sales)
		assert.Equal(t, 1, *merged[0].Bats)
	})

	t.Run("venda sem leads cria lançamento com leads zero", func(t *testing.T) {
		merged := MergeLeadsAndSales(
			[]domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5)},
			[]domain.ReleaseDraft{
				salesDraft("s-ana", "c-fb", 2, 1),
				salesDraft("s-ana", "c-google", 3, 0),
			},
		)

		require.Len(t, merged, 2)
		assert.Equal(t, "c-fb", merged[0].ChannelID)
		assert.Equal(t, "c-google", merged[1].ChannelID)
		assert.Equal(t, 0, *merged[1].Leads)
		assert.Equal(t, 3, *merged[1].Sales)
		assert.Equal(t, 0, *merged[1].Bats)
	})

	t.Run("não altera as entradas", func(t *testing.T) {
		leads := []domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5)}
		MergeLeadsAndSales(leads, []domain.ReleaseDraft{salesDraft("s-ana", "c-fb", 9, 9)})

		assert.Equal(t, 0, *leads[0].Sales)
	})

	t.Run("sem vendas devolve os leads", func(t *testing.T) {
		merged := MergeLeadsAndSales([]domain.ReleaseDraft{leadsDraft("s-ana", "c-fb", 5)}, nil)
		require.Len(t, merged, 1)
		assert.Equal(t, 5, *merged[0].Leads)
	})
}
