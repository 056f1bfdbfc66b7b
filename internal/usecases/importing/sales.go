package importing

import (
	"strings"
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/datekey"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
	"github.com/vfg2006/leads-dashboard-api/pkg/utils"
)

const (
	ColumnOrderDate = "DATA PEDIDO"
	ColumnDate      = "DATA"
	ColumnChannel   = "CANAL"
	ColumnBrand     = "MARCA"
	ColumnBrandBat  = "MARCA BAT"

	batsMarker = "BATS"
)

// ProcessSalesData conta vendas e BATS por vendedor (aba) e canal na data de referência.
// Abas, canais e datas que não puderem ser interpretados são ignorados e registrados em Diagnostics.
func (c *ChannelCatalog) ProcessSalesData(
	workbook domain.Workbook,
	referenceDate time.Time,
	sellers []domain.Seller,
	channels []domain.Channel,
) (domain.SalesBySellerAndChannel, []domain.SalesCount, *Diagnostics) {
	diag := newDiagnostics()
	referenceKey := datekey.ToDateKey(referenceDate)

	bySeller := make(domain.SalesBySellerAndChannel)
	var order []*domain.SalesCount

	for _, sheet := range workbook {
		seller := ResolveSeller(sheet.Name, sellers)
		if seller == nil {
			log.L.WithField("aba", sheet.Name).Warn("Vendedor não encontrado para a aba, ignorando")
			diag.sellerMiss(sheet.Name)
			diag.warn("aba %q não corresponde a nenhum vendedor", sheet.Name)
			continue
		}

		for i, row := range sheet.Rows {
			rawDate := firstValue(row, ColumnOrderDate, ColumnDate)
			if rawDate == nil {
				diag.Skipped++
				continue
			}

			rowKey := datekey.ToDateKey(rawDate)
			if rowKey == "" {
				diag.DateParseMisses++
				diag.Skipped++
				diag.warn("aba %q linha %d: data %v inválida", sheet.Name, i+2, rawDate)
				continue
			}
			if rowKey != referenceKey {
				continue
			}

			label := cellText(row[ColumnChannel])
			if label == "" {
				diag.Skipped++
				continue
			}

			channel := c.ResolveChannel(label, channels)
			if channel == nil {
				log.L.WithFields(log.Fields{"aba": sheet.Name, "canal": label}).Warn("Canal não encontrado, venda ignorada")
				diag.channelMiss(label)
				diag.Skipped++
				continue
			}

			byChannel, ok := bySeller[seller.ID]
			if !ok {
				byChannel = make(map[string]*domain.SalesCount)
				bySeller[seller.ID] = byChannel
			}

			count, ok := byChannel[channel.ID]
			if !ok {
				count = &domain.SalesCount{
					SellerID:    seller.ID,
					SellerName:  seller.Name,
					ChannelID:   channel.ID,
					ChannelName: channel.Name,
				}
				byChannel[channel.ID] = count
				order = append(order, count)
			}

			count.Sales++
			if isBats(row) {
				count.Bats++
			}
		}
	}

	counts := make([]domain.SalesCount, 0, len(order))
	for _, count := range order {
		counts = append(counts, *count)
	}

	return bySeller, counts, diag
}

// ConvertSalesSheetToRecords transforma a planilha de vendas em lançamentos sem o campo leads,
// para que o upsert preserve os leads já gravados.
func (c *ChannelCatalog) ConvertSalesSheetToRecords(
	workbook domain.Workbook,
	referenceDate time.Time,
	sellers []domain.Seller,
	channels []domain.Channel,
) (*domain.SalesImport, *Diagnostics, error) {
	if len(workbook) == 0 {
		return nil, nil, ErrEmptySpreadsheet
	}

	bySeller, counts, diag := c.ProcessSalesData(workbook, referenceDate, sellers, channels)

	date := utils.Noon(referenceDate)
	records := make([]domain.ReleaseDraft, 0, len(counts))
	for _, count := range counts {
		records = append(records, domain.ReleaseDraft{
			SellerID:    count.SellerID,
			ChannelID:   count.ChannelID,
			DateRelease: date,
			Sales:       domain.Count(count.Sales),
			Bats:        domain.Count(count.Bats),
		})
	}

	return &domain.SalesImport{
		Records:                 records,
		Counts:                  counts,
		SalesBySellerAndChannel: bySeller,
	}, diag, nil
}

func isBats(row domain.Row) bool {
	brand := cellText(firstValue(row, ColumnBrand, ColumnBrandBat))
	return strings.Contains(strings.ToUpper(brand), batsMarker)
}
