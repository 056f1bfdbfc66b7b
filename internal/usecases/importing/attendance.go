package importing

import (
	"sort"
	"strings"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

const (
	ColumnAttendant = "Atendente"
	ColumnName      = "Nome"
	ColumnTags      = "Tags"
)

// ProcessAttendanceData conta, por atendente, quantos atendimentos chegaram por canal.
// Linhas repetidas (mesmo Nome) contam uma vez; linhas sem Nome nunca são descartadas.
func ProcessAttendanceData(rows []domain.Row) ([]domain.AttendanceCount, error) {
	return defaultCatalog.ProcessAttendanceData(rows)
}

func (c *ChannelCatalog) ProcessAttendanceData(rows []domain.Row) ([]domain.AttendanceCount, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySpreadsheet
	}

	if missing := missingColumns(rows[0], ColumnAttendant, ColumnName, ColumnTags); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	unique := removeDuplicatesByName(rows)
	log.L.Debugf("Atendimentos: %d linhas, %d após remover duplicados", len(rows), len(unique))

	keys := c.Keys()
	counts := make(map[string]map[string]int)

	for _, row := range unique {
		attendant := cellText(row[ColumnAttendant])
		if attendant == "" {
			log.L.Warn("Linha de atendimento sem atendente ignorada")
			continue
		}

		channelCounts, ok := counts[attendant]
		if !ok {
			channelCounts = make(map[string]int, len(keys))
			for _, key := range keys {
				channelCounts[key] = 0
			}
			counts[attendant] = channelCounts
		}

		for _, tag := range strings.Split(cellText(row[ColumnTags]), ",") {
			if key := c.Classify(tag); key != "" {
				channelCounts[key]++
			}
		}
	}

	attendants := make([]string, 0, len(counts))
	for attendant := range counts {
		attendants = append(attendants, attendant)
	}
	sort.Strings(attendants)

	result := make([]domain.AttendanceCount, 0, len(attendants))
	for _, attendant := range attendants {
		result = append(result, domain.AttendanceCount{
			AttendantName: attendant,
			ChannelCounts: counts[attendant],
		})
	}

	return result, nil
}

func removeDuplicatesByName(rows []domain.Row) []domain.Row {
	seen := make(map[string]struct{}, len(rows))
	unique := make([]domain.Row, 0, len(rows))

	for _, row := range rows {
		name := normalize(cellText(row[ColumnName]))
		if name == "" {
			unique = append(unique, row)
			continue
		}

		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, row)
	}

	return unique
}
