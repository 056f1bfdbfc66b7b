package importing

import (
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/leads-dashboard-api/internal/domain"
)

// cellText converte o valor bruto de uma célula em texto sem espaços nas pontas.
func cellText(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case time.Time:
		return value.Format("02/01/2006")
	default:
		return ""
	}
}

// firstValue retorna o primeiro valor não vazio entre as colunas, na ordem dada.
func firstValue(row domain.Row, columns ...string) any {
	for _, column := range columns {
		value, ok := row[column]
		if !ok || value == nil {
			continue
		}
		if s, isString := value.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return value
	}
	return nil
}

func missingColumns(row domain.Row, required ...string) []string {
	var missing []string
	for _, column := range required {
		if _, ok := row[column]; !ok {
			missing = append(missing, column)
		}
	}
	return missing
}
