// Package datekey converte as datas que chegam das planilhas (time.Time, DD/MM/AAAA,
// AAAA-MM-DD ou número serial do Excel) em uma chave AAAA-MM-DD no dia civil local.
package datekey

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/vfg2006/leads-dashboard-api/pkg/log"
)

const Layout = "2006-01-02"

// maxSerial corresponde a 31/12/9999 no sistema de datas 1900.
const maxSerial = 2958465

var (
	ErrEmpty       = errors.New("data vazia")
	ErrUnsupported = errors.New("formato de data não suportado")
)

var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// Normalize retorna a chave AAAA-MM-DD para o valor informado.
func Normalize(input any) (string, error) {
	switch v := input.(type) {
	case nil:
		return "", ErrEmpty
	case time.Time:
		if v.IsZero() {
			return "", ErrEmpty
		}
		return v.Format(Layout), nil
	case *time.Time:
		if v == nil {
			return "", ErrEmpty
		}
		return Normalize(*v)
	case float64:
		return fromSerial(v)
	case float32:
		return fromSerial(float64(v))
	case int:
		return fromSerial(float64(v))
	case int64:
		return fromSerial(float64(v))
	case int32:
		return fromSerial(float64(v))
	case string:
		return fromString(v)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupported, input)
	}
}

// ToDateKey é a versão tolerante de Normalize: em caso de falha registra um aviso
// e retorna "", para que uma célula ruim não interrompa a importação da planilha.
func ToDateKey(input any) string {
	key, err := Normalize(input)
	if err != nil {
		if !errors.Is(err, ErrEmpty) {
			log.L.WithField("valor", input).Warnf("Não foi possível interpretar a data: %v", err)
		}
		return ""
	}
	return key
}

// SameCalendarDay compara duas datas pelo dia civil. Datas inválidas nunca são iguais.
func SameCalendarDay(a, b any) bool {
	keyA := ToDateKey(a)
	if keyA == "" {
		return false
	}
	return keyA == ToDateKey(b)
}

// ParseKey converte uma chave AAAA-MM-DD em time.Time ao meio-dia no fuso informado.
func ParseKey(key string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}

	parsed, err := time.ParseInLocation(Layout, key, loc)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 12, 0, 0, 0, loc), nil
}

// Format devolve a data no formato DD/MM/AAAA usado nas telas.
func Format(t time.Time) string {
	return t.Format("02/01/2006")
}

func fromSerial(serial float64) (string, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) || serial < 1 || serial > maxSerial {
		return "", fmt.Errorf("%w: serial %v fora do intervalo", ErrUnsupported, serial)
	}

	days := int(math.Floor(serial))
	// O Excel trata 1900 como bissexto: o serial 60 é o inexistente 29/02/1900.
	// Antes dele a contagem começa em 31/12/1899 (serial 1 = 01/01/1900).
	switch {
	case days < 60:
		days++
	case days == 60:
		return "1900-02-28", nil
	}
	return excelEpoch.AddDate(0, 0, days).Format(Layout), nil
}

func fromString(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", ErrEmpty
	}

	// descarta horário ("15/03/2024 14:30" ou "2024-03-15T14:30:00")
	if idx := strings.IndexAny(value, " T"); idx > 0 {
		value = value[:idx]
	}

	if strings.Contains(value, "/") {
		return fromBrazilian(value)
	}

	if len(value) == len(Layout) && strings.Count(value, "-") == 2 {
		parsed, err := time.Parse(Layout, value)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
		}
		return parsed.Format(Layout), nil
	}

	if serial, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil {
		return fromSerial(serial)
	}

	return "", fmt.Errorf("%w: %q", ErrUnsupported, raw)
}

func fromBrazilian(value string) (string, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, value)
	}

	day, errDay := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errMonth := strconv.Atoi(strings.TrimSpace(parts[1]))
	yearText := strings.TrimSpace(parts[2])
	if len(yearText) == 2 {
		yearText = "20" + yearText
	}
	year, errYear := strconv.Atoi(yearText)

	if errDay != nil || errMonth != nil || errYear != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupported, value)
	}

	date := time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return "", fmt.Errorf("%w: data inexistente %q", ErrUnsupported, value)
	}

	return date.Format(Layout), nil
}
