package utils

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD ao meio-dia no fuso informado. String vazia retorna nil.
func ParseDate(dateStr string, loc *time.Location) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if loc == nil {
		loc = time.Local
	}

	parsed, err := time.ParseInLocation(DateLayout, dateStr, loc)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q, esperado AAAA-MM-DD: %w", dateStr, err)
	}

	date := Noon(parsed)
	return &date, nil
}

// Noon normaliza t para 12:00 do mesmo dia civil, evitando que o fuso mude o dia.
func Noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// StartOfDay e EndOfDay delimitam o dia civil de t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
