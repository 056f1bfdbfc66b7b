// Package calendar implementa o calendário de dias úteis usado nas médias do dashboard.
//
// Sábado conta como dia útil (as lojas abrem aos sábados). Domingos e os feriados
// nacionais fixos não contam.
package calendar

import "time"

type monthDay struct {
	month time.Month
	day   int
}

var nationalHolidays = map[monthDay]string{
	{time.January, 1}:   "Confraternização Universal",
	{time.April, 21}:    "Tiradentes",
	{time.May, 1}:       "Dia do Trabalho",
	{time.September, 7}: "Independência do Brasil",
	{time.October, 12}:  "Nossa Senhora Aparecida",
	{time.November, 2}:  "Finados",
	{time.November, 15}: "Proclamação da República",
	{time.December, 25}: "Natal",
}

// IsHoliday informa se a data cai em um dos feriados nacionais fixos.
func IsHoliday(date time.Time) bool {
	_, ok := nationalHolidays[monthDay{date.Month(), date.Day()}]
	return ok
}

// HolidayName retorna o nome do feriado, ou "" quando a data não é feriado.
func HolidayName(date time.Time) string {
	return nationalHolidays[monthDay{date.Month(), date.Day()}]
}

// IsBusinessDay informa se a data é dia útil: qualquer dia exceto domingos e feriados nacionais.
func IsBusinessDay(date time.Time) bool {
	if date.Weekday() == time.Sunday {
		return false
	}
	return !IsHoliday(date)
}

// CountBusinessDays conta os dias úteis em [start, end], inclusive, ignorando o horário.
// Cada extremo vale pelo dia do calendário no seu próprio fuso.
// Retorna 0 quando start é posterior a end.
func CountBusinessDays(start, end time.Time) int {
	first := truncate(start)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, start.Location())

	count := 0
	for day := first; !day.After(last); day = day.AddDate(0, 0, 1) {
		if IsBusinessDay(day) {
			count++
		}
	}

	return count
}

// BusinessDayAverage divide total pelos dias úteis do período. Sem dias úteis, retorna 0.
func BusinessDayAverage(total float64, start, end time.Time) float64 {
	days := CountBusinessDays(start, end)
	if days == 0 {
		return 0
	}

	return total / float64(days)
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
