package services

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidFecha signals a malformed reference date. Callers treat it as a
// validation failure, unlike storage errors.
var ErrInvalidFecha = errors.New("invalid fecha")

// Period kinds accepted by the reporting endpoints.
const (
	PeriodDia    = "dia"
	PeriodSemana = "semana"
	PeriodMes    = "mes"
	PeriodAnio   = "anio"
)

// ResolvePeriod maps a reference date and a period kind to a closed interval
// [inicio, fin], both inclusive.
//
//	dia:    inicio = fin = base
//	semana: ISO week containing base, Monday through Sunday
//	mes:    day 1 of base's month through base itself (month to date,
//	        deliberately not the calendar month end)
//	anio:   Jan 1 of base's year through base
//
// Any unrecognized kind resolves with anio semantics; this fallback is
// documented behavior, not an error.
func ResolvePeriod(base time.Time, tipo string) (inicio, fin time.Time) {
	base = truncateToDate(base)

	switch tipo {
	case PeriodDia:
		return base, base
	case PeriodSemana:
		// Monday = 0 offset
		offset := (int(base.Weekday()) + 6) % 7
		inicio = base.AddDate(0, 0, -offset)
		fin = inicio.AddDate(0, 0, 6)
		return inicio, fin
	case PeriodMes:
		inicio = time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location())
		return inicio, base
	default:
		inicio = time.Date(base.Year(), time.January, 1, 0, 0, 0, 0, base.Location())
		return inicio, base
	}
}

// ParseFecha parses an ISO YYYY-MM-DD date string. An empty string resolves
// to today.
func ParseFecha(s string) (time.Time, error) {
	if s == "" {
		return truncateToDate(time.Now().UTC()), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidFecha, s)
	}
	return t, nil
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
