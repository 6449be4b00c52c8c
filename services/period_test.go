package services

import (
	"errors"
	"testing"
	"time"
)

func TestResolvePeriod(t *testing.T) {
	// 2024-03-06 is a Wednesday
	base := date(2024, 3, 6)

	tests := []struct {
		name       string
		base       time.Time
		tipo       string
		wantInicio time.Time
		wantFin    time.Time
	}{
		{"dia", base, PeriodDia, date(2024, 3, 6), date(2024, 3, 6)},
		{"semana from midweek", base, PeriodSemana, date(2024, 3, 4), date(2024, 3, 10)},
		{"semana from monday", date(2024, 3, 4), PeriodSemana, date(2024, 3, 4), date(2024, 3, 10)},
		{"semana from sunday", date(2024, 3, 10), PeriodSemana, date(2024, 3, 4), date(2024, 3, 10)},
		{"mes is month to date", base, PeriodMes, date(2024, 3, 1), date(2024, 3, 6)},
		{"anio", base, PeriodAnio, date(2024, 1, 1), date(2024, 3, 6)},
		{"unknown kind falls back to anio", base, "quincena", date(2024, 1, 1), date(2024, 3, 6)},
		{"empty kind falls back to anio", base, "", date(2024, 1, 1), date(2024, 3, 6)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inicio, fin := ResolvePeriod(tt.base, tt.tipo)
			if !inicio.Equal(tt.wantInicio) {
				t.Errorf("inicio = %v, want %v", inicio, tt.wantInicio)
			}
			if !fin.Equal(tt.wantFin) {
				t.Errorf("fin = %v, want %v", fin, tt.wantFin)
			}
		})
	}
}

func TestResolvePeriodYearBoundary(t *testing.T) {
	// The first day of the year is its own year-to-date interval
	inicio, fin := ResolvePeriod(date(2024, 1, 1), PeriodAnio)
	if !inicio.Equal(date(2024, 1, 1)) || !fin.Equal(date(2024, 1, 1)) {
		t.Errorf("got [%v, %v], want the single day", inicio, fin)
	}

	// A week can straddle the year boundary
	inicio, fin = ResolvePeriod(date(2024, 1, 3), PeriodSemana)
	if !inicio.Equal(date(2024, 1, 1)) || !fin.Equal(date(2024, 1, 7)) {
		t.Errorf("got [%v, %v], want [2024-01-01, 2024-01-07]", inicio, fin)
	}
}

func TestParseFecha(t *testing.T) {
	got, err := ParseFecha("2024-03-06")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(date(2024, 3, 6)) {
		t.Errorf("got %v, want 2024-03-06", got)
	}

	_, err = ParseFecha("06/03/2024")
	if err == nil {
		t.Fatal("expected error for non ISO date")
	}
	if !errors.Is(err, ErrInvalidFecha) {
		t.Errorf("error %v does not wrap ErrInvalidFecha", err)
	}

	today, err := ParseFecha("")
	if err != nil {
		t.Fatalf("unexpected error for empty fecha: %v", err)
	}
	if today.Hour() != 0 || today.Minute() != 0 || today.Second() != 0 {
		t.Errorf("empty fecha should resolve to a bare date, got %v", today)
	}
}
