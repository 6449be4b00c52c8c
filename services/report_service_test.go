package services

import (
	"errors"
	"testing"
)

func TestBuildScreenReportSemana(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	rs := NewReportService()

	report, err := rs.BuildScreenReport(ReportFilters{Fecha: "2024-03-06", Tipo: PeriodSemana})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(report.Records) != 4 {
		t.Fatalf("got %d records, want 4", len(report.Records))
	}
	if !report.Inicio.Equal(date(2024, 3, 4)) || !report.Fin.Equal(date(2024, 3, 10)) {
		t.Errorf("period = [%v, %v], want [2024-03-04, 2024-03-10]", report.Inicio, report.Fin)
	}

	// Screen records come most recent first
	if got := report.Records[0].Fecha; !sameDay(got, date(2024, 3, 6)) {
		t.Errorf("first record fecha = %v, want 2024-03-06", got)
	}
	if got := report.Records[len(report.Records)-1].Fecha; !sameDay(got, date(2024, 3, 4)) {
		t.Errorf("last record fecha = %v, want 2024-03-04", got)
	}

	if len(report.Grados) != 1 {
		t.Errorf("got %d grados, want 1", len(report.Grados))
	}
	// No grade selected, so no section options are offered
	if len(report.Secciones) != 0 {
		t.Errorf("got %d secciones without a grade filter, want 0", len(report.Secciones))
	}
}

func TestBuildScreenReportDia(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	rs := NewReportService()

	report, err := rs.BuildScreenReport(ReportFilters{Fecha: "2024-03-06", Tipo: PeriodDia})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(report.Records))
	}
	for _, r := range report.Records {
		if !sameDay(r.Fecha, date(2024, 3, 6)) {
			t.Errorf("record fecha = %v, want 2024-03-06", r.Fecha)
		}
	}
}

func TestBuildScreenReportSectionFilter(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	rs := NewReportService()

	report, err := rs.BuildScreenReport(ReportFilters{
		Fecha:     "2024-03-06",
		Tipo:      PeriodSemana,
		GradeID:   f.Grado.ID,
		SectionID: f.SeccionA.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Seccion A holds Ana (two marks) and Rosa (one mark)
	if len(report.Records) != 3 {
		t.Fatalf("got %d records, want 3", len(report.Records))
	}
	for _, r := range report.Records {
		if r.DNI == f.Luis.DNI {
			t.Errorf("record for %s leaked through the section filter", r.Alumno)
		}
	}

	// With a grade selected the section options appear
	if len(report.Secciones) != 2 {
		t.Errorf("got %d secciones, want 2", len(report.Secciones))
	}
}

func TestBuildScreenReportUnknownSectionMatchesAll(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	rs := NewReportService()

	// A section id with no students resolves to an empty student set, which
	// leaves the result unfiltered
	report, err := rs.BuildScreenReport(ReportFilters{
		Fecha:     "2024-03-06",
		Tipo:      PeriodSemana,
		SectionID: 9999,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Records) != 4 {
		t.Errorf("got %d records, want all 4", len(report.Records))
	}
}

func TestBuildScreenReportDNIFilter(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	rs := NewReportService()

	report, err := rs.BuildScreenReport(ReportFilters{
		Fecha: "2024-03-06",
		Tipo:  PeriodSemana,
		DNI:   "2222",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Records) != 1 {
		t.Fatalf("got %d records, want 1", len(report.Records))
	}
	if report.Records[0].DNI != f.Rosa.DNI {
		t.Errorf("got DNI %s, want %s", report.Records[0].DNI, f.Rosa.DNI)
	}
}

func TestBuildScreenReportInvalidFecha(t *testing.T) {
	setupTestStore(t)

	rs := NewReportService()
	_, err := rs.BuildScreenReport(ReportFilters{Fecha: "junk"})
	if err == nil {
		t.Fatal("expected error for malformed fecha")
	}
	// Callers distinguish bad input from storage failures through the sentinel
	if !errors.Is(err, ErrInvalidFecha) {
		t.Errorf("error %v does not wrap ErrInvalidFecha", err)
	}
}

func TestBuildScreenReportIdempotent(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	rs := NewReportService()
	filters := ReportFilters{Fecha: "2024-03-06", Tipo: PeriodSemana}

	// Three marks share fecha 2024-03-06, so tie order matters here
	first, err := rs.BuildScreenReport(filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rs.BuildScreenReport(filters)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(first.Records) != len(second.Records) {
		t.Fatalf("record counts differ: %d vs %d", len(first.Records), len(second.Records))
	}
	for i := range first.Records {
		a, b := first.Records[i], second.Records[i]
		if !a.Fecha.Equal(b.Fecha) || a.Alumno != b.Alumno || a.DNI != b.DNI || a.Estado != b.Estado {
			t.Errorf("records[%d] differ between runs: %+v vs %+v", i, a, b)
		}
	}
}

func TestCollectPrintable(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	rs := NewReportService()

	data, err := rs.CollectPrintable(ReportFilters{
		Fecha:     "2024-03-06",
		Tipo:      PeriodSemana,
		GradeID:   f.Grado.ID,
		SectionID: f.SeccionA.ID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if data.Total != 3 {
		t.Errorf("total = %d, want 3", data.Total)
	}
	if data.GradoNombre != "5to Grado" {
		t.Errorf("grado nombre = %q, want 5to Grado", data.GradoNombre)
	}
	if data.SeccionNombre != "A" {
		t.Errorf("seccion nombre = %q, want A", data.SeccionNombre)
	}
}

func TestCollectPrintableUnknownGrade(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	rs := NewReportService()

	data, err := rs.CollectPrintable(ReportFilters{
		Fecha:   "2024-03-06",
		Tipo:    PeriodSemana,
		GradeID: 9999,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.GradoNombre != "" {
		t.Errorf("grado nombre = %q, want empty for unknown id", data.GradoNombre)
	}
}
