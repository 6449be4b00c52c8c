package services

import (
	"os"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportPrintableReport(t *testing.T) {
	setupTestStore(t)

	data := &PrintableData{
		Records: []ReportRecord{
			{Fecha: date(2024, 3, 4), Alumno: "Ana Quispe", DNI: "11111111", Estado: "P"},
			{Fecha: date(2024, 3, 6), Alumno: "Ana Quispe", DNI: "11111111", Estado: "T"},
		},
		Inicio:        date(2024, 3, 4),
		Fin:           date(2024, 3, 10),
		GradoNombre:   "5to Grado",
		SeccionNombre: "A",
		Total:         2,
	}
	header := PrintableHeader{Profesora: "María Flores", DNIProf: "44556677", Curso: "Comunicación"}

	path, filename, err := ExportPrintableReport(data, header)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(filename, "reporte_asistencia_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("unexpected filename %q", filename)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("report file missing or empty: %v", err)
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer wb.Close()

	title, err := wb.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("failed to read title cell: %v", err)
	}
	if title != "REPORTE OFICIAL DE ASISTENCIA" {
		t.Errorf("title = %q", title)
	}

	rows, err := wb.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("failed to read rows: %v", err)
	}
	var sawHeader, sawAna bool
	for _, row := range rows {
		if len(row) > 0 && row[0] == "Fecha" {
			sawHeader = true
		}
		if len(row) > 1 && row[1] == "Ana Quispe" {
			sawAna = true
		}
	}
	if !sawHeader {
		t.Error("table header row not found")
	}
	if !sawAna {
		t.Error("record row not found")
	}
}

func TestExportPrintableReportUniqueFilenames(t *testing.T) {
	setupTestStore(t)

	data := &PrintableData{Inicio: date(2024, 3, 4), Fin: date(2024, 3, 4)}

	_, first, err := ExportPrintableReport(data, PrintableHeader{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, second, err := ExportPrintableReport(data, PrintableHeader{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Errorf("two exports produced the same filename %q", first)
	}
}
