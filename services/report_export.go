package services

import (
	"asistencia_go/config"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// PrintableHeader carries the free-text metadata printed on the document.
// These are caller-supplied opaque strings, never validated against the store.
type PrintableHeader struct {
	Profesora string
	DNIProf   string
	Curso     string
}

// ExportPrintableReport renders the official attendance report as an .xlsx
// workbook: title, metadata block, bordered table, signature line. Every
// invocation writes a fresh uniquely-named file, so concurrent exports never
// clobber each other.
func ExportPrintableReport(data *PrintableData, header PrintableHeader) (path string, filename string, err error) {
	if err := os.MkdirAll(config.AppConfig.ReportDir, 0755); err != nil {
		return "", "", fmt.Errorf("failed to create report directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create title style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9D9D9"}},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to create cell style: %w", err)
	}

	// Title block
	f.SetCellValue(sheet, "A1", "REPORTE OFICIAL DE ASISTENCIA")
	f.MergeCell(sheet, "A1", "D1")
	f.SetCellStyle(sheet, "A1", "D1", titleStyle)

	// Metadata block
	meta := [][2]string{
		{"Profesora:", header.Profesora},
		{"DNI:", header.DNIProf},
		{"Curso:", header.Curso},
		{"Grado:", data.GradoNombre},
		{"Sección:", data.SeccionNombre},
		{"Periodo:", fmt.Sprintf("%s al %s", data.Inicio.Format("2006-01-02"), data.Fin.Format("2006-01-02"))},
		{"Total alumnos registrados:", fmt.Sprintf("%d", data.Total)},
	}
	row := 3
	for _, kv := range meta {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), kv[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), kv[1])
		row++
	}
	row++

	// Table header
	tableTop := row
	headers := []string{"Fecha", "Alumno", "DNI", "Estado"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableTop)
		f.SetCellValue(sheet, cell, h)
	}
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", tableTop), fmt.Sprintf("D%d", tableTop), headerStyle)

	// Table body in the query's natural order
	for i, r := range data.Records {
		rowNum := tableTop + 1 + i
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), r.Fecha.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), r.Alumno)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), r.DNI)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), r.Estado)
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("D%d", rowNum), cellStyle)
	}

	// Signature line
	signRow := tableTop + len(data.Records) + 4
	f.SetCellValue(sheet, fmt.Sprintf("A%d", signRow), "Firma: _________________________________")

	f.SetColWidth(sheet, "A", "A", 14)
	f.SetColWidth(sheet, "B", "B", 32)
	f.SetColWidth(sheet, "C", "C", 14)
	f.SetColWidth(sheet, "D", "D", 10)

	filename = fmt.Sprintf("reporte_asistencia_%s.xlsx", uuid.New().String())
	path = filepath.Join(config.AppConfig.ReportDir, filename)

	if err := f.SaveAs(path); err != nil {
		return "", "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, filename, nil
}
