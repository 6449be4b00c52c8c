package services

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"fmt"
	"time"
)

// ReportFilters are the query parameters accepted by the reporting endpoints.
// GradeID alone never narrows the result set; it only selects which sections
// are offered back to the caller. SectionID narrows to that section's
// students. DNI is a substring match against the student identifier.
type ReportFilters struct {
	Fecha     string `json:"fecha"`
	Tipo      string `json:"tipo"`
	GradeID   uint   `json:"grado"`
	SectionID uint   `json:"seccion"`
	DNI       string `json:"dni"`
}

// ReportRecord is one row of the attendance report.
type ReportRecord struct {
	Fecha  time.Time `json:"fecha"`
	Alumno string    `json:"alumno"`
	DNI    string    `json:"dni"`
	Estado string    `json:"estado"`
}

// ScreenReport is the structured result for on-screen display.
type ScreenReport struct {
	Records   []ReportRecord   `json:"registros"`
	Inicio    time.Time        `json:"inicio"`
	Fin       time.Time        `json:"fin"`
	Grados    []models.Grade   `json:"grados"`
	Secciones []models.Section `json:"secciones"`
	Filters   ReportFilters    `json:"filtros"`
}

// PrintableData feeds the downloadable report document.
type PrintableData struct {
	Records       []ReportRecord
	Inicio        time.Time
	Fin           time.Time
	GradoNombre   string
	SeccionNombre string
	Total         int
}

type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// BuildScreenReport resolves the period, applies the filters and returns the
// records most recent first, together with the grade/section options the
// caller needs to render its filter controls.
func (rs *ReportService) BuildScreenReport(f ReportFilters) (*ScreenReport, error) {
	base, err := ParseFecha(f.Fecha)
	if err != nil {
		return nil, err
	}
	inicio, fin := ResolvePeriod(base, f.Tipo)

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var grados []models.Grade
	if err := database.DB.Find(&grados).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch grados: %w", err)
	}

	secciones := []models.Section{}
	if f.GradeID != 0 {
		if err := database.DB.Where("grade_id = ?", f.GradeID).Find(&secciones).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch secciones: %w", err)
		}
	}

	records, err := rs.queryRecords(inicio, fin, f.SectionID, f.DNI, true)
	if err != nil {
		return nil, err
	}

	return &ScreenReport{
		Records:   records,
		Inicio:    inicio,
		Fin:       fin,
		Grados:    grados,
		Secciones: secciones,
		Filters:   f,
	}, nil
}

// CollectPrintable gathers the rows for the downloadable document. Unlike the
// screen report the records keep the query's natural order.
func (rs *ReportService) CollectPrintable(f ReportFilters) (*PrintableData, error) {
	base, err := ParseFecha(f.Fecha)
	if err != nil {
		return nil, err
	}
	inicio, fin := ResolvePeriod(base, f.Tipo)

	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	// Display names; a missing or absent id renders as an empty string
	var gradoNombre, seccionNombre string
	if f.GradeID != 0 {
		var grado models.Grade
		if err := database.DB.First(&grado, f.GradeID).Error; err == nil {
			gradoNombre = grado.Nombre
		}
	}
	if f.SectionID != 0 {
		var seccion models.Section
		if err := database.DB.First(&seccion, f.SectionID).Error; err == nil {
			seccionNombre = seccion.Nombre
		}
	}

	records, err := rs.queryRecords(inicio, fin, f.SectionID, f.DNI, false)
	if err != nil {
		return nil, err
	}

	return &PrintableData{
		Records:       records,
		Inicio:        inicio,
		Fin:           fin,
		GradoNombre:   gradoNombre,
		SeccionNombre: seccionNombre,
		Total:         len(records),
	}, nil
}

// queryRecords fetches marks with fecha in [inicio, fin], intersected with
// the section's student set and the DNI substring when given.
func (rs *ReportService) queryRecords(inicio, fin time.Time, sectionID uint, dni string, descending bool) ([]ReportRecord, error) {
	// Section resolves to a fixed student-id set; an unknown or empty
	// section leaves the result unfiltered, same as no section at all.
	var studentIDs []uint
	if sectionID != 0 {
		if err := database.DB.Model(&models.Student{}).
			Where("section_id = ?", sectionID).
			Pluck("id", &studentIDs).Error; err != nil {
			return nil, fmt.Errorf("failed to resolve section students: %w", err)
		}
	}

	query := database.DB.Model(&models.AttendanceMark{}).
		Joins("JOIN students ON students.id = attendance_marks.student_id AND students.deleted_at IS NULL").
		Where("attendance_marks.fecha BETWEEN ? AND ?", inicio, fin).
		Select("attendance_marks.fecha AS fecha, students.nombre AS alumno, students.dni AS dni, attendance_marks.estado AS estado")

	if len(studentIDs) > 0 {
		query = query.Where("attendance_marks.student_id IN ?", studentIDs)
	}

	if dni != "" {
		query = query.Where("students.dni LIKE ?", "%"+dni+"%")
	}

	if descending {
		// Ties on fecha are broken by insertion id so identical queries
		// always return the same sequence
		query = query.Order("attendance_marks.fecha DESC").Order("attendance_marks.id")
	}

	var records []ReportRecord
	if err := query.Scan(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch attendance records: %w", err)
	}
	if records == nil {
		records = []ReportRecord{}
	}

	return records, nil
}
