package services

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/utils"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Roster is what the attendance-taking screen needs: the grade options,
// the section options for the chosen grade, and the students of the chosen
// section.
type Roster struct {
	Grados    []models.Grade   `json:"grados"`
	Secciones []models.Section `json:"secciones"`
	Alumnos   []models.Student `json:"alumnos"`
}

// GetRoster resolves filter options level by level. Unknown ids simply yield
// empty option lists.
func GetRoster(gradeID, sectionID uint) (*Roster, error) {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	roster := &Roster{
		Secciones: []models.Section{},
		Alumnos:   []models.Student{},
	}

	if err := database.DB.Find(&roster.Grados).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch grados: %w", err)
	}

	if gradeID != 0 {
		if err := database.DB.Where("grade_id = ?", gradeID).Find(&roster.Secciones).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch secciones: %w", err)
		}
	}

	if sectionID != 0 {
		if err := database.DB.Where("section_id = ?", sectionID).Find(&roster.Alumnos).Error; err != nil {
			return nil, fmt.Errorf("failed to fetch alumnos: %w", err)
		}
	}

	return roster, nil
}

// RecordAttendance stores one mark per student of the section for the given
// date. Estados maps student id to a status code; students missing from the
// map are skipped. It does not deduplicate against marks already recorded
// for that date: recording twice duplicates marks, which is the register's
// long-standing behavior.
func RecordAttendance(sectionID uint, fecha time.Time, estados map[uint]string) (int, error) {
	database.StoreLock.RLock()
	defer database.StoreLock.RUnlock()

	var alumnos []models.Student
	if err := database.DB.Where("section_id = ?", sectionID).Find(&alumnos).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch alumnos: %w", err)
	}

	saved := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range alumnos {
			estado, ok := estados[a.ID]
			if !ok {
				continue
			}
			if !utils.IsValidEstado(estado) {
				return fmt.Errorf("invalid estado %q for alumno %d", estado, a.ID)
			}
			mark := models.AttendanceMark{
				Fecha:     fecha,
				Estado:    estado,
				StudentID: a.ID,
			}
			if err := tx.Create(&mark).Error; err != nil {
				return fmt.Errorf("failed to save mark for alumno %d: %w", a.ID, err)
			}
			saved++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return saved, nil
}
