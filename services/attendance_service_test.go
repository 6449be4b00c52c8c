package services

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"testing"
)

func TestRecordAttendance(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)
	before := countRows(t, &models.AttendanceMark{})

	saved, err := RecordAttendance(f.SeccionA.ID, date(2024, 3, 7), map[uint]string{
		f.Ana.ID:  "P",
		f.Rosa.ID: "A",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 2 {
		t.Errorf("saved = %d, want 2", saved)
	}
	if got := countRows(t, &models.AttendanceMark{}); got != before+2 {
		t.Errorf("mark count = %d, want %d", got, before+2)
	}
}

func TestRecordAttendanceSkipsUnlistedStudents(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	saved, err := RecordAttendance(f.SeccionA.ID, date(2024, 3, 7), map[uint]string{
		f.Ana.ID: "T",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 1 {
		t.Errorf("saved = %d, want 1", saved)
	}
}

func TestRecordAttendanceIgnoresOtherSections(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)
	before := countRows(t, &models.AttendanceMark{})

	// Luis is in seccion B; marking seccion A must not touch him
	saved, err := RecordAttendance(f.SeccionA.ID, date(2024, 3, 7), map[uint]string{
		f.Luis.ID: "P",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved != 0 {
		t.Errorf("saved = %d, want 0", saved)
	}
	if got := countRows(t, &models.AttendanceMark{}); got != before {
		t.Errorf("mark count changed from %d to %d", before, got)
	}
}

func TestRecordAttendanceInvalidEstado(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)
	before := countRows(t, &models.AttendanceMark{})

	_, err := RecordAttendance(f.SeccionA.ID, date(2024, 3, 7), map[uint]string{
		f.Ana.ID:  "P",
		f.Rosa.ID: "X",
	})
	if err == nil {
		t.Fatal("expected error for invalid estado")
	}
	// The transaction rolls back, so not even the valid mark lands
	if got := countRows(t, &models.AttendanceMark{}); got != before {
		t.Errorf("mark count changed from %d to %d", before, got)
	}
}

func TestRecordAttendanceDuplicatesAllowed(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	estados := map[uint]string{f.Ana.ID: "P"}
	for i := 0; i < 2; i++ {
		if _, err := RecordAttendance(f.SeccionA.ID, date(2024, 3, 7), estados); err != nil {
			t.Fatalf("unexpected error on pass %d: %v", i, err)
		}
	}

	var n int64
	if err := database.DB.Model(&models.AttendanceMark{}).
		Where("student_id = ? AND fecha = ?", f.Ana.ID, date(2024, 3, 7)).
		Count(&n).Error; err != nil {
		t.Fatalf("failed to count marks: %v", err)
	}
	if n != 2 {
		t.Errorf("got %d marks for the same day, want 2 (duplicates are allowed)", n)
	}
}

func TestGetRoster(t *testing.T) {
	setupTestStore(t)
	f := seedFixture(t)

	roster, err := GetRoster(f.Grado.ID, f.SeccionA.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roster.Grados) != 1 {
		t.Errorf("got %d grados, want 1", len(roster.Grados))
	}
	if len(roster.Secciones) != 2 {
		t.Errorf("got %d secciones, want 2", len(roster.Secciones))
	}
	if len(roster.Alumnos) != 2 {
		t.Errorf("got %d alumnos, want 2", len(roster.Alumnos))
	}
}

func TestGetRosterWithoutSelection(t *testing.T) {
	setupTestStore(t)
	seedFixture(t)

	roster, err := GetRoster(0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(roster.Secciones) != 0 || len(roster.Alumnos) != 0 {
		t.Errorf("expected empty options without a selection, got %d secciones, %d alumnos",
			len(roster.Secciones), len(roster.Alumnos))
	}
}
