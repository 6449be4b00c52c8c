package controllers

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestGetActivityLogs(t *testing.T) {
	setupTestStore(t)

	for _, action := range []string{"CREATE", "UPDATE", "DELETE"} {
		log := models.ActivityLog{Action: action, Resource: "grados", ResourceID: 1}
		if err := database.DB.Create(&log).Error; err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	app := fiber.New()
	lc := NewLogController(nil)
	app.Get("/logs", lc.GetActivityLogs)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/logs?limit=2", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Logs  []models.ActivityLog `json:"logs"`
		Total int64                `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Total != 3 {
		t.Errorf("total = %d, want 3", body.Total)
	}
	if len(body.Logs) != 2 {
		t.Errorf("got %d logs, want 2 (limit)", len(body.Logs))
	}
}

func TestGetActivityLogsActionFilter(t *testing.T) {
	setupTestStore(t)

	for _, action := range []string{"CREATE", "DELETE"} {
		log := models.ActivityLog{Action: action, Resource: "grados"}
		if err := database.DB.Create(&log).Error; err != nil {
			t.Fatalf("failed to seed log: %v", err)
		}
	}

	app := fiber.New()
	lc := NewLogController(nil)
	app.Get("/logs", lc.GetActivityLogs)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/logs?action=DELETE", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Logs  []models.ActivityLog `json:"logs"`
		Total int64                `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Total != 1 || len(body.Logs) != 1 || body.Logs[0].Action != "DELETE" {
		t.Errorf("unexpected result: total=%d logs=%+v", body.Total, body.Logs)
	}
}
