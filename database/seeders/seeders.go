package seeders

import (
	"asistencia_go/database"
	"asistencia_go/models"
	"asistencia_go/utils"
	"log"
	"time"
)

// SeedAll runs all seeders
func SeedAll() {
	log.Println("Starting database seeding...")

	SeedUsers()
	SeedGrades()
	SeedCourses()

	log.Println("Database seeding completed successfully!")
}

// SeedUsers seeds the users table. The register ships with a single
// privileged account, like the paper one it replaces.
func SeedUsers() {
	var count int64
	database.DB.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Println("Users already seeded, skipping...")
		return
	}

	hashedPassword, _ := utils.HashPassword("admin")

	users := []models.User{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Username:  "admin",
			Password:  hashedPassword,
			Email:     "direccion@colegio.edu.pe",
			Role:      "owner",
			Status:    "active",
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Username:  "profesora",
			Password:  hashedPassword,
			Email:     "profesora@colegio.edu.pe",
			Role:      "teacher",
			Status:    "active",
		},
	}

	for _, user := range users {
		if err := database.DB.Create(&user).Error; err != nil {
			log.Printf("Error seeding user %s: %v", user.Username, err)
		}
	}

	log.Println("Users seeded successfully")
}

// SeedGrades seeds a starter grade/section hierarchy
func SeedGrades() {
	var count int64
	database.DB.Model(&models.Grade{}).Count(&count)
	if count > 0 {
		log.Println("Grades already seeded, skipping...")
		return
	}

	grades := []models.Grade{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Nombre:    "5to Grado",
			Sections: []models.Section{
				{Nombre: "A"},
				{Nombre: "B"},
			},
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Nombre:    "6to Grado",
			Sections: []models.Section{
				{Nombre: "A"},
			},
		},
	}

	for _, grade := range grades {
		if err := database.DB.Create(&grade).Error; err != nil {
			log.Printf("Error seeding grade %s: %v", grade.Nombre, err)
		}
	}

	log.Println("Grades seeded successfully")
}

// SeedCourses seeds the planning tree
func SeedCourses() {
	var count int64
	database.DB.Model(&models.Course{}).Count(&count)
	if count > 0 {
		log.Println("Courses already seeded, skipping...")
		return
	}

	courses := []models.Course{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Nombre:    "Comunicación",
			Competencies: []models.Competency{
				{
					Nombre: "Se comunica oralmente en su lengua materna",
					Capabilities: []models.Capability{
						{Nombre: "Obtiene información de textos orales"},
						{Nombre: "Infiere e interpreta información"},
					},
				},
			},
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)},
			Nombre:    "Matemática",
			Competencies: []models.Competency{
				{Nombre: "Resuelve problemas de cantidad"},
			},
		},
	}

	for _, course := range courses {
		if err := database.DB.Create(&course).Error; err != nil {
			log.Printf("Error seeding course %s: %v", course.Nombre, err)
		}
	}

	log.Println("Courses seeded successfully")
}
