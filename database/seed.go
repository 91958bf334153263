package database

import (
	_ "embed"
	"fmt"
	"log"

	"github.com/anjiri1684/omnilearn/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed_courses.yaml
var seedCoursesYAML []byte

type courseSeed struct {
	Courses []models.Course `yaml:"courses"`
}

func LoadSeedCourses(raw []byte) ([]models.Course, error) {
	var seed courseSeed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse course seed: %w", err)
	}
	for i, c := range seed.Courses {
		if c.ID == "" || c.Title == "" {
			return nil, fmt.Errorf("course seed #%d is missing id or title", i)
		}
		if c.Price < 0 {
			return nil, fmt.Errorf("course seed %s has negative price", c.ID)
		}
	}
	return seed.Courses, nil
}

// SeedCourses fills an empty catalog with the bundled starter courses.
func SeedCourses() {
	n, err := seedCourses(DB, seedCoursesYAML)
	if err != nil {
		log.Fatalf("🔥 Failed to seed courses: %v", err)
	}
	if n > 0 {
		log.Printf("✅ Seeded %d starter courses", n)
	}
}

func seedCourses(db *gorm.DB, raw []byte) (int, error) {
	var count int64
	if err := db.Model(&models.Course{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	courses, err := LoadSeedCourses(raw)
	if err != nil {
		return 0, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for i := range courses {
			if err := tx.Create(&courses[i]).Error; err != nil {
				return fmt.Errorf("insert course %s: %w", courses[i].ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(courses), nil
}
