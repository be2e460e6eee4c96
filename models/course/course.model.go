package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Difficulty levels accepted for a course
const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// Course represents a generated learning course owned by a user
type Course struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Topic       string `json:"topic"`
	Difficulty  string `json:"difficulty" gorm:"default:'beginner'"`
	Description string `json:"description"`
	// GenerationMeta records which model produced the course and a short
	// preview of its raw response, for diagnostics
	GenerationMeta datatypes.JSON `json:"generation_meta,omitempty"`
}
