package course

import "gorm.io/gorm"

// Module represents one step of a course's learning path. Position is
// 1-based and unique per course by convention only; edits may introduce
// gaps or duplicates and reads simply sort ascending.
type Module struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"default:0"`
	Duration    string `json:"duration"`
}
