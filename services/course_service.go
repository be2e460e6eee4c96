package services

import (
	"errors"
	"log"

	"coursegen/models"
	courseModels "coursegen/models/course"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrStorage is the generic storage failure surfaced to callers. The
// underlying cause is logged, never returned.
var ErrStorage = errors.New("storage operation failed")

func storageError(op string, err error) error {
	log.Printf("[storage] %s: %v", op, err)
	return ErrStorage
}

// CourseService is the persistence layer for users, courses and modules.
// The gorm handle is injected so tests can substitute their own.
type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

// FindOrCreateUser looks a user up by email and creates one when absent.
func (s *CourseService) FindOrCreateUser(email, name string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageError("find user", err)
	}

	user = models.User{Email: email, Name: name}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, storageError("create user", err)
	}
	return &user, nil
}

// CreateCourseWithModules writes a course and all of its modules as one
// atomic unit. A module without a positive position gets its 1-based index
// in the slice. On any failure no rows from this call remain visible.
func (s *CourseService) CreateCourseWithModules(course *courseModels.Course, modules []courseModels.Module) error {
	tx := s.db.Begin()
	if tx.Error != nil {
		return storageError("begin transaction", tx.Error)
	}

	if err := tx.Create(course).Error; err != nil {
		tx.Rollback()
		return storageError("create course", err)
	}

	for i := range modules {
		modules[i].CourseID = course.ID
		if modules[i].Position <= 0 {
			modules[i].Position = i + 1
		}
		if err := tx.Create(&modules[i]).Error; err != nil {
			tx.Rollback()
			return storageError("create module", err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return storageError("commit course", err)
	}
	return nil
}

// GetCourse fetches a course and its modules ordered by position.
func (s *CourseService) GetCourse(courseID uint) (*courseModels.Course, []courseModels.Module, error) {
	var course courseModels.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, storageError("fetch course", err)
	}

	var modules []courseModels.Module
	if err := s.db.Where("course_id = ?", courseID).Order("position asc").Find(&modules).Error; err != nil {
		return nil, nil, storageError("fetch modules", err)
	}
	return &course, modules, nil
}

// CourseWithCount annotates a course with its module count for listings.
type CourseWithCount struct {
	courseModels.Course
	ModuleCount int64 `json:"module_count"`
}

// ListUserCourses returns the user's courses newest-created first, each
// with its module count. Other users' courses are never included.
func (s *CourseService) ListUserCourses(userID uint) ([]CourseWithCount, error) {
	var courses []courseModels.Course
	if err := s.db.Where("user_id = ?", userID).Order("created_at desc").Find(&courses).Error; err != nil {
		return nil, storageError("list courses", err)
	}

	result := make([]CourseWithCount, len(courses))
	for i, c := range courses {
		var count int64
		if err := s.db.Model(&courseModels.Module{}).Where("course_id = ?", c.ID).Count(&count).Error; err != nil {
			return nil, storageError("count modules", err)
		}
		result[i] = CourseWithCount{Course: c, ModuleCount: count}
	}
	return result, nil
}

// CourseUpdate carries the editable course fields. Empty fields are left
// unchanged.
type CourseUpdate struct {
	Title       string
	Topic       string
	Difficulty  string
	Description string
}

// UpdateCourse partially updates a course's editable fields.
func (s *CourseService) UpdateCourse(courseID uint, update CourseUpdate) (*courseModels.Course, error) {
	var course courseModels.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError("fetch course", err)
	}

	if update.Title != "" {
		course.Title = update.Title
	}
	if update.Topic != "" {
		course.Topic = update.Topic
	}
	if update.Difficulty != "" {
		course.Difficulty = update.Difficulty
	}
	if update.Description != "" {
		course.Description = update.Description
	}

	if err := s.db.Save(&course).Error; err != nil {
		return nil, storageError("update course", err)
	}
	return &course, nil
}

// ModuleUpdate carries the editable module fields. Position may be set to
// any positive value; no contiguity is enforced across the course.
type ModuleUpdate struct {
	Title       string
	Description string
	Position    int
	Duration    string
}

// UpdateModule partially updates a module's editable fields.
func (s *CourseService) UpdateModule(moduleID uint, update ModuleUpdate) (*courseModels.Module, error) {
	var module courseModels.Module
	if err := s.db.First(&module, moduleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageError("fetch module", err)
	}

	if update.Title != "" {
		module.Title = update.Title
	}
	if update.Description != "" {
		module.Description = update.Description
	}
	if update.Position > 0 {
		module.Position = update.Position
	}
	if update.Duration != "" {
		module.Duration = update.Duration
	}

	if err := s.db.Save(&module).Error; err != nil {
		return nil, storageError("update module", err)
	}
	return &module, nil
}

// DeleteCourse removes a course and all of its modules.
func (s *CourseService) DeleteCourse(courseID uint) error {
	var course courseModels.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return storageError("fetch course", err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return storageError("begin transaction", tx.Error)
	}

	if err := tx.Where("course_id = ?", courseID).Delete(&courseModels.Module{}).Error; err != nil {
		tx.Rollback()
		return storageError("delete modules", err)
	}
	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return storageError("delete course", err)
	}

	if err := tx.Commit().Error; err != nil {
		return storageError("commit delete", err)
	}
	return nil
}
