// package store implements durable persistence for courses, the session
// pointer, and settings.
//
// Layout mirrors the four independent records the app has always kept: the
// whole course collection as one JSON document, the current course id, the
// current lesson id, and the YouTube API key. There is no per-entity
// addressing; every mutation is a read-modify-write over the full courses
// document, and the last write wins. That is acceptable for the single
// local writer this app has.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

// Record keys. Kept stable so databases written by older builds keep working.
const (
	keyCourses       = "focustube_courses"
	keyCurrentCourse = "focustube_current_course"
	keyCurrentLesson = "focustube_current_lesson"
	keyAPIKey        = "focustube_youtube_api_key"
)

// Store provides access to the persisted records over a SQLite database.
// It holds no in-memory state: every read re-fetches from the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database connection.
// The records table must exist (see shared.RunMigrations).
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// LessonUpdate is a partial lesson mutation: only non-nil fields are applied.
type LessonUpdate struct {
	Title        *string
	Completed    *bool
	Skipped      *bool
	LastPosition *float64
	Notes        *[]models.Note
}

func (s *Store) getRecord(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM records WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: read %s: %v", shared.ErrStorage, key, err)
	}
	return value, true, nil
}

func (s *Store) setRecord(key, value string) error {
	query := `
		INSERT INTO records (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`
	if _, err := s.db.Exec(query, key, value); err != nil {
		return fmt.Errorf("%w: write %s: %v", shared.ErrStorage, key, err)
	}
	return nil
}

// ListCourses returns the full course collection in stored order.
// A missing record yields an empty slice, never an error.
func (s *Store) ListCourses() ([]models.Course, error) {
	value, ok, err := s.getRecord(keyCourses)
	if err != nil {
		return nil, err
	}
	if !ok || value == "" {
		return []models.Course{}, nil
	}

	var courses []models.Course
	if err := json.Unmarshal([]byte(value), &courses); err != nil {
		return nil, fmt.Errorf("%w: decode courses: %v", shared.ErrStorage, err)
	}
	return courses, nil
}

// ReplaceAllCourses overwrites the whole course collection. This is the only
// write path for course data; convenience mutators are defined in terms of it.
func (s *Store) ReplaceAllCourses(courses []models.Course) error {
	if courses == nil {
		courses = []models.Course{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("%w: encode courses: %v", shared.ErrStorage, err)
	}
	return s.setRecord(keyCourses, string(data))
}

// AddCourse appends a course to the collection.
func (s *Store) AddCourse(course models.Course) error {
	courses, err := s.ListCourses()
	if err != nil {
		return err
	}
	return s.ReplaceAllCourses(append(courses, course))
}

// DeleteCourse removes the course with the given id. Deleting an id that is
// not present is a no-op, not an error.
func (s *Store) DeleteCourse(courseID string) error {
	courses, err := s.ListCourses()
	if err != nil {
		return err
	}

	filtered := courses[:0]
	for _, c := range courses {
		if c.ID != courseID {
			filtered = append(filtered, c)
		}
	}
	return s.ReplaceAllCourses(filtered)
}

// GetCourse returns the course with the given id, or nil when absent.
func (s *Store) GetCourse(courseID string) (*models.Course, error) {
	courses, err := s.ListCourses()
	if err != nil {
		return nil, err
	}
	for i := range courses {
		if courses[i].ID == courseID {
			return &courses[i], nil
		}
	}
	return nil, nil
}

// GetLesson returns a copy of the lesson, or nil when the course or lesson
// is absent. Lookups never fail on a missing id.
func (s *Store) GetLesson(courseID, lessonID string) (*models.Lesson, error) {
	course, err := s.GetCourse(courseID)
	if err != nil || course == nil {
		return nil, err
	}
	if l := course.Lesson(lessonID); l != nil {
		lesson := *l
		return &lesson, nil
	}
	return nil, nil
}

// UpdateLesson applies a partial field merge to one lesson and writes the
// whole collection back. Updating a missing course or lesson is a no-op.
func (s *Store) UpdateLesson(courseID, lessonID string, update LessonUpdate) error {
	courses, err := s.ListCourses()
	if err != nil {
		return err
	}

	for ci := range courses {
		if courses[ci].ID != courseID {
			continue
		}
		for li := range courses[ci].Lessons {
			lesson := &courses[ci].Lessons[li]
			if lesson.ID != lessonID {
				continue
			}

			if update.Title != nil {
				lesson.Title = *update.Title
			}
			if update.Completed != nil {
				lesson.Completed = *update.Completed
			}
			if update.Skipped != nil {
				lesson.Skipped = *update.Skipped
			}
			if update.LastPosition != nil {
				lesson.LastPosition = *update.LastPosition
			}
			if update.Notes != nil {
				lesson.Notes = *update.Notes
			}

			return s.ReplaceAllCourses(courses)
		}
		return nil
	}
	return nil
}

// SessionPointer returns the persisted current selection. Missing records
// read as the unset pointer.
func (s *Store) SessionPointer() (models.SessionPointer, error) {
	courseID, _, err := s.getRecord(keyCurrentCourse)
	if err != nil {
		return models.SessionPointer{}, err
	}
	lessonID, _, err := s.getRecord(keyCurrentLesson)
	if err != nil {
		return models.SessionPointer{}, err
	}
	return models.SessionPointer{CourseID: courseID, LessonID: lessonID}, nil
}

// SetSessionPointer persists the current selection. Pass the zero value to
// clear it; the empty string is the stored "unset" sentinel.
func (s *Store) SetSessionPointer(p models.SessionPointer) error {
	if err := s.setRecord(keyCurrentCourse, p.CourseID); err != nil {
		return err
	}
	return s.setRecord(keyCurrentLesson, p.LessonID)
}

// APIKey returns the stored YouTube API key, empty when unset.
func (s *Store) APIKey() (string, error) {
	value, _, err := s.getRecord(keyAPIKey)
	return value, err
}

// SetAPIKey stores the YouTube API key.
func (s *Store) SetAPIKey(key string) error {
	return s.setRecord(keyAPIKey, key)
}

// EnsureDefaults seeds the API key record on first run. An existing key,
// even an empty one the user cleared, is left alone.
func (s *Store) EnsureDefaults(defaultAPIKey string) error {
	_, ok, err := s.getRecord(keyAPIKey)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return s.setRecord(keyAPIKey, defaultAPIKey)
}
