// package courses implements course and lesson mutations over the store.
//
// The service holds no state of its own: every operation reads fresh from
// the store, applies the change, and writes back. Mutual exclusion of the
// completed/skipped flags is enforced here, not in the store.
package courses

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
)

// Service provides course and lesson mutations.
type Service struct {
	store  *store.Store
	logger *log.Logger
}

// NewService creates a course service over the given store.
func NewService(s *store.Store, logger *log.Logger) *Service {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Service{store: s, logger: logger.With("component", "courses")}
}

// List returns all courses in stored order.
func (s *Service) List() ([]models.Course, error) {
	return s.store.ListCourses()
}

// Get returns the course with the given id, or nil when absent.
func (s *Service) Get(courseID string) (*models.Course, error) {
	return s.store.GetCourse(courseID)
}

// GetLesson returns the lesson, or nil when the course or lesson is absent.
func (s *Service) GetLesson(courseID, lessonID string) (*models.Lesson, error) {
	return s.store.GetLesson(courseID, lessonID)
}

// CreateCourse builds a course with one lesson per video id and persists it.
//
// Duplicate ids within the same submission are skipped; lessons get
// placeholder titles ("Lesson N") by creation order. A blank title defaults
// to "Course N". Fails with shared.ErrNoLessons when no lessons result, and
// nothing is persisted in that case.
func (s *Service) CreateCourse(title string, videoIDs []string) (*models.Course, error) {
	seen := make(map[string]bool)
	var lessons []models.Lesson

	for _, id := range videoIDs {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		lessons = append(lessons, models.Lesson{
			ID:    id,
			Title: fmt.Sprintf("Lesson %d", len(lessons)+1),
			Notes: []models.Note{},
		})
	}

	if len(lessons) == 0 {
		return nil, shared.ErrNoLessons
	}

	if strings.TrimSpace(title) == "" {
		existing, err := s.store.ListCourses()
		if err != nil {
			return nil, err
		}
		title = fmt.Sprintf("Course %d", len(existing)+1)
	}

	course := models.Course{
		ID:        shared.GenerateID(),
		Title:     title,
		Lessons:   lessons,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.AddCourse(course); err != nil {
		return nil, err
	}

	s.logger.Info("course created", "id", course.ID, "title", course.Title, "lessons", len(lessons))
	return &course, nil
}

// DeleteCourse removes a course by id; deleting a non-existent id is a
// no-op. When the deleted course is the current selection, the session
// pointer is cleared.
func (s *Service) DeleteCourse(courseID string) error {
	if err := s.store.DeleteCourse(courseID); err != nil {
		return err
	}

	pointer, err := s.store.SessionPointer()
	if err != nil {
		return err
	}
	if pointer.CourseID == courseID {
		if err := s.store.SetSessionPointer(models.SessionPointer{}); err != nil {
			return err
		}
		s.logger.Info("cleared session pointer for deleted course", "course", courseID)
	}
	return nil
}

// SetLessonCompleted marks a lesson completed and clears the skipped flag.
//
// The position resets to zero only on the natural end-of-media path; a
// manual "mark complete" keeps the resume position. The asymmetry is
// long-standing behavior that users rely on to re-watch endings.
func (s *Service) SetLessonCompleted(courseID, lessonID string, natural bool) error {
	completed, skipped := true, false
	update := store.LessonUpdate{Completed: &completed, Skipped: &skipped}
	if natural {
		zero := 0.0
		update.LastPosition = &zero
	}
	return s.store.UpdateLesson(courseID, lessonID, update)
}

// SetLessonSkipped marks a lesson skipped and clears the completed flag.
// The resume position is untouched.
func (s *Service) SetLessonSkipped(courseID, lessonID string) error {
	completed, skipped := false, true
	return s.store.UpdateLesson(courseID, lessonID, store.LessonUpdate{Completed: &completed, Skipped: &skipped})
}

// RecordPosition overwrites the lesson's resume position unconditionally.
// No monotonicity is enforced: writes come from a single active player, so
// a lower value is a deliberate seek backwards.
func (s *Service) RecordPosition(courseID, lessonID string, seconds float64) error {
	if seconds < 0 {
		return fmt.Errorf("%w: negative position %v", shared.ErrInvalidInput, seconds)
	}
	return s.store.UpdateLesson(courseID, lessonID, store.LessonUpdate{LastPosition: &seconds})
}

// AppendNote adds a note at the given playback position. Empty or
// whitespace-only text is rejected.
func (s *Service) AppendNote(courseID, lessonID, text string, atTimestamp float64) (*models.Note, error) {
	if strings.TrimSpace(text) == "" {
		return nil, shared.ErrEmptyNote
	}
	if atTimestamp < 0 {
		atTimestamp = 0
	}

	lesson, err := s.store.GetLesson(courseID, lessonID)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, fmt.Errorf("%w: %s/%s", shared.ErrLessonNotFound, courseID, lessonID)
	}

	note := models.Note{
		ID:        shared.GenerateID(),
		Text:      text,
		Timestamp: atTimestamp,
		CreatedAt: time.Now().UTC(),
	}

	notes := append(lesson.Notes, note)
	if err := s.store.UpdateLesson(courseID, lessonID, store.LessonUpdate{Notes: &notes}); err != nil {
		return nil, err
	}
	return &note, nil
}

// RemoveNote deletes a note by id; removing a missing id is a no-op.
func (s *Service) RemoveNote(courseID, lessonID, noteID string) error {
	lesson, err := s.store.GetLesson(courseID, lessonID)
	if err != nil || lesson == nil {
		return err
	}

	notes := make([]models.Note, 0, len(lesson.Notes))
	for _, n := range lesson.Notes {
		if n.ID != noteID {
			notes = append(notes, n)
		}
	}
	return s.store.UpdateLesson(courseID, lessonID, store.LessonUpdate{Notes: &notes})
}
