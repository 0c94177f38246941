package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cold-cofffeee/focustube/internal/courses"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/player"
	"github.com/cold-cofffeee/focustube/internal/session"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CourseListView ViewState = iota
	LessonListView
	PlayerView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	courses    *courses.Service
	controller *session.Controller
	engine     *player.Headless

	width  int
	height int

	courseList     list.Model
	lessonList     list.Model
	selectedCourse *models.Course

	events      chan session.Event
	lastEvent   *session.Event
	position    float64
	engineState session.PlaybackState

	noteInput  textinput.Model
	takingNote bool

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies. The
// model subscribes to controller events; delivery is non-blocking so a
// slow render loop never stalls the session.
func NewModel(ctx context.Context, svc *courses.Service, controller *session.Controller, engine *player.Headless) *Model {
	m := &Model{
		ctx:        ctx,
		view:       CourseListView,
		courses:    svc,
		controller: controller,
		engine:     engine,
		events:     make(chan session.Event, 50),
		help:       help.New(),
		keys:       newKeyMap(),
	}

	m.noteInput = textinput.New()
	m.noteInput.Placeholder = "note text"
	m.noteInput.CharLimit = 280

	controller.Subscribe(func(ev session.Event) {
		select {
		case m.events <- ev:
		default:
		}
	})

	return m
}

// Init initializes the TUI by loading courses from the store.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCourses(), m.waitForEvent(), m.scheduleTick())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.courseList.SetSize(msg.Width-4, msg.Height-8)
		m.lessonList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CourseListView:
			return m.handleCourseListKeys(msg)
		case LessonListView:
			return m.handleLessonListKeys(msg)
		case PlayerView:
			return m.handlePlayerKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgCoursesLoaded:
		payload := msg.data.(struct {
			courses []models.Course
			err     error
		})
		if payload.err != nil {
			m.err = payload.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(payload.courses))
		for i, course := range payload.courses {
			items[i] = courseItem{course: course}
		}
		m.courseList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.courseList.Title = "Courses"
		m.courseList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgCourseLoaded:
		payload := msg.data.(struct {
			course *models.Course
			err    error
		})
		if payload.err != nil {
			m.err = payload.err
			return m, nil
		}
		if payload.course == nil {
			m.view = CourseListView
			return m, m.loadCourses()
		}
		m.selectedCourse = payload.course
		pointer := m.controller.Pointer()
		items := make([]list.Item, len(payload.course.Lessons))
		for i, lesson := range payload.course.Lessons {
			items[i] = lessonItem{
				lesson:  lesson,
				current: pointer.CourseID == payload.course.ID && pointer.LessonID == lesson.ID,
			}
		}
		m.lessonList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.lessonList.Title = payload.course.Title
		m.lessonList.SetSize(m.width-4, m.height-8)
		return m, nil

	case MsgSessionEvent:
		event := msg.data.(session.Event)
		m.lastEvent = &event

		// Completion and selection change lesson state, so the lesson
		// list needs fresh data.
		var cmd tea.Cmd
		if m.selectedCourse != nil {
			cmd = m.loadCourse(m.selectedCourse.ID)
		}
		return m, tea.Batch(cmd, m.waitForEvent())

	case MsgDisplayTick:
		if m.view == PlayerView {
			m.engineState = m.engine.PlaybackState()
			if pos, err := m.engine.CurrentTime(); err == nil {
				m.position = pos
			}
		}
		return m, m.scheduleTick()
	}

	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case CourseListView:
		return m.renderCourseList()
	case LessonListView:
		return m.renderLessonList()
	case PlayerView:
		return m.renderPlayer()
	default:
		return ""
	}
}

func (m *Model) handleCourseListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		if selected := m.courseList.SelectedItem(); selected != nil {
			if item, ok := selected.(courseItem); ok {
				m.view = LessonListView
				return m, m.loadCourse(item.course.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.courseList, cmd = m.courseList.Update(msg)
	return m, cmd
}

func (m *Model) handleLessonListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = CourseListView
		m.selectedCourse = nil
		return m, m.loadCourses()
	case "enter":
		if selected := m.lessonList.SelectedItem(); selected != nil {
			if item, ok := selected.(lessonItem); ok && m.selectedCourse != nil {
				if err := m.controller.SelectLesson(m.selectedCourse.ID, item.lesson.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.view = PlayerView
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.lessonList, cmd = m.lessonList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlayerKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.takingNote {
		return m.handleNoteInputKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = LessonListView
		if m.selectedCourse != nil {
			return m, m.loadCourse(m.selectedCourse.ID)
		}
		return m, nil
	case " ":
		if m.engine.PlaybackState() == session.Playing {
			m.engine.Pause()
		} else {
			m.engine.Play()
		}
		return m, nil
	case "n":
		if err := m.controller.Next(); err != nil {
			m.err = err
		}
		return m, nil
	case "p":
		if err := m.controller.Previous(); err != nil {
			m.err = err
		}
		return m, nil
	case "c":
		pointer := m.controller.Pointer()
		if pointer.IsSet() {
			if err := m.courses.SetLessonCompleted(pointer.CourseID, pointer.LessonID, false); err != nil {
				m.err = err
			}
		}
		return m, nil
	case "s":
		pointer := m.controller.Pointer()
		if pointer.IsSet() {
			if err := m.courses.SetLessonSkipped(pointer.CourseID, pointer.LessonID); err != nil {
				m.err = err
			}
		}
		return m, nil
	case "a":
		if m.controller.Pointer().IsSet() {
			m.takingNote = true
			m.noteInput.SetValue("")
			return m, m.noteInput.Focus()
		}
		return m, nil
	}
	return m, nil
}

// handleNoteInputKeys routes keys to the note input. Enter attaches the note
// at the current playhead position; esc discards it.
func (m *Model) handleNoteInputKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.takingNote = false
		m.noteInput.Blur()
		return m, nil
	case "enter":
		m.takingNote = false
		m.noteInput.Blur()

		pointer := m.controller.Pointer()
		text := strings.TrimSpace(m.noteInput.Value())
		if !pointer.IsSet() || text == "" {
			return m, nil
		}
		if _, err := m.courses.AppendNote(pointer.CourseID, pointer.LessonID, text, m.position); err != nil {
			m.err = err
			return m, nil
		}
		return m, m.loadCourse(pointer.CourseID)
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CourseListView:
		m.courseList, cmd = m.courseList.Update(msg)
	case LessonListView:
		m.lessonList, cmd = m.lessonList.Update(msg)
	}
	return m, cmd
}

func (m *Model) loadCourses() tea.Cmd {
	return func() tea.Msg {
		all, err := m.courses.List()
		return coursesLoadedMsg(all, err)
	}
}

func (m *Model) loadCourse(courseID string) tea.Cmd {
	return func() tea.Msg {
		course, err := m.courses.Get(courseID)
		return courseLoadedMsg(course, err)
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		return sessionEventMsg(<-m.events)
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return displayTickMsg()
	})
}

func (m *Model) renderCourseList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.courseList.View(), helpView)
}

func (m *Model) renderLessonList() string {
	playKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "play"),
	)
	helpKeys := []key.Binding{playKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.lessonList.View(), helpView)
}

func (m *Model) renderPlayer() string {
	pointer := m.controller.Pointer()
	if !pointer.IsSet() || m.selectedCourse == nil {
		return styles.warn.Render("No lesson selected\n\nPress esc to go back")
	}

	lessonTitle := pointer.LessonID
	var notes []models.Note
	if lesson := m.selectedCourse.Lesson(pointer.LessonID); lesson != nil {
		lessonTitle = lesson.Title
		notes = lesson.Notes
	}

	title := styles.title.Render(lessonTitle)
	status := fmt.Sprintf("%s [%s]", shared.FormatTimestamp(m.position), m.engineState)

	body := fmt.Sprintf("%s\n%s\n", title, status)
	if m.lastEvent != nil && m.lastEvent.Kind == session.CourseCompleted {
		body += "\n" + styles.ok.Render("✓ Course complete!") + "\n"
	}

	if len(notes) > 0 {
		body += "\nNotes:\n"
		for _, note := range notes {
			body += fmt.Sprintf("  [%s] %s\n", shared.FormatTimestamp(note.Timestamp), note.Text)
		}
	}

	if m.takingNote {
		body += fmt.Sprintf("\nNew note at %s:\n%s\n", shared.FormatTimestamp(m.position), m.noteInput.View())
	}

	helpKeys := []key.Binding{m.keys.playPause, m.keys.next, m.keys.previous, m.keys.complete, m.keys.skip, m.keys.note, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s", body, helpView)
}
