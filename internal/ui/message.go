package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/session"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCoursesLoaded MsgKind = iota
	MsgCourseLoaded
	MsgSessionEvent
	MsgDisplayTick
)

// coursesLoadedMsg is the constructor for [MsgCoursesLoaded]
func coursesLoadedMsg(courses []models.Course, err error) Msg {
	return Msg{
		kind: MsgCoursesLoaded,
		data: struct {
			courses []models.Course
			err     error
		}{courses, err},
	}
}

// courseLoadedMsg is the constructor for [MsgCourseLoaded]
func courseLoadedMsg(course *models.Course, err error) Msg {
	return Msg{
		kind: MsgCourseLoaded,
		data: struct {
			course *models.Course
			err    error
		}{course, err},
	}
}

// sessionEventMsg is the constructor for [MsgSessionEvent]
func sessionEventMsg(event session.Event) Msg {
	return Msg{kind: MsgSessionEvent, data: event}
}

// displayTickMsg is the constructor for [MsgDisplayTick]
func displayTickMsg() Msg {
	return Msg{kind: MsgDisplayTick}
}
