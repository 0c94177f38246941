// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for course playback:
//  1. [CourseListView] : Browse stored courses
//  2. [LessonListView] : Browse lessons with completion state
//  3. [PlayerView] : Drive the playback session and take notes
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Session events flow through a channel from the playback controller, so the render layer observes state changes instead of being called inline.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, space, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
