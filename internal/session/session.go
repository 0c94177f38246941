// package session implements the playback session controller.
//
// The controller owns the current (course, lesson) selection and drives an
// external playback engine through its asynchronous readiness handshake.
// Selections made before the engine is ready are held as a single pending
// pointer and replayed once by the readiness event; a later selection
// supersedes an earlier pending one, there is no queue to drain beyond the
// latest pointer.
//
// While a lesson is active, a periodic tick snapshots the engine position
// into the store. At most one ticker runs at any time: selecting a
// different lesson or tearing the session down cancels the previous one
// first.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cold-cofffeee/focustube/internal/courses"
	"github.com/cold-cofffeee/focustube/internal/models"
	"github.com/cold-cofffeee/focustube/internal/shared"
	"github.com/cold-cofffeee/focustube/internal/store"
)

// PlaybackState mirrors the engine's reported playback states.
type PlaybackState int

const (
	Unstarted PlaybackState = iota
	Ended
	Playing
	Paused
	Buffering
	Cued
)

func (s PlaybackState) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Ended:
		return "ended"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Buffering:
		return "buffering"
	case Cued:
		return "cued"
	default:
		return "unknown"
	}
}

// Engine is the consumed playback engine boundary. Implementations
// initialize asynchronously; the controller never touches an engine before
// its readiness event has been delivered via HandleEngineReady.
type Engine interface {
	// Load starts playback of the given video.
	Load(videoID string) error

	// CurrentTime returns the playback position in seconds. It may fail
	// transiently while the engine is rebuffering or tearing down.
	CurrentTime() (float64, error)

	// SeekTo moves the playhead.
	SeekTo(seconds float64, allowSeekAhead bool) error

	// PlaybackState returns the engine's current state.
	PlaybackState() PlaybackState
}

// State is the controller's lifecycle state.
type State int

const (
	// Idle: no pointer set.
	Idle State = iota
	// AwaitingEngine: pointer set, engine not yet initialized.
	AwaitingEngine
	// Active: pointer set, engine ready and bound to the lesson.
	Active
)

func (s State) String() string {
	switch s {
	case AwaitingEngine:
		return "awaiting_engine"
	case Active:
		return "active"
	default:
		return "idle"
	}
}

// EventKind identifies a controller notification.
type EventKind int

const (
	LessonSelected EventKind = iota
	LessonCompleted
	CourseCompleted
	PositionSaved
	PointerCleared
)

// Event is a state-change notification delivered to subscribers. The render
// layer observes these instead of being invoked inline from mutations.
type Event struct {
	Kind     EventKind
	CourseID string
	LessonID string
	Position float64
}

// Controller is the playback session state machine.
type Controller struct {
	store   *store.Store
	courses *courses.Service
	logger  *log.Logger

	tickInterval time.Duration
	advanceDelay time.Duration

	mu         sync.Mutex
	state      State
	engine     Engine
	pointer    models.SessionPointer
	pending    *models.SessionPointer
	tickCancel context.CancelFunc
	tickDone   chan struct{}
	listeners  []func(Event)
	closed     bool
}

// Opts contains configuration options for creating a Controller.
type Opts struct {
	Store   *store.Store
	Courses *courses.Service
	Logger  *log.Logger

	// TickInterval is the progress snapshot period (default: 5s).
	TickInterval time.Duration
	// AdvanceDelay is the pause between natural end-of-media and
	// auto-advance (default: 1s). Negative advances without delay.
	AdvanceDelay time.Duration
}

// NewController creates a controller in the Idle state. The engine binds
// later via HandleEngineReady.
func NewController(opts Opts) *Controller {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = 5 * time.Second
	}
	if opts.AdvanceDelay == 0 {
		opts.AdvanceDelay = time.Second
	}

	return &Controller{
		store:        opts.Store,
		courses:      opts.Courses,
		logger:       opts.Logger.With("component", "session"),
		tickInterval: opts.TickInterval,
		advanceDelay: opts.AdvanceDelay,
	}
}

// Subscribe registers a listener for controller events. Listeners are
// invoked synchronously, outside the controller lock, in registration
// order.
func (c *Controller) Subscribe(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listeners = append(c.listeners, fn)
}

func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	listeners := make([]func(Event), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// State returns the controller's lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Pointer returns the current selection.
func (c *Controller) Pointer() models.SessionPointer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pointer
}

// SelectLesson makes (courseID, lessonID) the current selection. The
// pointer is persisted immediately, before the engine is touched, so a
// crash mid-transition still resumes correctly. If the engine is not yet
// ready the selection is held and replayed by the readiness event; a later
// call supersedes an earlier held one.
func (c *Controller) SelectLesson(courseID, lessonID string) error {
	lesson, err := c.courses.GetLesson(courseID, lessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		return fmt.Errorf("%w: %s/%s", shared.ErrLessonNotFound, courseID, lessonID)
	}

	pointer := models.SessionPointer{CourseID: courseID, LessonID: lessonID}
	if err := c.store.SetSessionPointer(pointer); err != nil {
		return err
	}

	c.mu.Lock()
	if c.engine == nil {
		c.pending = &pointer
		c.pointer = pointer
		c.state = AwaitingEngine
		c.mu.Unlock()
		c.logger.Debug("selection queued until engine ready", "course", courseID, "lesson", lessonID)
		return nil
	}
	c.mu.Unlock()

	return c.activate(pointer, lesson.LastPosition)
}

// HandleEngineReady binds the engine and drains the held selection, if any;
// otherwise it restores the previously persisted pointer. It fires exactly
// once per process lifetime; repeated calls are ignored.
func (c *Controller) HandleEngineReady(engine Engine) error {
	c.mu.Lock()
	if c.engine != nil {
		c.mu.Unlock()
		c.logger.Warn("engine ready fired more than once, ignoring")
		return nil
	}
	c.engine = engine
	pending := c.pending
	c.pending = nil
	c.mu.Unlock()

	pointer := models.SessionPointer{}
	if pending != nil {
		pointer = *pending
	} else {
		p, err := c.store.SessionPointer()
		if err != nil {
			return err
		}
		pointer = p
	}

	if !pointer.IsSet() {
		return nil
	}

	lesson, err := c.courses.GetLesson(pointer.CourseID, pointer.LessonID)
	if err != nil {
		return err
	}
	if lesson == nil {
		// Dangling pointer: the course was deleted since the pointer was
		// written. Treated as Idle, not an error.
		return c.clearPointer()
	}

	return c.activate(pointer, lesson.LastPosition)
}

// activate binds the engine to the lesson: cancels the previous ticker,
// loads the video, seeks to the resume position, and starts a new ticker.
func (c *Controller) activate(pointer models.SessionPointer, resumeAt float64) error {
	c.stopTicker()

	c.mu.Lock()
	engine := c.engine
	c.mu.Unlock()
	if engine == nil {
		return shared.ErrEngineNotReady
	}

	if err := engine.Load(pointer.LessonID); err != nil {
		return fmt.Errorf("failed to load video: %w", err)
	}
	if resumeAt > 0 {
		if err := engine.SeekTo(resumeAt, true); err != nil {
			c.logger.Warn("failed to seek to resume position", "err", err, "position", resumeAt)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	c.mu.Lock()
	c.pointer = pointer
	c.state = Active
	c.tickCancel = cancel
	c.tickDone = done
	c.mu.Unlock()

	go c.runTicker(ctx, done, pointer)

	c.emit(Event{Kind: LessonSelected, CourseID: pointer.CourseID, LessonID: pointer.LessonID, Position: resumeAt})
	return nil
}

// runTicker periodically snapshots the engine position into the store.
// Read or write failures are logged and swallowed; they never abort the
// loop.
func (c *Controller) runTicker(ctx context.Context, done chan struct{}, pointer models.SessionPointer) {
	defer close(done)

	ticker := time.NewTicker(c.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.saveProgress(pointer)
		}
	}
}

// saveProgress writes the engine's current position for the given lesson.
func (c *Controller) saveProgress(pointer models.SessionPointer) {
	c.mu.Lock()
	engine := c.engine
	c.mu.Unlock()
	if engine == nil {
		return
	}

	position, err := engine.CurrentTime()
	if err != nil {
		c.logger.Warn("failed to read engine position", "err", err)
		return
	}
	if position <= 0 {
		return
	}

	// A read that crosses end-of-media fires the completion path, which
	// resets the lesson's position. Writing the final position afterwards
	// would undo that reset.
	if engine.PlaybackState() == Ended {
		return
	}

	if err := c.courses.RecordPosition(pointer.CourseID, pointer.LessonID, position); err != nil {
		c.logger.Warn("failed to save progress", "err", err)
		return
	}

	c.emit(Event{Kind: PositionSaved, CourseID: pointer.CourseID, LessonID: pointer.LessonID, Position: position})
}

// stopTicker cancels the active ticker, if any, and waits for it to exit
// so no tick outlives its owning selection.
func (c *Controller) stopTicker() {
	c.mu.Lock()
	cancel := c.tickCancel
	done := c.tickDone
	c.tickCancel = nil
	c.tickDone = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// HandleStateChange reacts to engine state-change events. Only end-of-media
// carries behavior: the current lesson is marked completed (position reset)
// and, after the advance delay, the selection moves to the next lesson in
// course order. Completing the last lesson signals course completion and
// leaves the pointer in place.
func (c *Controller) HandleStateChange(state PlaybackState) {
	if state != Ended {
		return
	}

	c.mu.Lock()
	pointer := c.pointer
	active := c.state == Active
	c.mu.Unlock()
	if !active || !pointer.IsSet() {
		return
	}

	if err := c.courses.SetLessonCompleted(pointer.CourseID, pointer.LessonID, true); err != nil {
		c.logger.Error("failed to mark lesson completed", "err", err)
		return
	}
	c.emit(Event{Kind: LessonCompleted, CourseID: pointer.CourseID, LessonID: pointer.LessonID})

	// State changes can arrive on the ticker goroutine (engines fire
	// callbacks from position reads), and activating the next lesson waits
	// for the ticker to exit. The advance therefore never runs on the
	// caller's goroutine.
	advance := func() {
		c.mu.Lock()
		superseded := c.pointer != pointer || c.state != Active
		c.mu.Unlock()
		if superseded {
			return
		}
		c.advanceFrom(pointer)
	}

	if c.advanceDelay <= 0 {
		go advance()
		return
	}
	time.AfterFunc(c.advanceDelay, advance)
}

// advanceFrom selects the lesson after the given pointer in course order,
// or signals course completion when the pointer was on the last lesson.
func (c *Controller) advanceFrom(pointer models.SessionPointer) {
	course, err := c.courses.Get(pointer.CourseID)
	if err != nil || course == nil {
		return
	}

	index := course.LessonIndex(pointer.LessonID)
	if index < 0 {
		return
	}
	if index >= len(course.Lessons)-1 {
		c.emit(Event{Kind: CourseCompleted, CourseID: pointer.CourseID, LessonID: pointer.LessonID})
		return
	}

	next := course.Lessons[index+1]
	if err := c.SelectLesson(pointer.CourseID, next.ID); err != nil {
		c.logger.Error("failed to auto-advance", "err", err)
	}
}

// Next selects the following lesson in the current course, or signals
// course completion when already on the last lesson.
func (c *Controller) Next() error {
	return c.step(1)
}

// Previous selects the preceding lesson in the current course; a no-op at
// the first lesson.
func (c *Controller) Previous() error {
	return c.step(-1)
}

func (c *Controller) step(delta int) error {
	c.mu.Lock()
	pointer := c.pointer
	c.mu.Unlock()
	if !pointer.IsSet() {
		return shared.ErrNoSelection
	}

	course, err := c.courses.Get(pointer.CourseID)
	if err != nil {
		return err
	}
	if course == nil {
		return c.clearPointer()
	}

	index := course.LessonIndex(pointer.LessonID)
	if index < 0 {
		return c.clearPointer()
	}

	target := index + delta
	if target < 0 {
		return nil
	}
	if target >= len(course.Lessons) {
		c.emit(Event{Kind: CourseCompleted, CourseID: pointer.CourseID, LessonID: pointer.LessonID})
		return nil
	}

	return c.SelectLesson(pointer.CourseID, course.Lessons[target].ID)
}

// SeekToNote moves the playhead to a note's timestamp.
func (c *Controller) SeekToNote(note models.Note) error {
	c.mu.Lock()
	engine := c.engine
	active := c.state == Active
	c.mu.Unlock()

	if engine == nil || !active {
		return shared.ErrEngineNotReady
	}
	return engine.SeekTo(note.Timestamp, true)
}

// clearPointer resets the controller to Idle and clears the persisted
// pointer. Used for dangling pointers; never surfaced as an error.
func (c *Controller) clearPointer() error {
	c.stopTicker()

	c.mu.Lock()
	c.pointer = models.SessionPointer{}
	c.pending = nil
	c.state = Idle
	c.mu.Unlock()

	if err := c.store.SetSessionPointer(models.SessionPointer{}); err != nil {
		return err
	}
	c.emit(Event{Kind: PointerCleared})
	return nil
}

// Close tears the session down: the ticker is cancelled and a best-effort
// final position write is attempted synchronously before returning.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	pointer := c.pointer
	active := c.state == Active
	c.mu.Unlock()

	c.stopTicker()

	if active && pointer.IsSet() {
		c.saveProgress(pointer)
	}
	return nil
}
