// package player provides a headless playback engine.
//
// The engine simulates a playhead against the wall clock so the session
// controller can run without an embedded video surface. Position advances
// only while playing; crossing the configured duration flips the engine to
// the ended state and fires the state-change callback, which mirrors the
// asynchronous event delivery of a real embedded player.
package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/cold-cofffeee/focustube/internal/session"
	"github.com/cold-cofffeee/focustube/internal/shared"
)

// Headless is a clock-driven session.Engine implementation.
type Headless struct {
	mu       sync.Mutex
	videoID  string
	position float64
	duration float64
	state    session.PlaybackState
	lastTick time.Time
	onState  func(session.PlaybackState)

	now func() time.Time
}

// Opts contains configuration options for creating a Headless engine.
type Opts struct {
	// Duration is the simulated video length in seconds (default: 300).
	Duration float64
}

// NewHeadless creates an engine in the unstarted state.
func NewHeadless(opts Opts) *Headless {
	if opts.Duration <= 0 {
		opts.Duration = 300
	}
	return &Headless{
		duration: opts.Duration,
		state:    session.Unstarted,
		now:      time.Now,
	}
}

// SetStateChangeFunc registers the state-change callback. Callbacks fire
// outside the engine lock.
func (h *Headless) SetStateChangeFunc(fn func(session.PlaybackState)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onState = fn
}

// Load cues the video and starts playing from zero.
func (h *Headless) Load(videoID string) error {
	if videoID == "" {
		return fmt.Errorf("%w: empty video id", shared.ErrInvalidInput)
	}

	h.mu.Lock()
	h.videoID = videoID
	h.position = 0
	h.state = session.Playing
	h.lastTick = h.now()
	fn := h.onState
	h.mu.Unlock()

	if fn != nil {
		fn(session.Playing)
	}
	return nil
}

// VideoID returns the currently loaded video id.
func (h *Headless) VideoID() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.videoID
}

// CurrentTime returns the playback position in seconds. Calling it also
// advances the simulated playhead.
func (h *Headless) CurrentTime() (float64, error) {
	h.mu.Lock()
	if h.state == session.Unstarted {
		h.mu.Unlock()
		return 0, shared.ErrEngineNotReady
	}
	ended, fn := h.advanceLocked()
	pos := h.position
	h.mu.Unlock()

	if ended && fn != nil {
		fn(session.Ended)
	}
	return pos, nil
}

// SeekTo moves the playhead. Seeking past the duration clamps to it; the
// allowSeekAhead flag exists for interface parity and is ignored.
func (h *Headless) SeekTo(seconds float64, _ bool) error {
	if seconds < 0 {
		return fmt.Errorf("%w: negative seek %v", shared.ErrInvalidInput, seconds)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == session.Unstarted {
		return shared.ErrEngineNotReady
	}
	if seconds > h.duration {
		seconds = h.duration
	}
	h.position = seconds
	h.lastTick = h.now()
	return nil
}

// Play resumes the playhead.
func (h *Headless) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != session.Paused {
		return
	}
	h.state = session.Playing
	h.lastTick = h.now()
}

// Pause freezes the playhead at its current position.
func (h *Headless) Pause() {
	h.mu.Lock()
	ended, fn := h.advanceLocked()
	if h.state == session.Playing {
		h.state = session.Paused
	}
	h.mu.Unlock()

	if ended && fn != nil {
		fn(session.Ended)
	}
}

// PlaybackState returns the engine's current state.
func (h *Headless) PlaybackState() session.PlaybackState {
	h.mu.Lock()
	ended, fn := h.advanceLocked()
	state := h.state
	h.mu.Unlock()

	if ended && fn != nil {
		fn(session.Ended)
		return session.Ended
	}
	return state
}

// advanceLocked moves the playhead forward by the elapsed wall-clock time.
// Returns true when this advance crossed the end of the video; the caller
// fires the callback after releasing the lock.
func (h *Headless) advanceLocked() (bool, func(session.PlaybackState)) {
	if h.state != session.Playing {
		return false, nil
	}

	now := h.now()
	h.position += now.Sub(h.lastTick).Seconds()
	h.lastTick = now

	if h.position < h.duration {
		return false, nil
	}
	h.position = h.duration
	h.state = session.Ended
	return true, h.onState
}
