package camera

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/frame"
	"github.com/teslashibe/go-camera/pkg/luminosity"
)

// DefaultWaitMillis is the Display wait used by Run callers that do not
// care about input events.
const DefaultWaitMillis = 1

// FrameFunc handles one captured frame inside Run.
// Returning ErrStop ends the loop without an error.
type FrameFunc func(ctx context.Context, f frame.Frame) error

// Stats summarizes a session's activity.
type Stats struct {
	Frames         uint64    `json:"frames"`
	Failures       uint64    `json:"failures"`
	LastLuminosity float64   `json:"last_luminosity"`
	StartedAt      time.Time `json:"started_at"`
	LastFrameAt    time.Time `json:"last_frame_at,omitempty"`
}

// Session drives one capture collaborator for one camera.
//
// The caller owns the collaborator: it opens it before building the session
// and closes it after Release. The session only borrows it, and a single
// collaborator can back at most one session at a time when it implements
// Binder.
type Session struct {
	id       string
	info     Info
	capturer Capturer
	display  Displayer
	out      io.Writer
	logger   *slog.Logger
	paced    bool

	busy atomic.Bool

	mu    sync.RWMutex
	stats Stats
}

// Option configures a Session.
type Option func(*Session)

// WithDisplay attaches a displayer used by Display.
func WithDisplay(d Displayer) Option {
	return func(s *Session) { s.display = d }
}

// WithOutput sets the writer PrintSpecs writes to (stdout by default).
func WithOutput(w io.Writer) Option {
	return func(s *Session) { s.out = w }
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithPacing makes Run wait 1/FPS between captures.
func WithPacing(enabled bool) Option {
	return func(s *Session) { s.paced = enabled }
}

// NewSession builds a session around info and capturer. If the capturer
// implements Binder it is bound to the new session.
func NewSession(info Info, capturer Capturer, opts ...Option) (*Session, error) {
	if capturer == nil {
		return nil, fmt.Errorf("camera: nil capturer")
	}

	s := &Session{
		id:       uuid.NewString(),
		info:     info,
		capturer: capturer,
		out:      os.Stdout,
		stats:    Stats{StartedAt: time.Now()},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Component("camera")
	}
	s.logger = s.logger.With("session", s.id, "camera", info.Name)

	if b, ok := capturer.(Binder); ok {
		if err := b.Bind(s.id); err != nil {
			return nil, err
		}
	}

	s.logger.Debug("session created", "type", info.Type, "index", info.Index, "fps", info.FPS)
	return s, nil
}

// ID returns the session's unique id.
func (s *Session) ID() string {
	return s.id
}

// Release unbinds the collaborator. It does not close it.
func (s *Session) Release() {
	if b, ok := s.capturer.(Binder); ok {
		b.Unbind(s.id)
	}
	s.logger.Debug("session released")
}

// Capture reads one frame from the collaborator. The read is never
// attempted when the collaborator reports it is not open.
func (s *Session) Capture() (frame.Frame, error) {
	if !s.busy.CompareAndSwap(false, true) {
		return frame.Frame{}, ErrSessionBusy
	}
	defer s.busy.Store(false)

	if !s.capturer.IsOpened() {
		s.recordFailure()
		return frame.Frame{}, fmt.Errorf("%w: index %d", ErrCameraUnavailable, s.info.Index)
	}

	f, err := s.capturer.Read()
	if err != nil {
		s.recordFailure()
		return frame.Frame{}, fmt.Errorf("camera: read index %d: %w", s.info.Index, err)
	}
	if f.Empty() {
		s.recordFailure()
		return frame.Frame{}, fmt.Errorf("%w: index %d", ErrEmptyFrameCaptured, s.info.Index)
	}

	s.mu.Lock()
	s.stats.Frames++
	s.stats.LastFrameAt = time.Now()
	s.mu.Unlock()

	return f, nil
}

// Display forwards f to the attached displayer under the camera name.
func (s *Session) Display(f frame.Frame, waitMillis int) error {
	if s.display == nil {
		return ErrNoDisplay
	}
	if err := s.display.Show(s.info.Name, f, waitMillis); err != nil {
		return fmt.Errorf("camera: display %q: %w", s.info.Name, err)
	}
	return nil
}

// Luminosity computes the frame's luminosity and records it in Stats.
func (s *Session) Luminosity(f frame.Frame) (float64, error) {
	lum, err := luminosity.Compute(f)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.stats.LastLuminosity = lum
	s.mu.Unlock()

	return lum, nil
}

// GetSpecs returns a copy of the camera info.
func (s *Session) GetSpecs() Info {
	return s.info
}

// PrintSpecs writes the Describe dump to the session output.
func (s *Session) PrintSpecs() {
	desc := s.info.Describe()
	fmt.Fprintln(s.out, desc)
	s.logger.Debug("printed specs")
}

// Stats returns a snapshot of the session counters.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// Run captures frames and hands them to fn until ctx is cancelled, fn
// returns ErrStop, or a capture or fn call fails. Cancellation is checked
// between frames; a capture already in progress is not interrupted.
func (s *Session) Run(ctx context.Context, fn FrameFunc) error {
	var tick <-chan time.Time
	if s.paced && s.info.FPS > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.info.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	s.logger.Info("capture loop started", "paced", tick != nil)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("capture loop stopped", "reason", ctx.Err(), "frames", s.Stats().Frames)
			return nil
		default:
		}

		f, err := s.Capture()
		if err != nil {
			s.logger.Error("capture failed", "error", err)
			return err
		}

		if err := fn(ctx, f); err != nil {
			if errors.Is(err, ErrStop) {
				s.logger.Info("capture loop stopped", "reason", "stop requested", "frames", s.Stats().Frames)
				return nil
			}
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
	}
}

func (s *Session) recordFailure() {
	s.mu.Lock()
	s.stats.Failures++
	s.mu.Unlock()
}
