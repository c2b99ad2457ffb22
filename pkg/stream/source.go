// Package stream provides a remote capture source: a websocket peer that
// pushes encoded still frames (JPEG or PNG), one binary message per frame.
package stream

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/gorilla/websocket"

	"github.com/teslashibe/go-camera/internal/log"
	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/frame"
)

const (
	// DefaultHandshakeTimeout bounds the websocket dial.
	DefaultHandshakeTimeout = 10 * time.Second

	// DefaultReadTimeout is how long Read waits for the next frame.
	DefaultReadTimeout = 5 * time.Second

	// maxFrameSize bounds one encoded frame.
	maxFrameSize = 8 * 1024 * 1024
)

// Source reads frames from a websocket peer. It implements camera.Capturer
// and camera.Binder.
type Source struct {
	url         string
	readTimeout time.Duration
	logger      *slog.Logger

	conn   *websocket.Conn
	mu     sync.Mutex // Serializes reads and guards conn
	closed bool

	owner   string
	ownerMu sync.Mutex
}

// Option configures a Source.
type Option func(*Source)

// WithReadTimeout overrides DefaultReadTimeout. Zero waits forever.
func WithReadTimeout(d time.Duration) Option {
	return func(s *Source) { s.readTimeout = d }
}

// Dial connects to a frame stream at url ("ws://host:port/path").
func Dial(ctx context.Context, url string, opts ...Option) (*Source, error) {
	s := &Source{
		url:         url,
		readTimeout: DefaultReadTimeout,
		logger:      log.Component("stream").With("url", url),
	}
	for _, opt := range opts {
		opt(s)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: DefaultHandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("stream connect failed: %w", err)
	}
	conn.SetReadLimit(maxFrameSize)

	s.conn = conn
	s.logger.Info("stream connected")
	return s, nil
}

// IsOpened reports whether the connection is still usable.
func (s *Source) IsOpened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil && !s.closed
}

// Read waits for the next binary message and decodes it. Text messages are
// skipped. A normal close from the peer ends the stream with an empty frame.
func (s *Source) Read() (frame.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || s.closed {
		return frame.Frame{}, camera.ErrCameraUnavailable
	}

	for {
		if s.readTimeout > 0 {
			s.conn.SetReadDeadline(time.Now().Add(s.readTimeout))
		}

		kind, data, err := s.conn.ReadMessage()
		if err != nil {
			s.closed = true
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Info("stream ended by peer")
				return frame.Frame{}, nil
			}
			return frame.Frame{}, fmt.Errorf("stream read: %w", err)
		}
		if kind != websocket.BinaryMessage {
			continue
		}

		return Decode(data)
	}
}

// Decode turns one encoded image into a frame.
func Decode(data []byte) (frame.Frame, error) {
	if len(data) == 0 {
		return frame.Frame{}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return frame.Frame{}, fmt.Errorf("stream decode: %w", err)
	}
	return frame.FromImage(img), nil
}

// Bind claims the source for one session.
func (s *Source) Bind(owner string) error {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()

	if s.owner != "" && s.owner != owner {
		return fmt.Errorf("%w: %s", camera.ErrCollaboratorInUse, s.url)
	}
	s.owner = owner
	return nil
}

// Unbind releases the claim held by owner.
func (s *Source) Unbind(owner string) {
	s.ownerMu.Lock()
	defer s.ownerMu.Unlock()

	if s.owner == owner {
		s.owner = ""
	}
}

// Close sends a close frame and drops the connection.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}

	msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
	s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))

	err := s.conn.Close()
	s.conn = nil
	s.closed = true
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return err
	}
	return nil
}
