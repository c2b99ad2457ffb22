package web

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/disintegration/imaging"

	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/frame"
	"github.com/teslashibe/go-camera/pkg/hub"
)

// Preview is a camera.Displayer that encodes frames as JPEG and pushes
// them to websocket clients. Scaling and quality follow the manager's
// current settings, so dashboard changes apply on the next frame.
type Preview struct {
	hub     *hub.Hub
	manager *camera.Manager

	mu   sync.RWMutex
	last []byte
}

// NewPreview creates a preview broadcasting on h.
func NewPreview(h *hub.Hub, m *camera.Manager) *Preview {
	return &Preview{hub: h, manager: m}
}

// Show encodes f and broadcasts it. waitMillis is ignored; the browser
// has no key events to wait for.
func (p *Preview) Show(window string, f frame.Frame, waitMillis int) error {
	data, err := p.Encode(f)
	if err != nil {
		return fmt.Errorf("preview %q: %w", window, err)
	}

	p.mu.Lock()
	p.last = data
	p.mu.Unlock()

	p.hub.BroadcastBinary(data)
	return nil
}

// Encode scales f to the preview width and encodes it as JPEG.
func (p *Preview) Encode(f frame.Frame) ([]byte, error) {
	img, err := f.ToImage()
	if err != nil {
		return nil, err
	}

	cfg := camera.DefaultConfig()
	if p.manager != nil {
		cfg = p.manager.GetConfig()
	}

	if cfg.PreviewWidth > 0 && img.Bounds().Dx() != cfg.PreviewWidth {
		img = imaging.Resize(img, cfg.PreviewWidth, 0, imaging.Linear)
	}

	quality := cfg.Quality
	if quality <= 0 {
		quality = camera.DefaultConfig().Quality
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Last returns the most recent encoded preview, or nil.
func (p *Preview) Last() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
