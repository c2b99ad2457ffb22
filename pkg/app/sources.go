package app

import (
	"context"

	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/opencv"
	"github.com/teslashibe/go-camera/pkg/stream"
)

// openDefaultSource dials the remote stream when one is configured and
// opens the local device otherwise.
func openDefaultSource(ctx context.Context, cfg Config, info camera.Info, capture camera.Config) (Source, error) {
	if cfg.Remote != "" {
		src, err := stream.Dial(ctx, cfg.Remote)
		if err != nil {
			return nil, err
		}
		return src, nil
	}

	dev, err := opencv.Open(info.Index, capture)
	if err != nil {
		return nil, err
	}
	return dev, nil
}

func newDefaultWindow() Window {
	return opencv.NewDisplay()
}
