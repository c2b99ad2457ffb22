package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/teslashibe/go-camera/pkg/camera"
	"github.com/teslashibe/go-camera/pkg/hub"
)

// SpecsResponse is returned by /api/specs.
type SpecsResponse struct {
	camera.Info
	Description string `json:"description"`
}

// handleStatus returns session stats
func (s *Server) handleStatus(c *fiber.Ctx) error {
	status, ok := s.status()
	if !ok {
		return noSession(c)
	}
	return c.JSON(status)
}

// handleSpecs returns the camera identity and its text dump
func (s *Server) handleSpecs(c *fiber.Ctx) error {
	status, ok := s.status()
	if !ok {
		return noSession(c)
	}
	return c.JSON(SpecsResponse{
		Info:        status.Camera,
		Description: status.Camera.Describe(),
	})
}

// handleTypes lists the registered camera type names
func (s *Server) handleTypes(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"types": s.registry.Names()})
}

// handleSnapshot returns the latest preview JPEG
func (s *Server) handleSnapshot(c *fiber.Ctx) error {
	data := s.preview.Last()
	if data == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "no frame captured yet",
		})
	}
	c.Set(fiber.HeaderContentType, "image/jpeg")
	return c.Send(data)
}

// handleGetSettings returns the current capture settings
func (s *Server) handleGetSettings(c *fiber.Ctx) error {
	if s.manager == nil {
		return noManager(c)
	}
	return c.JSON(s.manager.GetConfigJSON())
}

// handleUpdateSettings applies a partial settings update
func (s *Server) handleUpdateSettings(c *fiber.Ctx) error {
	if s.manager == nil {
		return noManager(c)
	}

	var params map[string]interface{}
	if err := c.BodyParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON body",
		})
	}

	if err := s.manager.UpdateConfig(params); err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, camera.ErrInvalidCameraConfig) {
			status = fiber.StatusBadRequest
		}
		s.logger.Warn("settings update rejected", "error", err)
		return c.Status(status).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(s.manager.GetConfigJSON())
}

// handlePresets lists the named presets
func (s *Server) handlePresets(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"presets": camera.PresetNames()})
}

// handleCapabilities returns the settings ranges
func (s *Server) handleCapabilities(c *fiber.Ctx) error {
	return c.JSON(camera.Capabilities())
}

// handleHubWS attaches a websocket connection to h until it closes.
func (s *Server) handleHubWS(h *hub.Hub) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		client := hub.NewClient(h, conn)
		if client == nil {
			conn.Close()
			return
		}
		client.Run()
	}
}

func noSession(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "no camera session attached",
	})
}

func noManager(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": "settings not available",
	})
}
