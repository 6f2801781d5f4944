package web

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"ppg-monitor/pkg/hub"
	"ppg-monitor/pkg/ingest"
	"ppg-monitor/pkg/monitor"
	"ppg-monitor/pkg/storage"
)

func errorBody(message string, err error) fiber.Map {
	m := fiber.Map{"status": "error", "message": message}
	if err != nil {
		m["error"] = err.Error()
	}
	return m
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// handleData appends one raw sensor row to the CSV log
func (s *Server) handleData(c *fiber.Ctx) error {
	r, err := ingest.DecodeReading(c.Body(), s.now())
	if errors.Is(err, ingest.ErrInvalidJSON) {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Invalid JSON", err))
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Invalid payload", err))
	}

	if err := s.recorder.Submit(c.UserContext(), r); err != nil {
		s.logger.Error("queue reading failed", "reading", r.String(), "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorBody("Could not record reading", err))
	}
	return c.JSON(fiber.Map{"status": "ok", "received": r})
}

func (s *Server) handleDownload(c *fiber.Ctx) error {
	rc, err := s.store.Open()
	if errors.Is(err, storage.ErrCSVNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(errorBody("CSV file not found", nil))
	}
	if err != nil {
		s.logger.Error("open csv failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody("Could not read CSV file", err))
	}
	c.Attachment(DownloadName)
	return c.SendStream(rc)
}

// handlePPG pushes one IR sample stamped with its arrival time
func (s *Server) handlePPG(c *fiber.Ctx) error {
	sample, err := ingest.DecodePPG(c.Body(), s.now())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("Invalid JSON", err))
	}
	s.buffer.Push(sample.Timestamp, sample.IR)
	return c.JSON(fiber.Map{"status": "ok", "buffer_size": s.buffer.Len()})
}

func (s *Server) handleBPM(c *fiber.Ctx) error {
	return c.JSON(monitor.Current(s.buffer, s.estimator, s.now()))
}

func (s *Server) handleSignal(c *fiber.Ctx) error {
	u := monitor.Current(s.buffer, s.estimator, s.now())
	return c.JSON(fiber.Map{
		"values": s.buffer.Recent(s.displaySize),
		"bpm":    u.BPM,
	})
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	u := monitor.Current(s.buffer, s.estimator, s.now())
	var buf bytes.Buffer
	err := dashboard.Execute(&buf, dashboardData{
		BPM:     u.BPM.String(),
		Samples: u.Samples,
		Values:  s.buffer.Recent(s.displaySize),
		Live:    s.hub != nil,
	})
	if err != nil {
		s.logger.Error("render dashboard failed", "error", err)
		return fiber.ErrInternalServerError
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// handleBPMWS sends the current estimate, then streams hub updates
func (s *Server) handleBPMWS(conn *websocket.Conn) {
	if err := conn.WriteJSON(monitor.Current(s.buffer, s.estimator, s.now())); err != nil {
		conn.Close()
		return
	}
	hub.NewClient(s.hub, conn).Run()
}
