// Package server serves the latest wrapped over HTTP for previewing.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 5 * time.Second

var errNotReady = errors.New("wrapped is not ready yet")

// Server is the preview HTTP server
type Server struct {
	app    *fiber.App
	store  *Store
	logger zerolog.Logger
}

// New creates the preview server and registers its routes
func New(store *Store, logger zerolog.Logger) *Server {
	s := &Server{
		store:  store,
		logger: logger.With().Str("component", "server").Logger(),
	}

	app := fiber.New(fiber.Config{
		AppName:               "groupchat-wrapped",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: s.logger,
		Format: "${status} ${method} ${path} ${latency}\n",
	}))

	app.Get("/", s.handleIndex)
	app.Get("/healthz", s.handleHealth)
	api := app.Group("/api")
	api.Get("/result", s.handleResult)
	api.Get("/categories/:id", s.handleCategory)

	s.app = app
	return s
}

// App exposes the fiber app, mainly for tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("Preview server listening")
		errCh <- s.app.Listen(addr)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info().Msg("Shutting down preview server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down preview server: %w", err)
		}
		return nil
	}
}

func (s *Server) handleIndex(c *fiber.Ctx) error {
	snapshot, ok := s.store.Latest()
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).SendString(errNotReady.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(snapshot.HTML)
}

func (s *Server) handleResult(c *fiber.Ctx) error {
	snapshot, ok := s.store.Latest()
	if !ok {
		return notReady(c)
	}
	return c.JSON(snapshot.Result)
}

func (s *Server) handleCategory(c *fiber.Ctx) error {
	snapshot, ok := s.store.Latest()
	if !ok {
		return notReady(c)
	}

	id := c.Params("id")
	category := snapshot.Result.Category(id)
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": fmt.Sprintf("category %q not found", id),
		})
	}
	return c.JSON(category)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	status := fiber.Map{"status": "ok"}
	if snapshot, ok := s.store.Latest(); ok {
		status["updated_at"] = snapshot.UpdatedAt
		status["title"] = snapshot.Result.ConversationTitle
	}
	return c.JSON(status)
}

func notReady(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": errNotReady.Error(),
	})
}
