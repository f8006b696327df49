// Package server runs the packet dispatch loop: one sequential
// consumer of the well-known inbound channel that routes every request
// through the game controller under a single process-wide lock.
package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/BlackWLN/seafight/internal/channel"
	"github.com/BlackWLN/seafight/internal/protocol"
	"github.com/BlackWLN/seafight/internal/services/game"
)

// Config holds server transport settings
type Config struct {
	// PipeDir is the directory holding the server and client FIFOs
	PipeDir string
}

// DefaultConfig returns sensible defaults for the server
func DefaultConfig() Config {
	return Config{PipeDir: channel.DefaultDir}
}

// Server owns the inbound channel and serializes packet handling
type Server struct {
	cfg        Config
	controller *game.Controller
	logger     *slog.Logger

	// mu serializes packet handling end to end; registries are only
	// ever touched while it is held
	mu      sync.Mutex
	inbound *channel.Pipe
}

// New creates a new Server
func New(controller *game.Controller, cfg Config, logger *slog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		controller: controller,
		logger:     logger,
	}
}

// Start creates and opens the server's well-known inbound channel.
// Failure here is the one fatal condition in the system: without the
// inbound channel no client can ever connect.
func (s *Server) Start() error {
	pipe := channel.New(channel.ServerPath(s.cfg.PipeDir))
	if err := pipe.Create(); err != nil {
		return err
	}
	if err := pipe.OpenRead(); err != nil {
		_ = pipe.Remove()
		return err
	}
	s.inbound = pipe

	s.logger.Info("server listening", slog.String("pipe", pipe.Path()))
	return nil
}

// Run consumes inbound packets until the channel is closed. Requests
// from a single client are processed in the order sent; the only
// blocking point is the receive itself, never a send.
func (s *Server) Run(ctx context.Context) error {
	frame := make([]byte, protocol.FrameSize)
	for {
		if err := s.inbound.Receive(frame); err != nil {
			if ctx.Err() != nil || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}

		pkt, err := protocol.Decode(frame)
		if err != nil {
			s.logger.Warn("dropping undecodable frame", slog.String("error", err.Error()))
			continue
		}
		if !pkt.Type.IsRequest() {
			s.logger.Warn("dropping non-request packet",
				slog.String("type", pkt.Type.String()),
				slog.String("sender", pkt.Sender),
			)
			continue
		}

		s.mu.Lock()
		notifs := s.controller.Handle(ctx, pkt)
		s.mu.Unlock()

		// Delivery happens outside the critical section and is
		// fire-and-forget: a dead client loses the notification, the
		// state change stands.
		for _, n := range notifs {
			s.deliver(n)
		}
	}
}

// Shutdown closes and removes the inbound channel, interrupting a
// blocked Run
func (s *Server) Shutdown() error {
	if s.inbound == nil {
		return nil
	}
	closeErr := s.inbound.Close()
	removeErr := s.inbound.Remove()
	if closeErr != nil {
		return closeErr
	}
	return removeErr
}

func (s *Server) deliver(n game.Notification) {
	frame, err := n.Packet.Encode()
	if err != nil {
		s.logger.Error("notification does not fit the wire format",
			slog.String("to", string(n.To)),
			slog.String("type", n.Packet.Type.String()),
			slog.String("error", err.Error()),
		)
		return
	}

	pipe := channel.New(channel.ClientPath(s.cfg.PipeDir, string(n.To)))
	if err := pipe.OpenWrite(); err != nil {
		s.logger.Warn("client channel unavailable, dropping notification",
			slog.String("to", string(n.To)),
			slog.String("type", n.Packet.Type.String()),
		)
		return
	}
	defer func() { _ = pipe.Close() }()

	if err := pipe.Send(frame); err != nil {
		s.logger.Warn("notification delivery failed",
			slog.String("to", string(n.To)),
			slog.String("type", n.Packet.Type.String()),
			slog.String("error", err.Error()),
		)
	}
}
