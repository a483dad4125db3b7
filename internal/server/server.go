// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/botlog/internal/info"
	"github.com/mia-platform/botlog/logger"
)

const (
	serviceName = "botlog"
	loggerName  = "botlog:server"
)

type Server interface {
	Start() error
	Stop() error
	StartAsync(ctx context.Context)
}

type impServer struct {
	Config

	app *fiber.App
}

var (
	ErrServerListen   = errors.New("server listen error")
	ErrServerShutdown = errors.New("server shutdown error")
)

// NewServer builds the ingestion server from the environment configuration.
// The entries received on the ingestion route are written through a
// registry-backed logger configured with the LOG_* variables; the server
// itself logs through the logger found in ctx.
func NewServer(ctx context.Context) (Server, error) {
	cfg, err := LoadServerConfig()
	if err != nil {
		return nil, err
	}

	sinkOpts := []logger.Option{
		logger.WithFilePath(cfg.LogFile),
		logger.WithLevel(logger.LevelFromString(cfg.LogLevel)),
	}
	if cfg.LogMaxSizeMB > 0 {
		sinkOpts = append(sinkOpts, logger.WithRotation(logger.RotationConfig{
			MaxSizeMB:  cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAgeDays: cfg.LogMaxAgeDays,
		}))
	}

	ingestionLog, err := logger.Setup(cfg.LogName, sinkOpts...)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: cfg.DisableStartupMessage,
		Immutable:             true, // ensure that accessing request body returns a copy that is valid after the request lifecycle (accessing body and headers in goroutines in the request handlers)
	})
	log := logger.FromContext(ctx)
	app.Use(logger.RequestMiddlewareLogger(log, []string{"/-/"}))

	statusRoutes(app, serviceName, info.Version)
	ingestionRoutes(app, ingestionLog)

	return &impServer{
		app:    app,
		Config: *cfg,
	}, nil
}

func (s *impServer) Start() error {
	if err := s.app.Listen(fmt.Sprintf("%s:%s", s.HTTPHost, s.HTTPPort)); err != nil {
		return fmt.Errorf("%w: %w", ErrServerListen, err)
	}
	return nil
}

func (s *impServer) Stop() error {
	if err := s.app.Shutdown(); err != nil {
		return fmt.Errorf("%w: %w", ErrServerShutdown, err)
	}
	return nil
}

func (s *impServer) StartAsync(ctx context.Context) {
	log := logger.FromContext(ctx).WithName(loggerName)
	go func() {
		if err := s.Start(); err != nil {
			log.Error(err.Error())
		}
	}()
}
