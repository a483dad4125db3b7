// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package server

import (
	"encoding/json"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/mia-platform/botlog/logger"
)

// logEntryRequest is the payload accepted by the ingestion route.
type logEntryRequest struct {
	// Name optionally routes the entry through a child of the configured
	// logger, named "<logger>.<name>".
	Name string `json:"name,omitempty"`
	// Level is the severity label of the entry, INFO when missing.
	Level string `json:"level,omitempty"`
	// Message is the text to log.
	Message string `json:"message"`
}

// statusRoutes registers the health endpoints under the /-/ prefix.
func statusRoutes(app *fiber.App, serviceName, version string) {
	status := fiber.Map{
		"name":    serviceName,
		"version": version,
		"status":  "OK",
	}

	app.Get("/-/healthz", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(status)
	})
	app.Get("/-/ready", func(c *fiber.Ctx) error {
		return c.Status(http.StatusOK).JSON(status)
	})
}

// ingestionRoutes registers the route that writes remote entries through log.
func ingestionRoutes(app *fiber.App, log logger.Logger) {
	app.Post("/log", func(c *fiber.Ctx) error {
		var entry logEntryRequest
		if err := json.Unmarshal(c.Body(), &entry); err != nil {
			return badRequest(c, "invalid json body")
		}

		if entry.Message == "" {
			return badRequest(c, "message is required")
		}

		entryLog := log
		if entry.Name != "" {
			entryLog = log.WithName(entry.Name)
		}

		switch logger.LevelFromString(entry.Level) {
		case logger.DEBUG:
			entryLog.Debug(entry.Message)
		case logger.WARNING:
			entryLog.Warning(entry.Message)
		case logger.ERROR:
			entryLog.Error(entry.Message)
		case logger.CRITICAL:
			entryLog.Critical(entry.Message)
		default:
			entryLog.Info(entry.Message)
		}

		return c.SendStatus(http.StatusNoContent)
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(http.StatusBadRequest).JSON(fiber.Map{
		"statusCode": http.StatusBadRequest,
		"error":      http.StatusText(http.StatusBadRequest),
		"message":    message,
	})
}
