// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mia-platform/botlog/logger"
)

// emitOptions holds the options set for the current emit invocation.
type emitOptions struct {
	name     string
	filePath string
	level    logger.Level
	color    bool
	rotation *logger.RotationConfig

	messages []string
	input    io.Reader
	console  io.Writer
	registry *logger.Registry
}

// applySettings overlays the values read from the settings file, keeping the
// flags the user set explicitly on the command line.
func (o *emitOptions) applySettings(cmd *cobra.Command, settings *Settings) {
	flags := cmd.Flags()

	if settings.Name != "" && !flags.Changed(nameFlagName) {
		o.name = settings.Name
	}
	if settings.File != "" && !flags.Changed(fileFlagName) {
		o.filePath = settings.File
	}
	if settings.Level != "" && !flags.Changed(levelFlagName) {
		o.level = logger.LevelFromString(settings.Level)
	}
	if settings.Color && !flags.Changed(colorFlagName) {
		o.color = true
	}
	if settings.Rotation != nil && !flags.Changed(rotateSizeFlagName) {
		o.rotation = &logger.RotationConfig{
			MaxSizeMB:  settings.Rotation.MaxSizeMB,
			MaxBackups: settings.Rotation.MaxBackups,
			MaxAgeDays: settings.Rotation.MaxAgeDays,
		}
	}
}

// validate validates the emit options and returns an error if something is wrong.
func (o *emitOptions) validate() error {
	if o.name == "" {
		return errEmptyLoggerName
	}

	return nil
}

// execute configures the logger and writes every message through it.
func (o *emitOptions) execute(ctx context.Context) error {
	setupOpts := []logger.Option{
		logger.WithConsole(o.console),
		// the threshold matches the emit severity so entries are never filtered
		logger.WithLevel(o.level),
	}
	if o.filePath != "" {
		setupOpts = append(setupOpts, logger.WithFilePath(o.filePath))
	}
	if o.color {
		setupOpts = append(setupOpts, logger.WithColor())
	}
	if o.rotation != nil {
		setupOpts = append(setupOpts, logger.WithRotation(*o.rotation))
	}

	log, err := o.registry.Setup(o.name, setupOpts...)
	if err != nil {
		return err
	}

	if len(o.messages) > 0 {
		o.emit(log, joinMessages(o.messages))
		return nil
	}

	scanner := bufio.NewScanner(o.input)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		o.emit(log, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("%w: %w", errReadingInput, err)
	}
	return nil
}

// emit writes message at the severity selected for this invocation.
func (o *emitOptions) emit(log logger.Logger, message string) {
	switch o.level {
	case logger.DEBUG:
		log.Debug(message)
	case logger.WARNING:
		log.Warning(message)
	case logger.ERROR:
		log.Error(message)
	case logger.CRITICAL:
		log.Critical(message)
	default:
		log.Info(message)
	}
}
