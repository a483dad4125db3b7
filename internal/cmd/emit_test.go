// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/botlog/logger"
)

func TestEmitOptionsValidate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		options       *emitOptions
		expectedError error
	}{
		"valid options": {
			options: &emitOptions{name: "bot"},
		},
		"empty logger name": {
			options:       &emitOptions{},
			expectedError: errEmptyLoggerName,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc := tc
			t.Parallel()

			err := tc.options.validate()
			assert.ErrorIs(t, err, tc.expectedError)
		})
	}
}

func TestEmitExecute(t *testing.T) {
	t.Parallel()

	t.Run("messages from arguments become a single entry", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bot.log")
		console := new(bytes.Buffer)
		opts := &emitOptions{
			name:     "bot",
			filePath: path,
			level:    logger.INFO,
			messages: []string{"bot", "started"},
			console:  console,
			registry: logger.NewRegistry(),
		}

		require.NoError(t, opts.execute(context.Background()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), " - bot - INFO - bot started")
		assert.Contains(t, console.String(), " - bot - INFO - bot started")
	})

	t.Run("each input line becomes an entry", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bot.log")
		opts := &emitOptions{
			name:     "executor",
			filePath: path,
			level:    logger.ERROR,
			input:    strings.NewReader("first line\nsecond line\n"),
			console:  new(bytes.Buffer),
			registry: logger.NewRegistry(),
		}

		require.NoError(t, opts.execute(context.Background()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), " - executor - ERROR - first line")
		assert.Contains(t, string(content), " - executor - ERROR - second line")
	})

	t.Run("debug entries are not filtered out", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bot.log")
		opts := &emitOptions{
			name:     "bot",
			filePath: path,
			level:    logger.DEBUG,
			messages: []string{"verbose detail"},
			console:  new(bytes.Buffer),
			registry: logger.NewRegistry(),
		}

		require.NoError(t, opts.execute(context.Background()))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), " - bot - DEBUG - verbose detail")
	})

	t.Run("open failure surfaces to the caller", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		opts := &emitOptions{
			name:     "bot",
			filePath: filepath.Join(blocker, "bot.log"),
			level:    logger.INFO,
			messages: []string{"never written"},
			console:  new(bytes.Buffer),
			registry: logger.NewRegistry(),
		}

		assert.ErrorIs(t, opts.execute(context.Background()), logger.ErrOpenLogFile)
	})
}

func TestEmitCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	console := new(bytes.Buffer)

	cmd := EmitCmd()
	cmd.SetOut(console)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--name", "svc", "--file", path, "--level", "WARNING", "low margin"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - svc - WARNING - low margin`, string(content))
	assert.Equal(t, string(content), console.String())
}

func TestEmitCommandWithSettings(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "from-settings.log")
	settingsPath := filepath.Join(dir, "botlog.yaml")
	settingsContent := "name: configured\nfile: " + path + "\nlevel: ERROR\n"
	require.NoError(t, os.WriteFile(settingsPath, []byte(settingsContent), 0o644))

	cmd := EmitCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	// --name on the command line wins over the settings file
	cmd.SetArgs([]string{"--config", settingsPath, "--name", "bot", "order rejected"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), " - bot - ERROR - order rejected")
}
