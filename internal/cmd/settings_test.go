// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		content          string
		expectedError    error
		expectedSettings *Settings
	}{
		"full settings": {
			content: `
name: bot
file: logs/bot.log
level: WARNING
color: true
rotation:
  maxSizeMB: 10
  maxBackups: 5
  maxAgeDays: 30
`,
			expectedSettings: &Settings{
				Name:  "bot",
				File:  "logs/bot.log",
				Level: "WARNING",
				Color: true,
				Rotation: &RotationSettings{
					MaxSizeMB:  10,
					MaxBackups: 5,
					MaxAgeDays: 30,
				},
			},
		},
		"partial settings": {
			content:          "level: DEBUG\n",
			expectedSettings: &Settings{Level: "DEBUG"},
		},
		"invalid yaml": {
			content:       "level: [\n",
			expectedError: ErrParsing,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc := tc
			t.Parallel()

			path := filepath.Join(t.TempDir(), "botlog.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			settings, err := loadSettings(path)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedSettings, settings)
		})
	}
}

func TestLoadSettingsMissingFile(t *testing.T) {
	t.Parallel()

	_, err := loadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrParsing)
	assert.ErrorIs(t, err, syscall.ENOENT)
}
