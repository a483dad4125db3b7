// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/botlog/logger"
)

const (
	emitCmdUsage = "emit [MESSAGE...]"
	emitCmdShort = "write log entries to a file and to the console"
	emitCmdLong  = `Write log entries to a file and to the console.

	Messages passed as arguments are logged as a single entry; without
	arguments every line read from standard input becomes an entry. The
	target file, the logger name, and the severity of the entries can be
	set with flags or with a YAML settings file, flags win over the file.`

	emitCmdExample = `# Log a single message as the "bot" logger
	botlog emit "bot started"

	# Log an error to a custom file, creating missing directories
	botlog emit --name executor --file logs/bot.log --level ERROR "order rejected"

	# Log every line produced by another process
	./trading-bot | botlog emit --config botlog.yaml`

	nameFlagName  = "name"
	nameFlagShort = "n"
	nameFlagUsage = "name of the logger emitted on every line"
	defaultName   = "bot"

	fileFlagName  = "file"
	fileFlagShort = "f"
	fileFlagUsage = "path of the log file, parent directories are created when missing"

	levelFlagName  = "level"
	levelFlagShort = "l"
	levelFlagUsage = "severity of the emitted entries (DEBUG, INFO, WARNING, ERROR, CRITICAL)"

	colorFlagName  = "color"
	colorFlagUsage = "colorize console lines by severity"

	settingsFlagName  = "config"
	settingsFlagShort = "c"
	settingsFlagUsage = "path to a YAML settings file"

	rotateSizeFlagName    = "rotate-size"
	rotateSizeFlagUsage   = "rotate the log file after it reaches this size in megabytes (0 disables rotation)"
	rotateBackupsFlagName = "rotate-backups"
	rotateBackupsUsage    = "number of rotated files to retain"
	rotateAgeFlagName     = "rotate-age"
	rotateAgeFlagUsage    = "number of days a rotated file is retained"
)

// emitFlags holds the flags for the "emit" command.
type emitFlags struct {
	name          string
	filePath      string
	level         string
	color         bool
	settingsPath  string
	rotateSizeMB  int
	rotateBackups int
	rotateAgeDays int
}

// EmitCmd return the "emit" cli command for writing log entries.
func EmitCmd() *cobra.Command {
	flags := &emitFlags{}
	cmd := &cobra.Command{
		Use:     emitCmdUsage,
		Short:   heredoc.Doc(emitCmdShort),
		Long:    heredoc.Doc(emitCmdLong),
		Example: heredoc.Doc(emitCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.toOptions(cmd, args)
			if err != nil {
				return handleError(cmd, err)
			}

			if err := opts.validate(); err != nil {
				return handleError(cmd, err)
			}

			if err := opts.execute(cmd.Context()); err != nil {
				return handleError(cmd, err)
			}

			return nil
		},
	}

	flags.addFlags(cmd)
	return cmd
}

// addFlags adds the cli flags to the cobra command.
func (f *emitFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.name, nameFlagName, nameFlagShort, defaultName, nameFlagUsage)
	cmd.Flags().StringVarP(&f.filePath, fileFlagName, fileFlagShort, "", fileFlagUsage)
	cmd.Flags().StringVarP(&f.level, levelFlagName, levelFlagShort, logger.INFO.String(), levelFlagUsage)
	cmd.Flags().BoolVar(&f.color, colorFlagName, false, colorFlagUsage)
	cmd.Flags().StringVarP(&f.settingsPath, settingsFlagName, settingsFlagShort, "", settingsFlagUsage)
	cmd.Flags().IntVar(&f.rotateSizeMB, rotateSizeFlagName, 0, rotateSizeFlagUsage)
	cmd.Flags().IntVar(&f.rotateBackups, rotateBackupsFlagName, 0, rotateBackupsUsage)
	cmd.Flags().IntVar(&f.rotateAgeDays, rotateAgeFlagName, 0, rotateAgeFlagUsage)
}

// toOptions converts the emit flags to emitOptions enriching it with the
// passed arguments. Settings file values apply first, explicitly set flags
// override them.
func (f *emitFlags) toOptions(cmd *cobra.Command, args []string) (*emitOptions, error) {
	opts := &emitOptions{
		name:     f.name,
		filePath: f.filePath,
		level:    logger.LevelFromString(f.level),
		color:    f.color,
		messages: args,
		input:    cmd.InOrStdin(),
		console:  cmd.OutOrStdout(),
		registry: logger.NewRegistry(),
	}

	if f.rotateSizeMB > 0 {
		opts.rotation = &logger.RotationConfig{
			MaxSizeMB:  f.rotateSizeMB,
			MaxBackups: f.rotateBackups,
			MaxAgeDays: f.rotateAgeDays,
		}
	}

	if f.settingsPath == "" {
		return opts, nil
	}

	settings, err := loadSettings(f.settingsPath)
	if err != nil {
		return nil, err
	}
	opts.applySettings(cmd, settings)

	return opts, nil
}
