// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/mia-platform/botlog/internal/server"
	"github.com/mia-platform/botlog/logger"
)

const (
	serveCmdUsage = "serve"
	serveCmdShort = "start the log ingestion server"
	serveCmdLong  = `Start the log ingestion server.

	Entries received as JSON on the POST /log route are written to the
	configured file and console sinks. The server is configured through
	the LOG_*, HTTP_HOST, and HTTP_PORT environment variables and stops
	gracefully on SIGINT or SIGTERM.`

	serveCmdExample = `# Serve on the default port writing to bot.log
	botlog serve

	# Serve on a custom port with a rotated file
	HTTP_PORT=8080 LOG_FILE=logs/bot.log LOG_MAX_SIZE_MB=10 botlog serve`

	serveLoggerName = "botlog:serve"
)

// ServeCmd return the "serve" cli command for starting the ingestion server.
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:     serveCmdUsage,
		Short:   heredoc.Doc(serveCmdShort),
		Long:    heredoc.Doc(serveCmdLong),
		Example: heredoc.Doc(serveCmdExample),

		SilenceErrors: true,
		SilenceUsage:  true,

		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runServer(cmd.Context(), newServer); err != nil {
				return handleError(cmd, err)
			}
			return nil
		},
	}
}

// newServer is the server constructor used by runServer. It can be
// overridden for testing purposes.
var newServer = server.NewServer

// runServer starts the ingestion server and blocks until ctx is cancelled
// or a termination signal arrives.
func runServer(ctx context.Context, constructor func(context.Context) (server.Server, error)) error {
	srv, err := constructor(ctx)
	if err != nil {
		return err
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv.StartAsync(signalCtx)
	<-signalCtx.Done()

	log := logger.FromContext(ctx).WithName(serveLoggerName)
	log.Info("shutting down")
	return srv.Stop()
}
