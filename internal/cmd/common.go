// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package cmd

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

var (
	errEmptyLoggerName = errors.New("logger name must not be empty")
	errReadingInput    = errors.New("error reading input")
)

// handleError will do custom print error handling based on the type of error received.
// it will return nil if the command must return 0 exit code, otherwise it will return
// the original error.
func handleError(cmd *cobra.Command, err error) error {
	switch {
	case errors.Is(err, errEmptyLoggerName):
		cmd.PrintErrln(err)
		_ = cmd.Usage() // do not check error as we cannot do much about it
		return err
	default:
		cmd.PrintErrln(err)
		return err
	}
}

// joinMessages renders the command arguments as a single log message.
func joinMessages(messages []string) string {
	return strings.Join(messages, " ")
}
