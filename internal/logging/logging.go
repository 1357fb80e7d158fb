// Package logging configures the logrus logger used by the commands.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// The following constants are the accepted values of --log-format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// AddFlags adds --log-level and --log-format to cmd.
func AddFlags(cmd *cobra.Command, level, format *string) {
	cmd.Flags().StringVar(level, "log-level", "info", "set log level (debug, info, warn, error)")
	cmd.Flags().StringVar(format, "log-format", FormatText, "set log format (text, json)")
}

// New creates a logger writing on w.
func New(level, format string, w io.Writer) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger.SetLevel(lvl)
	switch format {
	case FormatText:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case FormatJSON:
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
	return logger, nil
}
