package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
)

const (
	flagLogLevel  = "log_level"
	flagLogFormat = "log_format"

	logFormatJSON  = "json"
	logFormatPlain = "plain"
)

// NewRootCmd creates the astrogov command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "astrogov",
		Short:         "Astroport governance genesis tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().AddFlagSet(flagSetLogging())
	rootCmd.AddCommand(GenesisCmd())
	return rootCmd
}

func flagSetLogging() *flag.FlagSet {
	fs := flag.NewFlagSet("", flag.ContinueOnError)
	fs.String(flagLogLevel, zerolog.InfoLevel.String(), "The logging level (trace|debug|info|warn|error|fatal|panic)")
	fs.String(flagLogFormat, logFormatPlain, "The logging format (json|plain)")
	return fs
}

// newLogger writes to stderr so that command output on stdout stays machine readable
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	levelStr, err := cmd.Flags().GetString(flagLogLevel)
	if err != nil {
		return zerolog.Logger{}, err
	}
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return zerolog.Logger{}, errors.Wrap(err, "log level")
	}
	format, err := cmd.Flags().GetString(flagLogFormat)
	if err != nil {
		return zerolog.Logger{}, err
	}
	out := cmd.ErrOrStderr()
	switch strings.ToLower(format) {
	case logFormatJSON:
		return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
	case logFormatPlain:
		return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).Level(level).With().Timestamp().Logger(), nil
	default:
		return zerolog.Logger{}, errors.Errorf("unsupported log format %q", format)
	}
}
