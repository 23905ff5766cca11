package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/securefab/traincore/logger"
)

var (
	flagLogLevel string
	flagLogDir   string
	flagVerbose  bool
)

var rootCmd = &cobra.Command{
	Use:   "traincore",
	Short: "SecureFab training procedure engine",
	Long: `Traincore drives the SecureFab object-placement training exercise:
it loads a procedure definition, tracks which step the learner is on and
validates submitted zone configurations against the step's expected layout.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(flagLogLevel)
		if err != nil {
			logger.Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", flagLogLevel, err)
			level = logrus.InfoLevel
		}
		return logger.Init(flagLogDir, flagVerbose, level)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "write rotated log files to this directory instead of stdout")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
