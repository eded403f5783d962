package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mitranim/sqlfrag/internal/logging"
)

// NewRootCmd creates the root command. Logs go to logOut.
func NewRootCmd(logOut io.Writer) *cobra.Command {
	logCfg := logging.DefaultConfig()
	logCfg.Output = logOut

	logger := zerolog.Nop()

	cmd := &cobra.Command{
		Use:   "sqlfrag",
		Short: "Assemble parametrized SQL",
		Long: `Assemble parametrized SQL from text and arguments.

Every value is bound as a parameter; repeated values share one placeholder.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewWithComponent(logCfg, cmd.Name())
		},
	}

	cmd.PersistentFlags().StringVar(&logCfg.Level, "log-level", logCfg.Level, "Log level: trace, debug, info, warn, error")
	cmd.PersistentFlags().BoolVar(&logCfg.Pretty, "log-pretty", logCfg.Pretty, "Human-readable log output")

	cmd.AddCommand(newRenderCmd(&logger))

	return cmd
}

// Execute runs the root command.
func Execute(stderr io.Writer) error {
	return NewRootCmd(stderr).Execute()
}
