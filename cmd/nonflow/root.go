package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "nonflow",
		Short: "nonflow computes state-point trajectories of closed-system processes",
		Long: `nonflow samples constant-volume, constant-pressure, isothermal, adiabatic and
polytropic processes of a working fluid and prints the resulting T, P, v, s state points.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).Level(level)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log computation details to stderr")
	rootCmd.AddCommand(newComputeCmd(), newFluidsCmd())
	return rootCmd
}

// Execute builds the command tree and runs it against os.Args.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
