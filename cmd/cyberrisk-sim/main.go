package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Manthanbhanushali010/Stochastic-Cyber-Risk-Simulation-Application/internal/obslog"
)

var (
	cfgFile string
	verbose bool
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "cyberrisk-sim",
	Short: "Monte Carlo aggregate loss simulation for cyber risk",
	Long: `cyberrisk-sim runs Monte Carlo aggregate-loss simulations over a
frequency/severity model, applies policy and reinsurance terms to each
simulated year, and reports risk metrics (VaR, TVaR, exceedance curve).`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
}

func initLogging() {
	level := obslog.LevelEvent
	if verbose {
		level = obslog.LevelVerbose
	}
	obslog.Verbosity = level
	obslog.Init(zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger())
}

func main() {
	cobra.OnInitialize(initLogging)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
