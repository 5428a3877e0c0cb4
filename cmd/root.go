// Package cmd implements CLI commands using cobra framework.
package cmd

import (
	"github.com/spf13/cobra"

	"firestige.xyz/ctbench/internal/config"
	"firestige.xyz/ctbench/internal/log"
)

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ctbench",
	Short: "ctbench - Measurement and replay harness for a connection tracker",
	Long: `ctbench drives a connection-tracking engine with two kinds of workloads:

  benchmark  synthetic multi-threaded load, reporting the wall-clock duration
             of the parallel submission phase
  pcap       replay of a capture file, printing the connection-tracking state
             assigned to every packet

The engine is shared by all workers; batches never are.`,
	Version:      "0.1.0",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file path (optional, defaults apply without one)")

	rootCmd.AddCommand(benchmarkCmd)
	rootCmd.AddCommand(pcapCmd)
}

// setup loads configuration and wires the global logger.
func setup() (*config.GlobalConfig, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if err := log.Init(cfg.Log); err != nil {
		return nil, err
	}
	return cfg, nil
}
