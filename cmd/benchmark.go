package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"firestige.xyz/ctbench/internal/harness"
	"firestige.xyz/ctbench/internal/tracker"
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark n_threads n_pkts batch_size [change_connection]",
	Short: "Measure sustained multi-threaded submission throughput",
	Long: `
Start n_threads workers, each submitting n_pkts packets to the tracking
engine, batch_size per call, and report the wall-clock duration of the
parallel phase. With change_connection set to a non-zero value, every packet
in a batch belongs to a distinct flow instead of one shared flow.

Examples:
  ctbench benchmark 4 1000000 32        # 4 workers, one flow per worker
  ctbench benchmark 4 1000000 32 1      # distinct flow per packet
`,
	Args: cobra.RangeArgs(3, 4),
	RunE: runBenchmark,
}

func runBenchmark(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	bc, err := parseBenchArgs(args)
	if err != nil {
		return err
	}
	bc.Zone = cfg.Engine.Zone

	engine := tracker.New(tracker.Options{MaxConns: cfg.Engine.MaxConns})
	defer engine.Close()

	elapsed, err := harness.NewBenchmark(bc, engine).Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "conntrack:  %5d ms\n", elapsed.Milliseconds())
	return nil
}

// parseBenchArgs converts the positional arguments into a validated
// configuration, before any engine or worker exists.
func parseBenchArgs(args []string) (harness.BenchConfig, error) {
	var cfg harness.BenchConfig

	threads, err := strconv.ParseUint(args[0], 0, 32)
	if err != nil {
		return cfg, fmt.Errorf("invalid n_threads %q: %w", args[0], err)
	}
	pkts, err := strconv.ParseUint(args[1], 0, 32)
	if err != nil {
		return cfg, fmt.Errorf("invalid n_pkts %q: %w", args[1], err)
	}
	batchSize, err := strconv.ParseUint(args[2], 0, 32)
	if err != nil {
		return cfg, fmt.Errorf("invalid batch_size %q: %w", args[2], err)
	}

	cfg.Threads = int(threads)
	cfg.Packets = int(pkts)
	cfg.BatchSize = int(batchSize)

	if len(args) > 3 {
		change, err := strconv.ParseUint(args[3], 0, 32)
		if err != nil {
			return cfg, fmt.Errorf("invalid change_connection %q: %w", args[3], err)
		}
		cfg.ChangeConnection = change != 0
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
