package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"firestige.xyz/ctbench/internal/filter"
	"firestige.xyz/ctbench/internal/harness"
	"firestige.xyz/ctbench/internal/log"
	"firestige.xyz/ctbench/internal/source/file"
	"firestige.xyz/ctbench/internal/tracker"
)

const filterSnapLen = 65535

var pcapFilter string

var pcapCmd = &cobra.Command{
	Use:   "pcap file [batch_size]",
	Short: "Replay a capture file through the tracking engine",
	Long: `
Read packets from a pcap file and submit them to the tracking engine,
batch_size (1 by default) per call, with the commit flag set. Prints the
connection-tracking state of each packet, one sequence-numbered line per
packet in capture order.

Examples:
  ctbench pcap traffic.pcap             # one packet per submission
  ctbench pcap traffic.pcap 16          # read and group 16 at a time
  ctbench pcap traffic.pcap -f "udp"    # replay only UDP packets
`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runPcap,
}

func init() {
	pcapCmd.Flags().StringVarP(&pcapFilter, "filter", "f", "",
		"BPF expression applied before batching (default from config)")
}

func runPcap(cmd *cobra.Command, args []string) error {
	cfg, err := setup()
	if err != nil {
		return err
	}

	// An unreadable capture means there is nothing to do, not a failure.
	src, err := file.Open(args[0])
	if err != nil {
		log.GetLogger().WithError(err).Warn("cannot open capture, nothing to replay")
		return nil
	}
	defer src.Close()

	rc := harness.ReplayConfig{
		BatchSize: cfg.Replay.BatchSize,
		Zone:      cfg.Engine.Zone,
	}
	if len(args) > 1 {
		batchSize, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid batch_size %q: %w", args[1], err)
		}
		rc.BatchSize = int(batchSize)
	}
	if err := rc.Validate(); err != nil {
		return err
	}

	expr := cfg.Replay.Filter
	if pcapFilter != "" {
		expr = pcapFilter
	}
	var flt filter.Filter
	if expr != "" {
		flt, err = filter.Compile(expr, filterSnapLen)
		if err != nil {
			return err
		}
	}

	engine := tracker.New(tracker.Options{MaxConns: cfg.Engine.MaxConns})
	defer engine.Close()

	return harness.NewReplay(rc, engine, src, flt, cmd.OutOrStdout()).Run()
}
