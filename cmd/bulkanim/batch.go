package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/bulkanim/internal/config"
	"github.com/ivlev/bulkanim/internal/engine"
)

var workersFlag int

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Run the create and clear jobs of a manifest concurrently",
	Args:  cobra.ExactArgs(1),
	RunE:  runBatch,
}

func init() {
	batchCmd.Flags().IntVarP(&workersFlag, "workers", "w", 0, "Parallel jobs (default: manifest value, then 1)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	m, err := config.LoadManifest(args[0])
	if err != nil {
		return err
	}

	out, err := engine.RunBatch(cmd.Context(), m, workersFlag, version)
	if err != nil {
		return err
	}

	fmt.Printf("--- [BATCH %s] ---\n", out.RunID)
	for _, j := range out.Jobs {
		if j.Err != nil {
			fmt.Printf("[!] %s: %v\n", j.Job, j.Err)
			continue
		}
		r := j.Result
		switch r.Action {
		case "clear":
			fmt.Printf("[+] %s: cleared %d animation(s) -> %s\n", j.Job, r.Cleared, j.Target)
		default:
			fmt.Printf("[+] %s: %d tile(s), %d frame(s) -> %s\n", j.Job, len(r.Animations), r.Frames(), j.Target)
		}
	}
	fmt.Printf("[*] %d job(s), %d failed, %s\n", len(out.Jobs), out.Failed(), out.Elapsed.Round(time.Millisecond))

	if n := out.Failed(); n > 0 {
		return fmt.Errorf("%d of %d jobs failed", n, len(out.Jobs))
	}
	return nil
}
