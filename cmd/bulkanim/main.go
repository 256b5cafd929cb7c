package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/config"
	"github.com/ivlev/bulkanim/internal/engine"
	"github.com/ivlev/bulkanim/internal/fault"
	"github.com/ivlev/bulkanim/internal/logging"
	"github.com/ivlev/bulkanim/internal/tileset"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

// Persistent flags
var (
	tilesetFlag  string
	logLevelFlag string
	statsFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "bulkanim",
	Short: "Generate tile animations for a whole selection of a tileset at once",
	Long: `bulkanim writes frame animations for many tiles of a tileset in one step.
Each selected tile gets a sequence of frames that steps through the image to
the right, downwards, or both, by a fixed stride.

Examples:
  bulkanim create -t water.yaml --rect 0,0,2,2 --direction both
  bulkanim create -t water.yaml --select 0-3 -i
  bulkanim clear -t water.yaml --select 0-3 --force
  bulkanim inspect -t water.yaml --rect 0,0,2,2
  bulkanim batch jobs.yaml --workers 4`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logLevelFlag
		if level == "" {
			level = os.Getenv(config.LogLevelEnv)
		}
		logging.Init(level)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tilesetFlag, "tileset", "t", "", "Tileset document (default: the newest .yaml in the current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error, off (default from "+config.LogLevelEnv+" or info)")
	rootCmd.PersistentFlags().BoolVar(&statsFlag, "stats", false, "Print a run report and append it to "+engine.StatsLog)

	rootCmd.AddCommand(createCmd, clearCmd, inspectCmd, batchCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// errReported is returned by commands that already explained the failure.
var errReported = errors.New("reported")

// resolveTileset falls back to the newest tileset in the working directory.
func resolveTileset() (string, error) {
	if tilesetFlag != "" {
		return tilesetFlag, nil
	}
	latest, err := tileset.FindLatest(".")
	if err != nil {
		return "", fmt.Errorf("%w. Pass --tileset", err)
	}
	fmt.Printf("[*] Selected tileset: %s\n", latest)
	return latest, nil
}

// intFlag returns a pointer to v only when the flag was given.
func intFlag(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

// explain prints err the way the user should see it. Validation failures
// and aborts get one line; anything else gets a full diagnostic.
func explain(ctx context.Context, p *engine.Project, action string, plan *anim.Plan, err error) error {
	if errors.Is(err, engine.ErrAborted) || errors.Is(err, context.Canceled) {
		fmt.Println("[*] Aborting operation.")
		return errReported
	}
	if fe, ok := fault.As(err); ok {
		fmt.Fprintf(os.Stderr, "[!] %s\n", describe(fe))
		return errReported
	}
	if errors.Is(err, engine.ErrNeedsForce) {
		fmt.Fprintf(os.Stderr, "[!] %v\n", err)
		return errReported
	}
	if p == nil {
		return err
	}

	log.Error().Err(err).Str("action", action).Msg("operation failed")
	fmt.Fprint(os.Stderr, p.Diagnostic(ctx, action, err, plan).Format())
	return errReported
}

func describe(fe *fault.Error) string {
	switch fe.Type {
	case fault.ErrTypeEmptySelection:
		return "No tiles are selected."
	case fault.ErrTypeOutOfRange:
		return fmt.Sprintf("%s %d is outside the tileset (limit %d).", fe.Field, fe.Value, fe.Bound)
	case fault.ErrTypeInvalidStride:
		if fe.Value > 0 && fe.Bound > 0 {
			return fmt.Sprintf("%s %d is too large: the maximum is %d.", fe.Field, fe.Value, fe.Bound)
		}
		return fmt.Sprintf("%s: %s.", fe.Field, fe.Message)
	case fault.ErrTypeInvalidFrameCount:
		return fmt.Sprintf("%d frames do not fit: the maximum is %d.", fe.Value, fe.Bound)
	default:
		return fe.Error()
	}
}
