package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/bulkanim/internal/config"
	"github.com/ivlev/bulkanim/internal/engine"
	"github.com/ivlev/bulkanim/internal/prompt"
)

// Selection and edit flags shared by create, clear and inspect.
var (
	selectFlag      string
	rectFlag        string
	outputFlag      string
	directionFlag   string
	strideRightFlag int
	strideDownFlag  int
	framesFlag      int
	durationFlag    int
	forceFlag       bool
	interactiveFlag bool
	dryRunFlag      bool
)

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&selectFlag, "select", "s", "", "Tile ids and ranges, e.g. 0,1,6-8")
	cmd.Flags().StringVar(&rectFlag, "rect", "", "Rectangle of tiles in cells: x,y,w,h")
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create animations for every selected tile",
	RunE:  runCreate,
}

func init() {
	addSelectionFlags(createCmd)
	createCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the result here instead of over the tileset")
	createCmd.Flags().StringVarP(&directionFlag, "direction", "d", "", "Where the frames are: right, down or both (default: the longer image side)")
	createCmd.Flags().IntVar(&strideRightFlag, "stride-right", 0, "Columns between frames (default: selection width)")
	createCmd.Flags().IntVar(&strideDownFlag, "stride-down", 0, "Rows between frames (default: selection height)")
	createCmd.Flags().IntVarP(&framesFlag, "frames", "n", 0, "Frames per tile (0 = as many as fit)")
	createCmd.Flags().IntVar(&durationFlag, "duration", 100, "Duration of each frame in ms")
	createCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Replace existing animations without asking")
	createCmd.Flags().BoolVarP(&interactiveFlag, "interactive", "i", false, "Ask for each setting")
	createCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Compute the animations without writing")
}

// buildConfig resolves the tileset and applies the command's flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := resolveTileset()
	if err != nil {
		return nil, err
	}

	cfg := &config.Config{BuildVersion: version}
	err = cfg.Resolve(config.Flags{
		TilesetPath: path,
		OutputPath:  outputFlag,
		Select:      selectFlag,
		Rect:        rectFlag,
		Direction:   directionFlag,
		StrideRight: intFlag(cmd, "stride-right", strideRightFlag),
		StrideDown:  intFlag(cmd, "stride-down", strideDownFlag),
		Frames:      framesFlag,
		DurationMs:  intFlag(cmd, "duration", durationFlag),
		Force:       forceFlag,
		Interactive: interactiveFlag,
		DryRun:      dryRunFlag,
		LogLevel:    logLevelFlag,
		ShowStats:   statsFlag,
	})
	if err != nil {
		return nil, err
	}
	if cfg.Selection.Empty() {
		return nil, fmt.Errorf("nothing selected: pass --select or --rect")
	}
	return cfg, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var front engine.Front = engine.Scripted{Config: cfg}
	if cfg.Interactive {
		front = prompt.New(os.Stdin, os.Stdout)
	}

	p, err := engine.Open(cfg, front)
	if err != nil {
		return err
	}

	fmt.Printf("[*] Tileset: %s | Selection: %s\n", cfg.TilesetPath, cfg.Selection)
	res, err := p.Create(ctx)
	if err != nil {
		return explain(ctx, p, "Create Animations", nil, err)
	}

	plan := res.Plan
	fmt.Printf("[+] %d tile(s) animated: %s, stride %dx%d, %d frame(s) of %dms\n",
		len(res.Animations), plan.Direction, plan.StrideRight, plan.StrideDown, plan.Frames, plan.DurationMs)
	if res.Written {
		fmt.Printf("[+] Saved: %s\n", res.Output)
	} else {
		for _, a := range res.Animations {
			fmt.Printf("    %d:", a.TileID)
			for _, f := range a.Frames {
				fmt.Printf(" %d", f.TileID)
			}
			fmt.Println()
		}
		fmt.Println("[*] Dry run, nothing written.")
	}

	if cfg.ShowStats {
		fmt.Print(p.RecordStats(res).Format())
	}
	return nil
}
