package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/bulkanim/internal/bounds"
	"github.com/ivlev/bulkanim/internal/engine"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show strides and frame limits for a selection without changing anything",
	RunE:  runInspect,
}

func init() {
	addSelectionFlags(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	p, err := engine.Open(cfg, nil)
	if err != nil {
		return err
	}

	in, err := p.Inspect()
	if err != nil {
		return explain(ctx, p, "Inspect Selection", nil, err)
	}

	fmt.Println("--- [SELECTION] ---")
	fmt.Printf("Grid: %d columns x %d rows\n", in.Grid.Columns, in.Grid.Rows)
	fmt.Printf("Extent: %s (%d tiles)\n", in.Extent, in.Cells)
	fmt.Printf("Rectangular: %t | Square: %t\n", in.Rectangular, in.Square)
	fmt.Printf("Already animated: %d\n", len(in.Animated))
	fmt.Printf("Default stride: right %d, down %d\n", in.DefaultRight, in.DefaultDown)
	fmt.Printf("Max stride: right %d, down %d\n", in.MaxRight, in.MaxDown)
	fmt.Printf("Default direction: %s\n", p.DefaultDirection())
	for _, d := range []bounds.Direction{bounds.Right, bounds.Down, bounds.Both} {
		if n := in.MaxFrames[d]; n > 0 {
			fmt.Printf("Max frames %s: %d\n", d, n)
		} else {
			fmt.Printf("Max frames %s: no room\n", d)
		}
	}
	fmt.Println("-------------------")
	return nil
}
