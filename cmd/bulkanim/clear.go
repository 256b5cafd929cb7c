package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/bulkanim/internal/engine"
	"github.com/ivlev/bulkanim/internal/prompt"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the animations of every selected tile",
	RunE:  runClear,
}

func init() {
	addSelectionFlags(clearCmd)
	clearCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Write the result here instead of over the tileset")
	clearCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Clear without asking")
	clearCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Count the animations without writing")
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	var front engine.Front = engine.Scripted{Config: cfg}
	if !cfg.Force {
		front = prompt.New(os.Stdin, os.Stdout)
	}

	p, err := engine.Open(cfg, front)
	if err != nil {
		return err
	}

	res, err := p.Clear(ctx)
	if err != nil {
		return explain(ctx, p, "Clear Animations", nil, err)
	}

	switch {
	case res.Cleared == 0:
		fmt.Println("[*] No animations found in the selected tiles.")
	case res.Written:
		fmt.Printf("[+] Cleared %d animation(s). Saved: %s\n", res.Cleared, res.Output)
	default:
		fmt.Printf("[*] Dry run: %d animation(s) would be cleared.\n", res.Cleared)
	}

	if cfg.ShowStats && res.Cleared > 0 {
		fmt.Print(p.RecordStats(res).Format())
	}
	return nil
}
