package config

import (
	"os"

	"github.com/ivlev/bulkanim/internal/anim"
	"github.com/ivlev/bulkanim/internal/bounds"
)

// Config is the resolved configuration of one create or clear run.
type Config struct {
	TilesetPath string
	OutputPath  string
	Selection   Selection

	Direction    bounds.Direction
	HasDirection bool
	StrideRight  *int
	StrideDown   *int
	Frames       int
	DurationMs   int

	Force        bool
	Interactive  bool
	DryRun       bool
	LogLevel     string
	ShowStats    bool
	BuildVersion string
}

// Flags holds CLI flag values that override config file settings. Zero
// values mean "not given". Strides and duration are nil unless the flag was
// set, since an explicit 0 must still be rejected.
type Flags struct {
	TilesetPath string
	OutputPath  string
	Select      string
	Rect        string
	Direction   string
	StrideRight *int
	StrideDown  *int
	Frames      int
	DurationMs  *int
	Force       bool
	Interactive bool
	DryRun      bool
	LogLevel    string
	ShowStats   bool
}

// LogLevelEnv names the environment variable read when --log-level is unset.
const LogLevelEnv = "BULKANIM_LOG_LEVEL"

// Resolve applies flags over c and fills in defaults.
func (c *Config) Resolve(flags Flags) error {
	if flags.TilesetPath != "" {
		c.TilesetPath = flags.TilesetPath
	}
	if flags.OutputPath != "" {
		c.OutputPath = flags.OutputPath
	}
	if flags.Select != "" || flags.Rect != "" {
		sel, err := ParseSelection(flags.Select, flags.Rect)
		if err != nil {
			return err
		}
		c.Selection = sel
	}
	if flags.Direction != "" {
		d, err := bounds.ParseDirection(flags.Direction)
		if err != nil {
			return err
		}
		c.Direction = d
		c.HasDirection = true
	}
	if flags.StrideRight != nil {
		c.StrideRight = flags.StrideRight
	}
	if flags.StrideDown != nil {
		c.StrideDown = flags.StrideDown
	}
	if flags.Frames != 0 {
		c.Frames = flags.Frames
	}
	if flags.DurationMs != nil {
		c.DurationMs = *flags.DurationMs
	} else if c.DurationMs == 0 {
		c.DurationMs = anim.DefaultDurationMs
	}
	c.Force = c.Force || flags.Force
	c.Interactive = c.Interactive || flags.Interactive
	c.DryRun = c.DryRun || flags.DryRun
	c.ShowStats = c.ShowStats || flags.ShowStats
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Defaults
	if c.OutputPath == "" {
		c.OutputPath = c.TilesetPath
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(LogLevelEnv)
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}
