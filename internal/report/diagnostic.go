// Package report formats the diagnostic block printed when an operation
// fails unexpectedly, and the optional per-run statistics.
package report

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"gopkg.in/yaml.v3"
)

// TilesetInfo is the tileset geometry echoed in a diagnostic.
type TilesetInfo struct {
	Path        string
	ImageWidth  int
	ImageHeight int
	TileWidth   int
	TileHeight  int
	Spacing     int
	Margin      int
}

// Diagnostic describes a failed operation.
type Diagnostic struct {
	Action  string
	Err     error
	Version string
	// Config is any value worth echoing (a plan or run config); it is
	// rendered as YAML.
	Config  any
	Tileset *TilesetInfo
	Host    string
}

const rule = "----------------------------------------\n"

// NewDiagnostic fills in host details. Host lookup failures are not fatal.
func NewDiagnostic(ctx context.Context, action string, err error, version string) *Diagnostic {
	return &Diagnostic{
		Action:  action,
		Err:     err,
		Version: version,
		Host:    describeHost(ctx),
	}
}

func describeHost(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	info, err := host.InfoWithContext(ctx)
	if err != nil || info == nil {
		return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	}
	return fmt.Sprintf("%s %s %s (%s, kernel %s)", info.OS, info.Platform, info.PlatformVersion, info.KernelArch, info.KernelVersion)
}

// Format renders the diagnostic for the console or an issue report.
func (d *Diagnostic) Format() string {
	var b strings.Builder

	b.WriteString("Error output from bulkanim (please copy everything below if submitting an issue):\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "%v\n\n", d.Err)
	fmt.Fprintf(&b, "Action: %s\n\n", d.Action)
	fmt.Fprintf(&b, "Version: %s\n", d.Version)
	fmt.Fprintf(&b, "Go: %s\n", runtime.Version())
	if d.Host != "" {
		fmt.Fprintf(&b, "Host: %s\n", d.Host)
	}
	b.WriteString("\n")

	if d.Config != nil {
		if data, err := yaml.Marshal(d.Config); err == nil {
			b.WriteString("Config:\n")
			b.Write(data)
			b.WriteString("\n")
		}
	}

	if ts := d.Tileset; ts != nil {
		b.WriteString("Tileset Information:\n")
		if ts.Path != "" {
			fmt.Fprintf(&b, "Path: %s\n", ts.Path)
		}
		fmt.Fprintf(&b, "Image width: %d\n", ts.ImageWidth)
		fmt.Fprintf(&b, "Image height: %d\n", ts.ImageHeight)
		fmt.Fprintf(&b, "Tile width: %d\n", ts.TileWidth)
		fmt.Fprintf(&b, "Tile height: %d\n", ts.TileHeight)
		fmt.Fprintf(&b, "Tile spacing: %d\n", ts.Spacing)
		fmt.Fprintf(&b, "Margin: %d\n\n", ts.Margin)
	}

	b.WriteString(rule)
	return b.String()
}
