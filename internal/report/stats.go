package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Stats summarizes one completed run.
type Stats struct {
	Build    string
	Action   string
	Tileset  string
	Tiles    int
	Frames   int
	Elapsed  time.Duration
	Finished time.Time
}

// Format renders the console report.
func (s Stats) Format() string {
	return fmt.Sprintf(
		"--- [RUN REPORT] ---\n"+
			"Build: %s\n"+
			"Action: %s\n"+
			"Tiles: %d\n"+
			"Frames: %d\n"+
			"Total Time: %s\n"+
			"--------------------\n",
		s.Build, s.Action, s.Tiles, s.Frames, s.Elapsed.Round(time.Microsecond),
	)
}

// Line renders one log-file entry.
func (s Stats) Line() string {
	return fmt.Sprintf("[%s] Build: %s | Action: %s | Tileset: %s | Tiles: %d | Frames: %d | Total: %s\n",
		s.Finished.Format("2006-01-02 15:04:05"),
		s.Build,
		s.Action,
		filepath.Base(s.Tileset),
		s.Tiles,
		s.Frames,
		s.Elapsed.Round(time.Microsecond),
	)
}

// Append adds the entry to the log file at path.
func (s Stats) Append(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(s.Line()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
