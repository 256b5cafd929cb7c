package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ivlev/bulkanim/internal/grid"
	"github.com/ivlev/bulkanim/internal/selection"
)

// Selection is a set of tiles given either as explicit ids or as a
// rectangle in cell units. Rect wins when both are set.
type Selection struct {
	IDs  []int             `yaml:"ids,omitempty"`
	Rect *selection.Extent `yaml:"rect,omitempty"`
}

// Empty reports whether nothing was selected.
func (s Selection) Empty() bool {
	return len(s.IDs) == 0 && s.Rect == nil
}

// Resolve turns the selection into tile ids on g.
func (s Selection) Resolve(g grid.Grid) ([]int, error) {
	if s.Rect != nil {
		return selection.Rect(g, *s.Rect)
	}
	return append([]int(nil), s.IDs...), nil
}

func (s Selection) String() string {
	if s.Rect != nil {
		return "rect " + s.Rect.String()
	}
	parts := make([]string, len(s.IDs))
	for i, id := range s.IDs {
		parts[i] = strconv.Itoa(id)
	}
	return "ids " + strings.Join(parts, ",")
}

// ParseSelection parses "--select 0,1,6-8" and "--rect x,y,w,h" values.
func ParseSelection(ids, rect string) (Selection, error) {
	var sel Selection

	if rect != "" {
		nums, err := parseInts(rect)
		if err != nil {
			return Selection{}, fmt.Errorf("rect: %w", err)
		}
		if len(nums) != 4 {
			return Selection{}, fmt.Errorf("rect: want x,y,w,h, got %q", rect)
		}
		sel.Rect = &selection.Extent{X: nums[0], Y: nums[1], Width: nums[2], Height: nums[3]}
	}

	for _, part := range strings.Split(ids, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			id, err := strconv.Atoi(part)
			if err != nil {
				return Selection{}, fmt.Errorf("select: bad tile id %q", part)
			}
			sel.IDs = append(sel.IDs, id)
			continue
		}
		from, err1 := strconv.Atoi(strings.TrimSpace(lo))
		to, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || to < from {
			return Selection{}, fmt.Errorf("select: bad tile range %q", part)
		}
		for id := from; id <= to; id++ {
			sel.IDs = append(sel.IDs, id)
		}
	}

	return sel, nil
}

func parseInts(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}
