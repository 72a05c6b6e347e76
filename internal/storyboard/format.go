package storyboard

import (
	"fmt"
	"strings"

	"artifex/internal/services"
	"artifex/internal/youtube"
)

// Levels lists the storyboard format IDs from highest to lowest resolution.
var Levels = []string{"sb0", "sb1", "sb2", "sb3"}

// Spec is the geometry and sprite list of one storyboard format.
type Spec struct {
	FormatID  string
	FPS       float64
	Columns   int
	Rows      int
	Width     int
	Height    int
	Fragments []string
	Headers   map[string]string
}

// FrameDuration is the time covered by one cell.
func (s Spec) FrameDuration() float64 {
	return 1 / s.FPS
}

func (s Spec) usable() bool {
	return s.FPS > 0 && s.Columns > 0 && s.Rows > 0 && s.Width > 0 && s.Height > 0 && len(s.Fragments) > 0
}

// NormalizeLevel accepts "sb2" or "2" and returns the format ID. An empty
// level means automatic selection.
func NormalizeLevel(level string) (string, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return "", nil
	}
	if !strings.HasPrefix(level, "sb") {
		level = "sb" + level
	}
	for _, known := range Levels {
		if level == known {
			return level, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "storyboard", "level", fmt.Sprintf("unknown storyboard level %q (want one of %s)", level, strings.Join(Levels, ", ")), nil)
}

// SelectFormat returns the best storyboard in info, or the one named by
// level when set. The boolean is false when no usable storyboard exists.
func SelectFormat(info youtube.Info, level string) (Spec, bool, error) {
	pinned, err := NormalizeLevel(level)
	if err != nil {
		return Spec{}, false, err
	}
	candidates := Levels
	if pinned != "" {
		candidates = []string{pinned}
	}
	for _, id := range candidates {
		for _, format := range info.Formats {
			if format.FormatID != id {
				continue
			}
			spec := specFromFormat(format)
			if spec.usable() {
				return spec, true, nil
			}
		}
	}
	return Spec{}, false, nil
}

func specFromFormat(format youtube.Format) Spec {
	fragments := make([]string, 0, len(format.Fragments))
	for _, fragment := range format.Fragments {
		if fragment.URL != "" {
			fragments = append(fragments, fragment.URL)
		}
	}
	if len(fragments) == 0 && format.URL != "" {
		fragments = append(fragments, format.URL)
	}
	return Spec{
		FormatID:  format.FormatID,
		FPS:       format.FPS,
		Columns:   format.Columns,
		Rows:      format.Rows,
		Width:     format.Width,
		Height:    format.Height,
		Fragments: fragments,
		Headers:   format.HTTPHeaders,
	}
}
