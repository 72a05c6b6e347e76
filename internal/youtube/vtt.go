package youtube

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

var vttTagPattern = regexp.MustCompile(`<[^>]*>`)

// ParseVTT converts a WebVTT caption track into segments. Inline timing and
// styling tags are removed, and the rolling repeats of automatic captions
// (a cue whose text equals the previous one) are merged.
func ParseVTT(data []byte) ([]Segment, error) {
	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(strings.TrimPrefix(normalized, "\uFEFF"), "WEBVTT") {
		return nil, fmt.Errorf("missing WEBVTT header")
	}
	var segments []Segment
	for _, block := range strings.Split(normalized, "\n\n") {
		lines := strings.Split(strings.Trim(block, "\n"), "\n")
		start, end, idx, ok := cueTiming(lines)
		if !ok {
			continue
		}
		text := cueText(lines[idx+1:])
		if text == "" {
			continue
		}
		if n := len(segments); n > 0 && segments[n-1].Text == text {
			segments[n-1].Duration = end - segments[n-1].Start
			continue
		}
		segments = append(segments, Segment{Text: text, Start: start, Duration: end - start})
	}
	return segments, nil
}

func cueTiming(lines []string) (float64, float64, int, bool) {
	for i, line := range lines {
		if !strings.Contains(line, "-->") {
			continue
		}
		parts := strings.SplitN(line, "-->", 2)
		start, err := parseVTTTimestamp(parts[0])
		if err != nil {
			return 0, 0, 0, false
		}
		endFields := strings.Fields(parts[1])
		if len(endFields) == 0 {
			return 0, 0, 0, false
		}
		end, err := parseVTTTimestamp(endFields[0])
		if err != nil {
			return 0, 0, 0, false
		}
		return start, end, i, true
	}
	return 0, 0, 0, false
}

func cueText(lines []string) string {
	text := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned := strings.TrimSpace(html.UnescapeString(vttTagPattern.ReplaceAllString(line, "")))
		if cleaned != "" {
			text = append(text, cleaned)
		}
	}
	return strings.Join(text, " ")
}

// parseVTTTimestamp accepts "hh:mm:ss.ttt" and "mm:ss.ttt".
func parseVTTTimestamp(value string) (float64, error) {
	value = strings.TrimSpace(value)
	clock, fraction, _ := strings.Cut(value, ".")
	parts := strings.Split(clock, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	var seconds float64
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		seconds = seconds*60 + float64(n)
	}
	if fraction != "" {
		if strings.Trim(fraction, "0123456789") != "" {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		frac, err := strconv.ParseFloat("0."+fraction, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", value)
		}
		seconds += frac
	}
	return seconds, nil
}
