package youtube

import (
	"fmt"
	"regexp"
	"strings"

	"artifex/internal/services"
)

var (
	embeddedIDPattern = regexp.MustCompile(`(?:v=|/v/|youtu\.be/|/embed/|/shorts/)([A-Za-z0-9_-]{11})`)
	bareIDPattern     = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
)

// ParseVideoID extracts the 11-character video ID from a watch, short, embed
// or youtu.be URL, or accepts a bare ID.
func ParseVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if m := embeddedIDPattern.FindStringSubmatch(input); m != nil {
		return m[1], nil
	}
	if bareIDPattern.MatchString(input) {
		return input, nil
	}
	return "", services.Wrap(services.ErrValidation, "youtube", "video id", fmt.Sprintf("could not extract video ID from %q", input), nil)
}

// WatchURL returns the canonical watch page for id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}
