package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"artifex/internal/services"
)

// Segment is one caption cue. Storyboard alignment fills the nearest frame.
type Segment struct {
	Text             string  `json:"text"`
	Start            float64 `json:"start"`
	Duration         float64 `json:"duration"`
	NearestFrame     *int    `json:"nearest_frame,omitempty"`
	NearestFramePath string  `json:"nearest_frame_path,omitempty"`
}

// Getter downloads a URL with optional request headers.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) ([]byte, error)
}

// CaptionLanguages returns the caption keys to try for lang: the tag itself,
// its base language, then English.
func CaptionLanguages(lang string) []string {
	lang = strings.TrimSpace(lang)
	candidates := make([]string, 0, 3)
	add := func(code string) {
		for _, existing := range candidates {
			if existing == code {
				return
			}
		}
		candidates = append(candidates, code)
	}
	if lang != "" {
		add(lang)
		if tag, err := language.Parse(lang); err == nil {
			if base, confidence := tag.Base(); confidence != language.No {
				add(base.String())
			}
		}
	}
	add("en")
	return candidates
}

// SelectCaptions picks the caption track for lang. Manual subtitles win over
// automatic captions; within the chosen list json3 is preferred, then vtt,
// then the first track.
func SelectCaptions(info Info, lang string) (Track, bool) {
	languages := CaptionLanguages(lang)
	for _, source := range []map[string][]Track{info.Subtitles, info.AutomaticCaptions} {
		for _, code := range languages {
			if tracks := source[code]; len(tracks) > 0 {
				return preferredTrack(tracks)
			}
		}
	}
	return Track{}, false
}

func preferredTrack(tracks []Track) (Track, bool) {
	for _, ext := range []string{"json3", "vtt"} {
		for _, t := range tracks {
			if t.Ext == ext && t.URL != "" {
				return t, true
			}
		}
	}
	if tracks[0].URL == "" {
		return Track{}, false
	}
	return tracks[0], true
}

type json3Doc struct {
	Events []struct {
		TStartMs    float64 `json:"tStartMs"`
		DDurationMs float64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseJSON3 converts a json3 caption document into segments. Events without
// segs or with blank text are skipped.
func ParseJSON3(data []byte) ([]Segment, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse json3 captions: %w", err)
	}
	segments := make([]Segment, 0, len(doc.Events))
	for _, event := range doc.Events {
		if event.Segs == nil {
			continue
		}
		var b strings.Builder
		for _, seg := range event.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		segments = append(segments, Segment{
			Text:     text,
			Start:    event.TStartMs / 1000,
			Duration: event.DDurationMs / 1000,
		})
	}
	return segments, nil
}

// FetchTranscript selects, downloads and parses the caption track for lang.
// It returns ErrNoData when the video has no usable captions.
func FetchTranscript(ctx context.Context, getter Getter, info Info, lang string) ([]Segment, error) {
	track, ok := SelectCaptions(info, lang)
	if !ok {
		return nil, services.Wrap(services.ErrNoData, "transcript", "select captions", fmt.Sprintf("no captions for %s", strings.Join(CaptionLanguages(lang), ", ")), nil)
	}
	data, err := getter.Get(ctx, track.URL, nil)
	if err != nil {
		return nil, err
	}
	var segments []Segment
	if track.Ext == "vtt" {
		segments, err = ParseVTT(data)
	} else {
		segments, err = ParseJSON3(data)
	}
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "transcript", "parse captions", track.Ext, err)
	}
	if len(segments) == 0 {
		return nil, services.Wrap(services.ErrNoData, "transcript", "parse captions", "caption track is empty", nil)
	}
	return segments, nil
}

// PlainText joins segment texts with newlines.
func PlainText(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, s := range segments {
		lines = append(lines, s.Text)
	}
	return strings.Join(lines, "\n")
}
