package storyboard_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"artifex/internal/services"
	"artifex/internal/storyboard"
	"artifex/internal/youtube"
)

func testSpec(rows, cols int, fps float64, fragments ...string) storyboard.Spec {
	return storyboard.Spec{
		FormatID:  "sb0",
		FPS:       fps,
		Columns:   cols,
		Rows:      rows,
		Width:     16,
		Height:    9,
		Fragments: fragments,
	}
}

func TestSelectFormatPrefersHighestResolution(t *testing.T) {
	info := youtube.Info{Formats: []youtube.Format{
		{FormatID: "sb2", FPS: 1, Columns: 3, Rows: 3, Width: 80, Height: 45, Fragments: []youtube.Fragment{{URL: "u2"}}},
		{FormatID: "sb0", FPS: 0.5, Columns: 5, Rows: 5, Width: 160, Height: 90, Fragments: []youtube.Fragment{{URL: "u0"}}},
		{FormatID: "18", Ext: "mp4"},
	}}
	spec, ok, err := storyboard.SelectFormat(info, "")
	if err != nil || !ok {
		t.Fatalf("SelectFormat returned ok=%v err=%v", ok, err)
	}
	if spec.FormatID != "sb0" || spec.Fragments[0] != "u0" {
		t.Fatalf("selected %+v, want sb0", spec)
	}

	spec, ok, err = storyboard.SelectFormat(info, "2")
	if err != nil || !ok || spec.FormatID != "sb2" {
		t.Fatalf("pinned level selected %+v ok=%v err=%v", spec, ok, err)
	}

	if _, ok, err := storyboard.SelectFormat(info, "sb3"); err != nil || ok {
		t.Fatalf("missing level should report ok=false, got ok=%v err=%v", ok, err)
	}
	if _, _, err := storyboard.SelectFormat(info, "sb9"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for unknown level, got %v", err)
	}
	if _, ok, _ := storyboard.SelectFormat(youtube.Info{}, ""); ok {
		t.Fatal("expected no storyboard for empty info")
	}
}

func TestPlanFullGridYieldsRowsTimesColumns(t *testing.T) {
	for _, tc := range []struct{ rows, cols int }{{1, 1}, {3, 4}, {5, 5}, {10, 10}} {
		spec := testSpec(tc.rows, tc.cols, 0.5)
		bounds := image.Rect(0, 0, tc.cols*spec.Width, tc.rows*spec.Height)
		cells, next := storyboard.Plan(spec, bounds, 0, 0)
		if len(cells) != tc.rows*tc.cols || next != tc.rows*tc.cols {
			t.Fatalf("%dx%d grid: got %d cells next=%d", tc.rows, tc.cols, len(cells), next)
		}
		for i := 1; i < len(cells); i++ {
			gap := cells[i].Timestamp - cells[i-1].Timestamp
			if gap <= 0 || gap-spec.FrameDuration() > 1e-9 || spec.FrameDuration()-gap > 1e-9 {
				t.Fatalf("cell %d timestamp gap %v, want %v", i, gap, spec.FrameDuration())
			}
		}
	}
}

func TestPlanSkipsOutOfBoundsWithoutConsumingIndex(t *testing.T) {
	spec := testSpec(2, 3, 1)
	// Only the first row and two columns fit.
	bounds := image.Rect(0, 0, 2*spec.Width+5, spec.Height+3)
	cells, next := storyboard.Plan(spec, bounds, 10, 0)
	if len(cells) != 2 || next != 12 {
		t.Fatalf("got %d cells next=%d, want 2 and 12", len(cells), next)
	}
	if cells[1].Index != 11 || cells[1].Rect != image.Rect(16, 0, 32, 9) {
		t.Fatalf("unexpected second cell %+v", cells[1])
	}
}

func TestPlanIntervalConsumesIndexes(t *testing.T) {
	spec := testSpec(1, 10, 1)
	bounds := image.Rect(0, 0, 10*spec.Width, spec.Height)
	cells, next := storyboard.Plan(spec, bounds, 0, 3)
	if next != 10 {
		t.Fatalf("next = %d, want 10", next)
	}
	var got []int
	for _, c := range cells {
		got = append(got, c.Index)
	}
	want := []int{0, 3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("kept %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("kept %v, want %v", got, want)
		}
	}
}

func TestFrameNaming(t *testing.T) {
	if got := storyboard.FrameName(7, 65.5); got != "frame_007_01m05s.jpg" {
		t.Fatalf("FrameName = %q", got)
	}
	if got := storyboard.TimestampString(3599.9); got != "59:59" {
		t.Fatalf("TimestampString = %q", got)
	}
	if got := storyboard.FrameName(1234, 3600); got != "frame_1234_60m00s.jpg" {
		t.Fatalf("FrameName = %q", got)
	}
}

func TestAlignPicksNearestFrameFirstOnTies(t *testing.T) {
	frames := []storyboard.Frame{
		{Index: 0, Timestamp: 0, Path: "f0"},
		{Index: 1, Timestamp: 2, Path: "f1"},
		{Index: 2, Timestamp: 4, Path: "f2"},
	}
	segments := []youtube.Segment{{Text: "a", Start: 1}, {Text: "b", Start: 3.5}, {Text: "c", Start: 100}}
	aligned := storyboard.Align(segments, frames)
	want := []int{0, 2, 2}
	for i, seg := range aligned {
		if seg.NearestFrame == nil || *seg.NearestFrame != want[i] {
			t.Fatalf("segment %d aligned to %v, want %d", i, seg.NearestFrame, want[i])
		}
	}
	if aligned[0].NearestFramePath != "f0" {
		t.Fatalf("unexpected path %q", aligned[0].NearestFramePath)
	}
	if segments[0].NearestFrame != nil {
		t.Fatal("Align must not modify its input")
	}
}

func spriteImage(rows, cols, w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, cols*w, rows*h))
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			shade := uint8((row*cols + col) * 20)
			for y := row * h; y < (row+1)*h; y++ {
				for x := col * w; x < (col+1)*w; x++ {
					img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
				}
			}
		}
	}
	return img
}

func TestExtractorWritesFramesAcrossSprites(t *testing.T) {
	var pngSprite, jpegSprite bytes.Buffer
	if err := png.Encode(&pngSprite, spriteImage(2, 2, 16, 9)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	// The last sheet is only partially filled: one row of two cells.
	if err := jpeg.Encode(&jpegSprite, spriteImage(1, 2, 16, 9), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	var gotReferer string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotReferer = r.Header.Get("Referer")
		switch r.URL.Path {
		case "/M0.png":
			_, _ = w.Write(pngSprite.Bytes())
		case "/M1.jpg":
			_, _ = w.Write(jpegSprite.Bytes())
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	spec := testSpec(2, 2, 0.5, server.URL+"/M0.png", server.URL+"/M1.jpg")
	spec.Headers = map[string]string{"Referer": "https://www.youtube.com/"}
	outDir := t.TempDir()
	extractor := &storyboard.Extractor{Getter: youtube.NewFetcher(5*time.Second, "")}
	frames, err := extractor.Extract(context.Background(), spec, outDir, 0)
	if err != nil {
		t.Fatalf("Extract returned error: %v", err)
	}
	if len(frames) != 6 {
		t.Fatalf("expected 6 frames, got %d", len(frames))
	}
	if gotReferer != "https://www.youtube.com/" {
		t.Fatalf("sprite request missing headers, referer=%q", gotReferer)
	}
	last := frames[5]
	if last.Index != 5 || last.Timestamp != 10 || last.TimestampStr != "00:10" {
		t.Fatalf("unexpected last frame %+v", last)
	}
	if filepath.Base(last.Path) != "frame_005_00m10s.jpg" {
		t.Fatalf("unexpected frame path %s", last.Path)
	}
	f, err := os.Open(last.Path)
	if err != nil {
		t.Fatalf("open frame: %v", err)
	}
	defer f.Close()
	cfg, err := jpeg.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if cfg.Width != 16 || cfg.Height != 9 {
		t.Fatalf("frame size %dx%d, want 16x9", cfg.Width, cfg.Height)
	}
}

func TestExtractorReportsBadSprite(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not an image"))
	}))
	defer server.Close()

	extractor := &storyboard.Extractor{Getter: youtube.NewFetcher(5*time.Second, "")}
	_, err := extractor.Extract(context.Background(), testSpec(1, 1, 1, server.URL+"/x"), t.TempDir(), 0)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
