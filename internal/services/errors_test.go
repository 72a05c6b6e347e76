package services_test

import (
	"errors"
	"strings"
	"testing"

	"artifex/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "rasterize", "pdftoppm", "render failed", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"rasterize", "pdftoppm", "render failed"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutDetail(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected default marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "command failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestKindMapping(t *testing.T) {
	cases := map[string]error{
		"dependency_missing": services.Wrap(services.ErrDependencyMissing, "ocr", "", "tesseract", nil),
		"overwrite_refused":  services.Wrap(services.ErrOverwriteRefused, "ocr", "", "manifest.json", nil),
		"no_data":            services.Wrap(services.ErrNoData, "transcript", "", "no captions", nil),
		"validation":         services.Wrap(services.ErrValidation, "ocr", "pages", "bad", nil),
		"external_tool":      errors.New("plain"),
	}
	for want, err := range cases {
		if got := services.Kind(err); got != want {
			t.Fatalf("Kind(%v) = %q, want %q", err, got, want)
		}
	}
	if got := services.Kind(nil); got != "" {
		t.Fatalf("expected empty kind for nil, got %q", got)
	}
}
