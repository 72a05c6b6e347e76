package pdftoppm

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"artifex/internal/services"
	"artifex/internal/testsupport"
)

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		flags  int
	}{
		{"jpg", "jpg", 3},
		{"JPEG", "jpg", 3},
		{"png", "png", 1},
		{"tiff", "tif", 1},
	}
	for _, tt := range tests {
		ext, flags, err := NormalizeFormat(tt.format, 85)
		if err != nil {
			t.Fatalf("NormalizeFormat(%q): %v", tt.format, err)
		}
		if ext != tt.ext || len(flags) != tt.flags {
			t.Fatalf("NormalizeFormat(%q) = %q %v", tt.format, ext, flags)
		}
	}
	if _, _, err := NormalizeFormat("webp", 85); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for webp, got %v", err)
	}
}

func TestRenderRenamesToRequestedExtension(t *testing.T) {
	dir := t.TempDir()
	bin := testsupport.WriteScript(t, filepath.Join(dir, "pdftoppm"), testsupport.FakePdftoppm)
	out := filepath.Join(dir, "images", "page-0002.jpeg")
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := New(bin).Render(context.Background(), Request{Input: "doc.pdf", Page: 2, DPI: 150, Format: "jpeg", Quality: 80, OutPath: out})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != out {
		t.Fatalf("expected %s, got %s", out, got)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "page 2\n" {
		t.Fatalf("unexpected stub output %q", data)
	}
	if _, err := os.Stat(filepath.Join(dir, "images", "page-0002.jpg")); !os.IsNotExist(err) {
		t.Fatal("intermediate file should have been renamed")
	}
}

func TestRenderPNGReturnsBytes(t *testing.T) {
	bin := testsupport.WriteScript(t, filepath.Join(t.TempDir(), "pdftoppm"), testsupport.FakePdftoppm)
	data, err := New(bin).RenderPNG(context.Background(), "doc.pdf", 7, 300)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "page 7\n" {
		t.Fatalf("unexpected bytes %q", data)
	}
}

func TestRenderMissingBinary(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope")).Render(context.Background(), Request{Input: "a.pdf", Page: 1, DPI: 72, Format: "png", OutPath: filepath.Join(t.TempDir(), "a.png")})
	if !errors.Is(err, services.ErrDependencyMissing) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestRenderFailureIsExternalToolError(t *testing.T) {
	bin := testsupport.WriteScript(t, filepath.Join(t.TempDir(), "pdftoppm"), "echo 'Syntax Error: broken' >&2\nexit 99\n")
	_, err := New(bin).Render(context.Background(), Request{Input: "a.pdf", Page: 1, DPI: 72, Format: "png", OutPath: filepath.Join(t.TempDir(), "a.png")})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}
