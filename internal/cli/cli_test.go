package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"artifex/internal/preflight"
	"artifex/internal/services"
	"artifex/internal/testsupport"
)

func runRoot(t *testing.T, tool preflight.Tool, args ...string) (string, error) {
	t.Helper()
	root, ctx := NewRoot(tool, "test")
	ctx.SetStderr(io.Discard)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusError, "not found", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "yt-dlp:", "[ERROR] not found")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("pdftoppm", statusOK, "", true)
	if !strings.HasPrefix(got, ansiGreen) || !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected green line, got %q", got)
	}
}

func TestDoctorLines(t *testing.T) {
	results := []preflight.Result{
		{Name: "Project root", Passed: true, Detail: "/tmp (read/write ok)"},
		{Name: "pdftoppm", Detail: "binary \"pdftoppm\" not found"},
		{Name: "Tesseract", Optional: true, Detail: "built without cgo"},
	}
	lines := doctorLines("pdftool", results, false)
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "== pdftool doctor ==" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[3], "[ERROR]") || !strings.Contains(lines[4], "[WARN]") {
		t.Fatalf("unexpected status lines %v", lines)
	}
	if !strings.Contains(lines[5], "Missing: pdftoppm") {
		t.Fatalf("unexpected summary %q", lines[5])
	}
}

func TestIsTerminalNonFile(t *testing.T) {
	if IsTerminal(io.Discard) {
		t.Fatal("expected non-file writer to report no terminal")
	}
}

func TestRenderTablePadsRows(t *testing.T) {
	out := RenderTable([]string{"Index", "Time"}, [][]string{{"0", "00:00"}, {"1"}}, []Align{AlignRight})
	if !strings.Contains(out, "INDEX") || !strings.Contains(out, "00:00") {
		t.Fatalf("unexpected table:\n%s", out)
	}
	if RenderTable(nil, nil, nil) != "" {
		t.Fatal("expected empty output without headers")
	}
}

func TestShouldSkipConfigInherits(t *testing.T) {
	parent := SkipConfig(&cobra.Command{Use: "config"})
	child := &cobra.Command{Use: "init"}
	parent.AddCommand(child)
	if !shouldSkipConfig(child) {
		t.Fatal("expected child to inherit skip annotation")
	}
	if shouldSkipConfig(&cobra.Command{Use: "ocr"}) {
		t.Fatal("unannotated command must load config")
	}
}

func TestConfigInitWritesSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "artifex.toml")
	out, err := runRoot(t, preflight.ToolPDF, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(out, "Wrote sample configuration to "+target) {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if _, err := runRoot(t, preflight.ToolPDF, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal when config exists")
	}
	if _, err := runRoot(t, preflight.ToolPDF, "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := testsupport.WriteConfig(t, cfg)
	out, err := runRoot(t, preflight.ToolYouTube, "--config", path, "config", "validate")
	if err != nil {
		t.Fatalf("config validate failed: %v", err)
	}
	if !strings.Contains(out, "Config path: "+path) || !strings.Contains(out, "Configuration valid") {
		t.Fatalf("unexpected output %q", out)
	}

	bad := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(bad, []byte("[pdf]\nformat = \"gif\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runRoot(t, preflight.ToolYouTube, "--config", bad, "config", "validate"); err == nil || !strings.Contains(err.Error(), "pdf.format") {
		t.Fatalf("expected pdf.format error, got %v", err)
	}
}

func TestDoctorReportsMissingBinary(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.ProjectRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	path := testsupport.WriteConfig(t, cfg)
	out, err := runRoot(t, preflight.ToolYouTube, "--config", path, "doctor")
	if !errors.Is(err, services.ErrDependencyMissing) {
		t.Fatalf("expected missing dependency error, got %v", err)
	}
	if !strings.Contains(out, "yt-dlp") || !strings.Contains(out, "[ERROR]") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}
}

func TestDoctorPassesWithStub(t *testing.T) {
	infoPath := filepath.Join(t.TempDir(), "info.json")
	cfg := testsupport.NewConfig(t, testsupport.WithStubYtdlp(infoPath))
	if err := os.MkdirAll(cfg.Paths.ProjectRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	path := testsupport.WriteConfig(t, cfg)
	out, err := runRoot(t, preflight.ToolYouTube, "--config", path, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All required checks passed") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}
}
