package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"artifex/internal/services"
)

func TestResolveOutDir(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	got, err := ResolveOutDir("report", "", "", PDFBaseDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, ".pdf-artifacts", "report"); got != want {
		t.Fatalf("default dir = %q, want %q", got, want)
	}
	if _, err := os.Stat(got); !os.IsNotExist(err) {
		t.Fatal("resolution must not create the directory")
	}

	got, err = ResolveOutDir("report", "out", "proj", PDFBaseDir)
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(root, "proj", "out"); got != want {
		t.Fatalf("relative out dir = %q, want %q", got, want)
	}

	abs := filepath.Join(t.TempDir(), "abs")
	got, err = ResolveOutDir("report", abs, "proj", PDFBaseDir)
	if err != nil {
		t.Fatal(err)
	}
	if got != abs {
		t.Fatalf("absolute out dir = %q, want %q", got, abs)
	}
}

func TestStem(t *testing.T) {
	if got := Stem("/tmp/docs/annual.report.pdf"); got != "annual.report" {
		t.Fatalf("Stem = %q", got)
	}
}

func TestEnsureWritableRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(existing, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := []string{filepath.Join(dir, "new.json"), existing}

	err := EnsureWritable("ocr", paths, false)
	if !errors.Is(err, services.ErrOverwriteRefused) {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
	if !strings.Contains(err.Error(), existing) {
		t.Fatalf("error should name %s: %v", existing, err)
	}
	if err := EnsureWritable("ocr", paths, true); err != nil {
		t.Fatalf("overwrite should allow existing paths: %v", err)
	}
	if got := Existing(paths); len(got) != 1 || got[0] != existing {
		t.Fatalf("Existing = %v", got)
	}
}

func TestWriterDryRunWritesNothing(t *testing.T) {
	var out bytes.Buffer
	w := &Writer{Out: &out, DryRun: true}
	path := filepath.Join(t.TempDir(), "sub", "a.json")

	if err := w.WriteJSON(path, map[string]int{"a": 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Dir(path)); !os.IsNotExist(err) {
		t.Fatal("dry run must not create directories")
	}
	if got := out.String(); got != "[dry-run] Would write "+path+"\n" {
		t.Fatalf("unexpected dry-run output %q", got)
	}
}

func TestWriterWritesIndentedJSON(t *testing.T) {
	var out bytes.Buffer
	w := &Writer{Out: &out}
	path := filepath.Join(t.TempDir(), "a.json")

	if err := w.WriteJSON(path, map[string]string{"text": "<b>"}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n  \"text\": \"<b>\"\n}\n" {
		t.Fatalf("unexpected JSON %q", data)
	}
	if out.String() != "Wrote "+path+"\n" {
		t.Fatalf("unexpected report %q", out.String())
	}

	out.Reset()
	w.Label = "Saved:"
	if err := w.WriteText(path, "x"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "Saved: "+path+"\n" {
		t.Fatalf("unexpected labelled report %q", out.String())
	}
}

func TestNewBaseHashesInput(t *testing.T) {
	input := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(input, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	ctx := services.WithRunID(context.Background(), "run-42")

	base, err := NewBase(ctx, "pdftool", "inspect", input, "")
	if err != nil {
		t.Fatal(err)
	}
	if base.InputSHA256 != "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824" {
		t.Fatalf("unexpected hash %s", base.InputSHA256)
	}
	if base.RunID != "run-42" || base.Command != "inspect" || base.InputSizeBytes != 5 {
		t.Fatalf("unexpected base %+v", base)
	}

	data, err := json.Marshal(base)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if v, ok := decoded["copied_path"]; !ok || v != nil {
		t.Fatalf("copied_path should be null, got %v", v)
	}

	if _, err := NewBase(context.Background(), "pdftool", "ocr", filepath.Join(t.TempDir(), "missing.pdf"), ""); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found for missing input, got %v", err)
	}
}

func TestPlanCopy(t *testing.T) {
	src := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(src, []byte("pdf-bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	plan, err := PlanCopy(src, dir)
	if err != nil {
		t.Fatal(err)
	}
	if !plan.NeedsCopy || len(plan.Outputs()) != 1 {
		t.Fatalf("fresh destination should need a copy: %+v", plan)
	}
	var out bytes.Buffer
	if err := plan.Execute(&Writer{Out: &out}); err != nil {
		t.Fatal(err)
	}

	plan, err = PlanCopy(src, dir)
	if err != nil {
		t.Fatal(err)
	}
	if plan.NeedsCopy || plan.Outputs() != nil {
		t.Fatalf("identical copy should be reused: %+v", plan)
	}

	if err := os.WriteFile(plan.Dest, []byte("different"), 0o644); err != nil {
		t.Fatal(err)
	}
	plan, err = PlanCopy(src, dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := EnsureWritable("ocr", plan.Outputs(), false); !errors.Is(err, services.ErrOverwriteRefused) {
		t.Fatalf("differing copy should be an overwrite conflict, got %v", err)
	}

	self, err := PlanCopy(src, filepath.Dir(src))
	if err != nil {
		t.Fatal(err)
	}
	if self.NeedsCopy {
		t.Fatal("copying onto itself must be a no-op")
	}
}

func TestAcquireLockIsExclusive(t *testing.T) {
	dir := t.TempDir()
	first, err := Acquire("ocr", dir)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Release()

	if _, err := Acquire("ocr", dir); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("second acquire should fail fast, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatal(err)
	}
	second, err := Acquire("ocr", dir)
	if err != nil {
		t.Fatalf("lock should be free after release: %v", err)
	}
	_ = second.Release()
}
