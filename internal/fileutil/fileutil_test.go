package fileutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCopyFilePreservesModeAndMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.pdf")
	dst := filepath.Join(dir, "dst.pdf")

	if err := os.WriteFile(src, []byte("%PDF-1.4 body"), 0o600); err != nil {
		t.Fatal(err)
	}
	stamp := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	if err := os.Chtimes(src, stamp, stamp); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatal(err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600, got %o", info.Mode().Perm())
	}
	if !info.ModTime().Equal(stamp) {
		t.Fatalf("expected mtime %v, got %v", stamp, info.ModTime())
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "%PDF-1.4 body" {
		t.Fatalf("content mismatch: got %q", got)
	}
}

func TestCopyFile_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(filepath.Join(dir, "nope"), filepath.Join(dir, "dst")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestCopyFileVerified_MissingSource(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFileVerified(filepath.Join(dir, "nonexistent"), filepath.Join(dir, "dst.bin")); err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestSHA256File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	sum, size, err := SHA256File(path)
	if err != nil {
		t.Fatal(err)
	}
	const want = "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824"
	if sum != want {
		t.Fatalf("sha256 mismatch: got %s", sum)
	}
	if size != 5 {
		t.Fatalf("expected size 5, got %d", size)
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.pdf")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !SamePath(path, filepath.Join(dir, ".", "a.pdf")) {
		t.Fatal("expected equivalent paths to match")
	}
	if SamePath(path, filepath.Join(dir, "b.pdf")) {
		t.Fatal("different files must not match")
	}
	missing := filepath.Join(dir, "missing.pdf")
	if !SamePath(missing, missing) {
		t.Fatal("identical missing paths should match")
	}
}
