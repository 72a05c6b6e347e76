package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile fills the target path with the requested number of bytes using a
// simple repeating pattern. A size <= 0 writes a single byte.
func WriteFile(t testing.TB, path string, size int64) {
	t.Helper()

	if size <= 0 {
		size = 1
	}
	data := make([]byte, size)
	for i := range data {
		data[i] = 0x42
	}
	mustWrite(t, path, data, 0o644)
}

// WriteScript writes an executable shell script and returns its path.
func WriteScript(t testing.TB, path, body string) string {
	t.Helper()
	mustWrite(t, path, []byte("#!/bin/sh\n"+body), 0o755)
	return path
}

// FakePdftoppm mimics "pdftoppm -singlefile ... input prefix": it writes a
// small file at prefix.<ext> where ext follows the -png/-jpeg/-tiff flag and
// echoes the page number into it.
const FakePdftoppm = `ext=ppm
page=0
for arg in "$@"; do
  case "$prev" in
    -f) page="$arg" ;;
  esac
  case "$arg" in
    -png) ext=png ;;
    -jpeg) ext=jpg ;;
    -tiff) ext=tif ;;
  esac
  prev="$arg"
  last="$arg"
done
printf 'page %s\n' "$page" > "$last.$ext"
`

// FakeYtdlp returns a yt-dlp stub body that prints the file at infoPath and
// records its arguments next to it.
func FakeYtdlp(infoPath string) string {
	return fmt.Sprintf("printf '%%s\\n' \"$@\" > %q\ncat %q\n", infoPath+".args", infoPath)
}

// ReadArgs returns the arguments recorded by a FakeYtdlp stub.
func ReadArgs(t testing.TB, infoPath string) []string {
	t.Helper()
	data, err := os.ReadFile(infoPath + ".args")
	if err != nil {
		t.Fatalf("read recorded args: %v", err)
	}
	return strings.Fields(string(data))
}

func mustWrite(t testing.TB, path string, data []byte, mode os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, mode); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
