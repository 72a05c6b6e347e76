package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer writes artifact files and reports each one on Out. In dry-run mode
// nothing touches the filesystem and the planned path is reported instead.
type Writer struct {
	Out    io.Writer
	DryRun bool
	// Label prefixes the success line; defaults to "Wrote".
	Label string
}

// WriteJSON encodes v with a two-space indent.
func (w *Writer) WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return w.WriteBytes(path, buf.Bytes())
}

// WriteText writes text as UTF-8.
func (w *Writer) WriteText(path, text string) error {
	return w.WriteBytes(path, []byte(text))
}

// WriteBytes writes data to path, creating the parent directory.
func (w *Writer) WriteBytes(path string, data []byte) error {
	if w.DryRun {
		w.Planned(path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	w.Wrote(path)
	return nil
}

// Planned reports a path that a dry run would have written.
func (w *Writer) Planned(path string) {
	if w.Out != nil {
		fmt.Fprintf(w.Out, "[dry-run] Would write %s\n", path)
	}
}

// Wrote reports a path written by someone else, such as an external renderer.
func (w *Writer) Wrote(path string) {
	if w.Out == nil {
		return
	}
	label := w.Label
	if label == "" {
		label = "Wrote"
	}
	fmt.Fprintf(w.Out, "%s %s\n", label, path)
}
