package preflight

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"artifex/internal/config"
	"artifex/internal/deps"
	"artifex/internal/ocr"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries a tool shells out to.
func CheckSystemDeps(cfg *config.Config, tool Tool) []deps.Status {
	var requirements []deps.Requirement
	switch tool {
	case ToolPDF:
		requirements = append(requirements, deps.Requirement{
			Name:        "pdftoppm",
			Command:     cfg.PDF.PdftoppmBinary,
			Description: "Required for rasterize and OCR page rendering",
			Optional:    strings.EqualFold(cfg.PDF.OCREngine, "text"),
		})
	case ToolYouTube:
		requirements = append(requirements, deps.Requirement{
			Name:        "yt-dlp",
			Command:     cfg.YouTube.YtdlpBinary,
			Description: "Required for video metadata, captions and storyboards",
		})
	}
	return deps.CheckBinaries(requirements)
}

// CheckOCREngine reports whether Tesseract recognition is compiled in. It is
// only required when the configured engine is "tesseract"; "auto" degrades to
// the text layer without it.
func CheckOCREngine(cfg *config.Config) Result {
	required := cfg != nil && cfg.PDF.OCREngine == "tesseract"
	result := Result{Name: "Tesseract", Optional: !required}
	if !ocr.Available() {
		result.Detail = "OCR engine unavailable (built without cgo or libtesseract)"
		return result
	}
	result.Passed = true
	result.Detail = fmt.Sprintf("tesseract %s", ocr.Version())
	return result
}
