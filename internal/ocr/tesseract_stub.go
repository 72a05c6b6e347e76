//go:build !cgo

package ocr

import (
	"context"

	"artifex/internal/services"
)

// Available reports whether Tesseract recognition is compiled in.
func Available() bool { return false }

// Version returns an empty string when Tesseract is not linked.
func Version() string { return "" }

// TesseractEngine is unavailable without cgo.
type TesseractEngine struct{}

func errUnavailable() error {
	return services.Wrap(services.ErrDependencyMissing, "ocr", "tesseract", "tesseract unavailable (built without cgo)", nil)
}

// NewTesseract always fails in builds without cgo.
func NewTesseract() (*TesseractEngine, error) {
	return nil, errUnavailable()
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Recognize(context.Context, Input) (Result, error) {
	return Result{}, errUnavailable()
}
