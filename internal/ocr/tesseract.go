//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether Tesseract recognition is compiled in.
func Available() bool { return true }

// Version returns the linked Tesseract library version.
func Version() string { return gosseract.Version() }

// TesseractEngine implements Engine with a fresh gosseract client per page.
type TesseractEngine struct {
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs the Tesseract-backed engine.
func NewTesseract() (*TesseractEngine, error) {
	return &TesseractEngine{clientFactory: gosseract.NewClient}, nil
}

func (e *TesseractEngine) Name() string { return "tesseract" }

// Recognize runs OCR on in.Image.
func (e *TesseractEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	c := e.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(in.Image); err != nil {
		return Result{}, fmt.Errorf("set image: %w", err)
	}
	if langs := TesseractLanguages(in.Languages); len(langs) > 0 {
		if err := c.SetLanguage(langs...); err != nil {
			return Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	text, err := c.Text()
	if err != nil {
		return Result{}, fmt.Errorf("recognize page %d: %w", in.PageIndex, err)
	}
	return Result{PlainText: strings.TrimSpace(text), Confidence: meanConfidence(c)}, nil
}

func meanConfidence(c *gosseract.Client) float64 {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes))
}
