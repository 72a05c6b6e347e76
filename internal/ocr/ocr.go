// Package ocr defines the recognition engine used for pages without a text
// layer. The Tesseract engine is compiled in when cgo is available.
package ocr

import (
	"context"
	"strings"

	"golang.org/x/text/language"
)

// Input is one rendered page image.
type Input struct {
	Image     []byte
	Languages []string
	DPI       int
	PageIndex int
}

// Result holds recognized text and the mean word confidence in [0,1].
type Result struct {
	PlainText  string
	Confidence float64
}

// Engine recognizes text in page images.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

// tesseractAliases covers tags whose Tesseract model name is not the ISO 639-3 code.
var tesseractAliases = map[string]string{
	"zh":      "chi_sim",
	"zh-hans": "chi_sim",
	"zh-hant": "chi_tra",
}

// TesseractLanguages maps BCP 47 or ISO 639 tags to Tesseract model names.
// Unparseable values such as "chi_sim" or "osd" pass through unchanged.
func TesseractLanguages(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, raw := range tags {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		name := tesseractName(raw)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func tesseractName(raw string) string {
	if alias, ok := tesseractAliases[strings.ToLower(raw)]; ok {
		return alias
	}
	if strings.Contains(raw, "_") {
		return raw
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return raw
	}
	base, confidence := tag.Base()
	if confidence == language.No {
		return raw
	}
	if iso3 := base.ISO3(); iso3 != "" {
		return iso3
	}
	return raw
}
