package pdftools

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"artifex/internal/artifacts"
	"artifex/internal/logging"
	"artifex/internal/ocr"
	"artifex/internal/pages"
	"artifex/internal/pdfdoc"
	"artifex/internal/services"
)

// OCR engine modes.
const (
	EngineAuto      = "auto"
	EngineText      = "text"
	EngineTesseract = "tesseract"
)

const defaultOCRDPI = 300

// Page entry methods.
const (
	MethodTextLayer = "text-layer"
	MethodOCR       = "ocr"
)

// OCROptions configures the ocr command.
type OCROptions struct {
	Common
	CopyPDF   bool
	Pages     string
	PagesJSON string
	PagesText string
	Engine    string
	Languages []string
	DPI       int
}

// PageEntry is one element of ocr-pages.json.
type PageEntry struct {
	Page   int    `json:"page"`
	Text   string `json:"text"`
	Method string `json:"method"`
}

// OCRManifest records an ocr run.
type OCRManifest struct {
	artifacts.Base
	Pages   []int  `json:"pages"`
	OCRJSON string `json:"ocr_json"`
	OCRText string `json:"ocr_text"`
	Engine  string `json:"engine"`
}

// FormatPagesText renders entries as "=== Page N ===" blocks separated by a blank line.
func FormatPagesText(entries []PageEntry) string {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		parts = append(parts, fmt.Sprintf("=== Page %d ===\n%s", entry.Page, entry.Text))
	}
	return strings.Join(parts, "\n\n")
}

// OCR extracts per-page text into ocr-pages.json, ocr-pages.txt and the manifest.
func (s *Service) OCR(ctx context.Context, opts OCROptions) (OCRManifest, error) {
	const command = "ocr"
	logger := s.logger(ctx)

	input, err := resolveInput(command, opts.PDFPath)
	if err != nil {
		return OCRManifest{}, err
	}
	mode := strings.ToLower(strings.TrimSpace(opts.Engine))
	if mode == "" {
		mode = EngineAuto
	}
	if mode != EngineAuto && mode != EngineText && mode != EngineTesseract {
		return OCRManifest{}, services.Wrap(services.ErrValidation, command, "engine", fmt.Sprintf("unknown engine %q (use auto, text or tesseract)", opts.Engine), nil)
	}
	if opts.DPI <= 0 {
		opts.DPI = defaultOCRDPI
	}
	selection, err := pages.ParseRanges(opts.Pages)
	if err != nil {
		return OCRManifest{}, err
	}
	dir, err := outputDir(input, opts.Common)
	if err != nil {
		return OCRManifest{}, err
	}

	jsonPath := filepath.Join(dir, nameOrDefault(opts.PagesJSON, "ocr-pages.json"))
	textPath := filepath.Join(dir, nameOrDefault(opts.PagesText, "ocr-pages.txt"))
	manifestPath := filepath.Join(dir, nameOrDefault(opts.Manifest, "manifest.json"))

	planned := []string{jsonPath, textPath, manifestPath}
	var copyPlan artifacts.CopyPlan
	if opts.CopyPDF {
		if copyPlan, err = artifacts.PlanCopy(input, dir); err != nil {
			return OCRManifest{}, err
		}
		planned = append(planned, copyPlan.Outputs()...)
	}
	if err := artifacts.EnsureWritable(command, planned, opts.Overwrite); err != nil {
		return OCRManifest{}, err
	}

	doc, err := pdfdoc.Open(input)
	if err != nil {
		return OCRManifest{}, services.Wrap(services.ErrExternalTool, command, "open pdf", input, err)
	}
	defer doc.Close()
	total, err := doc.NumPage()
	if err != nil {
		return OCRManifest{}, services.Wrap(services.ErrExternalTool, command, "count pages", input, err)
	}
	selected := pages.Select(selection, total)

	recognizer, err := s.recognizer(ctx, mode, opts.DryRun)
	if err != nil {
		return OCRManifest{}, err
	}

	lock, err := prepare(command, dir, opts.DryRun)
	if err != nil {
		return OCRManifest{}, err
	}
	defer lock.Release()

	w := s.writer(opts.DryRun)
	copied := ""
	if opts.CopyPDF {
		if err := copyPlan.Execute(w); err != nil {
			return OCRManifest{}, err
		}
		copied = copyPlan.Dest
	}

	entries := make([]PageEntry, 0, len(selected))
	if !opts.DryRun {
		for _, page := range selected {
			entry, err := s.extractPage(ctx, doc, recognizer, input, page, opts)
			if err != nil {
				return OCRManifest{}, err
			}
			entries = append(entries, entry)
		}
	}

	if err := w.WriteJSON(jsonPath, entries); err != nil {
		return OCRManifest{}, err
	}
	if err := w.WriteText(textPath, FormatPagesText(entries)); err != nil {
		return OCRManifest{}, err
	}

	base, err := artifacts.NewBase(ctx, ToolName, command, input, copied)
	if err != nil {
		return OCRManifest{}, err
	}
	manifest := OCRManifest{
		Base:    base,
		Pages:   append(make([]int, 0, len(selected)), selected...),
		OCRJSON: jsonPath,
		OCRText: textPath,
		Engine:  mode,
	}
	if err := w.WriteJSON(manifestPath, manifest); err != nil {
		return OCRManifest{}, err
	}
	logger.Info("ocr finished", logging.Int("pages", len(selected)), logging.String("engine", mode), logging.String("out_dir", dir))
	return manifest, nil
}

// recognizer holds the OCR engine for a run. A nil engine means pages
// without a text layer stay empty.
type recognizer struct {
	mode   string
	engine ocr.Engine
}

func (s *Service) recognizer(ctx context.Context, mode string, dryRun bool) (*recognizer, error) {
	r := &recognizer{mode: mode}
	if mode == EngineText || dryRun {
		return r, nil
	}
	engine, err := s.newEngine()
	if err == nil {
		err = s.Renderer.Available()
	}
	if err != nil {
		if mode == EngineTesseract || !errors.Is(err, services.ErrDependencyMissing) {
			return nil, err
		}
		logging.WarnWithContext(s.logger(ctx), "ocr engine unavailable; using text layer only", "ocr_degraded",
			logging.Error(err),
			logging.String(logging.FieldImpact, "pages without a text layer will have empty text"),
			logging.String(logging.FieldErrorHint, "install pdftoppm and build with cgo and libtesseract, or pass --engine text"),
		)
		return r, nil
	}
	r.engine = engine
	return r, nil
}

func (s *Service) newEngine() (ocr.Engine, error) {
	if s.NewEngine == nil {
		return nil, services.Wrap(services.ErrDependencyMissing, "ocr", "engine", "no OCR engine configured", nil)
	}
	return s.NewEngine()
}

func (s *Service) extractPage(ctx context.Context, doc *pdfdoc.Document, r *recognizer, input string, page int, opts OCROptions) (PageEntry, error) {
	if r.mode != EngineTesseract {
		text, err := doc.PageText(page)
		if err != nil {
			if r.mode == EngineText {
				return PageEntry{}, services.Wrap(services.ErrExternalTool, "ocr", fmt.Sprintf("page %d text layer", page), "", err)
			}
			s.logger(ctx).Debug("text layer unreadable; falling back to ocr", logging.Int("page", page), logging.Error(err))
		}
		if strings.TrimSpace(text) != "" || r.engine == nil {
			return PageEntry{Page: page, Text: text, Method: MethodTextLayer}, nil
		}
	}

	image, err := s.Renderer.RenderPNG(ctx, input, page, opts.DPI)
	if err != nil {
		return PageEntry{}, err
	}
	result, err := r.engine.Recognize(ctx, ocr.Input{Image: image, Languages: opts.Languages, DPI: opts.DPI, PageIndex: page})
	if err != nil {
		return PageEntry{}, services.Wrap(services.ErrExternalTool, "ocr", fmt.Sprintf("recognize page %d", page), "", err)
	}
	s.logger(ctx).Debug("page recognized", logging.Int("page", page), logging.Any("confidence", result.Confidence))
	return PageEntry{Page: page, Text: result.PlainText, Method: MethodOCR}, nil
}
