// Package pdfdoc reads page geometry, document info and the text layer of PDF
// files using rsc.io/pdf.
package pdfdoc

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"rsc.io/pdf"
)

// maxParentDepth bounds the Parent chain walk for inherited page attributes.
const maxParentDepth = 64

// Document is an open PDF file. Close releases the underlying file.
type Document struct {
	path    string
	file    *os.File
	reader  *pdf.Reader
	version string
}

// PageSize is the MediaBox extent of one page in PDF points.
type PageSize struct {
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Open parses the cross-reference table of the file at path.
func Open(path string) (doc *Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat pdf: %w", err)
	}
	defer recoverParse("open", &err)

	reader, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}
	return &Document{path: path, file: f, reader: reader, version: headerVersion(f)}, nil
}

// Close releases the file handle.
func (d *Document) Close() error {
	if d == nil || d.file == nil {
		return nil
	}
	return d.file.Close()
}

// NumPage returns the number of pages in the page tree.
func (d *Document) NumPage() (n int, err error) {
	defer recoverParse("count pages", &err)
	return d.reader.NumPage(), nil
}

// PageSize returns the MediaBox of page n (1-based). MediaBox and Rotate are
// inherited through the page tree; a quarter-turn rotation swaps the sides.
func (d *Document) PageSize(n int) (size PageSize, err error) {
	defer recoverParse(fmt.Sprintf("page %d size", n), &err)
	page, err := d.page(n)
	if err != nil {
		return PageSize{}, err
	}
	box := inherited(page.V, "MediaBox")
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return PageSize{}, fmt.Errorf("page %d: missing MediaBox", n)
	}
	x0, y0 := box.Index(0).Float64(), box.Index(1).Float64()
	x1, y1 := box.Index(2).Float64(), box.Index(3).Float64()
	width, height := math.Abs(x1-x0), math.Abs(y1-y0)
	if rotate := inherited(page.V, "Rotate").Int64(); rotate%180 != 0 {
		width, height = height, width
	}
	return PageSize{Page: n, Width: width, Height: height}, nil
}

// Metadata returns the document information dictionary. Standard keys are
// reported in lower camel case; unknown keys keep their original spelling.
// The header version is reported under "format".
func (d *Document) Metadata() (meta map[string]string, err error) {
	defer recoverParse("metadata", &err)
	meta = make(map[string]string)
	if d.version != "" {
		meta["format"] = "PDF " + d.version
	}
	info := d.reader.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return meta, nil
	}
	for _, key := range info.Keys() {
		name, ok := infoKeys[key]
		if !ok {
			name = key
		}
		meta[name] = valueString(info.Key(key))
	}
	return meta, nil
}

// PageText reconstructs the text layer of page n (1-based) line by line.
// Pages without text return an empty string.
func (d *Document) PageText(n int) (text string, err error) {
	defer recoverParse(fmt.Sprintf("page %d text", n), &err)
	page, err := d.page(n)
	if err != nil {
		return "", err
	}
	if page.V.Key("Contents").IsNull() {
		return "", nil
	}
	return joinGlyphs(page.Content().Text), nil
}

func (d *Document) page(n int) (pdf.Page, error) {
	total := d.reader.NumPage()
	if n < 1 || n > total {
		return pdf.Page{}, fmt.Errorf("page %d out of range (document has %d pages)", n, total)
	}
	page := d.reader.Page(n)
	if page.V.IsNull() {
		return pdf.Page{}, fmt.Errorf("page %d not found in page tree", n)
	}
	return page, nil
}

var infoKeys = map[string]string{
	"Title":        "title",
	"Author":       "author",
	"Subject":      "subject",
	"Keywords":     "keywords",
	"Creator":      "creator",
	"Producer":     "producer",
	"CreationDate": "creationDate",
	"ModDate":      "modDate",
	"Trapped":      "trapped",
}

func inherited(v pdf.Value, key string) pdf.Value {
	for depth := 0; v.Kind() == pdf.Dict && depth < maxParentDepth; depth++ {
		if value := v.Key(key); !value.IsNull() {
			return value
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

func valueString(v pdf.Value) string {
	switch v.Kind() {
	case pdf.String:
		return v.Text()
	case pdf.Name:
		return v.Name()
	case pdf.Integer:
		return fmt.Sprint(v.Int64())
	case pdf.Real:
		return fmt.Sprint(v.Float64())
	case pdf.Bool:
		return fmt.Sprint(v.Bool())
	case pdf.Null:
		return ""
	default:
		return v.String()
	}
}

// joinGlyphs groups positioned glyphs into lines by baseline and inserts a
// space wherever the horizontal gap exceeds a fraction of the font size.
func joinGlyphs(glyphs []pdf.Text) string {
	if len(glyphs) == 0 {
		return ""
	}
	sorted := append([]pdf.Text(nil), glyphs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var lines [][]pdf.Text
	for _, g := range sorted {
		if n := len(lines); n > 0 {
			ref := lines[n-1][0]
			tolerance := math.Max(ref.FontSize, 1) * 0.3
			if math.Abs(ref.Y-g.Y) <= tolerance {
				lines[n-1] = append(lines[n-1], g)
				continue
			}
		}
		lines = append(lines, []pdf.Text{g})
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		sort.SliceStable(line, func(i, j int) bool { return line[i].X < line[j].X })
		var b strings.Builder
		for i, g := range line {
			if i > 0 {
				prev := line[i-1]
				if g.X-(prev.X+prev.W) > math.Max(prev.FontSize, 1)*0.15 {
					b.WriteByte(' ')
				}
			}
			b.WriteString(g.S)
		}
		out = append(out, strings.TrimRight(b.String(), " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

func headerVersion(f *os.File) string {
	buf := make([]byte, 16)
	n, _ := f.ReadAt(buf, 0)
	header := string(buf[:n])
	if !strings.HasPrefix(header, "%PDF-") {
		return ""
	}
	fields := strings.Fields(strings.TrimPrefix(header, "%PDF-"))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func recoverParse(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: malformed pdf: %v", op, r)
	}
}
