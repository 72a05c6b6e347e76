package testsupport

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"testing"
)

// PDFPage describes one page of a generated fixture document. Zero sizes
// inherit the 612x792 MediaBox from the page tree root.
type PDFPage struct {
	Text   string
	Width  float64
	Height float64
}

// WritePDF writes a minimal, valid PDF with a Helvetica text layer.
func WritePDF(t testing.TB, path string, info map[string]string, pages ...PDFPage) {
	t.Helper()
	mustWrite(t, path, BuildPDF(info, pages...), 0o644)
}

// BuildPDF assembles the document bytes with a correct xref table.
func BuildPDF(info map[string]string, pages ...PDFPage) []byte {
	const (
		catalogObj = 1
		pagesObj   = 2
		fontObj    = 3
		infoObj    = 4
		firstPage  = 5
	)
	objects := map[int]string{}

	kids := make([]string, 0, len(pages))
	for i, page := range pages {
		pageObj := firstPage + 2*i
		contentObj := pageObj + 1
		kids = append(kids, fmt.Sprintf("%d 0 R", pageObj))

		box := ""
		if page.Width > 0 && page.Height > 0 {
			box = fmt.Sprintf(" /MediaBox [0 0 %g %g]", page.Width, page.Height)
		}
		objects[pageObj] = fmt.Sprintf("<< /Type /Page /Parent %d 0 R /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R%s >>",
			pagesObj, fontObj, contentObj, box)

		var stream strings.Builder
		if page.Text != "" {
			stream.WriteString("BT\n/F1 12 Tf\n72 720 Td\n")
			for _, line := range strings.Split(page.Text, "\n") {
				fmt.Fprintf(&stream, "(%s) Tj\n0 -14 Td\n", escapePDFString(line))
			}
			stream.WriteString("ET\n")
		}
		objects[contentObj] = fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", stream.Len(), stream.String())
	}

	objects[catalogObj] = fmt.Sprintf("<< /Type /Catalog /Pages %d 0 R >>", pagesObj)
	objects[pagesObj] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 792] >>", strings.Join(kids, " "), len(pages))

	widths := make([]string, 0, 95)
	for range 95 {
		widths = append(widths, "500")
	}
	objects[fontObj] = fmt.Sprintf("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>", strings.Join(widths, " "))

	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var infoDict strings.Builder
	infoDict.WriteString("<<")
	for _, k := range keys {
		fmt.Fprintf(&infoDict, " /%s (%s)", k, escapePDFString(info[k]))
	}
	infoDict.WriteString(" >>")
	objects[infoObj] = infoDict.String()

	total := firstPage + 2*len(pages)
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, total)
	for n := 1; n < total; n++ {
		offsets[n] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", n, objects[n])
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", total)
	buf.WriteString("0000000000 65535 f \n")
	for n := 1; n < total; n++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[n])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root %d 0 R /Info %d 0 R >>\nstartxref\n%d\n%%%%EOF\n", total, catalogObj, infoObj, xref)
	return buf.Bytes()
}

func escapePDFString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
