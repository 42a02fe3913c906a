package render

import (
	"bytes"
	"fmt"
	"os"
)

// pdfWriter is a minimal single-page, path-only PDF object writer: out/outf/
// newobj build up a buffer and an object-offset table directly, rather than
// pulling in a general PDF library, since the only content this package
// ever emits is stroked polylines.
type pdfWriter struct {
	buf     bytes.Buffer
	offsets []int // offsets[objNum-1] = byte offset of "N 0 obj"
}

func (w *pdfWriter) out(s string) {
	w.buf.WriteString(s)
	w.buf.WriteByte('\n')
}

func (w *pdfWriter) outf(format string, args ...any) {
	w.out(fmt.Sprintf(format, args...))
}

func (w *pdfWriter) newobj() int {
	w.offsets = append(w.offsets, w.buf.Len())
	n := len(w.offsets)
	w.outf("%d 0 obj", n)
	return n
}

// savePDF writes primitives as stroked path operators inside a single content
// stream, sized to the config's cropped draw extent in PDF points (1/72 in).
func savePDF(filename string, cfg *Config, prims []Primitive) error {
	cropX, cropY, drawW, drawH := cfg.drawExtent()
	const ptPerMM = 72.0 / 25.4
	pageW := drawW * ptPerMM
	pageH := drawH * ptPerMM

	w := &pdfWriter{}
	w.out("%PDF-1.4")

	var content bytes.Buffer
	fmt.Fprintf(&content, "1 J 1 j\n")
	bg := cfg.Background
	fmt.Fprintf(&content, "%.4f %.4f %.4f rg\n", bg.R, bg.G, bg.B)
	fmt.Fprintf(&content, "0 0 %.3f %.3f re f\n", pageW, pageH)
	for _, p := range prims {
		if len(p.Points) < 2 {
			continue
		}
		fmt.Fprintf(&content, "%.4f %.4f %.4f RG\n", p.Color.R, p.Color.G, p.Color.B)
		fmt.Fprintf(&content, "%.4f w\n", p.LineWidthMM*ptPerMM)
		for i, pt := range p.Points {
			x := (pt.X - cropX) * ptPerMM
			y := pageH - (pt.Y-cropY)*ptPerMM // PDF space is bottom-up.
			if i == 0 {
				fmt.Fprintf(&content, "%.3f %.3f m\n", x, y)
			} else {
				fmt.Fprintf(&content, "%.3f %.3f l\n", x, y)
			}
		}
		content.WriteString("S\n")
	}

	catalogObj := w.newobj()
	w.outf("<< /Type /Catalog /Pages %d 0 R >>", catalogObj+1)
	w.out("endobj")

	pagesObj := w.newobj()
	w.outf("<< /Type /Pages /Kids [%d 0 R] /Count 1 >>", pagesObj+1)
	w.out("endobj")

	pageObj := w.newobj()
	w.outf("<< /Type /Page /Parent %d 0 R /MediaBox [0 0 %.3f %.3f] /Contents %d 0 R /Resources << >> >>",
		pagesObj, pageW, pageH, pageObj+1)
	w.out("endobj")

	contentObj := w.newobj()
	w.outf("<< /Length %d >>", content.Len())
	w.out("stream")
	w.buf.Write(content.Bytes())
	w.out("endstream")
	w.out("endobj")

	xrefOffset := w.buf.Len()
	w.outf("xref")
	w.outf("0 %d", contentObj+1)
	w.out("0000000000 65535 f ")
	for _, off := range w.offsets {
		w.outf("%010d 00000 n ", off)
	}
	w.out("trailer")
	w.outf("<< /Size %d /Root %d 0 R >>", contentObj+1, catalogObj)
	w.out("startxref")
	w.outf("%d", xrefOffset)
	w.out("%%EOF")

	return os.WriteFile(filename, w.buf.Bytes(), 0o644)
}
