package extract

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// extractPDFTextLayer reads the embedded text layer of a digitally generated PDF.
func (e *Extractor) extractPDFTextLayer(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read text layer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("copy text layer: %w", err)
	}
	return buf.String(), nil
}

// extractPDFMuPDF extracts the text layer through MuPDF. Its parser tolerates
// malformed cross-reference tables and encodings the first strategy chokes on.
func (e *Extractor) extractPDFMuPDF(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf with mupdf: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for n := 0; n < doc.NumPage(); n++ {
		pageText, err := doc.Text(n)
		if err != nil {
			e.log.Warn("mupdf page text failed", "path", path, "page", n+1, "err", err)
			continue
		}
		if trimmed := strings.TrimSpace(pageText); trimmed != "" {
			sb.WriteString(trimmed)
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
