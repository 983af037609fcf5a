package extract

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/unidoc/unioffice/document"
)

// extractDOCX reads paragraph text in document order, then table cell text
// row by row, joining everything with newlines.
func (e *Extractor) extractDOCX(path string) (string, error) {
	doc, err := document.Open(path)
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	defer doc.Close()

	var sb strings.Builder
	for _, para := range doc.Paragraphs() {
		if text := paragraphText(para); text != "" {
			sb.WriteString(text)
			sb.WriteString("\n")
		}
	}
	for _, tbl := range doc.Tables() {
		for _, row := range tbl.Rows() {
			for _, cell := range row.Cells() {
				for _, para := range cell.Paragraphs() {
					if text := paragraphText(para); text != "" {
						sb.WriteString(text)
						sb.WriteString("\n")
					}
				}
			}
		}
	}
	return sb.String(), nil
}

func paragraphText(para document.Paragraph) string {
	var sb strings.Builder
	for _, run := range para.Runs() {
		sb.WriteString(run.Text())
	}
	return strings.TrimSpace(sb.String())
}

// extractDOCXRaw is the fallback when the structured reader cannot open the
// file: unzip word/document.xml and walk its character data directly.
func (e *Extractor) extractDOCXRaw(path string) (string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", fmt.Errorf("open docx archive: %w", err)
	}
	defer zr.Close()

	var docFile *zip.File
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", fmt.Errorf("word/document.xml not found in %s", path)
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", fmt.Errorf("open document.xml: %w", err)
	}
	defer rc.Close()

	return stripDocXML(rc)
}

// stripDocXML collects character data, emitting a newline at each paragraph
// or line-break boundary.
func stripDocXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if sb.Len() > 0 {
					sb.WriteString("\n")
				}
			}
		}
	}
	return sb.String(), nil
}

// extractDOC handles the legacy binary Word format through antiword. No Go
// library parses the OLE-based .doc container, so this is best-effort.
func (e *Extractor) extractDOC(path string) (string, error) {
	if _, err := exec.LookPath("antiword"); err != nil {
		return "", fmt.Errorf("antiword not installed: %w", err)
	}
	out, err := exec.Command("antiword", path).Output()
	if err != nil {
		return "", fmt.Errorf("antiword %s: %w", path, err)
	}
	return string(out), nil
}
