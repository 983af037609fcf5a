package extract

import (
	"log/slog"
	"path/filepath"
	"strings"
)

// supportedExtensions are the document types the pipeline understands.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// IsDocumentFile reports whether the file name has a supported document extension.
func IsDocumentFile(name string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(name))]
}

// Outcome is the per-document extraction result. Text is empty when OK is false.
type Outcome struct {
	Path string
	Text string
	OK   bool
}

// Extractor pulls plain text out of PDF, DOCX and DOC files, trying multiple
// strategies per format and accepting the first one that yields real text.
type Extractor struct {
	log *slog.Logger

	ocrDPI         float64
	ocrLanguage    string
	tessdataPrefix string
}

// New returns an Extractor. tessdataPrefix may be empty to use the system default.
func New(logger *slog.Logger, tessdataPrefix string) *Extractor {
	return &Extractor{
		log:            logger,
		ocrDPI:         216, // 3x the 72dpi base, scanned pages OCR poorly below 2x
		ocrLanguage:    "eng",
		tessdataPrefix: tessdataPrefix,
	}
}

// strategy is one extraction attempt. A strategy failing (error or empty text)
// advances the ladder to the next one; it never aborts the extraction.
type strategy struct {
	name string
	run  func(path string) (string, error)
}

// Extract returns the text of the document at path, or a failed Outcome.
// No error ever escapes: every strategy failure is logged and absorbed.
func (e *Extractor) Extract(path string) Outcome {
	ext := strings.ToLower(filepath.Ext(path))

	var ladder []strategy
	switch ext {
	case ".pdf":
		ladder = []strategy{
			{name: "pdf-text-layer", run: e.extractPDFTextLayer},
			{name: "pdf-mupdf", run: e.extractPDFMuPDF},
			{name: "pdf-ocr", run: e.extractPDFOCR},
		}
	case ".docx":
		ladder = []strategy{
			{name: "docx-unioffice", run: e.extractDOCX},
			{name: "docx-xml", run: e.extractDOCXRaw},
		}
	case ".doc":
		ladder = []strategy{
			{name: "doc-antiword", run: e.extractDOC},
		}
	default:
		e.log.Error("unsupported document type", "path", path, "ext", ext)
		return Outcome{Path: path}
	}

	return e.runLadder(path, ladder)
}

func (e *Extractor) runLadder(path string, ladder []strategy) Outcome {
	for _, s := range ladder {
		text, err := s.run(path)
		if err != nil {
			e.log.Warn("extraction strategy failed", "strategy", s.name, "path", path, "err", err)
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			e.log.Warn("extraction strategy yielded no text", "strategy", s.name, "path", path)
			continue
		}
		e.log.Info("extracted document text", "strategy", s.name, "path", path, "chars", len(text))
		return Outcome{Path: path, Text: text, OK: true}
	}

	e.log.Error("all extraction strategies failed", "path", path)
	return Outcome{Path: path}
}
