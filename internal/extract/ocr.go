package extract

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/otiai10/gosseract/v2"
)

// extractPDFOCR is the last-resort strategy for scanned, image-only PDFs.
// Each page is rendered to a raster, normalized, and run through Tesseract.
// A page that yields no text is skipped; the strategy fails only when no page
// yields text at all.
func (e *Extractor) extractPDFOCR(path string) (string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return "", fmt.Errorf("open pdf for ocr: %w", err)
	}
	defer doc.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			return "", fmt.Errorf("set tessdata prefix: %w", err)
		}
	}
	if err := client.SetLanguage(e.ocrLanguage); err != nil {
		return "", fmt.Errorf("set ocr language: %w", err)
	}
	// Contracts are uniform blocks of text; PSM 6 beats full auto segmentation.
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}

	var sb strings.Builder
	pages := doc.NumPage()
	for n := 0; n < pages; n++ {
		img, err := doc.ImageDPI(n, e.ocrDPI)
		if err != nil {
			e.log.Warn("ocr page render failed", "path", path, "page", n+1, "err", err)
			continue
		}

		pageText, err := e.ocrPage(client, img)
		if err != nil {
			e.log.Warn("ocr page failed", "path", path, "page", n+1, "err", err)
			continue
		}
		if pageText == "" {
			e.log.Warn("ocr found no text on page", "path", path, "page", n+1)
			continue
		}
		e.log.Info("ocr page done", "path", path, "page", n+1, "chars", len(pageText))
		sb.WriteString(pageText)
		sb.WriteString("\n")
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("ocr yielded no text across %d pages", pages)
	}
	return text, nil
}

func (e *Extractor) ocrPage(client *gosseract.Client, img image.Image) (string, error) {
	enhanced := enhanceForOCR(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, enhanced); err != nil {
		return "", fmt.Errorf("encode page image: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return "", fmt.Errorf("set ocr image: %w", err)
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("ocr: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// enhanceForOCR normalizes a rendered page: grayscale, contrast and sharpness
// boost, then a slight blur to suppress speckle noise from the scan.
func enhanceForOCR(img image.Image) image.Image {
	out := imaging.Grayscale(img)
	out = imaging.AdjustContrast(out, 50)
	out = imaging.Sharpen(out, 1.0)
	out = imaging.Blur(out, 0.5)
	return out
}
