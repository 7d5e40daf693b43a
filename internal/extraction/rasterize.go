package extraction

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// PDFToImages renders every page of a PDF as a PNG image, in page
// order. A document that cannot be opened (corrupt, encrypted) yields
// an error and no pages; there is no partial-page salvage.
func PDFToImages(pdfData []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("opening PDF: %w", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("rendering PDF page %d: %w", n+1, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("encoding page %d as PNG: %w", n+1, err)
		}
		pages = append(pages, buf.Bytes())
	}

	return pages, nil
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

// imageFormat reports the genai image-part format for raw image bytes.
// Uploads are gated to JPEG/PNG, and rasterized pages are always PNG,
// so anything without the PNG signature is treated as JPEG.
func imageFormat(data []byte) string {
	if len(data) >= len(pngMagic) && bytes.Equal(data[:len(pngMagic)], pngMagic) {
		return "png"
	}
	return "jpeg"
}
