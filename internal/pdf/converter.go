package pdf

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/gen2brain/go-fitz" // Lightweight PDF renderer
)

const jpegQuality = 95

// ConvertPDFToImages renders every page of a CV as a JPEG, in page
// order. The profile-suggestion flow feeds all pages to the parser.
func ConvertPDFToImages(pdfData []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	images := make([][]byte, 0, pageCount)

	for i := 0; i < pageCount; i++ {
		page, err := renderPage(doc, i)
		if err != nil {
			return nil, err
		}
		images = append(images, page)
	}

	return images, nil
}

// RenderFirstPage renders only the first page as a JPEG. The public CV
// preview needs just this one image, so the rest of the document is
// never rasterized.
func RenderFirstPage(pdfData []byte) ([]byte, error) {
	doc, err := fitz.NewFromMemory(pdfData)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}

	return renderPage(doc, 0)
}

func renderPage(doc *fitz.Document, index int) ([]byte, error) {
	img, err := doc.Image(index)
	if err != nil {
		return nil, fmt.Errorf("failed to render page %d: %w", index, err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode page %d: %w", index, err)
	}

	return buf.Bytes(), nil
}

// NormalizeImageToJPEG re-encodes an uploaded photo (PNG, GIF, JPEG)
// as JPEG so stored profile photos share one format
func NormalizeImageToJPEG(imageData []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
