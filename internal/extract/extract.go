package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Result holds the text and embedded images pulled from a resume PDF.
type Result struct {
	Text   string
	Images [][]byte
}

// ErrEmptyDocument is returned when the PDF yields no text at all.
var ErrEmptyDocument = errors.New("no text extracted from document")

// Parser extracts text and images from PDF payloads.
// Library used: github.com/ledongthuc/pdf for text; embedded JPEG streams
// are pulled directly from the PDF object graph (see images.go).
type Parser struct{}

// Parse extracts the full text and embedded JPEG images from a PDF payload.
func (Parser) Parse(ctx context.Context, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if len(data) == 0 {
		return Result{}, errors.New("empty pdf data")
	}

	text, err := extractText(data)
	if err != nil {
		return Result{}, fmt.Errorf("extract pdf text: %w", err)
	}
	if len(bytes.TrimSpace([]byte(text))) == 0 {
		return Result{}, ErrEmptyDocument
	}

	return Result{
		Text:   text,
		Images: extractJPEGs(data),
	}, nil
}

func extractText(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
