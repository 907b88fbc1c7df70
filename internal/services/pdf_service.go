package services

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var ErrNotAPDF = errors.New("uploaded file is not a readable PDF")

// maxDocumentPages bounds what we send to the extraction service; policy
// fronts are a handful of pages, a hundred-page upload is a wrong file.
const maxDocumentPages = 50

// PDFService pre-checks an upload before it is archived and sent to the
// document-intelligence collaborator.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

// CheckDocument verifies the bytes are a structurally valid PDF within the
// page bound. Returns the page count.
func (s *PDFService) CheckDocument(filename string, data []byte) (int, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("%w: empty upload", ErrNotAPDF)
	}
	if !strings.HasSuffix(strings.ToLower(filename), ".pdf") {
		return 0, fmt.Errorf("%w: unexpected extension on %q", ErrNotAPDF, filename)
	}

	rs := bytes.NewReader(data)
	if err := api.Validate(rs, nil); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotAPDF, err)
	}

	if _, err := rs.Seek(0, 0); err != nil {
		return 0, fmt.Errorf("failed to rewind upload: %w", err)
	}
	pages, err := api.PageCount(rs, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNotAPDF, err)
	}
	if pages == 0 || pages > maxDocumentPages {
		return pages, fmt.Errorf("%w: %d pages", ErrNotAPDF, pages)
	}

	slog.Info("Upload passed PDF pre-check", "archivo", filename, "pages", pages, "size", len(data))
	return pages, nil
}
