// Package pdf provides the PDF container format: it reads the invoice XML
// embedded in a ZUGFeRD PDF and embeds XML plus referenced binaries into
// an existing PDF.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lehigh-university-libraries/zugferd/format"
)

// ErrNoPayload is returned when a PDF carries no embedded XML document.
var ErrNoPayload = errors.New("no embedded invoice XML")

// KnownNames are embedded file names checked, in order, before falling
// back to the first embedded .xml file.
var KnownNames = []string{
	"ZUGFeRD-invoice.xml",
	"zugferd-invoice.xml",
	"factur-x.xml",
}

// Format implements the PDF container.
type Format struct{}

// Ensure Format implements the interfaces
var (
	_ format.Format    = (*Format)(nil)
	_ format.Container = (*Format)(nil)
)

// Name returns the format identifier.
func (f *Format) Name() string {
	return "pdf"
}

// Description returns a human-readable format description.
func (f *Format) Description() string {
	return "PDF with embedded invoice XML"
}

// Extensions returns file extensions associated with this format.
func (f *Format) Extensions() []string {
	return []string{"pdf"}
}

// CanParse returns true if the input starts with a PDF header.
func (f *Format) CanParse(peek []byte) bool {
	return bytes.HasPrefix(bytes.TrimSpace(peek), []byte("%PDF-"))
}

// Payload returns the invoice XML embedded in raw.
func (f *Format) Payload(raw []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	atts, err := api.ExtractAttachmentsRaw(bytes.NewReader(raw), "", nil, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu attachments: %w", err)
	}

	names := make([]string, 0, len(atts))
	for _, a := range atts {
		names = append(names, a.FileName)
	}
	i := pickPayload(names)
	if i < 0 {
		return nil, ErrNoPayload
	}

	slog.Debug("reading embedded invoice", "filename", atts[i].FileName, "attachments", len(atts))
	data, err := io.ReadAll(atts[i])
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", atts[i].FileName, err)
	}
	return data, nil
}

// pickPayload returns the index of the embedded file holding the invoice,
// or -1.
func pickPayload(names []string) int {
	for _, known := range KnownNames {
		for i, n := range names {
			if strings.EqualFold(n, known) {
				return i
			}
		}
	}
	for i, n := range names {
		if strings.EqualFold(filepath.Ext(n), ".xml") {
			return i
		}
	}
	return -1
}

func init() {
	format.Register(&Format{})
}
