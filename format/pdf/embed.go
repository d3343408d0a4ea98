package pdf

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lehigh-university-libraries/zugferd/profile"
)

// Embedding describes one merge of invoice XML into a PDF.
type Embedding struct {
	// Input is the PDF to extend
	Input string

	// Output is where the merged PDF is written
	Output string

	// XML is the invoice document
	XML []byte

	// Profile supplies the embedded filename and document properties
	Profile *profile.Profile

	// Attachments are additional files (e.g. extracted referenced
	// documents) embedded next to the XML
	Attachments []string
}

// Merger embeds invoice XML into PDF files.
type Merger struct {
	Conf   *model.Configuration
	Logger *slog.Logger
}

// NewMerger creates a merger with the pdfcpu default configuration.
func NewMerger(logger *slog.Logger) *Merger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Merger{
		Conf:   model.NewDefaultConfiguration(),
		Logger: logger,
	}
}

// Properties returns the document properties written for p.
func Properties(p *profile.Profile) (map[string]string, error) {
	keys := map[string]string{
		"DocumentFileName": "attachment_filename",
		"DocumentType":     "document_type",
		"ConformanceLevel": "conformance_level",
		"Version":          "version",
		"XMPNamespace":     "xmp_namespace",
	}

	props := make(map[string]string, len(keys))
	for prop, param := range keys {
		v, err := p.Param(param)
		if err != nil {
			return nil, err
		}
		props[prop] = v
	}
	return props, nil
}

// Embed writes e.Input with the XML attached under the profile's
// attachment filename to e.Output.
func (m *Merger) Embed(e Embedding) (err error) {
	if e.Profile == nil {
		return fmt.Errorf("embedding: no profile")
	}
	name, err := e.Profile.Param("attachment_filename")
	if err != nil {
		return err
	}
	props, err := Properties(e.Profile)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "zugferd-embed-*")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer func() {
		if rerr := os.RemoveAll(dir); rerr != nil && err == nil {
			err = fmt.Errorf("removing staging directory: %w", rerr)
		}
	}()

	xmlPath := filepath.Join(dir, name)
	if err := os.WriteFile(xmlPath, e.XML, 0o644); err != nil {
		return fmt.Errorf("staging %s: %w", name, err)
	}

	files := append([]string{xmlPath}, e.Attachments...)
	if err := api.AddAttachmentsFile(e.Input, e.Output, files, false, m.Conf); err != nil {
		return fmt.Errorf("pdfcpu attach: %w", err)
	}
	if err := api.AddPropertiesFile(e.Output, "", props, m.Conf); err != nil {
		return fmt.Errorf("pdfcpu properties: %w", err)
	}

	m.Logger.Info("embedded invoice", "output", e.Output, "profile", e.Profile.Name(), "attachments", len(e.Attachments))
	return nil
}
