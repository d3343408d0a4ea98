// Package attachment writes binary objects embedded in referenced
// documents to a directory.
//
// Extraction is advisory. Every failure, from a missing filename to a
// directory that vanished since the last call, results in nothing being
// written and ("", false) being returned.
package attachment

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lehigh-university-libraries/zugferd/graph"
)

// Default paths of the filename and payload below a referenced document.
const (
	FilenamePath = "AttachmentBinaryObject.filename"
	PayloadPath  = "AttachmentBinaryObject.value"
)

// Sink is the filesystem capability the extractor writes through.
type Sink interface {
	// Writable reports whether dir exists and accepts new files right now.
	Writable(dir string) bool

	// Join combines dir and a document-supplied filename into a path.
	Join(dir, name string) string

	// WriteBase64 decodes payload and writes it to path.
	WriteBase64(path, payload string) error
}

// DirSink writes to the local filesystem.
type DirSink struct{}

// Writable probes dir by creating and removing a temporary file.
func (DirSink) Writable(dir string) bool {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return false
	}
	f, err := os.CreateTemp(dir, ".zugferd-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}

// Join keeps only the base name of name so a document cannot write
// outside dir.
func (DirSink) Join(dir, name string) string {
	return filepath.Join(dir, filepath.Base(name))
}

// WriteBase64 decodes a standard base64 payload, ignoring line breaks.
func (DirSink) WriteBase64(path, payload string) error {
	data, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(payload), ""))
	if err != nil {
		return fmt.Errorf("decoding payload: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Extractor materializes attachments through a Sink.
type Extractor struct {
	Sink         Sink
	FilenamePath string
	PayloadPath  string
	Logger       *slog.Logger
}

// New creates an extractor writing to the local filesystem.
func New(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		Sink:         DirSink{},
		FilenamePath: FilenamePath,
		PayloadPath:  PayloadPath,
		Logger:       logger,
	}
}

// Extract writes the attachment of el into dir and returns the written
// path. Nothing is written unless the filename, the payload and dir are all
// non-empty and dir is writable at the time of the call.
func (e *Extractor) Extract(el graph.Node, dir string) (string, bool) {
	name := graph.Resolve(el, e.FilenamePath, "")
	payload := graph.Resolve(el, e.PayloadPath, "")

	if name == "" || payload == "" || dir == "" {
		return "", false
	}
	if base := filepath.Base(name); base == "." || base == string(filepath.Separator) {
		return "", false
	}
	if !e.Sink.Writable(dir) {
		e.Logger.Warn("attachment sink not writable", "dir", dir, "filename", name)
		return "", false
	}

	path := e.Sink.Join(dir, name)
	if err := e.Sink.WriteBase64(path, payload); err != nil {
		e.Logger.Warn("attachment not written", "path", path, "error", err)
		return "", false
	}

	e.Logger.Debug("attachment written", "path", path)
	return path, true
}

// Extract uses a filesystem extractor with the default logger.
func Extract(el graph.Node, dir string) (string, bool) {
	return New(nil).Extract(el, dir)
}
