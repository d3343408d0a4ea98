package pdf_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/lehigh-university-libraries/zugferd/format/pdf"
	"github.com/lehigh-university-libraries/zugferd/profile"
	"github.com/lehigh-university-libraries/zugferd/reader"
)

// minimalPDF returns a one-page PDF with a correct cross-reference table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << >> >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestEmbedPayloadRoundTrip(t *testing.T) {
	xml, err := os.ReadFile(filepath.Join("..", "..", "testdata", "comfort.xml"))
	if err != nil {
		t.Fatal(err)
	}
	p, ok := profile.Default.Lookup("comfort")
	if !ok {
		t.Fatal("comfort profile missing")
	}

	dir := t.TempDir()
	in := filepath.Join(dir, "visual.pdf")
	out := filepath.Join(dir, "zugferd.pdf")
	if err := os.WriteFile(in, minimalPDF(), 0644); err != nil {
		t.Fatal(err)
	}
	spec := filepath.Join(dir, "spec.pdf")
	if err := os.WriteFile(spec, []byte("hello specification"), 0644); err != nil {
		t.Fatal(err)
	}

	err = pdf.NewMerger(nil).Embed(pdf.Embedding{
		Input:       in,
		Output:      out,
		XML:         xml,
		Profile:     p,
		Attachments: []string{spec},
	})
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	f := &pdf.Format{}
	if !f.CanParse(raw) {
		t.Fatal("CanParse(output) = false")
	}

	payload, err := f.Payload(raw)
	if err != nil {
		t.Fatalf("Payload() error = %v", err)
	}
	if !bytes.Equal(payload, xml) {
		t.Errorf("Payload() returned %d bytes, want the %d embedded bytes", len(payload), len(xml))
	}

	s, err := reader.Open(raw)
	if err != nil {
		t.Fatalf("reader.Open(output) error = %v", err)
	}
	if !s.Profile().Is("comfort") {
		t.Errorf("profile = %s, want comfort", s.Profile().Name())
	}
	if s.DocumentID() == "" {
		t.Error("DocumentID() is empty")
	}
}

func TestPayloadWithoutInvoice(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "plain.pdf")
	out := filepath.Join(dir, "drawing.pdf")
	if err := os.WriteFile(in, minimalPDF(), 0644); err != nil {
		t.Fatal(err)
	}
	drawing := filepath.Join(dir, "drawing.png")
	if err := os.WriteFile(drawing, []byte("line drawing"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := api.AddAttachmentsFile(in, out, []string{drawing}, false, model.NewDefaultConfiguration()); err != nil {
		t.Fatalf("AddAttachmentsFile() error = %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := (&pdf.Format{}).Payload(raw); !errors.Is(err, pdf.ErrNoPayload) {
		t.Errorf("Payload() error = %v, want ErrNoPayload", err)
	}
}
