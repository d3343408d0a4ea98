package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zugferd/format/pdf"
	"github.com/lehigh-university-libraries/zugferd/profile"
	"github.com/lehigh-university-libraries/zugferd/reader"
)

var (
	embedPDF             string
	embedOutput          string
	embedAttachments     []string
	embedWithAttachments bool
)

var embedCmd = &cobra.Command{
	Use:   "embed <xml>",
	Short: "Embed invoice XML into a PDF",
	Long: `Attach invoice XML to an existing PDF under the file name its profile
prescribes and record the profile's document properties.

With --with-attachments, the binaries embedded in the invoice's referenced
documents (Extended) are extracted and attached to the PDF as well.

Examples:
  zugferd embed invoice.xml --pdf visual.pdf -o zugferd.pdf
  zugferd embed invoice.xml --pdf visual.pdf -o zugferd.pdf -a spec.pdf
  zugferd embed invoice.xml --pdf visual.pdf -o zugferd.pdf --with-attachments`,
	Args: cobra.ExactArgs(1),
	RunE: runEmbed,
}

func init() {
	embedCmd.Flags().StringVar(&embedPDF, "pdf", "", "PDF to embed into")
	embedCmd.Flags().StringVarP(&embedOutput, "output", "o", "", "Output PDF")
	embedCmd.Flags().StringSliceVarP(&embedAttachments, "attach", "a", nil, "Additional files to embed")
	embedCmd.Flags().BoolVar(&embedWithAttachments, "with-attachments", false, "Also embed attachments extracted from referenced documents")
	_ = embedCmd.MarkFlagRequired("pdf")
	_ = embedCmd.MarkFlagRequired("output")
}

// embedder is the PDF merge step.
type embedder interface {
	Embed(e pdf.Embedding) error
}

func runEmbed(cmd *cobra.Command, args []string) error {
	xml, err := readInput(args[0])
	if err != nil {
		return err
	}

	p, err := embedInvoice(pdf.NewMerger(slog.Default()), pdf.Embedding{
		Input:       embedPDF,
		Output:      embedOutput,
		XML:         xml,
		Attachments: embedAttachments,
	}, embedWithAttachments)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", embedOutput, p.Name())
	return nil
}

// embedInvoice resolves the profile of e.XML and hands e to m. With
// withAttachments set, the referenced documents' attachments are extracted
// into a staging directory that lives until m returns.
func embedInvoice(m embedder, e pdf.Embedding, withAttachments bool) (p *profile.Profile, err error) {
	s, err := reader.Open(e.XML)
	if err != nil {
		return nil, err
	}
	e.Profile = s.Profile()

	if withAttachments {
		dir, derr := os.MkdirTemp("", "zugferd-attachments-*")
		if derr != nil {
			return nil, fmt.Errorf("creating staging directory: %w", derr)
		}
		defer func() {
			if rerr := os.RemoveAll(dir); rerr != nil && err == nil {
				err = fmt.Errorf("removing staging directory: %w", rerr)
			}
		}()

		extracted := extractAll(s, dir)
		slog.Debug("staged attachments", "dir", dir, "count", len(extracted))
		e.Attachments = append(append([]string(nil), e.Attachments...), extracted...)
	}

	if err := m.Embed(e); err != nil {
		return nil, err
	}
	return e.Profile, nil
}
