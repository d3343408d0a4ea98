package cmd

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/lehigh-university-libraries/zugferd/reader"
)

var (
	inspectJSON   bool
	inspectPretty bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show the main data of an invoice",
	Long: `Detect the profile of an invoice and print its header, parties,
totals and line items.

Input may be invoice XML or a PDF with embedded XML. Without a file
argument the document is read from stdin.

Examples:
  zugferd inspect invoice.pdf
  cat invoice.xml | zugferd inspect
  zugferd inspect --json --pretty invoice.xml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print the summary as JSON")
	inspectCmd.Flags().BoolVar(&inspectPretty, "pretty", false, "Pretty-print JSON output")
}

func runInspect(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	raw, err := readInput(name)
	if err != nil {
		return err
	}

	s, err := reader.Open(raw)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if inspectJSON {
		return writeJSON(out, s.Summary(), inspectPretty || cfg.Pretty)
	}
	return writeText(out, s)
}

func writeJSON(w io.Writer, summary map[string]any, pretty bool) error {
	st, err := structpb.NewStruct(summary)
	if err != nil {
		return fmt.Errorf("building summary: %w", err)
	}
	data, err := protojson.MarshalOptions{Multiline: pretty, Indent: "  "}.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func writeText(w io.Writer, s *reader.Session) error {
	fmt.Fprintf(w, "Profile:     %s\n", s.Profile().Name())
	fmt.Fprintf(w, "Invoice:     %s (%s, type %s)\n", s.DocumentID(), s.DocumentName(), s.TypeCode())
	if d := s.IssueDate(); !d.IsZero() {
		fmt.Fprintf(w, "Issued:      %s\n", d.Format("2006-01-02"))
	}
	if s.TestIndicator() {
		fmt.Fprintln(w, "Test:        yes")
	}
	fmt.Fprintf(w, "Seller:      %s\n", s.SellerName())
	printRegistrations(w, s.SellerTaxRegistrations())
	fmt.Fprintf(w, "Buyer:       %s\n", s.BuyerName())
	if ref := s.BuyerReference(); ref != "" {
		fmt.Fprintf(w, "Buyer ref:   %s\n", ref)
	}

	for ok := s.FirstNote(); ok; ok = s.NextNote() {
		fmt.Fprintf(w, "Note:        %s\n", s.NoteContent())
	}

	fmt.Fprintf(w, "\nPositions:\n")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  LINE\tPRODUCT\tQUANTITY\tNET\tTOTAL")
	fmt.Fprintln(tw, "  ----\t-------\t--------\t---\t-----")
	for ok := s.FirstPosition(); ok; ok = s.NextPosition() {
		qty, unit := s.PositionQuantity()
		fmt.Fprintf(tw, "  %s\t%s\t%g %s\t%.2f\t%.2f\n",
			s.PositionLineID(), s.PositionProductName(), qty, unit, s.PositionNetPrice(), s.PositionLineTotal())
		for more := s.FirstPositionNote(); more; more = s.NextPositionNote() {
			fmt.Fprintf(tw, "  \t  %s\t\t\t\n", s.PositionNoteContent())
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for ok := s.FirstReferencedDocument(); ok; ok = s.NextReferencedDocument() {
		line := s.ReferencedDocumentID()
		if f := s.ReferencedDocumentFilename(); f != "" {
			line += " [" + f + "]"
		}
		fmt.Fprintf(w, "Reference:   %s\n", line)
	}

	t := s.Totals()
	fmt.Fprintf(w, "\nLine total:  %.2f %s\n", t.LineTotal, s.Currency())
	fmt.Fprintf(w, "Tax total:   %.2f %s\n", t.TaxTotal, s.Currency())
	fmt.Fprintf(w, "Grand total: %.2f %s\n", t.GrandTotal, s.Currency())
	return nil
}

func printRegistrations(w io.Writer, regs map[string]string) {
	parts := make([]string, 0, len(regs))
	for _, k := range slices.Sorted(maps.Keys(regs)) {
		parts = append(parts, k+" "+regs[k])
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "             %s\n", strings.Join(parts, ", "))
	}
}
