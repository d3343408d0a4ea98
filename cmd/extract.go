package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/zugferd/config"
	"github.com/lehigh-university-libraries/zugferd/reader"
)

var extractSink string

var errNoSink = errors.New("no sink directory configured: use --sink, sink_dir in config.yaml or " + config.EnvSinkDir)

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Write embedded attachments of referenced documents",
	Long: `Write every attachment embedded in an Extended invoice's referenced
documents, at header and line item level, into a directory.

The directory must already exist. Attachments that cannot be written are
skipped with a warning.

Examples:
  zugferd extract invoice.xml --sink ./attachments
  ZUGFERD_SINK_DIR=/srv/in zugferd extract invoice.pdf`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringVarP(&extractSink, "sink", "d", "", "Target directory (default: sink_dir from config)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir, err := sinkDir(extractSink, cfg)
	if err != nil {
		return err
	}

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

	written := extractAll(s, dir)
	out := cmd.OutOrStdout()
	for _, path := range written {
		fmt.Fprintln(out, path)
	}
	if len(written) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No attachments written.")
	}
	return nil
}

// sinkDir picks the --sink flag over the configured sink directory.
func sinkDir(flag string, c *config.Config) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if c.SinkDir != "" {
		return c.SinkDir, nil
	}
	return "", errNoSink
}

// extractAll writes header-level attachments first, then those of every
// line item in document order.
func extractAll(s *reader.Session, dir string) []string {
	var written []string
	for ok := s.FirstReferencedDocument(); ok; ok = s.NextReferencedDocument() {
		if path, ok := s.ExtractReferencedDocument(dir); ok {
			written = append(written, path)
		}
	}
	for ok := s.FirstPosition(); ok; ok = s.NextPosition() {
		for more := s.FirstPositionReferencedDocument(); more; more = s.NextPositionReferencedDocument() {
			if path, ok := s.ExtractPositionReferencedDocument(dir); ok {
				written = append(written, path)
			}
		}
	}
	return written
}
