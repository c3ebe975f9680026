package exportcmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"portfolio/src/cmd/folio/app"
	"portfolio/src/internal/bibtex"
)

// New returns the export command which writes the publications as BibTeX.
func New(opts *app.Options) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export publications to a BibTeX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.Load(cmd.Context())
			if err != nil {
				return err
			}
			bib := bibtex.Marshal(doc.Publications)
			if out == "" || out == "-" {
				_, err := fmt.Fprint(cmd.OutOrStdout(), bib)
				return err
			}
			if dir := filepath.Dir(out); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			if err := os.WriteFile(out, []byte(bib), 0o644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d records)\n", out, len(doc.Publications))
			return err
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "Output bib file path (default stdout)")
	return cmd
}
