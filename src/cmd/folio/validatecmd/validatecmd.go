package validatecmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/src/cmd/folio/app"
)

// New returns the validate command which checks the data document and
// reports every publication that cannot be cited.
func New(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the data document and its publication records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := opts.Load(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			invalid := 0
			for i, p := range doc.Publications {
				if err := p.Validate(); err != nil {
					invalid++
					label := fmt.Sprintf("#%d", i+1)
					if k := strings.TrimSpace(p.Key); k != "" {
						label += " (" + k + ")"
					}
					opts.Logger().Warn("invalid publication", zap.Int("index", i+1), zap.String("key", p.Key), zap.Error(err))
					_, _ = fmt.Fprintf(out, "invalid: %s: %v\n", label, err)
				}
			}
			_, _ = fmt.Fprintf(out, "%d publications, %d invalid\n", len(doc.Publications), invalid)
			if invalid > 0 {
				return fmt.Errorf("%d invalid publication(s) in %s", invalid, opts.Data)
			}
			return nil
		},
	}
}
