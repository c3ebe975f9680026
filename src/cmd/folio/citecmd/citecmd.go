package citecmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"portfolio/src/cmd/folio/app"
	"portfolio/src/internal/citation"
	"portfolio/src/internal/content"
	"portfolio/src/internal/render"
)

// New returns the cite command which prints IEEE citations for the
// publications in the data document.
func New(opts *app.Options) *cobra.Command {
	var format, typ string
	var list bool
	cmd := &cobra.Command{
		Use:   "cite [key...]",
		Short: "Print IEEE citations for all publications or the given keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			if format == "" {
				format = opts.Format
			}
			doc, err := opts.Load(cmd.Context())
			if err != nil {
				return err
			}
			pubs, err := selectPubs(doc.Publications, args, typ)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if strings.EqualFold(format, "json") {
				entries, err := Entries(pubs)
				if err != nil {
					return err
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			r, err := render.ByName(format)
			if err != nil {
				return err
			}
			lines, err := Render(pubs, r)
			if err != nil {
				return err
			}
			opts.Logger().Info("formatted citations", zap.Int("count", len(lines)), zap.String("format", format))
			if list {
				if _, ok := r.(render.HTML); !ok {
					return fmt.Errorf("--list requires html format")
				}
				_, err = fmt.Fprint(out, render.List(lines, render.DefaultList))
				return err
			}
			for _, l := range lines {
				if _, err := fmt.Fprintln(out, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: html, text, markdown, json ($FOLIO_FORMAT)")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "Only publications of this type (article, inproceedings, inbook)")
	cmd.Flags().BoolVar(&list, "list", false, "Wrap html output in the portfolio publications list")
	return cmd
}

// selectPubs narrows pubs to the requested keys (in request order) and type.
func selectPubs(pubs content.Publications, keys []string, typ string) ([]citation.Publication, error) {
	var out []citation.Publication
	if len(keys) == 0 {
		out = pubs
	} else {
		for _, k := range keys {
			p, ok := pubs.Find(k)
			if !ok {
				return nil, fmt.Errorf("no publication found for key %s", k)
			}
			out = append(out, p)
		}
	}
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return out, nil
	}
	var filtered []citation.Publication
	for _, p := range out {
		if strings.EqualFold(strings.TrimSpace(p.Type), typ) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// Render formats every publication; the first invalid record aborts.
func Render(pubs []citation.Publication, r render.Renderer) ([]string, error) {
	out := make([]string, 0, len(pubs))
	for i, p := range pubs {
		s, err := render.Citation(p, r)
		if err != nil {
			return nil, fmt.Errorf("publication %d: %w", i+1, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// Entry is the json output shape of one citation.
type Entry struct {
	Key       string              `json:"key,omitempty"`
	Type      string              `json:"type,omitempty"`
	HTML      string              `json:"html"`
	Text      string              `json:"text"`
	Fragments []citation.Fragment `json:"fragments"`
}

func Entries(pubs []citation.Publication) ([]Entry, error) {
	out := make([]Entry, 0, len(pubs))
	for i, p := range pubs {
		frags, err := citation.Format(p)
		if err != nil {
			return nil, fmt.Errorf("publication %d: %w", i+1, err)
		}
		out = append(out, Entry{
			Key:       p.Key,
			Type:      p.Type,
			HTML:      render.DefaultHTML.Render(frags),
			Text:      citation.PlainText(frags),
			Fragments: frags,
		})
	}
	return out, nil
}
