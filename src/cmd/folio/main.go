package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"portfolio/src/cmd/folio/app"
	"portfolio/src/cmd/folio/citecmd"
	"portfolio/src/cmd/folio/exportcmd"
	"portfolio/src/cmd/folio/validatecmd"
	"portfolio/src/internal/config"
	"portfolio/src/internal/logx"
)

func newRootCmd(cfg config.Config) *cobra.Command {
	opts := &app.Options{Data: cfg.Data, Format: cfg.Format, LogLevel: cfg.LogLevel}
	root := &cobra.Command{
		Use:           "folio",
		Short:         "IEEE citations for an academic portfolio data file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logx.New(opts.LogLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.Log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.Log != nil {
				_ = opts.Log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.Data, "data", "d", opts.Data, "Data document: path (.json, .yaml, .bib) or http(s) URL ($FOLIO_DATA)")
	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level: debug, info, warn, error ($FOLIO_LOG_LEVEL)")

	root.AddCommand(citecmd.New(opts))
	root.AddCommand(validatecmd.New(opts))
	root.AddCommand(exportcmd.New(opts))
	return root
}

func execute() error {
	return newRootCmd(config.Load()).Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
