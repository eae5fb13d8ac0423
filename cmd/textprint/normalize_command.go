package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"textprint/internal/ingest"
	"textprint/internal/normalize"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	var noStem, noStopwords, noTransliterate, words bool

	cmd := &cobra.Command{
		Use:   "normalize [paths...]",
		Short: "Print the canonical text that fingerprints are computed from",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			opts := cfg.NormalizeOptions()
			if noStem {
				opts.Stem = false
			}
			if noStopwords {
				opts.Stopwords = false
			}
			if noTransliterate {
				opts.Transliterate = false
			}
			render := normalize.New(opts)
			if words {
				render = func(raw string) string { return normalize.Sanitize(raw, opts) }
			}

			out := cmd.OutOrStdout()
			if readsStdin(args) {
				doc, err := ingest.FromReader("stdin", cmd.InOrStdin())
				if err != nil {
					return err
				}
				fmt.Fprintln(out, render(doc.Text))
				return nil
			}
			if containsStdin(args) {
				return fmt.Errorf("stdin (-) cannot be combined with paths")
			}

			paths, err := ingest.Collect(args, cfg.Batch.Include, cfg.Batch.Exclude)
			if err != nil {
				return err
			}
			for _, path := range paths {
				doc, err := ingest.ParseFile(path)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				if len(paths) > 1 {
					fmt.Fprintf(out, "==> %s <==\n", doc.Path)
				}
				fmt.Fprintln(out, render(doc.Text))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noStem, "no-stem", false, "Disable Porter stemming")
	cmd.Flags().BoolVar(&noStopwords, "no-stopwords", false, "Keep English stopwords")
	cmd.Flags().BoolVar(&noTransliterate, "no-transliterate", false, "Drop non-ASCII letters instead of transliterating them")
	cmd.Flags().BoolVar(&words, "words", false, "Print space-separated words before collapsing")
	return cmd
}
