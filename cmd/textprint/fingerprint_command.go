package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"textprint/internal/batch"
	"textprint/internal/config"
	"textprint/internal/fileutil"
	"textprint/internal/ingest"
	"textprint/internal/normalize"
	"textprint/internal/winnow"
)

type fingerprintFlags struct {
	gramSize        int
	windowSize      int
	retention       float64
	hash            string
	noStem          bool
	noStopwords     bool
	noTransliterate bool
	workers         int
	format          string
	output          string
	outDir          string
	include         []string
	exclude         []string
	entries         bool
}

func newFingerprintCommand(ctx *commandContext) *cobra.Command {
	var flags fingerprintFlags

	cmd := &cobra.Command{
		Use:   "fingerprint [paths...]",
		Short: "Compute winnowing fingerprints for documents",
		Long: "Compute winnowing fingerprints for files, directories, or stdin.\n\n" +
			"Directories are walked and filtered by the configured include/exclude\n" +
			"patterns. With no paths, or a single \"-\", text is read from stdin.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.outDir != "" {
				if _, err := outDirFormat(flags.format); err != nil {
					return err
				}
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			effective := applyFingerprintFlags(cmd, *cfg, flags)
			fp, err := newFingerprinter(&effective)
			if err != nil {
				return err
			}
			runner, err := batch.New(fp, batch.Options{
				Workers:   effective.Batch.Workers,
				CacheSize: effective.Batch.CacheSize,
			}, logger)
			if err != nil {
				return err
			}

			var report *batch.Report
			if readsStdin(args) {
				doc, err := ingest.FromReader("stdin", cmd.InOrStdin())
				if err != nil {
					return err
				}
				report, err = runner.Run(cmd.Context(), []ingest.Document{*doc})
				if err != nil {
					return err
				}
			} else {
				if containsStdin(args) {
					return fmt.Errorf("stdin (-) cannot be combined with paths")
				}
				paths, err := ingest.Collect(args, effective.Batch.Include, effective.Batch.Exclude)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no documents matched %s", strings.Join(args, ", "))
				}
				report, err = runner.RunFiles(cmd.Context(), paths)
				if err != nil {
					return err
				}
			}

			return emitReport(cmd, report, flags)
		},
	}

	defaults := config.Default()
	fs := cmd.Flags()
	fs.IntVar(&flags.gramSize, "gram-size", defaults.Fingerprint.GramSize, "Characters per gram")
	fs.IntVar(&flags.windowSize, "window-size", defaults.Fingerprint.WindowSize, "Gram hashes per winnowing window")
	fs.Float64Var(&flags.retention, "retention", defaults.Fingerprint.RetentionRatio, "Fraction of grams kept before hashing, in (0, 1]")
	fs.StringVar(&flags.hash, "hash", defaults.Fingerprint.Hash, fmt.Sprintf("Gram hash algorithm (%s)", strings.Join(winnow.HashNames(), ", ")))
	fs.BoolVar(&flags.noStem, "no-stem", false, "Disable Porter stemming")
	fs.BoolVar(&flags.noStopwords, "no-stopwords", false, "Keep English stopwords")
	fs.BoolVar(&flags.noTransliterate, "no-transliterate", false, "Drop non-ASCII letters instead of transliterating them")
	fs.IntVar(&flags.workers, "workers", 0, "Concurrent documents (0 uses the configured value)")
	fs.StringVarP(&flags.format, "format", "f", "", "Output format: table, json, or yaml (default table on a terminal, json otherwise)")
	fs.StringVarP(&flags.output, "output", "o", "", "Write the report to a file instead of stdout")
	fs.StringVar(&flags.outDir, "out-dir", "", "Write one report file per document into this directory")
	fs.StringSliceVar(&flags.include, "include", nil, "Glob patterns selecting files inside directories (replaces configured patterns)")
	fs.StringSliceVar(&flags.exclude, "exclude", nil, "Glob patterns excluding files inside directories (replaces configured patterns)")
	fs.BoolVar(&flags.entries, "entries", false, "List every fingerprint entry in table output")

	return cmd
}

// applyFingerprintFlags overlays explicitly set flags on a copy of cfg.
func applyFingerprintFlags(cmd *cobra.Command, cfg config.Config, flags fingerprintFlags) config.Config {
	fs := cmd.Flags()
	if fs.Changed("gram-size") {
		cfg.Fingerprint.GramSize = flags.gramSize
	}
	if fs.Changed("window-size") {
		cfg.Fingerprint.WindowSize = flags.windowSize
	}
	if fs.Changed("retention") {
		cfg.Fingerprint.RetentionRatio = flags.retention
	}
	if fs.Changed("hash") {
		cfg.Fingerprint.Hash = strings.ToLower(strings.TrimSpace(flags.hash))
	}
	if flags.noStem {
		cfg.Normalize.Stem = false
	}
	if flags.noStopwords {
		cfg.Normalize.Stopwords = false
	}
	if flags.noTransliterate {
		cfg.Normalize.Transliterate = false
	}
	if flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}
	if fs.Changed("include") {
		cfg.Batch.Include = flags.include
	}
	if fs.Changed("exclude") {
		cfg.Batch.Exclude = flags.exclude
	}
	return cfg
}

func newFingerprinter(cfg *config.Config) (*winnow.Fingerprinter, error) {
	fp, err := winnow.NewFingerprinter(cfg.Params(), normalize.New(cfg.NormalizeOptions()))
	if err != nil {
		return nil, fmt.Errorf("fingerprint parameters: %w", err)
	}
	return fp, nil
}

func readsStdin(args []string) bool {
	return len(args) == 0 || (len(args) == 1 && args[0] == "-")
}

func containsStdin(args []string) bool {
	for _, arg := range args {
		if arg == "-" {
			return true
		}
	}
	return false
}

func emitReport(cmd *cobra.Command, report *batch.Report, flags fingerprintFlags) error {
	if flags.outDir != "" {
		return writeDocumentReports(cmd, report, flags)
	}

	out := cmd.OutOrStdout()
	if flags.output != "" {
		format := flags.format
		if format == "" {
			format = formatJSON
		}
		format, err := resolveFormat(format, nil)
		if err != nil {
			return err
		}
		if err := fileutil.WriteLocked(cmd.Context(), flags.output, func(w io.Writer) error {
			return writeReport(w, format, report, flags.entries)
		}); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d documents to %s\n", len(report.Results), flags.output)
		return reportFailures(report)
	}

	format, err := resolveFormat(flags.format, out)
	if err != nil {
		return err
	}
	if err := writeReport(out, format, report, flags.entries); err != nil {
		return err
	}
	return reportFailures(report)
}

// writeDocumentReports splits a report into one file per document inside
// flags.outDir. The whole directory is written under one advisory lock.
func writeDocumentReports(cmd *cobra.Command, report *batch.Report, flags fingerprintFlags) error {
	format, err := outDirFormat(flags.format)
	if err != nil {
		return err
	}

	view := newReportView(report)
	names := documentFileNames(view.Documents, format)
	err = fileutil.WithLock(cmd.Context(), flags.outDir, func() error {
		for i, doc := range view.Documents {
			single := view
			single.Documents = []documentView{doc}
			single.Failed = 0
			if doc.Error != "" {
				single.Failed = 1
			}
			path := filepath.Join(flags.outDir, names[i])
			if err := fileutil.WriteAtomic(path, func(w io.Writer) error {
				if format == formatYAML {
					return writeYAML(w, single)
				}
				return writeJSON(w, single)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d documents to %s\n", len(view.Documents), flags.outDir)
	return reportFailures(report)
}

// outDirFormat resolves the per-document file format. Tables have no file
// form, so asking for one is an error rather than a silent switch.
func outDirFormat(requested string) (string, error) {
	switch requested {
	case "":
		return formatJSON, nil
	case formatTable:
		return "", fmt.Errorf("--out-dir writes json or yaml files; --format table is not supported")
	default:
		return resolveFormat(requested, nil)
	}
}

func reportFailures(report *batch.Report) error {
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d documents could not be fingerprinted", failed, len(report.Results))
	}
	return nil
}
