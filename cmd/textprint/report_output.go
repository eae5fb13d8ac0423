package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"textprint/internal/batch"
	"textprint/internal/textutil"
	"textprint/internal/winnow"
)

type paramsView struct {
	GramSize       int     `json:"gram_size" yaml:"gram_size"`
	WindowSize     int     `json:"window_size" yaml:"window_size"`
	RetentionRatio float64 `json:"retention_ratio" yaml:"retention_ratio"`
	Hash           string  `json:"hash" yaml:"hash"`
}

type documentView struct {
	Name           string             `json:"name" yaml:"name"`
	Path           string             `json:"path,omitempty" yaml:"path,omitempty"`
	CanonicalChars int                `json:"canonical_chars" yaml:"canonical_chars"`
	Cached         bool               `json:"cached" yaml:"cached"`
	Error          string             `json:"error,omitempty" yaml:"error,omitempty"`
	Entries        []winnow.Selection `json:"entries" yaml:"entries"`
}

type reportView struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Params     paramsView     `json:"params" yaml:"params"`
	DurationMS int64          `json:"duration_ms" yaml:"duration_ms"`
	Failed     int            `json:"failed" yaml:"failed"`
	Documents  []documentView `json:"documents" yaml:"documents"`
}

func newReportView(report *batch.Report) reportView {
	view := reportView{
		RunID: report.RunID,
		Params: paramsView{
			GramSize:       report.Params.GramSize,
			WindowSize:     report.Params.WindowSize,
			RetentionRatio: report.Params.RetentionRatio,
			Hash:           report.Params.Hash,
		},
		DurationMS: report.Duration.Milliseconds(),
		Failed:     report.Failed(),
		Documents:  make([]documentView, 0, len(report.Results)),
	}
	for _, res := range report.Results {
		doc := documentView{
			Name:           res.Name,
			Path:           res.Path,
			CanonicalChars: res.Canonical,
			Cached:         res.Cached,
			Entries:        res.Fingerprint.Entries(),
		}
		if res.Err != nil {
			doc.Error = res.Err.Error()
		}
		view.Documents = append(view.Documents, doc)
	}
	return view
}

func writeReport(w io.Writer, format string, report *batch.Report, showEntries bool) error {
	view := newReportView(report)
	switch format {
	case formatJSON:
		return writeJSON(w, view)
	case formatYAML:
		return writeYAML(w, view)
	default:
		return writeReportTable(w, view, showEntries)
	}
}

func writeReportTable(w io.Writer, view reportView, showEntries bool) error {
	rows := make([][]string, 0, len(view.Documents))
	total := 0
	for _, doc := range view.Documents {
		status := "ok"
		if doc.Error != "" {
			status = "error: " + doc.Error
		}
		total += len(doc.Entries)
		rows = append(rows, []string{
			doc.Name,
			strconv.Itoa(doc.CanonicalChars),
			strconv.Itoa(len(doc.Entries)),
			yesNo(doc.Cached),
			status,
		})
	}
	footer := []string{fmt.Sprintf("%d documents", len(view.Documents)), "", strconv.Itoa(total), "", fmt.Sprintf("%d failed", view.Failed)}

	var b strings.Builder
	fmt.Fprintf(&b, "Run %s (gram %d, window %d, retention %s, %s)\n",
		view.RunID,
		view.Params.GramSize,
		view.Params.WindowSize,
		strconv.FormatFloat(view.Params.RetentionRatio, 'g', -1, 64),
		view.Params.Hash,
	)
	b.WriteString(renderTable(
		[]string{"Document", "Canonical", "Entries", "Cached", "Status"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignLeft, alignLeft},
		footer,
	))
	b.WriteString("\n")

	if showEntries {
		for _, doc := range view.Documents {
			if len(doc.Entries) == 0 {
				continue
			}
			entryRows := make([][]string, 0, len(doc.Entries))
			for _, sel := range doc.Entries {
				entryRows = append(entryRows, []string{strconv.Itoa(sel.Offset), fmt.Sprintf("%016x", sel.Hash)})
			}
			fmt.Fprintf(&b, "\n%s\n", doc.Name)
			b.WriteString(renderTable([]string{"Offset", "Hash"}, entryRows, []columnAlignment{alignRight, alignLeft}, nil))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// documentFileNames names one report file per document. Each name is the
// document's path relative to the deepest directory shared by every path, so
// same-named files from different directories stay apart. Anything that still
// clashes after sanitizing gets a numeric suffix.
func documentFileNames(docs []documentView, ext string) []string {
	base := commonDir(docs)
	names := make([]string, len(docs))
	taken := make(map[string]bool, len(docs))
	for i, doc := range docs {
		stem := doc.Name
		if doc.Path != "" && base != "" {
			if rel, err := filepath.Rel(base, filepath.Clean(doc.Path)); err == nil {
				stem = filepath.ToSlash(rel)
			}
		}
		stem = textutil.SanitizeFileName(stem)
		if stem == "" {
			stem = "document"
		}
		name := stem
		for n := 2; taken[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s-%d", stem, n)
		}
		taken[strings.ToLower(name)] = true
		names[i] = name + "." + ext
	}
	return names
}

func commonDir(docs []documentView) string {
	sep := string(filepath.Separator)
	var common []string
	seen := false
	for _, doc := range docs {
		if doc.Path == "" {
			continue
		}
		parts := strings.Split(filepath.Dir(filepath.Clean(doc.Path)), sep)
		if !seen {
			common, seen = parts, true
			continue
		}
		n := 0
		for n < len(common) && n < len(parts) && common[n] == parts[n] {
			n++
		}
		common = common[:n]
	}
	if len(common) == 0 {
		return ""
	}
	if dir := strings.Join(common, sep); dir != "" {
		return dir
	}
	return sep
}
