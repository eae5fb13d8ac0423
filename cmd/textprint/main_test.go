package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"textprint/internal/testsupport"
)

type cliResult struct {
	stdout string
	stderr string
}

func setupCLIHome(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	home := filepath.Join(base, "home")
	require.NoError(t, os.MkdirAll(home, 0o755))
	t.Setenv("HOME", home)
	t.Chdir(base)
	return base
}

func runCLI(t *testing.T, args []string, stdin string) (cliResult, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String()}, err
}

func decodeReport(t *testing.T, data string) reportView {
	t.Helper()
	var view reportView
	require.NoError(t, json.Unmarshal([]byte(data), &view), "decode report:\n%s", data)
	return view
}

func TestFingerprintStdinJSON(t *testing.T) {
	setupCLIHome(t)

	res, err := runCLI(t, []string{"fingerprint", "--format", "json"}, "Winnowing selects a small set of hashes from overlapping windows.")
	require.NoError(t, err)
	view := decodeReport(t, res.stdout)
	assert.NotEmpty(t, view.RunID)
	assert.Equal(t, 5, view.Params.GramSize)
	assert.Equal(t, 4, view.Params.WindowSize)
	assert.Equal(t, "murmur3", view.Params.Hash)
	require.Len(t, view.Documents, 1)
	assert.Equal(t, "stdin", view.Documents[0].Name)
	assert.NotEmpty(t, view.Documents[0].Entries)
}

func TestFingerprintDefaultsToJSONWhenNotTerminal(t *testing.T) {
	setupCLIHome(t)

	res, err := runCLI(t, []string{"fingerprint", "-"}, "some text to fingerprint here")
	require.NoError(t, err)
	decodeReport(t, res.stdout)
}

func TestFingerprintFlagsOverrideConfig(t *testing.T) {
	setupCLIHome(t)

	res, err := runCLI(t, []string{"fingerprint", "-f", "json", "--gram-size", "3", "--window-size", "2", "--hash", "xxhash", "--no-stem"}, "alpha beta gamma delta")
	require.NoError(t, err)
	view := decodeReport(t, res.stdout)
	assert.Equal(t, 3, view.Params.GramSize)
	assert.Equal(t, 2, view.Params.WindowSize)
	assert.Equal(t, "xxhash", view.Params.Hash)
}

func TestFingerprintRejectsInvalidParams(t *testing.T) {
	setupCLIHome(t)

	_, err := runCLI(t, []string{"fingerprint", "--window-size", "0"}, "text")
	require.Error(t, err, "expected error for window size 0")
	assert.Contains(t, err.Error(), "window_size")

	_, err = runCLI(t, []string{"fingerprint", "--hash", "md5"}, "text")
	require.Error(t, err, "expected error for unknown hash")
	assert.Contains(t, err.Error(), "hash")
}

func TestFingerprintDirectoryTable(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "one.txt"), "The quick brown fox jumps over the lazy dog.")
	testsupport.WriteFile(t, filepath.Join(docs, "two.md"), "A completely different document about rivers and lakes.")
	testsupport.WriteFile(t, filepath.Join(docs, "skip.log"), "ignored by include patterns")

	res, err := runCLI(t, []string{"fingerprint", "--format", "table", "--entries", docs}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "one.txt")
	assert.Contains(t, res.stdout, "two.md")
	lower := strings.ToLower(res.stdout)
	assert.Contains(t, lower, "2 documents")
	assert.Contains(t, lower, "offset")
	assert.NotContains(t, res.stdout, "skip.log", "excluded file listed")
}

func TestFingerprintIncludeExcludeFlags(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "keep.log"), "log lines worth fingerprinting")
	testsupport.WriteFile(t, filepath.Join(docs, "old", "drop.log"), "archived log lines")
	testsupport.WriteFile(t, filepath.Join(docs, "notes.txt"), "plain notes")

	res, err := runCLI(t, []string{"fingerprint", "-f", "json", "--include", "**.log", "--exclude", "old/**", docs}, "")
	require.NoError(t, err)
	view := decodeReport(t, res.stdout)
	require.Len(t, view.Documents, 1)
	assert.Equal(t, "keep.log", view.Documents[0].Name)
}

func TestFingerprintReportsFailedDocuments(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "good.txt"), "a readable document body")
	testsupport.WriteFile(t, filepath.Join(docs, "broken.pdf"), "not really a pdf")

	res, err := runCLI(t, []string{"fingerprint", "-f", "json", docs}, "")
	require.Error(t, err, "expected failure summary error")
	assert.Contains(t, err.Error(), "1 of 2 documents")

	view := decodeReport(t, res.stdout)
	assert.Equal(t, 1, view.Failed)
	require.NotEmpty(t, view.Documents)
	assert.Equal(t, "broken.pdf", view.Documents[0].Name, "expected broken.pdf first")
	assert.NotEmpty(t, view.Documents[0].Error)
}

func TestFingerprintOutputFileYAML(t *testing.T) {
	base := setupCLIHome(t)
	target := filepath.Join(base, "out", "report.yaml")

	res, err := runCLI(t, []string{"fingerprint", "--format", "yaml", "--output", target}, "yaml output for a short document")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Wrote 1 documents to")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	var view map[string]any
	require.NoError(t, yaml.Unmarshal(data, &view))
	assert.Contains(t, view, "run_id")

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	require.Len(t, entries, 1, "lock files must not land beside the report")
	assert.Equal(t, "report.yaml", entries[0].Name())
}

func TestFingerprintOutDir(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "a.txt"), "first document text")
	testsupport.WriteFile(t, filepath.Join(docs, "b.txt"), "second document text")
	outDir := filepath.Join(base, "reports")

	_, err := runCLI(t, []string{"fingerprint", "--out-dir", outDir, docs}, "")
	require.NoError(t, err)
	for _, name := range []string{"a.txt.json", "b.txt.json"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		view := decodeReport(t, string(data))
		assert.Len(t, view.Documents, 1, name)
	}
}

func TestFingerprintOutDirKeepsSameNamedDocumentsApart(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "a", "notes.txt"), "meeting notes about the river survey")
	testsupport.WriteFile(t, filepath.Join(docs, "b", "notes.txt"), "shopping list with apples and bread")
	outDir := filepath.Join(base, "reports")

	res, err := runCLI(t, []string{"fingerprint", "--out-dir", outDir, docs}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Wrote 2 documents to")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	assert.ElementsMatch(t, []string{"a-notes.txt.json", "b-notes.txt.json"}, names)

	paths := make(map[string]bool)
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		require.NoError(t, err)
		view := decodeReport(t, string(data))
		require.Len(t, view.Documents, 1, name)
		assert.Equal(t, "notes.txt", view.Documents[0].Name)
		paths[view.Documents[0].Path] = true
	}
	assert.Len(t, paths, 2, "each report must hold a different document")
}

func TestFingerprintOutDirRejectsTableFormat(t *testing.T) {
	base := setupCLIHome(t)
	docs := filepath.Join(base, "docs")
	testsupport.WriteFile(t, filepath.Join(docs, "a.txt"), "first document text")
	outDir := filepath.Join(base, "reports")

	_, err := runCLI(t, []string{"fingerprint", "--out-dir", outDir, "--format", "table", docs}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table")
	assert.NoDirExists(t, outDir)
}

func TestFingerprintRejectsMixedStdin(t *testing.T) {
	base := setupCLIHome(t)
	path := filepath.Join(base, "a.txt")
	testsupport.WriteFile(t, path, "text")

	_, err := runCLI(t, []string{"fingerprint", "-", path}, "")
	require.Error(t, err, "expected error mixing stdin and paths")
}

func TestNormalizeCommand(t *testing.T) {
	setupCLIHome(t)

	res, err := runCLI(t, []string{"normalize"}, "The volcanoes and volcanic activities")
	require.NoError(t, err)
	assert.Equal(t, "volcanovolcanactiv", strings.TrimSpace(res.stdout))

	res, err = runCLI(t, []string{"normalize", "--words"}, "The volcanoes and volcanic activities")
	require.NoError(t, err)
	assert.Equal(t, "volcano volcan activ", strings.TrimSpace(res.stdout))

	res, err = runCLI(t, []string{"normalize", "--no-stem", "--no-stopwords"}, "The cats")
	require.NoError(t, err)
	assert.Equal(t, "thecats", strings.TrimSpace(res.stdout))
}

func TestNormalizeFiles(t *testing.T) {
	base := setupCLIHome(t)
	testsupport.WriteFile(t, filepath.Join(base, "docs", "a.txt"), "Cats")
	testsupport.WriteFile(t, filepath.Join(base, "docs", "b.txt"), "Dogs")

	res, err := runCLI(t, []string{"normalize", filepath.Join(base, "docs")}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "==> ")
	assert.Contains(t, res.stdout, "cat\n")
	assert.Contains(t, res.stdout, "dog\n")
}

func TestConfigInitValidateShow(t *testing.T) {
	base := setupCLIHome(t)
	target := filepath.Join(base, "conf", "textprint.toml")

	res, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Wrote sample configuration")

	_, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	assert.Error(t, err, "expected init to refuse overwriting")

	res, err = runCLI(t, []string{"--config", target, "config", "validate"}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "Configuration valid")
	assert.NotContains(t, res.stdout, "defaults were used", "expected config file to be read")

	res, err = runCLI(t, []string{"--config", target, "config", "show"}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "gram_size = 5")
	assert.Contains(t, res.stdout, "[batch]")
}

func TestConfigValidateWithoutFile(t *testing.T) {
	setupCLIHome(t)

	res, err := runCLI(t, []string{"config", "validate"}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "defaults were used")
}

func TestConfigValidateRejectsBadFile(t *testing.T) {
	base := setupCLIHome(t)
	target := filepath.Join(base, "bad.toml")
	testsupport.WriteFile(t, target, "[fingerprint]\nwindow_size = 0\n")

	_, err := runCLI(t, []string{"--config", target, "config", "validate"}, "")
	assert.Error(t, err, "expected validation error")
}

func TestEnvFileOverrides(t *testing.T) {
	base := setupCLIHome(t)
	envFile := filepath.Join(base, "test.env")
	testsupport.WriteFile(t, envFile, "TEXTPRINT_WORKERS=3\n")
	t.Cleanup(func() { _ = os.Unsetenv("TEXTPRINT_WORKERS") })

	res, err := runCLI(t, []string{"--env-file", envFile, "config", "show"}, "")
	require.NoError(t, err)
	assert.Contains(t, res.stdout, "workers = 3")
}

func TestResolveFormat(t *testing.T) {
	var buf bytes.Buffer
	tests := []struct {
		requested string
		want      string
		wantErr   bool
	}{
		{requested: "", want: formatJSON},
		{requested: "table", want: formatTable},
		{requested: "yaml", want: formatYAML},
		{requested: "xml", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveFormat(tt.requested, &buf)
		if tt.wantErr {
			assert.Error(t, err, "resolveFormat(%q)", tt.requested)
			continue
		}
		require.NoError(t, err, "resolveFormat(%q)", tt.requested)
		assert.Equal(t, tt.want, got, "resolveFormat(%q)", tt.requested)
	}
}

func TestFingerprintUsesConfigFile(t *testing.T) {
	base := setupCLIHome(t)
	cfg := testsupport.NewConfig(t, testsupport.WithGram(3, 2), testsupport.WithHash("xxhash"))
	configPath := testsupport.WriteConfig(t, filepath.Join(base, "textprint.toml"), cfg)
	docs := testsupport.WriteTree(t, filepath.Join(base, "corpus"), testsupport.Corpus)

	res, err := runCLI(t, []string{"--config", configPath, "fingerprint", "-f", "json", docs}, "")
	require.NoError(t, err)
	view := decodeReport(t, res.stdout)
	assert.Equal(t, 3, view.Params.GramSize)
	assert.Equal(t, 2, view.Params.WindowSize)
	assert.Equal(t, "xxhash", view.Params.Hash)
	assert.Len(t, view.Documents, len(testsupport.Corpus))

	logPath := filepath.Join(cfg.Paths.LogDir, "textprint.log")
	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), view.RunID)
}
