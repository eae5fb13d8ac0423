package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// WriteFile writes text to path, creating parent directories.
func WriteFile(t testing.TB, path, text string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "mkdir for %s", path)
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644), "write %s", path)
}

// WriteTree writes each relative path in files under root and returns root.
func WriteTree(t testing.TB, root string, files map[string]string) string {
	t.Helper()

	for rel, text := range files {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(rel)), text)
	}
	return root
}

// Corpus is a handful of short English passages with shared phrasing, used
// by fingerprint tests that need realistic overlap between documents.
var Corpus = map[string]string{
	"original.txt": "A volcano is a rupture in the crust of a planetary-mass object, such as Earth, " +
		"that allows hot lava, volcanic ash, and gases to escape from a magma chamber below the surface.",
	"paraphrase.txt": "On Earth, a volcano is a rupture in the crust of a planetary-mass object that lets " +
		"hot lava and gases escape from a magma chamber far below the surface.",
	"unrelated.txt": "Sourdough bread relies on a fermented starter of flour and water, " +
		"which gives the loaf its tangy flavour and open crumb.",
}
