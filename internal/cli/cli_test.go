package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// extractProject writes testdata/project.txtar below a temp directory and
// returns its root
func extractProject(t *testing.T) string {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", "project.txtar"))
	require.NoError(t, err)

	root := t.TempDir()
	for _, f := range archive.Files {
		path := filepath.Join(root, filepath.FromSlash(f.Name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, f.Data, 0644))
	}
	return root
}

// testConfig returns a valid configuration over an extracted project
func testConfig(root string) *Config {
	return &Config{
		SourceDirs: []string{filepath.Join(root, "src") + "/..."},
		OutputDir:  filepath.Join(root, "generated"),
		SourcePath: []string{filepath.Join(root, "lib")},
		Workers:    4,
		LogLevel:   "warn",
		LogFormat:  "console",
	}
}
