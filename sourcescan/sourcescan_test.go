package sourcescan

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.forgebuild.dev/forge/option"
	"go.forgebuild.dev/forge/project"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestListFindsRecognizedSourceFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.c"))
	writeFile(t, filepath.Join(dir, "README.md"))
	writeFile(t, filepath.Join(dir, "sub", "util.cpp"))

	result, err := List(dir, Options{Recurse: true})
	require.NoError(t, err)

	files := *option.Get(result, project.Files)
	assert.Contains(t, files, filepath.Join(dir, "main.c"))
	assert.Contains(t, files, filepath.Join(dir, "sub", "util.cpp"))
	assert.NotContains(t, files, filepath.Join(dir, "README.md"))
}

func TestListNonRecursiveStopsAtTopLevel(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.c"))
	writeFile(t, filepath.Join(dir, "sub", "util.cpp"))

	result, err := List(dir, Options{Recurse: false})
	require.NoError(t, err)

	files := *option.Get(result, project.Files)
	assert.Contains(t, files, filepath.Join(dir, "main.c"))
	assert.NotContains(t, files, filepath.Join(dir, "sub", "util.cpp"))
}

func TestListHonorsIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "main.c"))
	writeFile(t, filepath.Join(dir, "vendor", "third_party.c"))

	result, err := List(dir, Options{Recurse: true, IgnorePatterns: []string{"vendor"}})
	require.NoError(t, err)

	files := *option.Get(result, project.Files)
	assert.Contains(t, files, filepath.Join(dir, "main.c"))
	assert.NotContains(t, files, filepath.Join(dir, "vendor", "third_party.c"))
}

func TestListPopulatesGeneratorDependenciesWithDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "sub", "util.cpp"))

	result, err := List(dir, Options{Recurse: true})
	require.NoError(t, err)

	deps := *option.Get(result, project.GeneratorDependencies)
	assert.Contains(t, deps, dir)
	assert.Contains(t, deps, filepath.Join(dir, "sub"))
}
