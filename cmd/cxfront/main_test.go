package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandIncludeRootsPassesThroughPlainDirectories(t *testing.T) {
	dir := t.TempDir()
	got := expandIncludeRoots([]string{dir})
	assert.Equal(t, []string{dir}, got)
}

func TestExpandIncludeRootsExpandsGlobPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include-a"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "include-b"), 0o755))

	got := expandIncludeRoots([]string{filepath.Join(dir, "include-*")})
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "include-a"),
		filepath.Join(dir, "include-b"),
	}, got)
}

func TestDiskSourceNeededResolvesAgainstRoots(t *testing.T) {
	dir := t.TempDir()
	headerPath := filepath.Join(dir, "foo.h")
	require.NoError(t, os.WriteFile(headerPath, []byte("int foo();\n"), 0o644))

	lookup := diskSourceNeeded([]string{dir})
	contents, resolved, ok := lookup("foo.h", 0, "")
	require.True(t, ok)
	assert.Equal(t, "int foo();\n", contents)
	assert.Equal(t, headerPath, resolved)
}

func TestDiskSourceNeededReportsMissingFile(t *testing.T) {
	lookup := diskSourceNeeded([]string{t.TempDir()})
	_, _, ok := lookup("missing.h", 0, "")
	assert.False(t, ok)
}
