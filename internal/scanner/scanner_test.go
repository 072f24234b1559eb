package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "main.py", "def run():\n    return 1\n")
	writeFile(t, dir, "util.go", "package util\n\nfunc Add(a, b int) int { return a + b }\n")
	writeFile(t, dir, "notes.txt", "not code\n")
	writeFile(t, dir, "node_modules/dep.py", "x = 1\n")
	writeFile(t, dir, "bad.py", "x = 1\n\xff\xfe\n")

	s := New(DefaultConfig(), nil, nil)
	result, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Files, 3)
	assert.Equal(t, 2, result.Stats.FilesScanned)
	assert.Equal(t, 1, result.Stats.FilesFailed)

	for _, f := range result.Files {
		assert.NotContains(t, f.Path, "node_modules")
		assert.NotContains(t, f.Path, "notes.txt")
		if strings.HasSuffix(f.Path, "bad.py") {
			assert.Equal(t, "file is not valid UTF-8", f.Error)
		} else {
			assert.Empty(t, f.Error)
			assert.Len(t, f.Dimensions, 8)
		}
	}
}

func TestScanDirectorySizeCap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "small.py", "x = 1\n")
	writeFile(t, dir, "large.py", strings.Repeat("x = 1\n", 50))

	cfg := DefaultConfig()
	cfg.MaxFileSize = 64

	s := New(cfg, nil, nil)
	result, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.True(t, strings.HasSuffix(result.Files[0].Path, "small.py"))
}

func TestScanDirectoryCancellation(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 20; i++ {
		writeFile(t, dir, filepath.Join("pkg", "file"+string(rune('a'+i))+".py"), "x = 1\n")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(DefaultConfig(), nil, nil)
	_, err := s.ScanDirectory(ctx, dir)
	require.Error(t, err)
}

func TestScanDirectoryEmptyTree(t *testing.T) {
	s := New(DefaultConfig(), nil, nil)
	result, err := s.ScanDirectory(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.Equal(t, 0, result.Stats.FilesScanned)
}

func TestScanDirectorySymlinkEscape(t *testing.T) {
	outside := t.TempDir()
	writeFile(t, outside, "secret.py", "password = 'hunter2'\n")

	dir := t.TempDir()
	writeFile(t, dir, "ok.py", "x = 1\n")
	if err := os.Symlink(filepath.Join(outside, "secret.py"), filepath.Join(dir, "link.py")); err != nil {
		t.Skip("symlinks not supported on this platform")
	}

	s := New(DefaultConfig(), nil, nil)
	result, err := s.ScanDirectory(context.Background(), dir)
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.True(t, strings.HasSuffix(result.Files[0].Path, "ok.py"))
}

func TestScanRepositoryRejectsBadURL(t *testing.T) {
	s := New(DefaultConfig(), nil, nil)
	_, err := s.ScanRepository(context.Background(), "ftp://github.com/acme/widgets", "")
	require.Error(t, err)
}
