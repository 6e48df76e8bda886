package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *DownloadStorage {
	t.Helper()
	s, err := NewDownloadStorage(t.TempDir(), 1)
	require.NoError(t, err)
	return s
}

func TestSave_WritesFile(t *testing.T) {
	s := newTestStorage(t)

	path, written, err := s.Save(context.Background(), "смета.pdf", strings.NewReader("содержимое"))
	require.NoError(t, err)
	assert.Equal(t, int64(len("содержимое")), written)
	assert.Equal(t, "смета.pdf", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "содержимое", string(data))

	// Временный файл после переименования не остаётся.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSave_DoesNotOverwriteExisting(t *testing.T) {
	s := newTestStorage(t)

	first, _, err := s.Save(context.Background(), "act.pdf", strings.NewReader("первый"))
	require.NoError(t, err)
	second, _, err := s.Save(context.Background(), "act.pdf", strings.NewReader("второй"))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "первый", string(data))
}

func TestSave_RejectsOversizedFile(t *testing.T) {
	s := newTestStorage(t)

	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, _, err := s.Save(context.Background(), "big.bin", big)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "превышает лимит")

	entries, err := os.ReadDir(s.rootPath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSave_CancelledContext(t *testing.T) {
	s := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Save(ctx, "a.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\temp\счёт.xlsx`, "счёт.xlsx"},
		{"a b?c*.txt", "a_b_c_.txt"},
		{"...", "file"},
		{"", "file"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, sanitizeFilename(tc.in), "input %q", tc.in)
	}
}
