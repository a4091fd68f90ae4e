package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"pngstash/png"
)

func writeTestPng(t *testing.T, path string, hidden string) {
	t.Helper()
	ihdr, err := png.ChunkTypeFromString("IHDR")
	require.NoError(t, err)
	iend, err := png.ChunkTypeFromString("IEND")
	require.NoError(t, err)
	raw := png.FromChunks([]png.Chunk{
		png.NewChunk(ihdr, []byte{0, 0, 0, 1, 0, 0, 0, 1, 8, 6, 0, 0, 0}),
		png.NewChunk(iend, nil),
	}).AsBytes()
	if hidden != "" {
		raw, err = png.Encode(raw, "ruSt", hidden)
		require.NoError(t, err)
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0775))
	require.NoError(t, os.WriteFile(path, raw, 0644))
}

func TestScanTree(t *testing.T) {
	root := t.TempDir()
	writeTestPng(t, filepath.Join(root, "a", "hidden.png"), "secret")
	writeTestPng(t, filepath.Join(root, "b", "plain.png"), "")
	require.NoError(t, os.WriteFile(filepath.Join(root, "note.txt"), []byte("not an image"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "broken.png"), []byte("garbage"), 0644))

	findings, err := scanTree(root, 4, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, findings, 1)
	require.Equal(t, filepath.Join(root, "a", "hidden.png"), findings[0].path)
	require.Equal(t, []string{"ruSt"}, findings[0].types)
}

func TestScanTreeEmpty(t *testing.T) {
	findings, err := scanTree(t.TempDir(), 2, zap.NewNop())
	require.NoError(t, err)
	require.Empty(t, findings)
}

func TestScanTreeMissingRoot(t *testing.T) {
	_, err := scanTree(filepath.Join(t.TempDir(), "nope"), 2, zap.NewNop())
	require.Error(t, err)
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.png")
	writeTestPng(t, path, "hi")
	types, err := checkFile(path)
	require.NoError(t, err)
	require.Equal(t, []string{"ruSt"}, types)
}
