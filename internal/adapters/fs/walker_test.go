package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/modscan/internal/adapters/fs"
	"go.trai.ch/modscan/internal/core/domain"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), domain.DirPerm))
	require.NoError(t, os.WriteFile(path, []byte("content"), domain.FilePerm))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "Water", "Source", "WaterEditor.Build.cs"))
	writeFile(t, filepath.Join(tmpDir, "Flurry", "FlurryEditor.Build.cs"))
	writeFile(t, filepath.Join(tmpDir, "README.md"))

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, nil))

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "Flurry", "FlurryEditor.Build.cs"),
		filepath.Join(tmpDir, "README.md"),
		filepath.Join(tmpDir, "Water", "Source", "WaterEditor.Build.cs"),
	}, files)
}

func TestWalker_WalkFiles_SkipsVCSAndIgnored(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config"))
	writeFile(t, filepath.Join(tmpDir, ".jj", "store"))
	writeFile(t, filepath.Join(tmpDir, "Intermediate", "Stale.Build.cs"))
	writeFile(t, filepath.Join(tmpDir, "Source", "Keep.Build.cs"))
	writeFile(t, filepath.Join(tmpDir, "Source", "Keep.Build.cs.orig"))

	files := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, []string{"Intermediate", "*.orig"}))

	assert.Equal(t, []string{filepath.Join(tmpDir, "Source", "Keep.Build.cs")}, files)
}

func TestWalker_WalkFiles_EarlyStop(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		writeFile(t, filepath.Join(tmpDir, name+".Build.cs"))
	}

	var got []string
	for path := range fs.NewWalker().WalkFiles(tmpDir, nil) {
		got = append(got, path)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	files := slices.Collect(fs.NewWalker().WalkFiles(filepath.Join(t.TempDir(), "missing"), nil))
	assert.Empty(t, files)
}
