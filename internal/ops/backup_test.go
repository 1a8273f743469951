package ops

import (
	"archive/tar"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRestoreFiles_RoundTrip(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{
		"state.json": `{"active_modifiers":["A"],"modifiers_in_progress":[],"trial_in_progress":null}`,
		"game.json":  `{"world_mass":1e6,"tau":300,"modifiers":{}}`,
	}
	var paths []string
	for name, content := range files {
		p := filepath.Join(src, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		paths = append(paths, p)
	}
	paths = append(paths, filepath.Join(src, "not-yet-saved.json"))

	archive := filepath.Join(t.TempDir(), "out", "backup.tar.gz")
	skipped, err := BackupFiles(paths, archive)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(src, "not-yet-saved.json")}, skipped)

	restoreDir := filepath.Join(t.TempDir(), "restore")
	restored, err := RestoreFiles(archive, restoreDir)
	require.NoError(t, err)
	assert.Len(t, restored, 2)

	for name, content := range files {
		got, err := os.ReadFile(filepath.Join(restoreDir, name))
		require.NoError(t, err)
		assert.Equal(t, content, string(got))
	}
}

func TestBackupFiles_RejectsNameClash(t *testing.T) {
	a := filepath.Join(t.TempDir(), "state.json")
	b := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(a, []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("{}"), 0o644))

	_, err := BackupFiles([]string{a, b}, filepath.Join(t.TempDir(), "x.tar.gz"))
	assert.Error(t, err)
}

func TestRestoreFiles_RejectsTraversal(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "evil.tar.gz")
	f, err := os.Create(archive)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	body := []byte("pwned")
	require.NoError(t, tw.WriteHeader(&tar.Header{Name: "../escape.json", Mode: 0o644, Size: int64(len(body)), Typeflag: tar.TypeReg}))
	_, err = tw.Write(body)
	require.NoError(t, err)
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	_, err = RestoreFiles(archive, filepath.Join(t.TempDir(), "restore"))
	assert.Error(t, err)
}
