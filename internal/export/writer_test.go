package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiskWriterCreatesNestedDirs(t *testing.T) {
	writer := &DiskWriter{BaseDir: t.TempDir()}

	err := writer.Write("page_hits/census_user.csv", []byte("header\nrow\n"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(writer.BaseDir, "page_hits", "census_user.csv"))
	require.NoError(t, err)
	require.Equal(t, "header\nrow\n", string(got))
}

func TestDiskWriterReplacesExistingFile(t *testing.T) {
	writer := &DiskWriter{BaseDir: t.TempDir()}

	require.NoError(t, writer.Write("total_hits/total_hits_by_content.csv", []byte("old content, much longer than the new one\n")))
	require.NoError(t, writer.Write("total_hits/total_hits_by_content.csv", []byte("new\n")))

	got, err := os.ReadFile(filepath.Join(writer.BaseDir, "total_hits", "total_hits_by_content.csv"))
	require.NoError(t, err)
	require.Equal(t, "new\n", string(got))
}
