package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindTables(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"survey_responses.csv", "attendance.xlsx", "notes.txt", "crm_export.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "archive.csv"), 0755))

	found, err := FindTables(dir)
	require.NoError(t, err)

	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"attendance.xlsx", "crm_export.CSV", "survey_responses.csv"}, names)
	assert.Equal(t, int64(1), found[0].Size)
}

func TestFindTables_MissingDir(t *testing.T) {
	_, err := FindTables(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestStat(t *testing.T) {
	path := writeFile(t, "crm_export.csv", "id\n1\n")

	info, err := Stat(path)
	require.NoError(t, err)
	assert.Equal(t, "crm_export.csv", info.Name)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.ModTime.IsZero())
}
