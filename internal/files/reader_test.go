package files

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "impactetl/internal/errors"
	"impactetl/internal/table"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func writeWorkbook(t *testing.T, name, sheet string, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadCSV(t *testing.T) {
	input := "\xEF\xBB\xBFParticipant ID,City,Score\n7,NYC,4\n8,,NA\n9,Bk\n"

	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"Participant ID", "City", "Score"}, tbl.Columns())
	require.Equal(t, 3, tbl.NumRows())

	assert.Equal(t, table.String("7"), tbl.Get(0, "Participant ID"))
	assert.Equal(t, table.String("NYC"), tbl.Get(0, "City"))
	assert.True(t, tbl.Get(1, "City").IsNull(), "blank cell")
	assert.True(t, tbl.Get(1, "Score").IsNull(), "NA token")
	assert.True(t, tbl.Get(2, "Score").IsNull(), "ragged row padded")
}

func TestReadCSV_NATokens(t *testing.T) {
	tokens := []string{"NA", "N/A", "NaN", "nan", "null", "NULL", "None", "#N/A", "<NA>"}

	input := "value\n" + strings.Join(tokens, "\n") + "\nnone\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	for i := range tokens {
		assert.True(t, tbl.Get(i, "value").IsNull(), tokens[i])
	}
	// Only the exact spellings are NA markers.
	assert.Equal(t, table.String("none"), tbl.Get(len(tokens), "value"))
}

func TestReadCSV_EmptyInput(t *testing.T) {
	tbl, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 0, tbl.NumCols())
}

func TestReadCSV_RepeatedHeaders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCols []string
		wantRow  []string
	}{
		{
			name:     "repeated header keeps last column",
			input:    "ID,City,City,Email\n7,NYC,Boston,a@x.org\n",
			wantCols: []string{"ID", "City", "Email"},
			wantRow:  []string{"7", "Boston", "a@x.org"},
		},
		{
			name:     "headers equal after trimming",
			input:    "ID, City,City ,Email\n7,NYC,Boston,a@x.org\n",
			wantCols: []string{"ID", "City", "Email"},
			wantRow:  []string{"7", "Boston", "a@x.org"},
		},
		{
			name:     "repeated last header",
			input:    "ID,Email,Email\n7,old@x.org,new@x.org\n",
			wantCols: []string{"ID", "Email"},
			wantRow:  []string{"7", "new@x.org"},
		},
		{
			name:     "ragged row under repeated header",
			input:    "ID,City,City,Email\n7,NYC\n",
			wantCols: []string{"ID", "City", "Email"},
			wantRow:  []string{"7", "", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := ReadCSV(strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.Equal(t, tt.wantCols, tbl.Columns())
			require.Equal(t, 1, tbl.NumRows())
			assert.Equal(t, tt.wantRow, tbl.Records()[0])
		})
	}
}

func TestReadTable_XLSX(t *testing.T) {
	path := writeWorkbook(t, "attendance.xlsx", "attendance", [][]any{
		{"student_id", "program", "session_date", "present"},
		{7, "PRG-1", "2024-01-05", "Yes"},
		{8, nil, 45296, 1},
	})

	tbl, err := ReadTable(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"student_id", "program", "session_date", "present"}, tbl.Columns())
	require.Equal(t, 2, tbl.NumRows())
	assert.Equal(t, table.String("7"), tbl.Get(0, "student_id"))
	assert.Equal(t, table.String("Yes"), tbl.Get(0, "present"))
	assert.True(t, tbl.Get(1, "program").IsNull())
	assert.Equal(t, table.String("45296"), tbl.Get(1, "session_date"), "raw serial number")
}

func TestReadTable_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ReadTable(filepath.Join(t.TempDir(), "crm_export.csv"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnreadable))
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.Equal(t, apperrors.ErrTypeIO, apperrors.TypeOf(err))
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "crm.json", "{}")
		_, err := ReadTable(path)
		assert.True(t, errors.Is(err, apperrors.ErrUnsupportedFormat))
	})

	t.Run("corrupt workbook", func(t *testing.T) {
		path := writeFile(t, "outcomes.xlsx", "not a zip archive")
		_, err := ReadTable(path)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnreadable))
	})

	t.Run("malformed csv", func(t *testing.T) {
		path := writeFile(t, "surveys.csv", "a,b\n\"unterminated,1\n")
		_, err := ReadTable(path)
		assert.True(t, errors.Is(err, apperrors.ErrSourceUnreadable))
	})
}
