package files

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "impactetl/internal/errors"
	"impactetl/internal/table"
	"impactetl/pkg/contracts/domain"
)

func TestReadMaster(t *testing.T) {
	path := writeFile(t, "master_dataset.csv",
		"participant_id,program_id,sessions_total,sessions_attended,first_session,last_session,avg_satisfaction,avg_nps,survey_responses,last_survey,pre_score,post_score,city,email,attendance_rate,outcome_delta\n"+
			"P-000007,PRG-001,2,1,2024-01-05,2024-01-12,4.5,,1,2024-01-20,60.0,80.0,New York,a@b.org,0.5,20.0\n")

	tbl, err := ReadMaster(path)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.NumRows())

	assert.Equal(t, table.String("P-000007"), tbl.Get(0, "participant_id"))
	assert.Equal(t, table.Int(2), tbl.Get(0, "sessions_total"))
	assert.Equal(t, table.Float(0.5), tbl.Get(0, "attendance_rate"))
	assert.Equal(t, table.Float(20), tbl.Get(0, "outcome_delta"))
	assert.True(t, tbl.Get(0, "avg_nps").IsNull())
	assert.Equal(t, table.Date(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)), tbl.Get(0, "last_session"))
	assert.Equal(t, table.String("New York"), tbl.Get(0, "city"))
}

func TestReadMaster_CanonicalColumns(t *testing.T) {
	path := writeFile(t, "master_dataset.csv",
		"notes,program_id,participant_id,sessions_total\n"+
			"hello,PRG-001,P-000007,3\n")

	tbl, err := ReadMaster(path)
	require.NoError(t, err)

	assert.Equal(t, domain.MasterColumns, tbl.Columns())
	assert.False(t, tbl.Has("notes"))
	assert.Equal(t, table.String("P-000007"), tbl.Get(0, domain.ColParticipantID))
	assert.Equal(t, table.Int(3), tbl.Get(0, domain.ColSessionsTotal))
	assert.True(t, tbl.Get(0, domain.ColAttendanceRate).IsNull())
	assert.True(t, tbl.Get(0, domain.ColLastSession).IsNull())
}

func TestReadMaster_NotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "master_dataset.csv")

	_, err := ReadMaster(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrMasterNotFound))
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "go run ./cmd/pipeline")
}
