package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadedSheet() (*Sheet, Detection) {
	sheet := &Sheet{
		Headers: []string{"nome", "matricula"},
		Rows:    []Row{{"nome": "João", "matricula": "2021001"}},
	}
	return sheet, Detect(sheet)
}

func TestSessionLoadRecognizedFile(t *testing.T) {
	s := NewSession("prof-1")
	assert.Equal(t, StateIdle, s.State)

	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	state, dataType := s.Snapshot()
	assert.Equal(t, StateReadyToCommit, state)
	assert.Equal(t, TypeStudents, dataType)
}

func TestSessionLoadUnrecognizedFileNeedsForcedType(t *testing.T) {
	s := NewSession("prof-1")
	sheet := &Sheet{Headers: []string{"foo"}, Rows: []Row{{"foo": "bar"}}}
	require.NoError(t, s.LoadFile(sheet, Detect(sheet)))

	state, _ := s.Snapshot()
	assert.Equal(t, StateTypeDetected, state)

	// Commit is illegal until a type is forced.
	assert.ErrorIs(t, s.BeginCommit(), ErrInvalidTransition)

	require.NoError(t, s.ForceType(TypeGrades))
	state, dataType := s.Snapshot()
	assert.Equal(t, StateReadyToCommit, state)
	assert.Equal(t, TypeGrades, dataType)
	assert.True(t, s.Forced)
}

func TestSessionForceTypeRejectsUnrecognized(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	assert.ErrorIs(t, s.ForceType(TypeUnrecognized), ErrInvalidTransition)
	assert.ErrorIs(t, s.ForceType(DataType("bogus")), ErrInvalidTransition)
}

func TestSessionForceTypeOverridesDetection(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	// Detection said students; the user insists on grades.
	require.NoError(t, s.ForceType(TypeGrades))
	_, dataType := s.Snapshot()
	assert.Equal(t, TypeGrades, dataType)
}

func TestSessionCommitLifecycle(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	require.NoError(t, s.BeginCommit())
	state, _ := s.Snapshot()
	assert.Equal(t, StateCommitting, state)

	// A second BeginCommit while committing is illegal.
	assert.ErrorIs(t, s.BeginCommit(), ErrInvalidTransition)

	s.FinishCommit()
	state, _ = s.Snapshot()
	assert.Equal(t, StateDone, state)
}

func TestSessionFailedCommitIsRetryable(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	require.NoError(t, s.BeginCommit())
	s.FailCommit()
	state, _ := s.Snapshot()
	assert.Equal(t, StateFailed, state)

	require.NoError(t, s.BeginCommit())
	s.FinishCommit()
	state, _ = s.Snapshot()
	assert.Equal(t, StateDone, state)
}

func TestSessionCancelResetsEverything(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))

	require.NoError(t, s.Cancel())
	state, dataType := s.Snapshot()
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, TypeUnrecognized, dataType)
	assert.Nil(t, s.Sheet)
	assert.False(t, s.Forced)

	// A cancelled session can load a new file.
	require.NoError(t, s.LoadFile(sheet, detection))
}

func TestSessionCancelDuringCommitFails(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))
	require.NoError(t, s.BeginCommit())

	// The commit still reads the sheet; cancel must not pull it away.
	assert.ErrorIs(t, s.Cancel(), ErrInvalidTransition)
	state, _ := s.Snapshot()
	assert.Equal(t, StateCommitting, state)
	assert.NotNil(t, s.Sheet)

	_, _, err := NormalizeStudents(s.Sheet)
	require.NoError(t, err)

	// Once the commit failed, cancel is legal again.
	s.FailCommit()
	require.NoError(t, s.Cancel())
	state, _ = s.Snapshot()
	assert.Equal(t, StateIdle, state)
}

func TestSessionLoadFileTwiceFails(t *testing.T) {
	s := NewSession("prof-1")
	sheet, detection := loadedSheet()
	require.NoError(t, s.LoadFile(sheet, detection))
	assert.ErrorIs(t, s.LoadFile(sheet, detection), ErrInvalidTransition)
}

func TestStore(t *testing.T) {
	store := NewStore()
	s := NewSession("prof-1")

	store.Put(s)
	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	store.Delete(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)

	_, ok = store.Get("missing")
	assert.False(t, ok)
}
