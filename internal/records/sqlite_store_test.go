package records

import (
	"path/filepath"
	"testing"

	"clinicd/internal/models"
	"clinicd/internal/testutil/logmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "records.db")
	store, err := NewSQLiteStore(path, &logmock.MockLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLiteStore_LoadAll_FirstRun(t *testing.T) {
	store := newTestSQLiteStore(t)
	patients, err := store.LoadAll()
	require.NoError(t, err)
	require.NotNil(t, patients)
	assert.Len(t, patients, 0)
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.ReplaceAll(samplePatients()))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "p1", loaded[0].ID)
	assert.Equal(t, "Asha", loaded[0].Name)
	assert.Equal(t, "first visit", loaded[0].Notes)
	require.Len(t, loaded[0].Medications, 1)

	med := loaded[0].Medications[0]
	assert.Equal(t, "m1", med.ID)
	assert.Equal(t, "Ashwagandha", med.Name)
	assert.Equal(t, "500mg", med.Dosage)
	assert.Equal(t, models.TypeAyurvedic, med.Type)

	require.NotNil(t, loaded[1].Medications)
	assert.Len(t, loaded[1].Medications, 0)
}

func TestSQLiteStore_PreservesCollectionOrder(t *testing.T) {
	store := newTestSQLiteStore(t)
	patients := []*models.Patient{
		{ID: "z", Name: "Zara", Mobile: "1", Place: "a"},
		{ID: "a", Name: "Anu", Mobile: "2", Place: "b"},
		{ID: "m", Name: "Manu", Mobile: "3", Place: "c"},
	}
	require.NoError(t, store.ReplaceAll(patients))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	assert.Equal(t, "z", loaded[0].ID)
	assert.Equal(t, "a", loaded[1].ID)
	assert.Equal(t, "m", loaded[2].ID)
}

func TestSQLiteStore_ReplaceAll_Overwrites(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.ReplaceAll(samplePatients()))
	require.NoError(t, store.ReplaceAll([]*models.Patient{{ID: "p3", Name: "Chitra", Mobile: "7", Place: "Kollam"}}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "p3", loaded[0].ID)
	assert.Len(t, loaded[0].Medications, 0)
}

func TestSQLiteStore_ReplaceAll_Empty(t *testing.T) {
	store := newTestSQLiteStore(t)
	require.NoError(t, store.ReplaceAll(samplePatients()))
	require.NoError(t, store.ReplaceAll([]*models.Patient{}))

	loaded, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, loaded, 0)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.db")
	store, err := NewSQLiteStore(path, &logmock.MockLogger{})
	require.NoError(t, err)
	require.NoError(t, store.ReplaceAll(samplePatients()))
	require.NoError(t, store.Close())

	reopened, err := NewSQLiteStore(path, &logmock.MockLogger{})
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadAll()
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}
