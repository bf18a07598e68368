package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"clinicd/internal/records"
	"clinicd/internal/structures"
	"clinicd/internal/testutil/logmock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, dir string) (configPath, storagePath string) {
	t.Helper()
	storagePath = filepath.Join(dir, "records.db")
	configPath = filepath.Join(dir, "config.yaml")
	yaml := fmt.Sprintf(`storage:
  backend: file
  filePath: %s
backup:
  dir: %s
  statePath: %s
  interval: 60
  maxBackups: 10
webServer:
  host: 127.0.0.1
  port: 8745
logger:
  level: info
  mode: 0644
  dir: %s
cache:
  enabled: false
metrics:
  enabled: false
`, storagePath, filepath.Join(dir, "backups"), filepath.Join(dir, "backup-state.json"), dir)
	require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0644))
	return configPath, storagePath
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	require.NoError(t, root.Execute())
	return out.String()
}

// Full offline round trip: export the collection to a snapshot, wipe the
// storage file, import the snapshot back.
func TestExportImportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configPath, storagePath := writeTestConfig(t, dir)

	// Seed the storage file with a legacy bare-array payload; the store
	// migrates it on load.
	seed := `[{"id":"p1","name":"Asha","mobile":"9999999999","place":"Kochi","visitedDate":"2024-03-15"}]`
	require.NoError(t, os.WriteFile(storagePath, []byte(seed), 0644))

	outDir := filepath.Join(dir, "out")
	out := run(t, "export", "-c", configPath, "-o", outDir)
	assert.Contains(t, out, "exported 1 patients")

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	snapshotPath := filepath.Join(outDir, entries[0].Name())

	// Wipe the collection
	require.NoError(t, os.WriteFile(storagePath, []byte("[]"), 0644))

	out = run(t, "import", "-c", configPath, snapshotPath)
	assert.Contains(t, out, "imported 1 patients")

	// Read the storage file back through a store and check the record
	conf := &structures.Config{
		Storage: structures.StorageConfig{Backend: "file", FilePath: storagePath},
	}
	store, err := records.NewRecordStore(conf, &logmock.MockLogger{})
	require.NoError(t, err)
	defer store.Close()

	patients, err := store.LoadAll()
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Asha", patients[0].Name)
	assert.Equal(t, "p1", patients[0].ID)
}

func TestImport_RejectsMalformedSnapshot(t *testing.T) {
	dir := t.TempDir()
	configPath, storagePath := writeTestConfig(t, dir)

	seed := `[{"id":"p1","name":"Asha","mobile":"9999999999","place":"Kochi","visitedDate":"2024-03-15"}]`
	require.NoError(t, os.WriteFile(storagePath, []byte(seed), 0644))

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("not a snapshot"), 0644))

	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"import", "-c", configPath, badPath})
	require.Error(t, root.Execute())

	// Existing data untouched
	original, err := os.ReadFile(storagePath)
	require.NoError(t, err)
	assert.Equal(t, seed, string(original))
}
