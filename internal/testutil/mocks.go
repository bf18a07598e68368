package testutil

import (
	"sync"
	"time"

	"clinicd/internal/models"
)

// MockLogger lives in the logmock subpackage so this package does not
// import providers, which would cycle with tests inside providers'
// import path.

// MockStore implements interfaces.RecordStoreInterface in memory with
// injectable failures.
type MockStore struct {
	mu           sync.Mutex
	Patients     []*models.Patient
	LoadErr      error
	ReplaceErr   error
	ReplaceCalls int
}

func (m *MockStore) LoadAll() ([]*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return models.NormalizeAll(models.ClonePatients(m.Patients)), nil
}

func (m *MockStore) ReplaceAll(patients []*models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReplaceCalls++
	if m.ReplaceErr != nil {
		return m.ReplaceErr
	}
	m.Patients = models.ClonePatients(patients)
	return nil
}

func (m *MockStore) Close() error { return nil }

// MockCompressor implements interfaces.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Persists    int
	Backups     int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	m.Requests++
	m.mu.Unlock()
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	m.CacheHits++
	m.mu.Unlock()
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	m.CacheMisses++
	m.mu.Unlock()
}
func (m *MockMetrics) ObservePersistenceDuration(_ time.Duration) {
	m.mu.Lock()
	m.Persists++
	m.mu.Unlock()
}
func (m *MockMetrics) IncBackupsTotal() {
	m.mu.Lock()
	m.Backups++
	m.mu.Unlock()
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Purge() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
}

// MockSnapshotter implements interfaces.SnapshotterInterface with
// injectable behavior.
type MockSnapshotter struct {
	mu          sync.Mutex
	ExportCalls []string
	ExportErr   error
	Filename    string
	ImportErr   error
	Imported    [][]byte
}

func (m *MockSnapshotter) Export() (string, []byte, error) {
	if m.ExportErr != nil {
		return "", nil, m.ExportErr
	}
	return m.filename(), []byte("{}"), nil
}

func (m *MockSnapshotter) ExportToDir(dir string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ExportErr != nil {
		return "", m.ExportErr
	}
	m.ExportCalls = append(m.ExportCalls, dir)
	return m.filename(), nil
}

func (m *MockSnapshotter) Import(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ImportErr != nil {
		return m.ImportErr
	}
	m.Imported = append(m.Imported, data)
	return nil
}

func (m *MockSnapshotter) filename() string {
	if m.Filename != "" {
		return m.Filename
	}
	return "clinicd-backup-test.json"
}
