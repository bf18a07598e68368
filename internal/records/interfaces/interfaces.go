package interfaces

import "clinicd/internal/models"

// RecordStoreInterface is the durable persistence seam for the patient
// collection. ReplaceAll is a full-collection overwrite; LoadAll on a
// first-ever run returns an empty collection, not an error.
type RecordStoreInterface interface {
	LoadAll() ([]*models.Patient, error)
	ReplaceAll(patients []*models.Patient) error
	Close() error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type SnapshotterInterface interface {
	Export() (filename string, data []byte, err error)
	ExportToDir(dir string) (filename string, err error)
	Import(data []byte) error
}

type SchedulerInterface interface {
	Init()
	Stop()
	Restore() error
	Persist() error
	GetConfig() models.BackupConfig
	UpdateConfig(patch *models.BackupConfigPatch) (models.BackupConfig, error)
	History() []*models.BackupHistoryEntry
}
