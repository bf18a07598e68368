package records

import (
	"os"

	"clinicd/internal/models"
	"clinicd/internal/providers"
	"clinicd/internal/records/interfaces"

	json "github.com/goccy/go-json"
)

// FileStore keeps the whole patient collection in a single
// zstd-compressed JSON blob, rewritten atomically on every ReplaceAll.
type FileStore struct {
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor interfaces.CompressorInterface, logger providers.Logger) *FileStore {
	return &FileStore{
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

func (f *FileStore) ReplaceAll(patients []*models.Patient) error {
	envelope := models.StoreEnvelope{
		Version:  models.CurrentSchemaVersion,
		Patients: patients,
	}
	jsonData, err := json.Marshal(envelope)
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.StorageError{Op: "write", Err: err}
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return &models.StorageError{Op: "write", Err: err}
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return &models.StorageError{Op: "write", Err: err}
	}

	if err = os.Rename(tmpFile, f.path); err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	return nil
}

func (f *FileStore) LoadAll() ([]*models.Patient, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First-ever run.
			return make([]*models.Patient, 0), nil
		}
		return nil, &models.StorageError{Op: "read", Err: err}
	}

	raw, err := f.compressor.Decompress(data)
	if err != nil {
		// Blobs written before compression was introduced are plain JSON.
		raw = data
	}

	// Current format: versioned envelope
	var envelope models.StoreEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Patients != nil {
		return models.NormalizeAll(envelope.Patients), nil
	}

	f.logger.Warnf(providers.TypeStore, "Inconsistent DB found, try to migrate from old data format")

	// Old format v2: patients wrapper without version field
	var v2 models.CollectionV2
	if err := json.Unmarshal(raw, &v2); err == nil && v2.Patients != nil {
		f.logger.Warnf(providers.TypeStore, "Migration from v2 format successful")
		return models.NormalizeAll(v2.Patients), nil
	}

	// Old format v1: bare array of patients with free-text medications
	var v1 []*models.Patient
	if err := json.Unmarshal(raw, &v1); err != nil {
		f.logger.Warnf(providers.TypeStore, "Migration failed")
		return nil, &models.StorageError{Op: "read", Err: err}
	}
	f.logger.Warnf(providers.TypeStore, "Migration from v1 format successful")
	return models.NormalizeAll(v1), nil
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}
