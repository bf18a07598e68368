package records

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"clinicd/internal/models"
	"clinicd/internal/providers"
	"clinicd/internal/records/interfaces"
	"clinicd/internal/services"

	json "github.com/goccy/go-json"
)

const snapshotFilePattern = "clinicd-backup-%s.json"

// Snapshotter serializes the full patient collection to a portable JSON
// document and reconstructs the collection from one. It decides the
// format and the filename; delivery (download, share, backup directory)
// is the caller's concern.
type Snapshotter struct {
	service services.RecordServiceInterface
	logger  providers.Logger
	nowFn   func() time.Time
}

func NewSnapshotter(service services.RecordServiceInterface, logger providers.Logger) interfaces.SnapshotterInterface {
	return &Snapshotter{
		service: service,
		logger:  logger,
		nowFn:   time.Now,
	}
}

func (s *Snapshotter) Export() (string, []byte, error) {
	now := s.nowFn()
	envelope := models.SnapshotEnvelope{
		Version:    models.CurrentSchemaVersion,
		ExportedAt: now.UTC().Format(time.RFC3339),
		Patients:   s.service.GetSnapshot(),
	}

	data, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", nil, err
	}

	filename := fmt.Sprintf(snapshotFilePattern, now.Format("2006-01-02-150405"))
	return filename, data, nil
}

// ExportToDir writes a snapshot into dir atomically and returns the
// filename.
func (s *Snapshotter) ExportToDir(dir string) (string, error) {
	filename, data, err := s.Export()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &models.StorageError{Op: "write", Err: err}
	}

	path := filepath.Join(dir, filename)
	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return "", &models.StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpFile, path); err != nil {
		os.Remove(tmpFile)
		return "", &models.StorageError{Op: "write", Err: err}
	}

	s.logger.Infof(providers.TypeBackup, "Exported %d patients to %s", s.service.Count(), path)
	return filename, nil
}

// Import parses a snapshot and replaces the whole collection with its
// contents. Parsing and validation happen before any write, so a
// malformed snapshot leaves persisted data untouched.
func (s *Snapshotter) Import(data []byte) error {
	patients, err := parseSnapshot(data)
	if err != nil {
		return err
	}

	if err := validateCollection(patients); err != nil {
		return err
	}

	models.NormalizeAll(patients)

	if err := s.service.ReplaceCollection(patients); err != nil {
		return err
	}

	s.logger.Infof(providers.TypeBackup, "Imported %d patients from snapshot", len(patients))
	return nil
}

func parseSnapshot(data []byte) ([]*models.Patient, error) {
	var envelope models.SnapshotEnvelope
	if err := json.Unmarshal(data, &envelope); err == nil && envelope.Patients != nil {
		return envelope.Patients, nil
	}

	// Snapshots from old application versions are a bare array.
	var legacy []*models.Patient
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, &models.ImportError{Reason: "not a recognized snapshot document", Err: err}
	}
	return legacy, nil
}

func validateCollection(patients []*models.Patient) error {
	seen := make(map[string]struct{}, len(patients))
	for i, p := range patients {
		if p == nil {
			return &models.ImportError{Reason: fmt.Sprintf("record %d is null", i)}
		}
		if p.Name == "" {
			return &models.ImportError{Reason: fmt.Sprintf("record %d has no name", i)}
		}
		if p.ID != "" {
			if _, dup := seen[p.ID]; dup {
				return &models.ImportError{Reason: fmt.Sprintf("duplicate patient id %q", p.ID)}
			}
			seen[p.ID] = struct{}{}
		}
		if err := validateMedications(i, p.Medications); err != nil {
			return err
		}
	}
	return nil
}

// Medication ids only need to be unique within their owning patient.
func validateMedications(record int, medications []*models.Medication) error {
	seen := make(map[string]struct{}, len(medications))
	for _, m := range medications {
		if m == nil {
			return &models.ImportError{Reason: fmt.Sprintf("record %d has a null medication", record)}
		}
		if m.ID == "" {
			continue
		}
		if _, dup := seen[m.ID]; dup {
			return &models.ImportError{Reason: fmt.Sprintf("record %d has duplicate medication id %q", record, m.ID)}
		}
		seen[m.ID] = struct{}{}
	}
	return nil
}
