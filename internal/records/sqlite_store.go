package records

import (
	"database/sql"
	_ "embed"
	"fmt"

	"clinicd/internal/models"
	"clinicd/internal/providers"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLiteStore is the per-record indexed backend: one row per patient,
// one row per medication, replaced wholesale inside a transaction so a
// failed write never leaves a mix of old and new records.
type SQLiteStore struct {
	db     *sql.DB
	logger providers.Logger
}

func NewSQLiteStore(path string, logger providers.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, &models.StorageError{Op: "open", Err: err}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &models.StorageError{Op: "open", Err: err}
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, &models.StorageError{Op: "open", Err: err}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, &models.StorageError{Op: "open", Err: fmt.Errorf("apply schema: %w", err)}
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (s *SQLiteStore) LoadAll() ([]*models.Patient, error) {
	rows, err := s.db.Query(`
		SELECT id, name, mobile, place, visited_date, next_visit, notes
		FROM patients
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, &models.StorageError{Op: "read", Err: err}
	}
	defer rows.Close()

	patients := make([]*models.Patient, 0)
	byID := make(map[string]*models.Patient)
	for rows.Next() {
		p := &models.Patient{Medications: make([]*models.Medication, 0)}
		if err := rows.Scan(&p.ID, &p.Name, &p.Mobile, &p.Place, &p.VisitedDate, &p.NextVisit, &p.Notes); err != nil {
			return nil, &models.StorageError{Op: "read", Err: err}
		}
		patients = append(patients, p)
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StorageError{Op: "read", Err: err}
	}

	if err := s.loadMedications(byID); err != nil {
		return nil, err
	}

	return models.NormalizeAll(patients), nil
}

func (s *SQLiteStore) loadMedications(byID map[string]*models.Patient) error {
	rows, err := s.db.Query(`
		SELECT id, patient_id, name, dosage, frequency, duration, notes, type
		FROM medications
		ORDER BY patient_id, position ASC
	`)
	if err != nil {
		return &models.StorageError{Op: "read", Err: err}
	}
	defer rows.Close()

	for rows.Next() {
		var patientID string
		m := &models.Medication{}
		if err := rows.Scan(&m.ID, &patientID, &m.Name, &m.Dosage, &m.Frequency, &m.Duration, &m.Notes, &m.Type); err != nil {
			return &models.StorageError{Op: "read", Err: err}
		}
		if p, ok := byID[patientID]; ok {
			p.Medications = append(p.Medications, m)
		}
	}
	if err := rows.Err(); err != nil {
		return &models.StorageError{Op: "read", Err: err}
	}
	return nil
}

func (s *SQLiteStore) ReplaceAll(patients []*models.Patient) error {
	tx, err := s.db.Begin()
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	if err := replaceAllTx(tx, patients); err != nil {
		tx.Rollback()
		return &models.StorageError{Op: "write", Err: err}
	}
	if err := tx.Commit(); err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	return nil
}

func replaceAllTx(tx *sql.Tx, patients []*models.Patient) error {
	if _, err := tx.Exec(`DELETE FROM medications`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM patients`); err != nil {
		return err
	}

	insertPatient, err := tx.Prepare(`
		INSERT INTO patients (id, position, name, mobile, place, visited_date, next_visit, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insertPatient.Close()

	insertMedication, err := tx.Prepare(`
		INSERT INTO medications (id, patient_id, position, name, dosage, frequency, duration, notes, type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer insertMedication.Close()

	for pos, p := range patients {
		if _, err := insertPatient.Exec(p.ID, pos, p.Name, p.Mobile, p.Place, p.VisitedDate, p.NextVisit, p.Notes); err != nil {
			return err
		}
		for mpos, m := range p.Medications {
			if _, err := insertMedication.Exec(m.ID, p.ID, mpos, m.Name, m.Dosage, m.Frequency, m.Duration, m.Notes, m.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
