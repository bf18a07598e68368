package services

import (
	"strings"
	"sync"
	"time"

	"clinicd/internal/models"
	"clinicd/internal/records/interfaces"

	"github.com/gookit/validate"
)

type RecordServiceInterface interface {
	Reload() error
	ListPatients() []*models.Patient
	GetPatient(id string) (*models.Patient, error)
	SearchPatients(query string) []*models.Patient
	AddPatient(draft *models.PatientDraft) (*models.Patient, error)
	UpdatePatient(id string, draft *models.PatientDraft) (*models.Patient, error)
	DeletePatient(id string) error
	AddMedication(patientID string, draft *models.MedicationDraft) (*models.Patient, error)
	DeleteMedication(patientID, medicationID string) (*models.Patient, error)
	SetNextVisitDate(patientID, date string) (*models.Patient, error)
	GetSnapshot() []*models.Patient
	ReplaceCollection(patients []*models.Patient) error
	Count() int
}

// RecordService owns the in-memory patient collection and writes every
// mutation through to the store as a full-collection overwrite. The
// mutex makes each read-modify-write a critical section, so back-to-back
// mutations always apply to successive snapshots of the collection.
type RecordService struct {
	mu       sync.Mutex
	store    interfaces.RecordStoreInterface
	patients []*models.Patient
	nowFn    func() time.Time
}

func NewRecordService(store interfaces.RecordStoreInterface) RecordServiceInterface {
	return &RecordService{
		store:    store,
		patients: make([]*models.Patient, 0),
		nowFn:    time.Now,
	}
}

// Reload replaces in-memory state with the persisted collection. Loaded
// records are already normalized by the store.
func (rs *RecordService) Reload() error {
	patients, err := rs.store.LoadAll()
	if err != nil {
		return err
	}
	rs.mu.Lock()
	rs.patients = patients
	rs.mu.Unlock()
	return nil
}

func (rs *RecordService) ListPatients() []*models.Patient {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return models.ClonePatients(rs.patients)
}

func (rs *RecordService) GetPatient(id string) (*models.Patient, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	for _, p := range rs.patients {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return nil, &models.NotFoundError{Kind: "patient", ID: id}
}

func (rs *RecordService) SearchPatients(query string) []*models.Patient {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return models.ClonePatients(rs.patients)
	}

	found := make([]*models.Patient, 0)
	for _, p := range rs.patients {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Mobile), q) ||
			strings.Contains(strings.ToLower(p.Place), q) {
			found = append(found, p.Clone())
		}
	}
	return found
}

func (rs *RecordService) AddPatient(draft *models.PatientDraft) (*models.Patient, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	patient := models.NewPatient(draft, rs.nowFn())
	next := append(models.ClonePatients(rs.patients), patient)
	if err := rs.store.ReplaceAll(next); err != nil {
		return nil, err
	}
	rs.patients = next
	return patient.Clone(), nil
}

func (rs *RecordService) UpdatePatient(id string, draft *models.PatientDraft) (*models.Patient, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.mutatePatient(id, func(p *models.Patient) error {
		p.Apply(draft)
		return nil
	})
}

func (rs *RecordService) DeletePatient(id string) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	next := make([]*models.Patient, 0, len(rs.patients))
	found := false
	for _, p := range rs.patients {
		if p.ID == id {
			found = true
			continue
		}
		next = append(next, p.Clone())
	}
	if !found {
		return &models.NotFoundError{Kind: "patient", ID: id}
	}

	if err := rs.store.ReplaceAll(next); err != nil {
		return err
	}
	rs.patients = next
	return nil
}

func (rs *RecordService) AddMedication(patientID string, draft *models.MedicationDraft) (*models.Patient, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.mutatePatient(patientID, func(p *models.Patient) error {
		p.Medications = append(p.Medications, models.NewMedication(draft))
		return nil
	})
}

func (rs *RecordService) DeleteMedication(patientID, medicationID string) (*models.Patient, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.mutatePatient(patientID, func(p *models.Patient) error {
		if !p.RemoveMedication(medicationID) {
			return &models.NotFoundError{Kind: "medication", ID: medicationID}
		}
		return nil
	})
}

func (rs *RecordService) SetNextVisitDate(patientID, date string) (*models.Patient, error) {
	if err := validateDateField("nextVisit", date); err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	return rs.mutatePatient(patientID, func(p *models.Patient) error {
		p.NextVisit = date
		return nil
	})
}

// mutatePatient applies fn to a deep copy of the collection, persists
// it, and only then installs it as the current state. Must be called
// with rs.mu held.
func (rs *RecordService) mutatePatient(id string, fn func(*models.Patient) error) (*models.Patient, error) {
	next := models.ClonePatients(rs.patients)
	var target *models.Patient
	for _, p := range next {
		if p.ID == id {
			target = p
			break
		}
	}
	if target == nil {
		return nil, &models.NotFoundError{Kind: "patient", ID: id}
	}
	if err := fn(target); err != nil {
		return nil, err
	}
	if err := rs.store.ReplaceAll(next); err != nil {
		return nil, err
	}
	rs.patients = next
	return target.Clone(), nil
}

// GetSnapshot returns a deep copy of the full collection for export.
func (rs *RecordService) GetSnapshot() []*models.Patient {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return models.ClonePatients(rs.patients)
}

// ReplaceCollection installs an imported collection, persisting it
// before it becomes visible.
func (rs *RecordService) ReplaceCollection(patients []*models.Patient) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if err := rs.store.ReplaceAll(patients); err != nil {
		return err
	}
	rs.patients = patients
	return nil
}

func (rs *RecordService) Count() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return len(rs.patients)
}

func validateDraft(draft interface{}) error {
	v := validate.Struct(draft)
	if !v.Validate() {
		field, msg := firstError(v)
		return &models.ValidationError{Field: field, Reason: msg}
	}
	if d, ok := draft.(*models.PatientDraft); ok {
		if err := validateDateField("visitedDate", d.VisitedDate); err != nil {
			return err
		}
		if err := validateDateField("nextVisit", d.NextVisit); err != nil {
			return err
		}
	}
	return nil
}

// Date fields are optional, but a non-empty value must be an ISO date.
func validateDateField(field, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(models.DateLayout, value); err != nil {
		return &models.ValidationError{Field: field, Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	return nil
}

func firstError(v *validate.Validation) (string, string) {
	for field, errs := range v.Errors {
		for _, msg := range errs {
			return field, msg
		}
	}
	return "", v.Errors.One()
}
