package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient is the canonical record shape. Persisted payloads from older
// application versions may omit Notes or Medications; Normalize brings
// them up to this shape before they reach any caller.
type Patient struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Mobile      string        `json:"mobile"`
	Place       string        `json:"place"`
	VisitedDate string        `json:"visitedDate"`
	NextVisit   string        `json:"nextVisit,omitempty"`
	Notes       string        `json:"notes"`
	Medications []*Medication `json:"medications"`
}

// PatientDraft carries user input for create/update operations.
type PatientDraft struct {
	Name        string `json:"name" validate:"required"`
	Mobile      string `json:"mobile" validate:"required"`
	Place       string `json:"place" validate:"required"`
	VisitedDate string `json:"visitedDate"`
	NextVisit   string `json:"nextVisit"`
	Notes       string `json:"notes"`
}

const DateLayout = "2006-01-02"

// NewPatient builds a Patient from a validated draft. VisitedDate falls
// back to the creation day when the draft leaves it empty.
func NewPatient(draft *PatientDraft, now time.Time) *Patient {
	visited := draft.VisitedDate
	if visited == "" {
		visited = now.Format(DateLayout)
	}
	return &Patient{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Mobile:      draft.Mobile,
		Place:       draft.Place,
		VisitedDate: visited,
		NextVisit:   draft.NextVisit,
		Notes:       draft.Notes,
		Medications: make([]*Medication, 0),
	}
}

// Apply overwrites the patient's editable fields from a draft. Identity
// and medications are untouched.
func (p *Patient) Apply(draft *PatientDraft) {
	p.Name = draft.Name
	p.Mobile = draft.Mobile
	p.Place = draft.Place
	if draft.VisitedDate != "" {
		p.VisitedDate = draft.VisitedDate
	}
	p.NextVisit = draft.NextVisit
	p.Notes = draft.Notes
}

// Clone returns a deep copy so callers can hand records across the
// service boundary without sharing mutable state.
func (p *Patient) Clone() *Patient {
	cp := *p
	cp.Medications = make([]*Medication, len(p.Medications))
	for i, m := range p.Medications {
		mc := *m
		cp.Medications[i] = &mc
	}
	return &cp
}

// ClonePatients deep-copies a whole collection.
func ClonePatients(patients []*Patient) []*Patient {
	out := make([]*Patient, len(patients))
	for i, p := range patients {
		out[i] = p.Clone()
	}
	return out
}

// Medication returns the medication with the given id, or nil.
func (p *Patient) Medication(id string) *Medication {
	for _, m := range p.Medications {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// RemoveMedication deletes the medication with the given id, reporting
// whether it was present.
func (p *Patient) RemoveMedication(id string) bool {
	for i, m := range p.Medications {
		if m.ID == id {
			p.Medications = append(p.Medications[:i], p.Medications[i+1:]...)
			return true
		}
	}
	return false
}
