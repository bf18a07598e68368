package models

import "github.com/google/uuid"

// Normalization converges every historical record shape on the canonical
// one. Three variants exist in the wild: the first stored medications as
// free text, the second dropped the notes field, the current one is the
// full shape. Normalizing an already-normalized record is a no-op.

// NormalizePatient fills fields absent from older schema versions in
// place and normalizes every owned medication. A patient persisted
// before ids were introduced gets a fresh one.
func NormalizePatient(p *Patient) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Medications == nil {
		p.Medications = make([]*Medication, 0)
	}
	for _, m := range p.Medications {
		NormalizeMedication(m)
	}
}

// NormalizeMedication folds the legacy free-text shape into the
// structured one, preserving identity and displayable text. The legacy
// date, having no structured slot, lands in notes.
func NormalizeMedication(m *Medication) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Name == "" && m.Description != "" {
		m.Name = m.Description
	}
	if m.Date != "" {
		if m.Notes == "" {
			m.Notes = "recorded " + m.Date
		}
		m.Date = ""
	}
	m.Description = ""
	if m.Type == "" {
		m.Type = TypeOther
	}
}

// NormalizeAll normalizes a whole collection and returns it for chaining.
func NormalizeAll(patients []*Patient) []*Patient {
	if patients == nil {
		return make([]*Patient, 0)
	}
	for _, p := range patients {
		NormalizePatient(p)
	}
	return patients
}
