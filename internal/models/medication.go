package models

import "github.com/google/uuid"

// MedicationType classifies the medicine system a prescription belongs to.
type MedicationType string

const (
	TypeAyurvedic   MedicationType = "Ayurvedic"
	TypeUnani       MedicationType = "Unani"
	TypeSiddha      MedicationType = "Siddha"
	TypeHomeopathic MedicationType = "Homeopathic"
	TypeOther       MedicationType = "Other"
)

// Medication is the canonical structured shape. The Description and Date
// fields only appear in records written by the old free-text schema; they
// are folded into Name/Notes during normalization and never written back.
type Medication struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Dosage    string         `json:"dosage,omitempty"`
	Frequency string         `json:"frequency,omitempty"`
	Duration  string         `json:"duration,omitempty"`
	Notes     string         `json:"notes,omitempty"`
	Type      MedicationType `json:"type,omitempty"`

	// Legacy free-text shape, read-only.
	Description string `json:"description,omitempty"`
	Date        string `json:"date,omitempty"`
}

// MedicationDraft carries user input for add-medication.
type MedicationDraft struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes"`
	Type      string `json:"type"`
}

// NewMedication builds a Medication from a validated draft.
func NewMedication(draft *MedicationDraft) *Medication {
	return &Medication{
		ID:        uuid.NewString(),
		Name:      draft.Name,
		Dosage:    draft.Dosage,
		Frequency: draft.Frequency,
		Duration:  draft.Duration,
		Notes:     draft.Notes,
		Type:      canonicalType(draft.Type),
	}
}

func canonicalType(t string) MedicationType {
	switch MedicationType(t) {
	case TypeAyurvedic, TypeUnani, TypeSiddha, TypeHomeopathic, TypeOther:
		return MedicationType(t)
	default:
		return TypeOther
	}
}
