package models

// CurrentSchemaVersion is the version written by the blob store and the
// snapshot exporter. Versions 1 and 2 are read-only legacy formats.
const CurrentSchemaVersion = 3

// StoreEnvelope is the current (v3) blob store format: an explicit
// version field plus the full patient collection.
type StoreEnvelope struct {
	Version  int        `json:"version"`
	Patients []*Patient `json:"patients"`
}

// CollectionV2 is the second store format: a patients wrapper without a
// version field. Records of this era lack the notes field.
type CollectionV2 struct {
	Patients []*Patient `json:"patients"`
}

// The first store format was a bare JSON array of patients with
// free-text medications; it needs no dedicated type.

// SnapshotEnvelope is the portable export/import format. It is a JSON
// superset of StoreEnvelope, so a store blob also imports cleanly.
type SnapshotEnvelope struct {
	Version    int        `json:"version"`
	ExportedAt string     `json:"exportedAt"`
	Patients   []*Patient `json:"patients"`
}
