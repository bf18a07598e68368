package models

// BackupConfig is the process-wide auto-backup singleton. LastBackup is
// epoch millis, 0 meaning never. Interval is minutes.
type BackupConfig struct {
	Enabled    bool  `json:"enabled"`
	Interval   int   `json:"interval"`
	LastBackup int64 `json:"lastBackup"`
	MaxBackups int   `json:"maxBackups"`
}

// Clamp forces interval and retention into their legal range. A zero or
// negative interval would otherwise turn the scheduler poll into a
// backup on every tick.
func (c *BackupConfig) Clamp() {
	if c.Interval < 1 {
		c.Interval = 1
	}
	if c.MaxBackups < 1 {
		c.MaxBackups = 1
	}
}

// BackupConfigPatch is a partial settings update; nil fields keep their
// current value.
type BackupConfigPatch struct {
	Enabled    *bool `json:"enabled,omitempty"`
	Interval   *int  `json:"interval,omitempty"`
	MaxBackups *int  `json:"maxBackups,omitempty"`
}

// BackupHistoryEntry records one completed backup, newest first.
type BackupHistoryEntry struct {
	Timestamp int64  `json:"timestamp"`
	Filename  string `json:"filename"`
}

// BackupState is the persisted envelope for config plus history.
type BackupState struct {
	Config  BackupConfig          `json:"config"`
	History []*BackupHistoryEntry `json:"history"`
}

// PrependHistory inserts an entry at the head and truncates to max.
func (s *BackupState) PrependHistory(entry *BackupHistoryEntry, max int) {
	s.History = append([]*BackupHistoryEntry{entry}, s.History...)
	if max >= 1 && len(s.History) > max {
		s.History = s.History[:max]
	}
}
