package records

import (
	"os"
	"sync"
	"time"

	"clinicd/internal/models"
	"clinicd/internal/providers"
	"clinicd/internal/records/interfaces"
	"clinicd/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

// pollGranularity is how often the armed scheduler checks whether a
// backup is due. The configured interval is a multiple of minutes, so a
// finer poll would buy nothing.
const pollGranularity = time.Minute

// Scheduler drives the automatic backup cycle. Idle until enabled; while
// armed it polls once a minute and exports a snapshot when the configured
// interval has elapsed since the last backup. Each enable builds a fresh
// cron and each disable releases it, so repeated cycles leak no timers.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	snapshotter interfaces.SnapshotterInterface
	metrics     providers.MetricsProviderInterface

	opsMu sync.Mutex
	state models.BackupState
	armed atomic.Bool
	cron  *gron.Cron
	nowFn func() time.Time
}

func NewScheduler(config *structures.Config, logger providers.Logger, snapshotter interfaces.SnapshotterInterface, metrics providers.MetricsProviderInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		snapshotter: snapshotter,
		metrics:     metrics,
		nowFn:       time.Now,
	}
}

// Restore loads the persisted backup config and history. A missing state
// file is a first run: config defaults come from the daemon config and
// the schedule starts disabled.
func (s *Scheduler) Restore() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	data, err := os.ReadFile(s.config.Backup.StatePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = models.BackupState{
				Config: models.BackupConfig{
					Enabled:    false,
					Interval:   s.config.Backup.Interval,
					MaxBackups: s.config.Backup.MaxBackups,
				},
				History: make([]*models.BackupHistoryEntry, 0),
			}
			s.state.Config.Clamp()
			return nil
		}
		return &models.StorageError{Op: "read", Err: err}
	}

	var state models.BackupState
	if err := json.Unmarshal(data, &state); err != nil {
		return &models.StorageError{Op: "read", Err: err}
	}
	if state.History == nil {
		state.History = make([]*models.BackupHistoryEntry, 0)
	}
	state.Config.Clamp()
	s.state = state
	return nil
}

// Init arms the scheduler if the restored config says so.
func (s *Scheduler) Init() {
	s.opsMu.Lock()
	enabled := s.state.Config.Enabled
	s.opsMu.Unlock()
	if enabled {
		s.arm()
	}
}

// Stop disarms the scheduler and releases its timer. The persisted
// enabled flag is not touched, so a restart re-arms.
func (s *Scheduler) Stop() {
	s.disarm()
}

// Persist writes the backup state file atomically.
func (s *Scheduler) Persist() error {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.persistLocked()
}

func (s *Scheduler) persistLocked() error {
	data, err := json.Marshal(&s.state)
	if err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	tmpFile := s.config.Backup.StatePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		return &models.StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpFile, s.config.Backup.StatePath); err != nil {
		os.Remove(tmpFile)
		return &models.StorageError{Op: "write", Err: err}
	}
	return nil
}

func (s *Scheduler) GetConfig() models.BackupConfig {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	return s.state.Config
}

func (s *Scheduler) History() []*models.BackupHistoryEntry {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()
	history := make([]*models.BackupHistoryEntry, len(s.state.History))
	copy(history, s.state.History)
	return history
}

// UpdateConfig applies a partial settings update. Arming sets lastBackup
// to now so a freshly enabled schedule does not fire immediately.
func (s *Scheduler) UpdateConfig(patch *models.BackupConfigPatch) (models.BackupConfig, error) {
	s.opsMu.Lock()

	wasEnabled := s.state.Config.Enabled
	if patch.Interval != nil {
		s.state.Config.Interval = *patch.Interval
	}
	if patch.MaxBackups != nil {
		s.state.Config.MaxBackups = *patch.MaxBackups
	}
	if patch.Enabled != nil {
		s.state.Config.Enabled = *patch.Enabled
	}
	s.state.Config.Clamp()

	if s.state.Config.Enabled && !wasEnabled {
		now := s.nowFn().UnixMilli()
		if now > s.state.Config.LastBackup {
			s.state.Config.LastBackup = now
		}
	}

	if len(s.state.History) > s.state.Config.MaxBackups {
		s.state.History = s.state.History[:s.state.Config.MaxBackups]
	}

	conf := s.state.Config
	err := s.persistLocked()
	s.opsMu.Unlock()

	if conf.Enabled && !wasEnabled {
		s.arm()
	} else if !conf.Enabled && wasEnabled {
		s.disarm()
	}
	return conf, err
}

func (s *Scheduler) arm() {
	if !s.armed.CompareAndSwap(false, true) {
		return
	}
	cron := gron.New()
	cron.AddFunc(gron.Every(pollGranularity), s.poll)
	cron.Start()

	s.opsMu.Lock()
	s.cron = cron
	s.opsMu.Unlock()
	s.logger.Infof(providers.TypeBackup, "Auto-backup armed")
}

func (s *Scheduler) disarm() {
	if !s.armed.CompareAndSwap(true, false) {
		return
	}
	s.opsMu.Lock()
	cron := s.cron
	s.cron = nil
	s.opsMu.Unlock()
	if cron != nil {
		cron.Stop()
	}
	s.logger.Infof(providers.TypeBackup, "Auto-backup disarmed")
}

// poll fires a backup when the configured interval has elapsed since the
// last one. A failed export leaves lastBackup untouched so the next tick
// retries.
func (s *Scheduler) poll() {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	if !s.state.Config.Enabled {
		return
	}

	now := s.nowFn().UnixMilli()
	elapsed := now - s.state.Config.LastBackup
	if elapsed < int64(s.state.Config.Interval)*60_000 {
		return
	}

	start := time.Now()
	filename, err := s.snapshotter.ExportToDir(s.config.Backup.Dir)
	if err != nil {
		s.logger.Errorf(providers.TypeBackup, "Scheduled backup failed: %s", err)
		return
	}
	s.metrics.ObservePersistenceDuration(time.Since(start))
	s.metrics.IncBackupsTotal()

	done := s.nowFn().UnixMilli()
	if done > s.state.Config.LastBackup {
		s.state.Config.LastBackup = done
	}
	s.state.PrependHistory(&models.BackupHistoryEntry{Timestamp: done, Filename: filename}, s.state.Config.MaxBackups)

	if err := s.persistLocked(); err != nil {
		s.logger.Errorf(providers.TypeBackup, "Failed to persist backup state: %s", err)
	}
	s.logger.Infof(providers.TypeBackup, "Scheduled backup completed: %s", filename)
}
