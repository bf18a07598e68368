package controllers

import (
	"io"
	"net/http"

	"clinicd/internal/models"
	"clinicd/internal/providers"
	"clinicd/internal/records/interfaces"

	json "github.com/goccy/go-json"
)

const maxSnapshotSize = 32 << 20 // 32 MB

type BackupController struct {
	logger      providers.Logger
	scheduler   interfaces.SchedulerInterface
	snapshotter interfaces.SnapshotterInterface
	cache       providers.CacheProviderInterface
}

func NewBackupController(logger providers.Logger, scheduler interfaces.SchedulerInterface, snapshotter interfaces.SnapshotterInterface, cache providers.CacheProviderInterface) *BackupController {
	return &BackupController{
		logger:      logger,
		scheduler:   scheduler,
		snapshotter: snapshotter,
		cache:       cache,
	}
}

func (bc *BackupController) GetBackupConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bc.scheduler.GetConfig())
}

func (bc *BackupController) UpdateBackupConfig(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var patch models.BackupConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	conf, err := bc.scheduler.UpdateConfig(&patch)
	if err != nil {
		bc.logger.Errorf(providers.TypeBackup, "Failed to persist backup settings: %s", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, conf)
}

func (bc *BackupController) GetBackupHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, bc.scheduler.History())
}

// ExportSnapshot hands the serialized collection to the caller as a file
// download; delivery past this point is the client's business.
func (bc *BackupController) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	filename, data, err := bc.snapshotter.Export()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (bc *BackupController) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSnapshotSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := bc.snapshotter.Import(data); err != nil {
		writeError(w, err)
		return
	}
	bc.cache.Purge()
	w.WriteHeader(http.StatusNoContent)
}
