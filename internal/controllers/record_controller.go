package controllers

import (
	"errors"
	"net/http"

	"clinicd/internal/models"
	"clinicd/internal/providers"
	"clinicd/internal/services"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type RecordController struct {
	logger  providers.Logger
	service services.RecordServiceInterface
	cache   providers.CacheProviderInterface
}

func NewRecordController(logger providers.Logger, service services.RecordServiceInterface, cache providers.CacheProviderInterface) *RecordController {
	return &RecordController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (rc *RecordController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := rc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		writeError(w, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	rc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func writeError(w http.ResponseWriter, err error) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		importErr     *models.ImportError
	)
	switch {
	case errors.As(err, &validationErr):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.As(err, &notFoundErr):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.As(err, &importErr):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (rc *RecordController) ListPatients(w http.ResponseWriter, r *http.Request) {
	rc.serveFromCacheOrCompute(w, "patients", func() (any, error) {
		return rc.service.ListPatients(), nil
	})
}

func (rc *RecordController) SearchPatients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	rc.serveFromCacheOrCompute(w, "search:"+q, func() (any, error) {
		return rc.service.SearchPatients(q), nil
	})
}

func (rc *RecordController) GetPatient(w http.ResponseWriter, r *http.Request) {
	patient, err := rc.service.GetPatient(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, patient)
}

func (rc *RecordController) AddPatient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var draft models.PatientDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	patient, err := rc.service.AddPatient(&draft)
	if err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	writeJSON(w, http.StatusCreated, patient)
}

func (rc *RecordController) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var draft models.PatientDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	patient, err := rc.service.UpdatePatient(r.URL.Query().Get("id"), &draft)
	if err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	writeJSON(w, http.StatusOK, patient)
}

func (rc *RecordController) DeletePatient(w http.ResponseWriter, r *http.Request) {
	if err := rc.service.DeletePatient(r.URL.Query().Get("id")); err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	w.WriteHeader(http.StatusNoContent)
}

func (rc *RecordController) AddMedication(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var draft models.MedicationDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	patient, err := rc.service.AddMedication(r.URL.Query().Get("patient"), &draft)
	if err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	writeJSON(w, http.StatusCreated, patient)
}

func (rc *RecordController) DeleteMedication(w http.ResponseWriter, r *http.Request) {
	patient, err := rc.service.DeleteMedication(r.URL.Query().Get("patient"), r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	writeJSON(w, http.StatusOK, patient)
}

func (rc *RecordController) SetNextVisit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var payload struct {
		Date string `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	patient, err := rc.service.SetNextVisitDate(r.URL.Query().Get("id"), payload.Date)
	if err != nil {
		writeError(w, err)
		return
	}
	rc.cache.Purge()
	writeJSON(w, http.StatusOK, patient)
}
