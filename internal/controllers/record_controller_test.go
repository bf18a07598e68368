package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinicd/internal/models"
	"clinicd/internal/testutil"
	"clinicd/internal/testutil/logmock"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRecordService implements services.RecordServiceInterface with a
// tiny in-memory collection.
type mockRecordService struct {
	patients []*models.Patient
	err      error
}

func (m *mockRecordService) Reload() error { return m.err }

func (m *mockRecordService) ListPatients() []*models.Patient { return m.patients }

func (m *mockRecordService) GetPatient(id string) (*models.Patient, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, p := range m.patients {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, &models.NotFoundError{Kind: "patient", ID: id}
}

func (m *mockRecordService) SearchPatients(query string) []*models.Patient {
	found := make([]*models.Patient, 0)
	for _, p := range m.patients {
		if strings.Contains(strings.ToLower(p.Name), strings.ToLower(query)) {
			found = append(found, p)
		}
	}
	return found
}

func (m *mockRecordService) AddPatient(draft *models.PatientDraft) (*models.Patient, error) {
	if m.err != nil {
		return nil, m.err
	}
	if draft.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}
	p := &models.Patient{ID: "new-id", Name: draft.Name, Mobile: draft.Mobile, Place: draft.Place, Medications: []*models.Medication{}}
	m.patients = append(m.patients, p)
	return p, nil
}

func (m *mockRecordService) UpdatePatient(id string, draft *models.PatientDraft) (*models.Patient, error) {
	p, err := m.GetPatient(id)
	if err != nil {
		return nil, err
	}
	p.Apply(draft)
	return p, nil
}

func (m *mockRecordService) DeletePatient(id string) error {
	_, err := m.GetPatient(id)
	return err
}

func (m *mockRecordService) AddMedication(patientID string, draft *models.MedicationDraft) (*models.Patient, error) {
	p, err := m.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	if draft.Name == "" {
		return nil, &models.ValidationError{Field: "name", Reason: "required"}
	}
	p.Medications = append(p.Medications, &models.Medication{ID: "med-id", Name: draft.Name})
	return p, nil
}

func (m *mockRecordService) DeleteMedication(patientID, medicationID string) (*models.Patient, error) {
	p, err := m.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	if !p.RemoveMedication(medicationID) {
		return nil, &models.NotFoundError{Kind: "medication", ID: medicationID}
	}
	return p, nil
}

func (m *mockRecordService) SetNextVisitDate(patientID, date string) (*models.Patient, error) {
	p, err := m.GetPatient(patientID)
	if err != nil {
		return nil, err
	}
	p.NextVisit = date
	return p, nil
}

func (m *mockRecordService) GetSnapshot() []*models.Patient { return m.patients }

func (m *mockRecordService) ReplaceCollection(patients []*models.Patient) error {
	if m.err != nil {
		return m.err
	}
	m.patients = patients
	return nil
}

func (m *mockRecordService) Count() int { return len(m.patients) }

func seededService() *mockRecordService {
	return &mockRecordService{
		patients: []*models.Patient{
			{
				ID: "p1", Name: "Asha", Mobile: "9999999999", Place: "Kochi",
				VisitedDate: "2024-03-15", Notes: "first visit",
				Medications: []*models.Medication{{ID: "m1", Name: "Ashwagandha"}},
			},
		},
	}
}

func newRecordController(service *mockRecordService, cache *testutil.MockCache) *RecordController {
	return NewRecordController(&logmock.MockLogger{}, service, cache)
}

func TestRecordController_ListPatients(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	w := httptest.NewRecorder()
	rc.ListPatients(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var got []*models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Asha", got[0].Name)
}

func TestRecordController_ListPatients_CacheHit(t *testing.T) {
	cache := testutil.NewMockCache()
	cache.Set("patients", []byte(`[{"id":"cached"}]`))
	rc := newRecordController(seededService(), cache)

	req := httptest.NewRequest(http.MethodGet, "/patients", nil)
	w := httptest.NewRecorder()
	rc.ListPatients(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `[{"id":"cached"}]`, w.Body.String())
}

func TestRecordController_SearchPatients(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/search?q=asha", nil)
	w := httptest.NewRecorder()
	rc.SearchPatients(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got []*models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 1)

	req = httptest.NewRequest(http.MethodGet, "/search?q=nobody", nil)
	w = httptest.NewRecorder()
	rc.SearchPatients(w, req)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestRecordController_GetPatient(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodGet, "/patient?id=p1", nil)
	w := httptest.NewRecorder()
	rc.GetPatient(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/patient?id=missing", nil)
	w = httptest.NewRecorder()
	rc.GetPatient(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordController_AddPatient(t *testing.T) {
	cache := testutil.NewMockCache()
	cache.Set("patients", []byte("stale"))
	rc := newRecordController(seededService(), cache)

	body := `{"name":"Biju","mobile":"8888888888","place":"Thrissur"}`
	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(body))
	w := httptest.NewRecorder()
	rc.AddPatient(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Biju", got.Name)

	// Write invalidated the cache
	_, ok := cache.Get("patients")
	assert.False(t, ok)
}

func TestRecordController_AddPatient_BadInput(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	rc.AddPatient(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/patients", strings.NewReader(`{"mobile":"1"}`))
	w = httptest.NewRecorder()
	rc.AddPatient(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecordController_UpdatePatient(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	body := `{"name":"Asha","mobile":"9999999999","place":"Kollam"}`
	req := httptest.NewRequest(http.MethodPut, "/patients?id=p1", strings.NewReader(body))
	w := httptest.NewRecorder()
	rc.UpdatePatient(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Kollam", got.Place)

	req = httptest.NewRequest(http.MethodPut, "/patients?id=missing", strings.NewReader(body))
	w = httptest.NewRecorder()
	rc.UpdatePatient(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordController_DeletePatient(t *testing.T) {
	cache := testutil.NewMockCache()
	cache.Set("patients", []byte("stale"))
	rc := newRecordController(seededService(), cache)

	req := httptest.NewRequest(http.MethodDelete, "/patients?id=p1", nil)
	w := httptest.NewRecorder()
	rc.DeletePatient(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	_, ok := cache.Get("patients")
	assert.False(t, ok)

	req = httptest.NewRequest(http.MethodDelete, "/patients?id=missing", nil)
	w = httptest.NewRecorder()
	rc.DeletePatient(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordController_AddMedication(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	body := `{"name":"Brahmi","dosage":"250mg"}`
	req := httptest.NewRequest(http.MethodPost, "/medications?patient=p1", strings.NewReader(body))
	w := httptest.NewRecorder()
	rc.AddMedication(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Medications, 2)

	req = httptest.NewRequest(http.MethodPost, "/medications?patient=missing", strings.NewReader(body))
	w = httptest.NewRecorder()
	rc.AddMedication(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordController_DeleteMedication(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodDelete, "/medications?patient=p1&id=m1", nil)
	w := httptest.NewRecorder()
	rc.DeleteMedication(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Medications, 0)

	req = httptest.NewRequest(http.MethodDelete, "/medications?patient=p1&id=m1", nil)
	w = httptest.NewRecorder()
	rc.DeleteMedication(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRecordController_SetNextVisit(t *testing.T) {
	rc := newRecordController(seededService(), testutil.NewMockCache())

	req := httptest.NewRequest(http.MethodPut, "/next-visit?id=p1", strings.NewReader(`{"date":"2024-04-01"}`))
	w := httptest.NewRecorder()
	rc.SetNextVisit(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Patient
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "2024-04-01", got.NextVisit)

	req = httptest.NewRequest(http.MethodPut, "/next-visit?id=p1", strings.NewReader("{bad"))
	w = httptest.NewRecorder()
	rc.SetNextVisit(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
