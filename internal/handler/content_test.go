package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/zakat-engine/internal/content"
)

func TestContentHandler(t *testing.T) {
	h := NewContentHandler(content.NewStore())

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/pillars", h.ListPillars).Methods("GET")
	router.HandleFunc("/api/v1/pillars/{id}", h.GetPillar).Methods("GET")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pillars", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var listEnvelope struct {
		Data []content.Pillar `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listEnvelope))
	assert.Len(t, listEnvelope.Data, 5)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pillars/zakat", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/pillars/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
