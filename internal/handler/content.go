package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/segyhp/zakat-engine/internal/content"
	"github.com/segyhp/zakat-engine/pkg/response"
)

type ContentHandler struct {
	store *content.Store
}

func NewContentHandler(store *content.Store) *ContentHandler {
	return &ContentHandler{store: store}
}

// ListPillars returns all five pillar entries.
func (h *ContentHandler) ListPillars(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Pillars())
}

// GetPillar returns one pillar entry by id.
func (h *ContentHandler) GetPillar(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	pillar, ok := h.store.Pillar(id)
	if !ok {
		response.NotFound(w, "Unknown pillar")
		return
	}

	response.Success(w, pillar)
}
