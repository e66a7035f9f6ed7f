package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/segyhp/zakat-engine/internal/domain"
	"github.com/segyhp/zakat-engine/pkg/response"
)

// ZakatService is the surface the handler needs from the service layer.
type ZakatService interface {
	Calculate(declaration domain.Declaration) domain.ZakatResult
	Summary(declaration domain.Declaration) (domain.ZakatResult, string)
	SaveSnapshot(ctx context.Context, deviceID string, declaration domain.Declaration) (*domain.Snapshot, error)
	GetSnapshot(ctx context.Context, deviceID string) (*domain.Snapshot, error)
	ResetSnapshot(ctx context.Context, deviceID string) error
	SetActiveTab(ctx context.Context, deviceID, tab string) error
	GetActiveTab(ctx context.Context, deviceID string) (string, error)
}

type ZakatHandler struct {
	service   ZakatService
	validator *validator.Validate
}

func NewZakatHandler(service ZakatService) *ZakatHandler {
	return &ZakatHandler{
		service:   service,
		validator: validator.New(),
	}
}

// Calculate runs the engine over the posted declaration. Numeric fields are
// never rejected; only the request shape is validated.
func (h *ZakatHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var declaration domain.Declaration
	if err := json.NewDecoder(r.Body).Decode(&declaration); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(declaration); err != nil {
		response.BadRequest(w, "Invalid declaration", err)
		return
	}

	response.Success(w, h.service.Calculate(declaration))
}

// Summary returns the shareable plain-text rendering alongside the result.
func (h *ZakatHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var declaration domain.Declaration
	if err := json.NewDecoder(r.Body).Decode(&declaration); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(declaration); err != nil {
		response.BadRequest(w, "Invalid declaration", err)
		return
	}

	result, summary := h.service.Summary(declaration)
	response.Success(w, domain.SummaryResponse{Summary: summary, Result: result})
}

// SaveSnapshot persists the declaration for the device, last write wins.
func (h *ZakatHandler) SaveSnapshot(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	var declaration domain.Declaration
	if err := json.NewDecoder(r.Body).Decode(&declaration); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(declaration); err != nil {
		response.BadRequest(w, "Invalid declaration", err)
		return
	}

	snapshot, err := h.service.SaveSnapshot(r.Context(), deviceID, declaration)
	if err != nil {
		response.InternalServerError(w, "Failed to save snapshot", err)
		return
	}

	response.Success(w, snapshot)
}

// GetSnapshot returns the stored declaration, or all-unset defaults.
func (h *ZakatHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	snapshot, err := h.service.GetSnapshot(r.Context(), deviceID)
	if err != nil {
		response.InternalServerError(w, "Failed to load snapshot", err)
		return
	}

	response.Success(w, snapshot)
}

// ResetSnapshot drops the stored declaration.
func (h *ZakatHandler) ResetSnapshot(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	if err := h.service.ResetSnapshot(r.Context(), deviceID); err != nil {
		response.InternalServerError(w, "Failed to reset snapshot", err)
		return
	}

	response.Success(w, map[string]string{"device_id": deviceID, "status": "reset"})
}

// SetActiveTab stores the device's navigation tab.
func (h *ZakatHandler) SetActiveTab(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	var request domain.TabPreferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return
	}

	if err := h.validator.Struct(request); err != nil {
		response.BadRequest(w, "Invalid tab", err)
		return
	}

	if err := h.service.SetActiveTab(r.Context(), deviceID, request.Tab); err != nil {
		response.InternalServerError(w, "Failed to store tab preference", err)
		return
	}

	response.Success(w, domain.TabPreferenceResponse{DeviceID: deviceID, Tab: request.Tab})
}

// GetActiveTab returns the device's navigation tab.
func (h *ZakatHandler) GetActiveTab(w http.ResponseWriter, r *http.Request) {
	deviceID := mux.Vars(r)["deviceId"]

	tab, err := h.service.GetActiveTab(r.Context(), deviceID)
	if err != nil {
		response.InternalServerError(w, "Failed to load tab preference", err)
		return
	}

	response.Success(w, domain.TabPreferenceResponse{DeviceID: deviceID, Tab: tab})
}
