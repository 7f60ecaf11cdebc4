package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
	"github.com/clinicore/delegation/internal/service/draft"
	"github.com/clinicore/delegation/pkg/ctxutil"
)

// draftCreator defines the minimal draft-ledger interface needed by
// ActionsHandler.
type draftCreator interface {
	Create(ctx context.Context, in draft.CreateInput) (domain.ClinicalAction, error)
}

// requiredScope maps each delegated action type to the scope a token must
// carry to invoke it. Types absent from this map cannot be invoked under
// delegation at all.
var requiredScope = map[domain.ActionType]domain.ScopeName{
	domain.ActionDailyNote:    "dailynote:draft",
	domain.ActionPrescription: "prescription:draft",
	domain.ActionForm:         "form:generate",
}

// ActionsHandler serves the scope-gated delegated action endpoints.
// Every action taken here lands in the ledger as a draft.
type ActionsHandler struct {
	drafts draftCreator
	log    *slog.Logger
}

// NewActionsHandler creates an ActionsHandler.
func NewActionsHandler(drafts draftCreator, logger *slog.Logger) *ActionsHandler {
	return &ActionsHandler{drafts: drafts, log: logger.With("handler", "actions")}
}

type actionRequest struct {
	PatientID   string         `json:"patient_id"`
	Description string         `json:"description"`
	Payload     map[string]any `json:"payload"`
}

type actionResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	PatientID string    `json:"patient_id"`
	IsDraft   bool      `json:"is_draft"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Create handles POST /delegated/actions/{type}.
func (h *ActionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	grant, ok := ctxutil.GrantFromCtx(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing delegation grant")
		return
	}

	actionType := domain.ActionType(r.PathValue("type"))
	scope, known := requiredScope[actionType]
	if !known {
		writeError(w, http.StatusNotFound, "unknown action type")
		return
	}
	if !grant.HasScope(scope) {
		writeJSON(w, http.StatusForbidden, map[string]any{
			"error":   "insufficient_scope",
			"details": []string{string(scope)},
		})
		return
	}

	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	patientID, err := uuid.Parse(req.PatientID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "patient_id must be a UUID")
		return
	}

	created, err := h.drafts.Create(r.Context(), draft.CreateInput{
		Grant:       grant,
		PatientID:   patientID,
		Type:        actionType,
		Description: req.Description,
		Payload:     req.Payload,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	resp := actionResponse{
		ID:        created.ID.String(),
		Type:      string(created.Type),
		PatientID: created.PatientID.String(),
		IsDraft:   created.IsDraft,
	}
	if created.ExpiresAt != nil {
		resp.ExpiresAt = *created.ExpiresAt
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ActionsHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
