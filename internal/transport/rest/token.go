package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/clinicore/delegation/internal/domain"
	"github.com/clinicore/delegation/internal/service/delegation"
)

// issuerService defines the minimal interface needed by TokenHandler.
type issuerService interface {
	IssueToken(ctx context.Context, in delegation.IssueInput) (delegation.IssueResult, error)
}

// TokenHandler serves the delegated token issuance endpoint.
type TokenHandler struct {
	svc issuerService
	log *slog.Logger
}

// NewTokenHandler creates a TokenHandler.
func NewTokenHandler(svc issuerService, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{svc: svc, log: logger.With("handler", "token")}
}

type tokenRequest struct {
	ClientID         string   `json:"client_id"`
	ClientSecret     string   `json:"client_secret"`
	ExternalIdentity string   `json:"external_identity"`
	Scopes           []string `json:"scopes"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// Issue handles POST /delegated-token.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// A malformed client id is indistinguishable from a missing one for the
	// caller; both are a 400.
	var clientID uuid.UUID
	if req.ClientID != "" {
		id, err := uuid.Parse(req.ClientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "client_id must be a UUID")
			return
		}
		clientID = id
	}

	scopes := make([]domain.ScopeName, 0, len(req.Scopes))
	for _, s := range req.Scopes {
		scopes = append(scopes, domain.ScopeName(s))
	}

	result, err := h.svc.IssueToken(r.Context(), delegation.IssueInput{
		ClientID:         clientID,
		ClientSecret:     req.ClientSecret,
		ExternalIdentity: req.ExternalIdentity,
		Scopes:           scopes,
		CallerAddr:       r.RemoteAddr,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		ExpiresIn:   result.ExpiresIn,
		Scope:       result.Scope,
	})
}

func (h *TokenHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	var denial *domain.DenialError
	errors.As(err, &denial)

	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "bad client credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeDenial(w, http.StatusForbidden, denial)
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "rate limited")
	case errors.Is(err, domain.ErrServiceUnavailable):
		msg := "delegation temporarily disabled"
		if denial != nil && denial.Reason == domain.DenialMaintenance && len(denial.Details) > 0 {
			msg = denial.Details[0]
		}
		writeError(w, http.StatusServiceUnavailable, msg)
	default:
		h.log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// writeDenial renders a 403 with the reason code and, when present, the
// per-scope details that caused the rejection.
func writeDenial(w http.ResponseWriter, status int, denial *domain.DenialError) {
	if denial == nil {
		writeError(w, status, "forbidden")
		return
	}
	body := map[string]any{"error": string(denial.Reason)}
	if len(denial.Details) > 0 {
		body["details"] = denial.Details
	}
	writeJSON(w, status, body)
}
