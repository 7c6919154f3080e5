package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"givelink/internal/org"
	"givelink/internal/platform/middleware"
	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/httputil"
)

type organizationBody struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ShortURL string `json:"short_url"`
	QRCode   string `json:"qr_code"`
}

type registerResponse struct {
	AccessToken  string           `json:"access_token"`
	Organization organizationBody `json:"organization"`
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req org.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput, "invalid request body"))
		return
	}

	result, err := h.registrar.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, registerResponse{
		AccessToken: result.AccessToken,
		Organization: organizationBody{
			ID:       result.ID.String(),
			Name:     result.Name,
			Email:    result.Email,
			ShortURL: result.ShortURL,
			QRCode:   result.QRCode,
		},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInvalidInput, "invalid request body"))
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{"access_token": token})
}

type statsResponse struct {
	OrgID          string `json:"org_id"`
	TotalRedirects int    `json:"total_redirects"`
}

// handleStats reports the authenticated organization's redirect volume from
// the event log.
func (h *Handler) handleStats(w http.ResponseWriter, r *http.Request) {
	orgID, err := uuid.Parse(middleware.GetOrgID(r.Context()))
	if err != nil {
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeUnauthorized, "invalid token subject"))
		return
	}

	events, err := h.events.ListByOrg(r.Context(), orgID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list redirect events",
			"org_id", orgID,
			"error", err,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		httputil.WriteError(w, domainerrors.New(domainerrors.CodeInternal, "stats unavailable"))
		return
	}

	httputil.WriteJSON(w, http.StatusOK, statsResponse{
		OrgID:          orgID.String(),
		TotalRedirects: len(events),
	})
}
