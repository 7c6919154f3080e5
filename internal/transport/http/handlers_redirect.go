package httptransport

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"givelink/pkg/domainerrors"
	"givelink/pkg/platform/httputil"
)

// handleRedirect answers 303 so browsers re-issue the donation page fetch as
// a GET and never cache the hop permanently.
func (h *Handler) handleRedirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "short_code")

	target, err := h.resolver.Resolve(r.Context(), code)
	if err != nil {
		var derr domainerrors.Error
		if errors.As(err, &derr) && derr.Code == domainerrors.CodeNotFound {
			httputil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": derr.Message})
			return
		}
		httputil.WriteError(w, err)
		return
	}

	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
