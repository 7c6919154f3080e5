package httptransport

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"givelink/pkg/domainerrors"
)

func TestHandleRedirect_SeeOther(t *testing.T) {
	resolver := &stubResolver{target: "https://donate.cityfoodbank.org/give"}
	router := newTestRouter(t, routerDeps{resolver: resolver})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/aB3xY9Zq", nil))

	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "https://donate.cityfoodbank.org/give", rr.Header().Get("Location"))
	assert.Equal(t, "aB3xY9Zq", resolver.code)
}

func TestHandleRedirect_UnknownCode(t *testing.T) {
	resolver := &stubResolver{err: domainerrors.New(domainerrors.CodeNotFound, "Short URL not found")}
	router := newTestRouter(t, routerDeps{resolver: resolver})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing1", nil))

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"error":"Short URL not found"}`, rr.Body.String())
}

func TestHandleRedirect_InternalFailure(t *testing.T) {
	resolver := &stubResolver{err: domainerrors.New(domainerrors.CodeInternal, "store down")}
	router := newTestRouter(t, routerDeps{resolver: resolver})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/aB3xY9Zq", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "store down")
}

func TestFixedRoutesWinOverShortCode(t *testing.T) {
	resolver := &stubResolver{target: "https://donate.example.org"}
	router := newTestRouter(t, routerDeps{resolver: resolver})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Empty(t, resolver.code, "health check must not hit the resolver")
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, routerDeps{})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
}
