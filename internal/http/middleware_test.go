package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mark("first"), mark("second"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestParamsMiddleware(t *testing.T) {
	tests := []struct {
		target string
		want   requestParams
	}{
		{"/games/import", requestParams{}},
		{"/games/import?dry_run=true", requestParams{DryRun: true}},
		{"/games/import?dry_run=1&verbose=true", requestParams{Verbose: true}},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			var got requestParams
			h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = paramsFromContext(r)
				w.WriteHeader(http.StatusAccepted)
			}), paramsMiddleware)

			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, tt.target, nil))
			assert.Equal(t, http.StatusAccepted, rr.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecoverMiddleware(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), recoverMiddleware, paramsMiddleware)

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/game", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, decode[errorResponse](t, rr).Error, "boom")
}

func TestIsDryRunWithoutMiddleware(t *testing.T) {
	assert.False(t, isDryRunFromContext(httptest.NewRequest(http.MethodGet, "/", nil)))
}
