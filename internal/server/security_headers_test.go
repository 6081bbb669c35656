package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		path         string
		cacheControl string
	}{
		{"/api/v1/jackpot/status", HeaderValueNoStore},
		{"/swagger/index.html", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
			assert.Equal(t, HeaderValueSameOrigin, rec.Header().Get(HeaderFrameOptions))
			assert.Equal(t, HeaderValueReferrerStrictOrigin, rec.Header().Get(HeaderReferrerPolicy))
			assert.Equal(t, tt.cacheControl, rec.Header().Get(HeaderCacheControl))
		})
	}
}
