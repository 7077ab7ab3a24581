package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-rest-api/models"
)

func TestGetServerVersion(t *testing.T) {
	tests := []struct {
		name    string
		version models.VersionResponse
	}{
		{
			name:    "release build",
			version: models.VersionResponse{Version: "v1.4.0", Date: "2026-10-01", Commit: "9f2c1ab"},
		},
		{
			name:    "local build",
			version: models.VersionResponse{Version: "N/A", Date: "N/A", Commit: "N/A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, deps := newTestHandler(t)
			deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(tt.version)

			rr := serve(t, h, http.MethodGet, "/version", "", nil)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

			var got models.VersionResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.version, got)
		})
	}
}

func TestGetServerVersion_NoTokenNeeded(t *testing.T) {
	h, deps := newTestHandler(t)
	deps.appInfo.EXPECT().GetAppVersion(gomock.Any()).Return(models.VersionResponse{Version: "v1"})

	rr := serve(t, h, http.MethodGet, "/version", "", map[string]string{"Authorization": "Bearer whatever"})

	assert.Equal(t, http.StatusOK, rr.Code)
}
