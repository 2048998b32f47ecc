package resp

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcart/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_StatusByKind(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		status   int
		wantKind string
	}{
		{name: "validation", err: apperr.Invalid("choose a branch"), status: http.StatusBadRequest, wantKind: "validation"},
		{name: "not found", err: apperr.New(apperr.NotFound, "order not found"), status: http.StatusNotFound, wantKind: "not_found"},
		{name: "network", err: apperr.New(apperr.NetworkFailure, "timed out"), status: http.StatusServiceUnavailable, wantKind: "network_failure"},
		{name: "write", err: apperr.New(apperr.RemoteWriteFailure, "not saved"), status: http.StatusBadGateway, wantKind: "remote_write_failure"},
		{name: "unclassified", err: errors.New("boom"), status: http.StatusInternalServerError},
	}
	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			Error(c, testCase.err)

			assert.Equal(t, testCase.status, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["ok"])
			if testCase.wantKind != "" {
				assert.Equal(t, testCase.wantKind, body["kind"])
				assert.Equal(t, apperr.Message(testCase.err), body["error"])
			}
		})
	}
}
