package trackvia

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyResponse(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantAPIError  bool
		wantName      string
		wantTransient bool
	}{
		{
			name:         "structured error with name",
			status:       http.StatusForbidden,
			body:         `{"name":"permissionDenied","code":"403","message":"no access"}`,
			wantAPIError: true,
			wantName:     "permissionDenied",
		},
		{
			name:         "name falls back to error field",
			status:       http.StatusNotFound,
			body:         `{"error":"notFound","code":"404"}`,
			wantAPIError: true,
			wantName:     "notFound",
		},
		{
			name:         "name wins over error field",
			status:       http.StatusBadRequest,
			body:         `{"name":"validationFailure","error":"other","code":"400"}`,
			wantAPIError: true,
			wantName:     "validationFailure",
		},
		{
			name:          "invalid_token is transient auth",
			status:        http.StatusUnauthorized,
			body:          `{"error":"invalid_token"}`,
			wantAPIError:  true,
			wantName:      "invalid_token",
			wantTransient: true,
		},
		{
			name:          "invalid_grant is transient auth",
			status:        http.StatusUnauthorized,
			body:          `{"name":"invalid_grant"}`,
			wantAPIError:  true,
			wantName:      "invalid_grant",
			wantTransient: true,
		},
		{
			name:         "field errors only",
			status:       http.StatusBadRequest,
			body:         `{"errors":["Name is required"]}`,
			wantAPIError: true,
			wantName:     "",
		},
		{
			name:   "empty body",
			status: http.StatusInternalServerError,
			body:   "",
		},
		{
			name:   "non-JSON body",
			status: http.StatusBadGateway,
			body:   "<html>gateway timeout</html>",
		},
		{
			name:   "JSON without recognized fields",
			status: http.StatusBadRequest,
			body:   `{"unexpected":"shape"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyResponse(tt.status, []byte(tt.body))
			require.Error(t, err)

			var apiErr *APIError
			if !tt.wantAPIError {
				assert.False(t, errors.As(err, &apiErr))

				var httpErr *HTTPError
				require.ErrorAs(t, err, &httpErr)
				assert.Equal(t, tt.status, httpErr.StatusCode)

				return
			}

			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantName, apiErr.Name)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantTransient, apiErr.transientAuth())
		})
	}
}

func TestAPIError_UnwrapsToTransportFailure(t *testing.T) {
	err := classifyResponse(http.StatusConflict, []byte(`{"name":"conflict","code":"409"}`))

	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusConflict, httpErr.StatusCode)
}

func TestAPIError_ErrorString(t *testing.T) {
	t.Run("with message", func(t *testing.T) {
		e := &APIError{Name: "notFound", Code: "404", Message: "no such record", StatusCode: 404}
		assert.Contains(t, e.Error(), "notFound")
		assert.Contains(t, e.Error(), "404")
		assert.Contains(t, e.Error(), "no such record")
	})

	t.Run("with description only", func(t *testing.T) {
		e := &APIError{Name: "invalid_token", Description: "expired", StatusCode: 401}
		assert.Contains(t, e.Error(), "invalid_token")
		assert.Contains(t, e.Error(), "expired")
	})

	t.Run("bare", func(t *testing.T) {
		e := &APIError{Name: "serverError", StatusCode: 500}
		assert.Contains(t, e.Error(), "serverError")
		assert.Contains(t, e.Error(), "500")
	})
}

func TestHTTPError_ErrorString(t *testing.T) {
	withBody := &HTTPError{StatusCode: 502, Body: []byte("bad gateway")}
	assert.Contains(t, withBody.Error(), "502")
	assert.Contains(t, withBody.Error(), "bad gateway")

	empty := &HTTPError{StatusCode: 500}
	assert.Contains(t, empty.Error(), "500")
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, isNotFound(&APIError{StatusCode: 404, Name: "notFound", Code: "404"}))
	assert.True(t, isNotFound(&APIError{Code: "404"}))
	assert.True(t, isNotFound(&HTTPError{StatusCode: 404}))
	assert.False(t, isNotFound(&APIError{StatusCode: 403, Code: "403"}))
	assert.False(t, isNotFound(errors.New("plain")))
	assert.False(t, isNotFound(nil))
}
