package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/room-booking/internal/handler"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = handler.NewRequestValidator()
	return e
}

// performRequest sends body (JSON encoded unless it is already a string) to
// the echo instance and returns the recorded response.
func performRequest(t *testing.T, e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// assertMessage checks the status and the {"message": ...} body.
func assertMessage(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, msg, body["message"])
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}


// mustField returns the raw JSON of body[obj][field].
func mustField(t *testing.T, rec *httptest.ResponseRecorder, obj, field string) string {
	t.Helper()
	body := decode[map[string]map[string]json.RawMessage](t, rec)
	raw, ok := body[obj][field]
	require.True(t, ok, rec.Body.String())
	return string(raw)
}
