package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandleTempoDate(t *testing.T) {
	handler := NewServer("test").Handler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tempo_date?date=2020-06-01", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp tempoDateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, "2020-06-01T00:00:00+09:00", resp.DateStr)
	require.Equal(t, "2020年閏4月10日", resp.TempoDateStr)
	require.Equal(t, 2020, resp.TempoDate.Year)
	require.Equal(t, 4, resp.TempoDate.Month)
	require.Equal(t, 10, resp.TempoDate.Day)
	require.True(t, resp.TempoDate.LeapMonth)
	require.Equal(t, 2, resp.TempoDate.RokuyoIndex)
	require.Equal(t, "先勝", resp.TempoDate.RokuyoStr)
}

func TestHandleTempoDate_yearStraddle(t *testing.T) {
	handler := NewServer("test").Handler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/tempo_date?date=2000-01-01", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var resp tempoDateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Equal(t, 1999, resp.TempoDate.Year)
	require.Equal(t, 11, resp.TempoDate.Month)
	require.Equal(t, 25, resp.TempoDate.Day)
	require.False(t, resp.TempoDate.LeapMonth)
	require.Equal(t, 0, resp.TempoDate.RokuyoIndex)
	require.Equal(t, "大安", resp.TempoDate.RokuyoStr)
}

func TestHandleTempoDate_errors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		status int
	}{
		{
			name:   "missing date parameter",
			method: http.MethodGet,
			target: "/tempo_date",
			status: http.StatusBadRequest,
		},
		{
			name:   "malformed date",
			method: http.MethodGet,
			target: "/tempo_date?date=01-06-2020",
			status: http.StatusBadRequest,
		},
		{
			name:   "not a date at all",
			method: http.MethodGet,
			target: "/tempo_date?date=tomorrow",
			status: http.StatusBadRequest,
		},
		{
			name:   "date outside supported range",
			method: http.MethodGet,
			target: "/tempo_date?date=1500-01-01",
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "wrong method",
			method: http.MethodPost,
			target: "/tempo_date?date=2020-06-01",
			status: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewServer("test").Handler()

			w := httptest.NewRecorder()
			r := httptest.NewRequest(tt.method, tt.target, nil)
			handler.ServeHTTP(w, r)

			require.Equal(t, tt.status, w.Code)

			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandleHealth(t *testing.T) {
	handler := NewServer("test").Handler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandleVersion(t *testing.T) {
	handler := NewServer("v1.2.3").Handler()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/version", nil)
	handler.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"version":"v1.2.3"}`, w.Body.String())
}
