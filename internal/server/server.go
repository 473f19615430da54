package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/tempo-service/internal/telemetry"
	"github.com/wolfeidau/tempo-service/internal/tempo"
)

// Server exposes the tempo date API over HTTP.
type Server struct {
	version string
}

// NewServer creates a new server.
func NewServer(version string) *Server {
	return &Server{version: version}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint for load balancer
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, versionResponse{Version: s.version})
	})

	mux.HandleFunc("/tempo_date", s.handleTempoDate)

	return mux
}

type versionResponse struct {
	Version string `json:"version"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// tempoDate mirrors the original wire format field for field.
type tempoDate struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	LeapMonth   bool   `json:"leap_month"`
	RokuyoIndex int    `json:"rokuyo_index"`
	RokuyoStr   string `json:"rokuyo_str"`
}

type tempoDateResponse struct {
	DateStr      string    `json:"date_str"`
	TempoDateStr string    `json:"tempo_date_str"`
	TempoDate    tempoDate `json:"tempo_date"`
}

// handleTempoDate serves GET /tempo_date?date=YYYY-MM-DD, interpreting the
// date at midnight JST.
func (s *Server) handleTempoDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	metrics := telemetry.GetMetrics()

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "missing date query parameter")
		return
	}

	day, err := time.ParseInLocation(time.DateOnly, raw, tempo.JST)
	if err != nil {
		zerolog.Ctx(ctx).Debug().Err(err).Str("date", raw).Msg("failed to parse date")
		writeError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD form")
		return
	}

	started := time.Now()
	date, err := tempo.FromTime(day)
	metrics.ConversionDuration.Record(ctx, float64(time.Since(started).Microseconds())/1000.0)
	if err != nil {
		metrics.ConversionErrorsTotal.Add(ctx, 1)
		zerolog.Ctx(ctx).Error().Err(err).Str("date", raw).Msg("conversion failed")
		if errors.Is(err, tempo.ErrOutOfRange) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "conversion failed")
		return
	}
	metrics.ConversionsTotal.Add(ctx, 1)

	rokuyo := date.Rokuyo()
	writeJSON(w, http.StatusOK, tempoDateResponse{
		DateStr:      day.Format(time.RFC3339),
		TempoDateStr: date.String(),
		TempoDate: tempoDate{
			Year:        date.Year,
			Month:       date.Month,
			Day:         date.Day,
			LeapMonth:   date.Leap,
			RokuyoIndex: rokuyo.Index(),
			RokuyoStr:   rokuyo.Japanese(),
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
