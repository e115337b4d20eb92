package main

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/vshulcz/Telemetra/internal/domain"
)

func testRouter(t *testing.T, key string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t)
	return NewRouter(NewHandler(logger, key), logger)
}

func seriesBody(t *testing.T, n int, compress bool) *bytes.Buffer {
	t.Helper()
	batch := domain.SeriesBatch{}
	for i := range n {
		batch.Series = append(batch.Series, domain.Series{
			Metric: "m",
			Type:   string(domain.Gauge),
			Points: []domain.Point{{Timestamp: 1700000000, Value: float64(i)}},
		})
	}
	raw, err := json.Marshal(batch)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	buf := &bytes.Buffer{}
	if !compress {
		buf.Write(raw)
		return buf
	}
	zw := gzip.NewWriter(buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatalf("gzip: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf
}

func TestSeries_AcceptsPlainAndGzip(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		compress bool
	}{
		{"plain short path", "/series", false},
		{"gzip short path", "/series", true},
		{"gzip api path", "/api/v1/series", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter(t, "")

			req := httptest.NewRequest(http.MethodPost, tt.path, seriesBody(t, 3, tt.compress))
			req.Header.Set("Content-Type", "application/json")
			if tt.compress {
				req.Header.Set("Content-Encoding", "gzip")
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			var resp struct {
				Status   string `json:"status"`
				Accepted int    `json:"accepted"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response: %v", err)
			}
			if resp.Status != "ok" || resp.Accepted != 3 {
				t.Fatalf("resp=%+v", resp)
			}
		})
	}
}

func TestSeries_KeyEnforcement(t *testing.T) {
	r := testRouter(t, "secret")

	req := httptest.NewRequest(http.MethodPost, "/series", seriesBody(t, 1, false))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d want 403 without key", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/series", seriesBody(t, 1, false))
	req.Header.Set("DD-API-KEY", "secret")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want 200 with key", w.Code)
	}
}

func TestSeries_BadBodies(t *testing.T) {
	tests := []struct {
		name string
		body []byte
		gz   bool
		want int
	}{
		{"broken json", []byte("{"), false, http.StatusBadRequest},
		{"gzip header plain body", []byte(`{"series":[]}`), true, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter(t, "")
			req := httptest.NewRequest(http.MethodPost, "/series", bytes.NewReader(tt.body))
			if tt.gz {
				req.Header.Set("Content-Encoding", "gzip")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status=%d want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPing(t *testing.T) {
	r := testRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.String() != "pong" {
		t.Fatalf("status=%d body=%q", w.Code, w.Body.String())
	}
}
