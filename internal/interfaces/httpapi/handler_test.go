package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dominofed/federation-backend/internal/domain/result"
	"github.com/dominofed/federation-backend/internal/usecase"
)

func TestParseListWindow(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantOffset int
		wantLimit  int
		wantSort   string
		wantErr    bool
	}{
		{name: "empty", query: ""},
		{name: "offset and limit", query: "offset=20&limit=50", wantOffset: 20, wantLimit: 50},
		{name: "sort passthrough", query: "sort=nombre", wantSort: "nombre"},
		{name: "negative offset", query: "offset=-1", wantErr: true},
		{name: "zero limit", query: "limit=0", wantErr: true},
		{name: "non numeric limit", query: "limit=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/clubs?"+tt.query, nil)
			window, err := parseListWindow(req)
			if tt.wantErr {
				if !errors.Is(err, usecase.ErrInvalidInput) {
					t.Fatalf("expected ErrInvalidInput, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseListWindow: %v", err)
			}
			if window.Offset != tt.wantOffset || window.Limit != tt.wantLimit || window.Sort != tt.wantSort {
				t.Fatalf("unexpected window %+v", window)
			}
		})
	}
}

func TestResultKeyFromPath(t *testing.T) {
	mux := http.NewServeMux()
	var key result.Key
	var keyErr error
	mux.HandleFunc("GET /v1/resultados/{nch}/{fecha}/{idfed}", func(w http.ResponseWriter, r *http.Request) {
		key, keyErr = resultKeyFromPath(r)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/resultados/42/2024-08-15/0700001", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)

	if keyErr != nil {
		t.Fatalf("resultKeyFromPath: %v", keyErr)
	}
	if key.NCH != 42 || key.IDFedJugador != "0700001" {
		t.Fatalf("unexpected key %+v", key)
	}
	if key.FechaCampeonato.Format(requestDateLayout) != "2024-08-15" {
		t.Fatalf("unexpected fecha %s", key.FechaCampeonato)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/resultados/abc/2024-08-15/0700001", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if !errors.Is(keyErr, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for non-numeric nch, got %v", keyErr)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/resultados/42/15-08-2024/0700001", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
	if !errors.Is(keyErr, usecase.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad date, got %v", keyErr)
	}
}
