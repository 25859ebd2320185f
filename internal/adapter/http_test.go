// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/live-collection/internal/config"
	"github.com/MKhiriev/live-collection/internal/logger"
	"github.com/MKhiriev/live-collection/internal/utils"
	"github.com/MKhiriev/live-collection/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestTransport creates an httpTransport with a short timeout.
func newTestTransport(t *testing.T) *httpTransport {
	t.Helper()
	tr := NewHTTPTransport(config.ClientAdapter{RequestTimeout: 2 * time.Second}, logger.Nop())
	return tr.(*httpTransport)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", mediaTypeJSONAPI)
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

// ── Fetch ────────────────────────────────────────────────────────────────────

func TestFetch_Success(t *testing.T) {
	want := models.Document{
		Data: []models.Resource{
			{ID: "1", Attributes: map[string]any{"name": "first"}},
			{ID: "2", Attributes: map[string]any{"name": "second"}},
		},
		Meta: &models.Meta{Offset: 20, Limit: 10, Total: 32},
	}

	r := chi.NewRouter()
	r.Get("/api/v1/widgets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, mediaTypeJSONAPI, r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		assert.Equal(t, "20", r.URL.Query().Get("page[offset]"))
		assert.Equal(t, "name,-created", r.URL.Query().Get("sort"))
		writeJSON(t, w, http.StatusOK, want)
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	params := url.Values{}
	params.Set("page[offset]", "20")
	params.Set("sort", "name,-created")

	got, err := newTestTransport(t).Fetch(context.Background(), srv.URL+"/api/v1/widgets", params)

	require.NoError(t, err)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "1", got.Data[0].ID)
	assert.Equal(t, "second", got.Data[1].Attributes["name"])
	assert.Equal(t, want.Meta, got.Meta)
	assert.Empty(t, got.Errors)
}

func TestFetch_RequestIDFromContext(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/widgets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get(requestIDHeader))
		writeJSON(t, w, http.StatusOK, models.Document{})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx := utils.WithRequestID(context.Background(), "req-42")
	_, err := newTestTransport(t).Fetch(ctx, srv.URL+"/widgets", nil)
	require.NoError(t, err)
}

func TestFetch_ServerErrorsAreData(t *testing.T) {
	body := models.Document{Errors: []models.ServerError{{Status: "422", Title: "Invalid filter"}}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, body)
	}))
	defer srv.Close()

	got, err := newTestTransport(t).Fetch(context.Background(), srv.URL+"/widgets", nil)

	require.NoError(t, err)
	require.Len(t, got.Errors, 1)
	assert.Equal(t, "Invalid filter", got.Errors[0].Title)
	assert.Empty(t, got.Data)
}

func TestFetch_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusInternalServerError, ErrInternalServerError},
		{http.StatusBadGateway, ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("plain failure"))
			}))
			defer srv.Close()

			_, err := newTestTransport(t).Fetch(context.Background(), srv.URL+"/widgets", nil)

			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestFetch_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestTransport(t).Fetch(context.Background(), srv.URL+"/widgets", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418")
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := newTestTransport(t).Fetch(context.Background(), srv.URL+"/widgets", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode collection response")
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := newTestTransport(t).Fetch(context.Background(), addr+"/widgets", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch request")
}

func TestFetch_InvalidURI(t *testing.T) {
	_, err := newTestTransport(t).Fetch(context.Background(), "  ", nil)
	require.Error(t, err)
}

// ── FetchOne ─────────────────────────────────────────────────────────────────

func TestFetchOne_Success(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/api/widgets/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		writeJSON(t, w, http.StatusOK, models.SingleDocument{
			Data: &models.Resource{ID: id, Type: "widgets", Attributes: map[string]any{"n": 1}},
		})
	})
	srv := httptest.NewServer(r)
	defer srv.Close()

	got, err := newTestTransport(t).FetchOne(context.Background(), srv.URL+"/api/widgets/7")

	require.NoError(t, err)
	assert.Equal(t, "7", got.ID)
	assert.Equal(t, "widgets", got.Type)
	assert.Equal(t, float64(1), got.Attributes["n"])
}

func TestFetchOne_EmptyData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"data": nil})
	}))
	defer srv.Close()

	_, err := newTestTransport(t).FetchOne(context.Background(), srv.URL+"/widgets/1")

	assert.ErrorIs(t, err, ErrEmptyResource)
}

func TestFetchOne_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := newTestTransport(t).FetchOne(context.Background(), srv.URL+"/widgets/1")

	assert.ErrorIs(t, err, ErrNotFound)
}

// ── normalizeURL ─────────────────────────────────────────────────────────────

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "full url", raw: "http://localhost:8080/api/widgets", want: "http://localhost:8080/api/widgets"},
		{name: "adds scheme", raw: "localhost:8080/api/widgets", want: "http://localhost:8080/api/widgets"},
		{name: "trims trailing slash", raw: "https://example.com/api/", want: "https://example.com/api"},
		{name: "empty", raw: " ", wantErr: true},
		{name: "no host", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
