package illustration

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPGenerator_Success(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/illustrations", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"ref":"img-123"}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(Config{Endpoint: srv.URL, APIKey: "secret", Timeout: time.Second})
	ref, err := gen.Generate(context.Background(), Request{Description: "brush teeth", References: []string{"img-1"}})

	require.NoError(t, err)
	assert.Equal(t, "img-123", ref)
	assert.Equal(t, "brush teeth", got.Description)
	assert.Equal(t, []string{"img-1"}, got.References)
}

func TestHTTPGenerator_RetriesThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ref":"img-2"}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(Config{Endpoint: srv.URL, Timeout: time.Second, MaxRetries: 2})
	ref, err := gen.Generate(context.Background(), Request{Description: "feed the cat"})

	require.NoError(t, err)
	assert.Equal(t, "img-2", ref)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPGenerator_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(Config{Endpoint: srv.URL, Timeout: time.Second, MaxRetries: 1})
	_, err := gen.Generate(context.Background(), Request{Description: "x"})

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(2), calls.Load())
}

func TestHTTPGenerator_EmptyReference(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(Config{Endpoint: srv.URL, Timeout: time.Second, MaxRetries: 3})
	_, err := gen.Generate(context.Background(), Request{Description: "x"})

	assert.ErrorIs(t, err, ErrEmptyReference)
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPGenerator_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	gen := NewHTTPGenerator(Config{Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := gen.Generate(context.Background(), Request{Description: "x"})

	assert.True(t, errors.Is(err, ErrTimeout), "got %v", err)
}

func TestHTTPGenerator_NotConfigured(t *testing.T) {
	_, err := NewHTTPGenerator(Config{}).Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
