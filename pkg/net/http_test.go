package net

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPClient(t *testing.T) {
	client, err := GetHTTPClient()
	require.NoError(t, err)
	assert.NotNil(t, client)
	assert.NotNil(t, client.Jar)
}

func TestGetOAuthClient(t *testing.T) {
	ctx := context.Background()
	client := GetOAuthClient(ctx, "test-token")
	assert.NotNil(t, client)
}

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"test","count":3}`))
	}))
	defer srv.Close()

	var target struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	err := GetJSON(context.Background(), srv.URL, &target)
	require.NoError(t, err)
	assert.Equal(t, "test", target.Name)
	assert.Equal(t, 3, target.Count)
}

func TestGetJSON_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	var target map[string]any
	err := GetJSON(context.Background(), srv.URL, &target)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("# README"))
	}))
	defer srv.Close()

	s, err := GetText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "# README", s)
}
