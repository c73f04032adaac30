package images

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetcher_EmptyURLMeansNoImage(t *testing.T) {
	f := NewFetcher()
	assert.Nil(t, f.Fetch(context.Background(), ""))
}

func TestFetcher_ReturnsBodyForHealthyImage(t *testing.T) {
	payload := bytes.Repeat([]byte{0xAB}, 4096)
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer srv.Close()

	f := NewFetcher()
	got := f.Fetch(context.Background(), srv.URL)

	assert.Equal(t, payload, got)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetcher_PlaceholderOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := NewFetcher()
	assert.Equal(t, Placeholder(), f.Fetch(context.Background(), srv.URL))
}

func TestFetcher_PlaceholderOnTinyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Share pages and error stubs are small; real images are not.
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer srv.Close()

	f := NewFetcher()
	assert.Equal(t, Placeholder(), f.Fetch(context.Background(), srv.URL))
}

func TestFetcher_PlaceholderOnUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	f := NewFetcher()
	assert.Equal(t, Placeholder(), f.Fetch(context.Background(), srv.URL))
}

func TestPlaceholderIsAValidJPEG(t *testing.T) {
	p := Placeholder()
	assert.Greater(t, len(p), 100)
	assert.Equal(t, []byte{0xFF, 0xD8}, p[:2]) // JPEG SOI marker
}
