package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchPrependsReaderPrefix(t *testing.T) {
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte("Title: Example\n\nPlain text body"))
	}))
	defer srv.Close()

	j := NewJina(Config{ReaderPrefix: srv.URL})
	content, err := j.Fetch(context.Background(), "https://example.com/page")
	require.NoError(t, err)
	assert.Equal(t, "Title: Example\n\nPlain text body", content)
	assert.Equal(t, "/https://example.com/page", gotPath)
	assert.Equal(t, "text/plain", gotAccept)
}

func TestFetchSurfacesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	j := NewJina(Config{ReaderPrefix: srv.URL})
	_, err := j.Fetch(context.Background(), "https://example.com/page")
	assert.Error(t, err)
}
