package update

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/gdt-tools/gdtpack/pkg/logger"
)

func newTestDownloader(dest string) *Downloader {
	return &Downloader{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     logger.NewLogger("update-downloader"),
		progress:   rate.NewLimiter(rate.Every(time.Second), 1),
		dest:       dest,
	}
}

func TestDownloadSuccess(t *testing.T) {
	payload := bytes.Repeat([]byte("gdtpack-release."), 8192)
	mux := http.NewServeMux()
	mux.HandleFunc("/gdtpack", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)))
		w.Write(payload)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "gdtpack.new")
	d := newTestDownloader(dest)

	path, err := d.Download(context.Background(), server.URL+"/gdtpack")
	require.NoError(t, err)
	assert.Equal(t, dest, path)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestDownloadTruncatedStream(t *testing.T) {
	payload := bytes.Repeat([]byte("x"), 64*1024)
	mux := http.NewServeMux()
	mux.HandleFunc("/gdtpack", func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than are sent so the body ends early.
		w.Header().Set("Content-Length", strconv.Itoa(len(payload)*2))
		w.Write(payload)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "gdtpack.new")
	d := newTestDownloader(dest)

	path, err := d.Download(context.Background(), server.URL+"/gdtpack")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.Empty(t, path)
}

func TestDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "gdtpack.new")
	d := newTestDownloader(dest)

	_, err := d.Download(context.Background(), server.URL+"/gdtpack")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDownloadFailed)
	assert.NoFileExists(t, dest, "a bad status must not create the staging file")
}

func TestDownloadOverwritesPreviousPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("short new build"))
	}))
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "gdtpack.new")
	stale := bytes.Repeat([]byte("stale partial download "), 100)
	require.NoError(t, os.WriteFile(dest, stale, 0644))

	d := newTestDownloader(dest)
	_, err := d.Download(context.Background(), server.URL+"/gdtpack")
	require.NoError(t, err)

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "short new build", string(got))
}

func TestDownloadEmptyURL(t *testing.T) {
	d := newTestDownloader(filepath.Join(t.TempDir(), "gdtpack.new"))
	_, err := d.Download(context.Background(), "")
	assert.ErrorIs(t, err, ErrDownloadFailed)
}
