package storage

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filings/session"
)

func TestFolderFor(t *testing.T) {
	assert.Equal(t, "tickets/5", FolderFor(session.Flags{EditingTicketID: 5, FillingOnBehalfTicketID: 9}, "11"))
	assert.Equal(t, "tickets/9", FolderFor(session.Flags{FillingOnBehalfTicketID: 9}, "11"))
	assert.Equal(t, "tickets/11", FolderFor(session.Flags{}, "11"))
	assert.Equal(t, TempFolder, FolderFor(session.Flags{}, ""))
	assert.Equal(t, TempFolder, FolderFor(session.Flags{}, "abc"))
	assert.Equal(t, uint(9), TicketFor(session.Flags{FillingOnBehalfTicketID: 9}, "11"))
	assert.Zero(t, TicketFor(session.Flags{}, "0"))
}

func TestObjectName(t *testing.T) {
	a, b := ObjectName("PAN Card.PDF"), ObjectName("PAN Card.PDF")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasSuffix(a, ".pdf"))
}

func TestClientUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/upload", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "tickets/3", r.FormValue("folder"))
		f, _, err := r.FormFile("file")
		if assert.NoError(t, err) {
			b, _ := io.ReadAll(f)
			assert.Equal(t, "%PDF-1.4", string(b))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"s3Url": "https://bucket.s3/tickets/3/x.pdf"})
	}))
	defer srv.Close()

	url, err := NewClient(srv.URL, "k").UploadFileDirect(context.Background(), []byte("%PDF-1.4"), "tickets/3", "x.pdf")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.s3/tickets/3/x.pdf", url)
}

func TestClientUploadFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "too big"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "k").UploadFileDirect(context.Background(), []byte("x"), TempFolder, "x.pdf")
	assert.ErrorIs(t, err, ErrUpload)
	assert.Contains(t, err.Error(), "too big")
}

func TestLocalDisk(t *testing.T) {
	dir := t.TempDir()
	url, err := LocalDisk{Dir: dir}.UploadFileDirect(context.Background(), []byte("hello"), "tickets/8", "a.pdf")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/tickets/8/a.pdf", url)

	b, err := os.ReadFile(filepath.Join(dir, "tickets", "8", "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}
