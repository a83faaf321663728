// Package storage puts ticket documents somewhere the back office can read
// them: the upload API when one is configured, local disk otherwise.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"filings/session"
	"filings/utils"
)

// TempFolder receives files that are not tied to a ticket yet.
const TempFolder = "temp"

var ErrUpload = errors.New("upload failed")

// Uploader stores one file and returns its URL.
type Uploader interface {
	UploadFileDirect(ctx context.Context, content []byte, folder, fileName string) (string, error)
}

// Default is the uploader the HTTP layer uses; main wires it.
var Default Uploader = LocalDisk{Dir: "uploads"}

// TicketFor picks the ticket a user's uploads belong to: the ticket being
// edited, then the ticket filled on someone's behalf, then the ticket id in
// the request query. Zero means none.
func TicketFor(flags session.Flags, queryTicketID string) uint {
	if flags.EditingTicketID != 0 {
		return flags.EditingTicketID
	}
	if flags.FillingOnBehalfTicketID != 0 {
		return flags.FillingOnBehalfTicketID
	}
	if id, err := strconv.ParseUint(strings.TrimSpace(queryTicketID), 10, 64); err == nil && id > 0 {
		return uint(id)
	}
	return 0
}

// FolderFor is the folder of TicketFor, else TempFolder.
func FolderFor(flags session.Flags, queryTicketID string) string {
	return TicketFolder(TicketFor(flags, queryTicketID))
}

// TicketFolder is where a ticket's documents are stored.
func TicketFolder(id uint) string {
	if id == 0 {
		return TempFolder
	}
	return "tickets/" + strconv.FormatUint(uint64(id), 10)
}

// ObjectName gives an upload a unique name that keeps its extension.
func ObjectName(original string) string {
	return uuid.NewString() + strings.ToLower(filepath.Ext(original))
}

type uploadResponse struct {
	S3URL   string `json:"s3Url"`
	Message string `json:"message"`
}

// Client posts files to the upload API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimSuffix(baseURL, "/")).
			SetHeader("x-api-key", apiKey).
			SetTimeout(time.Minute),
	}
}

func (c *Client) UploadFileDirect(ctx context.Context, content []byte, folder, fileName string) (string, error) {
	var ok, failed uploadResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetFileReader("file", fileName, bytes.NewReader(content)).
		SetFormData(map[string]string{"folder": folder, "fileName": fileName}).
		SetResult(&ok).
		SetError(&failed).
		Post("/upload")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if resp.IsError() {
		msg := failed.Message
		if msg == "" {
			msg = resp.Status()
		}
		return "", fmt.Errorf("%w: %s", ErrUpload, msg)
	}
	if ok.S3URL == "" {
		return "", fmt.Errorf("%w: no url in response", ErrUpload)
	}
	return ok.S3URL, nil
}

// LocalDisk writes files under Dir and serves them from /uploads.
type LocalDisk struct {
	Dir string
}

func (d LocalDisk) UploadFileDirect(_ context.Context, content []byte, folder, fileName string) (string, error) {
	path, err := utils.SaveFile(content, filepath.Join(d.Dir, folder), fileName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	rel, err := filepath.Rel(d.Dir, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return utils.GetFileURL(filepath.ToSlash(rel)), nil
}
