package wizard

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// FileState discriminates FileRef.
type FileState string

const (
	FileEmpty    FileState = "empty"
	FilePending  FileState = "pending"
	FileUploaded FileState = "uploaded"
)

// FileRef is the value of a file field. A pending file is held inline as a
// data URL until the ticket is submitted; an uploaded one is a remote URL.
type FileRef struct {
	State   FileState `json:"state"`
	Name    string    `json:"name,omitempty"`
	MIME    string    `json:"mime,omitempty"`
	DataURL string    `json:"dataUrl,omitempty"`
	URL     string    `json:"url,omitempty"`
}

func EmptyFile() FileRef { return FileRef{State: FileEmpty} }

func PendingFile(name, mime, dataURL string) FileRef {
	return FileRef{State: FilePending, Name: name, MIME: mime, DataURL: dataURL}
}

func UploadedFile(name, url string) FileRef {
	return FileRef{State: FileUploaded, Name: name, URL: url}
}

// Kind normalises the zero value to FileEmpty.
func (f FileRef) Kind() FileState {
	if f.State == "" {
		return FileEmpty
	}
	return f.State
}

func (f FileRef) IsEmpty() bool { return f.Kind() == FileEmpty }

// Content decodes the inline bytes of a pending file.
func (f FileRef) Content() (string, []byte, error) {
	if f.Kind() != FilePending {
		return "", nil, fmt.Errorf("%w: file is %s", ErrInvalidValue, f.Kind())
	}
	return DecodeDataURL(f.DataURL)
}

// FileToBase64 reads r fully and encodes it as a data URL.
func FileToBase64(r io.Reader, mime string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("data:")
	buf.WriteString(mime)
	buf.WriteString(";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &buf)
	if _, err := io.Copy(enc, r); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DecodeDataURL is the inverse of FileToBase64.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURL
	}
	mime, isBase64 := strings.CutSuffix(meta, ";base64")
	if !isBase64 {
		return "", nil, ErrBadDataURL
	}
	content, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURL, err)
	}
	return mime, content, nil
}
