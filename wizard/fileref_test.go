package wizard

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestFileToBase64(t *testing.T) {
	t.Run("encodes a data url", func(t *testing.T) {
		url, err := FileToBase64(strings.NewReader("hello"), "text/plain")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "data:"))
		assert.Equal(t, "data:text/plain;base64,aGVsbG8=", url)

		mime, content, err := DecodeDataURL(url)
		require.NoError(t, err)
		assert.Equal(t, "text/plain", mime)
		assert.Equal(t, []byte("hello"), content)
	})

	t.Run("propagates the read error", func(t *testing.T) {
		readErr := errors.New("disk gone")
		_, err := FileToBase64(failingReader{err: readErr}, "application/pdf")
		assert.ErrorIs(t, err, readErr)
	})
}

func TestDecodeDataURLRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "https://x/y.pdf", "data:text/plain,plain", "data:text/plain;base64,!!"} {
		_, _, err := DecodeDataURL(in)
		assert.ErrorIs(t, err, ErrBadDataURL, in)
	}
}

func TestFileRefKinds(t *testing.T) {
	assert.True(t, FileRef{}.IsEmpty())
	assert.Equal(t, FilePending, PendingFile("a.pdf", "application/pdf", "data:application/pdf;base64,").Kind())
	assert.Equal(t, FileUploaded, UploadedFile("a.pdf", "https://x").Kind())

	_, _, err := UploadedFile("a.pdf", "https://x").Content()
	assert.ErrorIs(t, err, ErrInvalidValue)
}

func TestFormDataJSONRestoresTypedValues(t *testing.T) {
	schema, _ := Lookup(FSSAI)
	fd := NewFormData(schema)
	fd, err := Dispatch(schema, fd, "step2", map[string]any{"foodCategories": []any{"Dairy"}})
	require.NoError(t, err)
	fd, err = SetFile(schema, fd, "step3", "photoId", UploadedFile("id.png", "https://files/id.png"))
	require.NoError(t, err)
	fd, err = Dispatch(schema, fd, "step1", map[string]any{"businessName": "Chai Point"})
	require.NoError(t, err)

	b, err := json.Marshal(fd)
	require.NoError(t, err)
	var back FormData
	require.NoError(t, json.Unmarshal(b, &back))

	assert.Equal(t, []string{"Dairy"}, back.Step("step2")["foodCategories"])
	assert.Equal(t, UploadedFile("id.png", "https://files/id.png"), back.Step("step3").File("photoId"))
	assert.Equal(t, "Chai Point", back.Step("step1").String("businessName"))
}
