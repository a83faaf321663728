package wizard

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromotePending(t *testing.T) {
	schema, _ := Lookup(GST)
	fd := NewFormData(schema)

	dataURL, err := FileToBase64(strings.NewReader(string(pdfBytes)), "application/pdf")
	require.NoError(t, err)
	fd, err = SetFile(schema, fd, "step3", "electricityBill", PendingFile("bill.pdf", "application/pdf", dataURL))
	require.NoError(t, err)
	fd, err = SetDirectorFile(schema, fd, 0, "panCard", PendingFile("pan.pdf", "application/pdf", dataURL))
	require.NoError(t, err)
	fd, err = SetFile(schema, fd, "step3", "cancelledCheque", UploadedFile("cheque.png", "https://files/cheque.png"))
	require.NoError(t, err)

	var uploaded []string
	upload := func(_ context.Context, name, mime string, content []byte) (string, error) {
		assert.Equal(t, "application/pdf", mime)
		assert.Equal(t, pdfBytes, content)
		uploaded = append(uploaded, name)
		return "https://files/" + name, nil
	}

	out, n, err := PromotePending(context.Background(), fd, upload)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.ElementsMatch(t, []string{"bill.pdf", "pan.pdf"}, uploaded)
	assert.Equal(t, UploadedFile("bill.pdf", "https://files/bill.pdf"), out.Step("step3").File("electricityBill"))
	assert.Equal(t, UploadedFile("pan.pdf", "https://files/pan.pdf"), out.Directors[0].PanCard)
	assert.Equal(t, "https://files/cheque.png", out.Step("step3").File("cancelledCheque").URL)
	assert.Equal(t, FilePending, fd.Step("step3").File("electricityBill").Kind(), "input must not change")

	failing := func(context.Context, string, string, []byte) (string, error) {
		return "", errors.New("storage down")
	}
	same, n, err := PromotePending(context.Background(), fd, failing)
	assert.Error(t, err)
	assert.Zero(t, n)
	assert.Equal(t, fd, same)
}
