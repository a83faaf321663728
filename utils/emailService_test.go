package utils

import (
	"errors"
	"testing"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filings/config"
)

func withDeliver(t *testing.T, fn func(string, *mail.SGMailV3) error) {
	t.Helper()
	prev, prevCfg := deliver, config.AppConfig
	deliver = fn
	t.Cleanup(func() { deliver, config.AppConfig = prev, prevCfg })
}

func TestSendEmailSkipsWithoutKey(t *testing.T) {
	called := false
	withDeliver(t, func(string, *mail.SGMailV3) error { called = true; return nil })
	config.AppConfig = &config.Config{}

	require.NoError(t, SendEmail("a@example.com", "A", "Hi", "<p>hi</p>"))
	assert.False(t, called)
}

func TestSendEmailBuildsMessage(t *testing.T) {
	var got *mail.SGMailV3
	withDeliver(t, func(key string, m *mail.SGMailV3) error {
		assert.Equal(t, "sg-key", key)
		got = m
		return nil
	})
	config.AppConfig = &config.Config{SendgridApiKey: "sg-key", EmailSender: "desk@example.com", EmailName: "Desk"}

	require.NoError(t, SendEmail("client@example.com", "Client", "Submitted", getEmailTemplate("T", "<p>body</p>")))
	require.NotNil(t, got)
	assert.Equal(t, "desk@example.com", got.From.Address)
	assert.Equal(t, "Submitted", got.Subject)
	require.Len(t, got.Personalizations, 1)
	assert.Equal(t, "client@example.com", got.Personalizations[0].To[0].Address)
}

func TestSendEmailReturnsDeliveryError(t *testing.T) {
	boom := errors.New("rate limited")
	withDeliver(t, func(string, *mail.SGMailV3) error { return boom })
	config.AppConfig = &config.Config{SendgridApiKey: "k"}

	assert.ErrorIs(t, SendEmail("a@example.com", "A", "Hi", "x"), boom)
}

func TestEmailBodiesEscapeUserText(t *testing.T) {
	body := welcomeBody(`<script>alert(1)</script>`)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")

	body = submittedBody(`Tom & "Jerry"`, `<b>GST</b>`, 7)
	assert.Contains(t, body, "Tom &amp; &#34;Jerry&#34;")
	assert.Contains(t, body, "&lt;b&gt;GST&lt;/b&gt;")
	assert.Contains(t, body, "#7")
}
