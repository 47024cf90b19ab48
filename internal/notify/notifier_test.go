package notify

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thorsignia/backend/internal/config"
	"github.com/thorsignia/backend/internal/model"
)

func configuredEmail() config.EmailConfig {
	return config.EmailConfig{
		Host: "smtp.example.com",
		Port: 587,
		User: "mailer",
		Pass: "hunter2",
		From: "noreply@example.com",
		To:   "admin@example.com",
	}
}

func testContact() *model.Contact {
	return &model.Contact{
		ID:      7,
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Company: "Acme",
		Message: "line one\nline two",
	}
}

func TestNotify_NotConfigured(t *testing.T) {
	n := New(config.EmailConfig{}, false)

	res := n.Notify(testContact())
	assert.False(t, res.Sent)
	assert.Equal(t, "email not configured", res.Reason)
}

func TestNotify_Success(t *testing.T) {
	n := New(configuredEmail(), false)

	var sent *email.Email
	n.send = func(e *email.Email) error {
		sent = e
		return nil
	}

	res := n.Notify(testContact())
	require.True(t, res.Sent, "reason: %s", res.Reason)
	require.NotNil(t, sent)
	assert.Equal(t, "noreply@example.com", sent.From)
	assert.Equal(t, []string{"admin@example.com"}, sent.To)
	assert.Equal(t, "New Contact Form Submission: Jane Doe from Acme", sent.Subject)
}

func TestNotify_SendFailureCaptured(t *testing.T) {
	n := New(configuredEmail(), false)
	n.send = func(e *email.Email) error {
		return errors.New("connection refused")
	}

	res := n.Notify(testContact())
	assert.False(t, res.Sent)
	assert.Contains(t, res.Reason, "send failed")
	assert.Contains(t, res.Reason, "connection refused")
}

func TestNotify_Timeout(t *testing.T) {
	n := New(configuredEmail(), false)
	n.timeout = 20 * time.Millisecond
	n.send = func(e *email.Email) error {
		time.Sleep(200 * time.Millisecond)
		return nil
	}

	res := n.Notify(testContact())
	assert.False(t, res.Sent)
	assert.Contains(t, res.Reason, "timed out")
}

func TestHTMLBody_EscapesFields(t *testing.T) {
	c := testContact()
	c.Name = "Jane & <Doe>"
	c.Message = "a<b\nnext"

	body := htmlBody(c)
	assert.Contains(t, body, "Jane &amp; &lt;Doe&gt;")
	assert.Contains(t, body, "a&lt;b<br>next")
	assert.NotContains(t, body, "<Doe>")
}

func TestHTMLBody_NewlinesBecomeBreaks(t *testing.T) {
	body := htmlBody(testContact())
	assert.Contains(t, body, "line one<br>line two")
}

func TestHTMLBody_MissingPhonePlaceholder(t *testing.T) {
	body := htmlBody(testContact())
	assert.Contains(t, body, "Not provided")
}

func TestSubjectLine_StripsLineBreaks(t *testing.T) {
	c := testContact()
	c.Name = "Jane\r\nBcc: evil@example.com"

	subject := subjectLine(c)
	assert.False(t, strings.ContainsAny(subject, "\r\n"))
}
