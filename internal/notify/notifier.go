// Package notify sends the admin email for a new submission. Failures are
// captured into a Result and never surface to the submission pipeline.
package notify

import (
	"crypto/tls"
	"fmt"
	"html"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/jordan-wright/email"

	"github.com/thorsignia/backend/internal/config"
	"github.com/thorsignia/backend/internal/model"
)

const sendTimeout = 10 * time.Second

// ReasonNotConfigured is reported when the SMTP transport has no settings;
// an unconfigured transport is an expected state, not a failure.
const ReasonNotConfigured = "email not configured"

// Result reports the outcome of one notification attempt.
type Result struct {
	Sent   bool
	Reason string
}

// Notifier composes and sends contact notifications over SMTP.
type Notifier struct {
	cfg        config.EmailConfig
	production bool
	timeout    time.Duration

	// send transmits a composed message; replaced in tests.
	send func(e *email.Email) error
}

// New creates a Notifier for the given transport settings. In production
// mode the unconfigured fallback logs the submission id only.
func New(cfg config.EmailConfig, production bool) *Notifier {
	n := &Notifier{cfg: cfg, production: production, timeout: sendTimeout}
	n.send = n.sendSMTP
	return n
}

// Notify emails the submission to the configured recipient. When the SMTP
// transport is not configured this is not a failure: the submission is
// logged instead and the Result reports why nothing was sent.
func (n *Notifier) Notify(c *model.Contact) Result {
	if !n.cfg.Configured() {
		if n.production {
			slog.Info("contact submission received, email not configured", "id", c.ID)
		} else {
			slog.Info("contact submission received, email not configured",
				"id", c.ID,
				"name", c.Name,
				"email", c.Email,
				"phone", c.PhoneOrDefault(),
				"company", c.Company,
				"message", c.Message,
			)
		}
		return Result{Sent: false, Reason: ReasonNotConfigured}
	}

	e := email.NewEmail()
	e.From = n.cfg.From
	e.To = []string{n.cfg.To}
	e.Subject = subjectLine(c)
	e.HTML = []byte(htmlBody(c))

	errc := make(chan error, 1)
	go func() { errc <- n.send(e) }()

	select {
	case err := <-errc:
		if err != nil {
			slog.Error("notification email failed", "id", c.ID, "error", err)
			return Result{Sent: false, Reason: fmt.Sprintf("send failed: %v", err)}
		}
		slog.Info("notification email sent", "id", c.ID, "to", n.cfg.To)
		return Result{Sent: true}
	case <-time.After(n.timeout):
		slog.Error("notification email timed out", "id", c.ID, "timeout", n.timeout)
		return Result{Sent: false, Reason: fmt.Sprintf("send timed out after %s", n.timeout)}
	}
}

func (n *Notifier) sendSMTP(e *email.Email) error {
	addr := net.JoinHostPort(n.cfg.Host, strconv.Itoa(n.cfg.Port))
	auth := smtp.PlainAuth("", n.cfg.User, n.cfg.Pass, n.cfg.Host)
	if n.cfg.UseTLS {
		return e.SendWithTLS(addr, auth, &tls.Config{ServerName: n.cfg.Host})
	}
	return e.Send(addr, auth)
}

// subjectLine builds the subject from fields that the validator already
// sanitized; CR/LF are stripped anyway to rule out header injection.
func subjectLine(c *model.Contact) string {
	clean := strings.NewReplacer("\r", "", "\n", "")
	return clean.Replace(fmt.Sprintf("New Contact Form Submission: %s from %s", c.Name, c.Company))
}

// htmlBody renders every field HTML-escaped, converting message newlines to
// line breaks, so submission content cannot inject markup into the email.
func htmlBody(c *model.Contact) string {
	message := strings.ReplaceAll(html.EscapeString(c.Message), "\n", "<br>")
	return fmt.Sprintf(`<h2>New Contact Form Submission</h2>
<p><strong>Date:</strong> %s</p>
<hr>
<p><strong>Name:</strong> %s</p>
<p><strong>Email:</strong> %s</p>
<p><strong>Phone:</strong> %s</p>
<p><strong>Company:</strong> %s</p>
<h3>Message:</h3>
<p>%s</p>`,
		time.Now().Format("2006-01-02 15:04:05"),
		html.EscapeString(c.Name),
		html.EscapeString(c.Email),
		html.EscapeString(c.PhoneOrDefault()),
		html.EscapeString(c.Company),
		message,
	)
}
