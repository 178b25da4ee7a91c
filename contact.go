package main

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"mime"
	"net/http"
	"net/mail"
	"net/smtp"
	"strings"
	"text/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/viditpawar/portfolio/internal/content"
)

var (
	errSMTPNotConfigured = errors.New("SMTP credentials not configured")
	errInvalidContact    = errors.New("invalid contact submission")
)

var stripHTML = bluemonday.StrictPolicy()

type contactMessage struct {
	Name    string
	Email   string
	Message string
}

// parseContact sanitizes the submitted form. Header-bound fields lose any
// line breaks so they cannot inject headers.
func parseContact(name, email, message string) (contactMessage, error) {
	oneLine := strings.NewReplacer("\r", " ", "\n", " ")
	plain := func(s string) string { return html.UnescapeString(stripHTML.Sanitize(s)) }
	msg := contactMessage{
		Name:    strings.TrimSpace(oneLine.Replace(plain(name))),
		Email:   strings.TrimSpace(oneLine.Replace(email)),
		Message: strings.TrimSpace(plain(message)),
	}
	if msg.Name == "" || msg.Message == "" {
		return msg, fmt.Errorf("%w: name and message are required", errInvalidContact)
	}
	if _, err := mail.ParseAddress(msg.Email); err != nil {
		return msg, fmt.Errorf("%w: %v", errInvalidContact, err)
	}
	return msg, nil
}

func (s *server) contact(c *gin.Context) {
	msg, err := parseContact(c.PostForm("fullName"), c.PostForm("email"), c.PostForm("message"))
	if err == nil {
		err = s.send(msg)
	}
	if err != nil {
		result := "failed"
		if errors.Is(err, errInvalidContact) {
			result = "invalid"
		}
		s.metrics.contacts.WithLabelValues(result).Inc()
		s.log.Warn().Err(err).Msg("contact submission rejected")
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	s.metrics.contacts.WithLabelValues("sent").Inc()
	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

var contactMailTmpl = template.Must(template.New("contact").Parse(`{{ .Name }} <{{ .Email }}> wrote through the contact form on your site:

{{ .Message }}

Reply to this email to answer them directly.
`))

// composeContactEmail renders the RFC 5322 message relayed to the site owner.
// The visitor goes in Reply-To; From stays the authenticated SMTP account.
func composeContactEmail(from, to string, msg contactMessage, sent time.Time) ([]byte, error) {
	var body bytes.Buffer
	if err := contactMailTmpl.Execute(&body, msg); err != nil {
		return nil, fmt.Errorf("render contact email: %w", err)
	}

	var buf bytes.Buffer
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Reply-To", (&mail.Address{Name: msg.Name, Address: msg.Email}).String()},
		{"Subject", mime.QEncoding.Encode("utf-8", "Message from "+msg.Name)},
		{"Date", sent.Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/plain; charset=utf-8"},
	}
	for _, h := range headers {
		buf.WriteString(h[0] + ": " + h[1] + "\r\n")
	}
	buf.WriteString("\r\n")
	text := strings.ReplaceAll(body.String(), "\r\n", "\n")
	buf.WriteString(strings.ReplaceAll(text, "\n", "\r\n"))
	return buf.Bytes(), nil
}

func (s *server) sendContactEmail(msg contactMessage) error {
	cfg := s.cfg.SMTP
	if cfg.User == "" || cfg.Pass == "" {
		return errSMTPNotConfigured
	}
	to := cfg.To
	if to == "" {
		to = content.OwnerEmail()
	}

	raw, err := composeContactEmail(cfg.User, to, msg, time.Now())
	if err != nil {
		return err
	}
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	if err := smtp.SendMail(cfg.Host+":"+cfg.Port, auth, cfg.User, []string{to}, raw); err != nil {
		return fmt.Errorf("send contact email: %w", err)
	}

	s.log.Info().Str("reply_to", msg.Email).Msg("contact email relayed")
	return nil
}
