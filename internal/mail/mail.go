// Package mail renders templated HTML mailings and hands them to a transport.
package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"eggslist/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrUnknownTemplate is returned when a mailing names a template that is not embedded.
var ErrUnknownTemplate = errors.New("unknown mail template")

// Message is one rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Transport delivers a batch of messages over a single connection.
type Transport interface {
	Send(ctx context.Context, msgs []Message) error
}

// SiteNamer supplies the site name shown in every mailing.
type SiteNamer interface {
	SiteName(ctx context.Context) (string, error)
}

// Mailing describes one templated send. When Addresses is empty the users'
// emails are used. Each template receives obj, base_url, site_name and, when
// sending to users, user.
type Mailing struct {
	Subject   string
	Template  string
	Object    any
	Users     []model.User
	Addresses []string
}

// Mailer renders mailings and sends them through a circuit breaker.
type Mailer struct {
	transport Transport
	site      SiteNamer
	siteURL   string
	templates *template.Template
	breaker   *gobreaker.CircuitBreaker
	logger    *zap.Logger
}

// New parses the embedded templates and returns a Mailer.
func New(transport Transport, site SiteNamer, siteURL string, logger *zap.Logger) (*Mailer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse mail templates: %w", err)
	}
	m := &Mailer{
		transport: transport,
		site:      site,
		siteURL:   siteURL,
		templates: tmpl,
		logger:    logger,
	}
	m.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mail",
		MaxRequests: 1,
		Interval:    30 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return m, nil
}

// Templates lists the names of the embedded templates.
func (m *Mailer) Templates() []string {
	var names []string
	for _, t := range m.templates.Templates() {
		names = append(names, t.Name())
	}
	sort.Strings(names)
	return names
}

// SendMailing renders one message per recipient and sends them as one batch.
// It returns the number of messages handed to the transport.
func (m *Mailer) SendMailing(ctx context.Context, mg Mailing) (int, error) {
	if m.templates.Lookup(mg.Template) == nil {
		return 0, fmt.Errorf("%w %q, expected one of: %s", ErrUnknownTemplate, mg.Template, strings.Join(m.Templates(), ", "))
	}

	addresses := mg.Addresses
	if len(addresses) == 0 {
		for _, u := range mg.Users {
			addresses = append(addresses, u.Email)
		}
	}
	if len(addresses) == 0 {
		return 0, nil
	}

	siteName, err := m.site.SiteName(ctx)
	if err != nil {
		return 0, fmt.Errorf("site name: %w", err)
	}
	obj := mg.Object
	if obj == nil {
		obj = map[string]any{}
	}

	msgs := make([]Message, 0, len(addresses))
	for i, addr := range addresses {
		data := map[string]any{
			"obj":       obj,
			"base_url":  m.siteURL,
			"site_name": siteName,
		}
		if i < len(mg.Users) {
			data["user"] = mg.Users[i]
		}

		var body bytes.Buffer
		if err := m.templates.ExecuteTemplate(&body, mg.Template, data); err != nil {
			return 0, fmt.Errorf("render %s: %w", mg.Template, err)
		}
		msgs = append(msgs, Message{To: addr, Subject: mg.Subject, HTML: body.String()})
	}

	_, err = m.breaker.Execute(func() (any, error) {
		return nil, m.transport.Send(ctx, msgs)
	})
	if err != nil {
		return 0, fmt.Errorf("send mailing: %w", err)
	}
	m.logger.Info("mailing sent",
		zap.String("template", mg.Template),
		zap.Int("recipients", len(msgs)),
	)
	return len(msgs), nil
}
