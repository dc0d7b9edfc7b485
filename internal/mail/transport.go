package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"eggslist/internal/config"
)

// SMTPTransport sends messages through an SMTP relay.
type SMTPTransport struct {
	client *gomail.Client
	from   string
}

// NewSMTP builds an SMTP transport from cfg. Credentials are optional.
func NewSMTP(cfg config.EmailConfig) (*SMTPTransport, error) {
	opts := []gomail.Option{gomail.WithPort(cfg.Port)}
	if cfg.UseSSL {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}
	if cfg.User != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.User),
			gomail.WithPassword(cfg.Password),
		)
	}
	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPTransport{client: client, from: cfg.From}, nil
}

// Send dials once and delivers every message on that connection.
func (t *SMTPTransport) Send(ctx context.Context, msgs []Message) error {
	out := make([]*gomail.Msg, 0, len(msgs))
	for _, m := range msgs {
		msg, err := buildMsg(t.from, m)
		if err != nil {
			return err
		}
		out = append(out, msg)
	}
	return t.client.DialAndSendWithContext(ctx, out...)
}

func buildMsg(from string, m Message) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return nil, fmt.Errorf("to address %q: %w", m.To, err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(gomail.TypeTextHTML, m.HTML)
	return msg, nil
}

// ConsoleTransport logs messages instead of sending them. It is used when no
// SMTP host is configured.
type ConsoleTransport struct {
	from   string
	logger *zap.Logger
}

// NewConsole returns a transport writing each message to logger.
func NewConsole(from string, logger *zap.Logger) *ConsoleTransport {
	return &ConsoleTransport{from: from, logger: logger}
}

func (t *ConsoleTransport) Send(_ context.Context, msgs []Message) error {
	for _, m := range msgs {
		t.logger.Info("email",
			zap.String("from", t.from),
			zap.String("to", m.To),
			zap.String("subject", m.Subject),
			zap.String("body", m.HTML),
		)
	}
	return nil
}
