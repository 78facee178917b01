// Package notifier delivers contact submissions to the site owner by email.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single delivery attempt when Config.Timeout is unset.
const DefaultTimeout = 15 * time.Second

// Submission is the data rendered into the owner notification.
type Submission struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Message is a fully rendered email ready for a transport.
type Message struct {
	From        string
	FromName    string
	To          string
	ReplyTo     string
	ReplyToName string
	Subject     string
	Text        string
	HTML        string
}

// Transport hands a rendered message to an outbound mail system.
type Transport interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Error reports a failed delivery through a transport.
type Error struct {
	Transport string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("notifier %s: %v", e.Transport, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Config holds the process-wide delivery settings.
type Config struct {
	To       string
	From     string
	FromName string
	Location *time.Location
	Timeout  time.Duration
}

// Notifier renders submissions and sends them through a Transport.
type Notifier struct {
	transport Transport
	cfg       Config
	renderer  *Renderer
	now       func() time.Time
	logger    zerolog.Logger
}

// Option customises a Notifier.
type Option func(*Notifier)

// WithClock overrides the time source used for the timestamp line.
func WithClock(now func() time.Time) Option {
	return func(n *Notifier) {
		if now != nil {
			n.now = now
		}
	}
}

// New constructs a Notifier for the given transport.
func New(transport Transport, cfg Config, logger zerolog.Logger, opts ...Option) (*Notifier, error) {
	if transport == nil {
		return nil, errors.New("notifier transport must not be nil")
	}
	if strings.TrimSpace(cfg.To) == "" {
		return nil, errors.New("notifier destination address must not be empty")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	n := &Notifier{
		transport: transport,
		cfg:       cfg,
		renderer:  NewRenderer(cfg.Location),
		now:       time.Now,
		logger:    logger.With().Str("component", "notifier").Str("transport", transport.Name()).Logger(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// Compose renders the owner notification for a submission.
func (n *Notifier) Compose(submission Submission) (Message, error) {
	subject := strings.TrimSpace(submission.Subject)
	if subject == "" {
		subject = DefaultSubject(submission.Name)
	}
	submission.Subject = subject

	text, html, err := n.renderer.Render(submission, n.now())
	if err != nil {
		return Message{}, err
	}

	return Message{
		From:        n.cfg.From,
		FromName:    n.cfg.FromName,
		To:          n.cfg.To,
		ReplyTo:     strings.TrimSpace(submission.Email),
		ReplyToName: strings.TrimSpace(submission.Name),
		Subject:     subject,
		Text:        text,
		HTML:        html,
	}, nil
}

// Send delivers the submission once. Failures come back as *Error.
func (n *Notifier) Send(ctx context.Context, submission Submission) error {
	msg, err := n.Compose(submission)
	if err != nil {
		return &Error{Transport: n.transport.Name(), Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()

	start := time.Now()
	if err := n.transport.Send(ctx, msg); err != nil {
		return &Error{Transport: n.transport.Name(), Err: err}
	}

	n.logger.Debug().Dur("elapsed", time.Since(start)).Msg("notification sent")
	return nil
}

// DefaultSubject is used when the submitter leaves the subject empty.
func DefaultSubject(name string) string {
	return fmt.Sprintf("Portfolio Contact - %s", strings.TrimSpace(name))
}
