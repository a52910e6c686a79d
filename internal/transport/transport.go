// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/lukasdietrich/baitmail/internal/log"
)

var (
	// ErrTransport is returned when a message could not be handed to the smtp server.
	ErrTransport = errors.New("message transport failed")
	// ErrUnavailable is returned when no smtp server is configured.
	ErrUnavailable = errors.New("message transport unavailable")
)

// Error is a failed smtp session. Stage names the step that failed.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v during %s: %v", ErrTransport, e.Stage, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// Sender delivers messages.
type Sender interface {
	// Send delivers a single message. Errors are wrapped with ErrTransport or ErrUnavailable.
	Send(context.Context, *Message) error
	// Ready returns nil if the sender can be used at all.
	Ready() error
}

// SMTPTransport submits every message in its own smtp session.
type SMTPTransport struct {
	opts Options
	now  func() time.Time
}

// NewSMTPTransport creates a new SMTPTransport. A host is required.
func NewSMTPTransport(opts Options) (*SMTPTransport, error) {
	if strings.TrimSpace(opts.Host) == "" {
		return nil, fmt.Errorf("%w: smtp host required", ErrUnavailable)
	}

	if opts.Hostname == "" {
		opts.Hostname = "localhost"
	}

	return &SMTPTransport{opts: opts, now: time.Now}, nil
}

// Ready implements Sender.
func (*SMTPTransport) Ready() error {
	return nil
}

// Send implements Sender. It dials the server, upgrades to tls if configured and offered,
// authenticates if credentials are configured and submits the message.
func (t *SMTPTransport) Send(ctx context.Context, msg *Message) error {
	from, err := msg.From.ASCII()
	if err != nil {
		return &Error{Stage: "address", Err: err}
	}

	to, err := msg.To.ASCII()
	if err != nil {
		return &Error{Stage: "address", Err: err}
	}

	data, err := compose(msg, from, to, t.now())
	if err != nil {
		return &Error{Stage: "compose", Err: err}
	}

	client, err := t.dial(ctx)
	if err != nil {
		return err
	}

	defer client.Close()

	if err := t.initClient(client); err != nil {
		return err
	}

	if err := client.Mail(from.String()); err != nil {
		return &Error{Stage: "mail", Err: err}
	}

	if err := client.Rcpt(to.String()); err != nil {
		return &Error{Stage: "rcpt", Err: err}
	}

	if err := copyData(client, data); err != nil {
		return &Error{Stage: "data", Err: err}
	}

	if err := client.Quit(); err != nil {
		return &Error{Stage: "quit", Err: err}
	}

	log.DebugContext(ctx).
		Str("host", t.opts.Host).
		Str("to", to.String()).
		Int("size", len(data)).
		Msg("message submitted")

	return nil
}

func (t *SMTPTransport) dial(ctx context.Context) (*smtp.Client, error) {
	dialer := net.Dialer{Timeout: t.opts.Timeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(t.opts.Host, t.opts.Port))
	if err != nil {
		return nil, &Error{Stage: "dial", Err: err}
	}

	deadline, ok := ctx.Deadline()
	if t.opts.Timeout > 0 {
		if sessionDeadline := time.Now().Add(t.opts.Timeout); !ok || sessionDeadline.Before(deadline) {
			deadline, ok = sessionDeadline, true
		}
	}

	if ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, &Error{Stage: "dial", Err: err}
		}
	}

	client, err := smtp.NewClient(conn, t.opts.Host)
	if err != nil {
		conn.Close()
		return nil, &Error{Stage: "dial", Err: err}
	}

	return client, nil
}

// initClient says hello to the server, upgrades to tls and authenticates.
func (t *SMTPTransport) initClient(client *smtp.Client) error {
	if err := client.Hello(t.opts.Hostname); err != nil {
		return &Error{Stage: "hello", Err: err}
	}

	if ok, _ := client.Extension("STARTTLS"); ok && t.opts.StartTLS {
		config := tls.Config{
			ServerName: t.opts.Host,
		}

		if err := client.StartTLS(&config); err != nil {
			return &Error{Stage: "starttls", Err: err}
		}
	}

	if t.opts.Username != "" {
		auth := smtp.PlainAuth("", t.opts.Username, t.opts.Password, t.opts.Host)

		if err := client.Auth(auth); err != nil {
			return &Error{Stage: "auth", Err: err}
		}
	}

	return nil
}

func copyData(client *smtp.Client, data []byte) error {
	w, err := client.Data()
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return err
	}

	return w.Close()
}

// Unavailable returns a Sender failing every call with ErrUnavailable and cause.
func Unavailable(cause error) Sender {
	return unavailable{cause: cause}
}

type unavailable struct {
	cause error
}

func (u unavailable) Send(context.Context, *Message) error {
	return u.Ready()
}

func (u unavailable) Ready() error {
	if errors.Is(u.cause, ErrUnavailable) {
		return u.cause
	}

	return fmt.Errorf("%w: %v", ErrUnavailable, u.cause)
}

// ProvideSender creates the configured Sender. If no smtp server is configured, the failure is
// logged and an unavailable Sender is returned.
func ProvideSender(opts Options) Sender {
	transport, err := NewSMTPTransport(opts)
	if err != nil {
		log.Warn().
			Err(err).
			Msg("message transport is not available")

		return Unavailable(err)
	}

	log.Info().
		Str("host", opts.Host).
		Str("port", opts.Port).
		Bool("auth", opts.Username != "").
		Msg("message transport configured")

	return transport
}
