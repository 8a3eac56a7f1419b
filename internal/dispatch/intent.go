package dispatch

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"daggys-menu/internal/model"
)

// intentDispatcher composes mailto: and sms: intent URLs and hands them to a
// device URL opener.
type intentDispatcher struct {
	opener    URLOpener
	toEmail   string
	smsNumber string
	logger    zerolog.Logger
}

// NewIntentDispatcher creates a dispatcher that delivers orders through the
// device's mail intent, with an SMS alert to smsNumber when one is
// configured.
func NewIntentDispatcher(opener URLOpener, toEmail, smsNumber string, logger zerolog.Logger) Dispatcher {
	return &intentDispatcher{
		opener:    opener,
		toEmail:   toEmail,
		smsNumber: smsNumber,
		logger:    logger.With().Str("component", "intent-dispatcher").Logger(),
	}
}

// Dispatch composes the mail intent for msg and opens it. A missing or
// refusing handler yields ErrDispatchUnavailable; the caller decides the
// fallback.
func (d *intentDispatcher) Dispatch(ctx context.Context, msg Message) error {
	mailURL := MailtoURL(d.toEmail, msg.Subject, msg.Body)

	if d.opener == nil || !d.opener.CanOpen(ctx, mailURL) {
		d.logger.Warn().Str("to", d.toEmail).Msg("no mail handler available")
		return model.ErrDispatchUnavailable
	}

	if err := d.opener.Open(ctx, mailURL); err != nil {
		d.logger.Error().Err(err).Str("to", d.toEmail).Msg("failed to open mail intent")
		return fmt.Errorf("failed to open mail intent: %w", err)
	}

	d.logger.Info().Str("to", d.toEmail).Str("subject", msg.Subject).Msg("order dispatched via mail intent")

	// Secondary SMS alert is best effort.
	if d.smsNumber != "" && msg.Summary != "" {
		smsURL := SMSURL(d.smsNumber, msg.Summary)
		if d.opener.CanOpen(ctx, smsURL) {
			if err := d.opener.Open(ctx, smsURL); err != nil {
				d.logger.Warn().Err(err).Msg("failed to open sms intent")
			}
		}
	}

	return nil
}

// MailtoURL composes an RFC 6068 mailto URL with subject and body.
func MailtoURL(to, subject, body string) string {
	params := url.Values{}
	params.Set("subject", subject)
	params.Set("body", body)
	// url.Values encodes spaces as '+', which mail handlers do not decode.
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	return "mailto:" + to + "?" + query
}

// SMSURL composes an sms: intent URL with a prefilled body.
func SMSURL(number, body string) string {
	params := url.Values{}
	params.Set("body", body)
	query := strings.ReplaceAll(params.Encode(), "+", "%20")
	return "sms:" + number + "?" + query
}
