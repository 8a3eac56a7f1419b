package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daggys-menu/internal/model"
)

// fakeOpener records opened URLs and lets tests control handler availability.
type fakeOpener struct {
	canOpen func(rawURL string) bool
	openErr error
	opened  []string
}

func (f *fakeOpener) CanOpen(_ context.Context, rawURL string) bool {
	if f.canOpen == nil {
		return true
	}
	return f.canOpen(rawURL)
}

func (f *fakeOpener) Open(_ context.Context, rawURL string) error {
	if f.openErr != nil {
		return f.openErr
	}
	f.opened = append(f.opened, rawURL)
	return nil
}

func testMessage() Message {
	return Message{
		Subject: "Delivery Order - 3 items",
		Body:    "New Delivery Order from Daggy's Menu\n\nORDER DETAILS:\n",
		Summary: "New order from Ada Lovelace. Total: $26.32. Check email for details.",
	}
}

func TestIntentDispatcher_Dispatch(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()

	t.Run("Opens mail and sms intents", func(t *testing.T) {
		opener := &fakeOpener{}
		d := NewIntentDispatcher(opener, "orders@daggysmenu.example", "+15551234567", logger)

		require.NoError(t, d.Dispatch(ctx, testMessage()))
		require.Len(t, opener.opened, 2)
		assert.True(t, strings.HasPrefix(opener.opened[0], "mailto:orders@daggysmenu.example?"))
		assert.True(t, strings.HasPrefix(opener.opened[1], "sms:+15551234567?"))
	})

	t.Run("No sms number configured", func(t *testing.T) {
		opener := &fakeOpener{}
		d := NewIntentDispatcher(opener, "orders@daggysmenu.example", "", logger)

		require.NoError(t, d.Dispatch(ctx, testMessage()))
		require.Len(t, opener.opened, 1)
		assert.True(t, strings.HasPrefix(opener.opened[0], "mailto:"))
	})

	t.Run("Nil opener is unavailable", func(t *testing.T) {
		d := NewIntentDispatcher(nil, "orders@daggysmenu.example", "", logger)
		assert.ErrorIs(t, d.Dispatch(ctx, testMessage()), model.ErrDispatchUnavailable)
	})

	t.Run("No mail handler is unavailable", func(t *testing.T) {
		opener := &fakeOpener{canOpen: func(string) bool { return false }}
		d := NewIntentDispatcher(opener, "orders@daggysmenu.example", "", logger)

		assert.ErrorIs(t, d.Dispatch(ctx, testMessage()), model.ErrDispatchUnavailable)
		assert.Empty(t, opener.opened)
	})

	t.Run("Open failure is wrapped", func(t *testing.T) {
		opener := &fakeOpener{openErr: errors.New("exec: xdg-open: exit status 4")}
		d := NewIntentDispatcher(opener, "orders@daggysmenu.example", "", logger)

		err := d.Dispatch(ctx, testMessage())
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrDispatchUnavailable)
		assert.Contains(t, err.Error(), "failed to open mail intent")
	})

	t.Run("Sms failure does not fail dispatch", func(t *testing.T) {
		opener := &fakeOpener{canOpen: func(rawURL string) bool {
			return strings.HasPrefix(rawURL, "mailto:")
		}}
		d := NewIntentDispatcher(opener, "orders@daggysmenu.example", "+15551234567", logger)

		require.NoError(t, d.Dispatch(ctx, testMessage()))
		require.Len(t, opener.opened, 1)
	})
}

func TestMailtoURL(t *testing.T) {
	got := MailtoURL("orders@daggysmenu.example", "Delivery Order - 3 items", "Line 1\nLine 2")

	assert.True(t, strings.HasPrefix(got, "mailto:orders@daggysmenu.example?"))
	assert.Contains(t, got, "subject=Delivery%20Order%20-%203%20items")
	assert.Contains(t, got, "body=Line%201%0ALine%202")
	assert.NotContains(t, got, "+")
}

func TestSMSURL(t *testing.T) {
	got := SMSURL("+15551234567", "New order. Total: $26.32")

	assert.True(t, strings.HasPrefix(got, "sms:+15551234567?"))
	assert.Contains(t, got, "body=New%20order.%20Total%3A%20%2426.32")
}
