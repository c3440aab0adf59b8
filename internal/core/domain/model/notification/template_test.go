package notification_test

import (
	"testing"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/notification"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestRenderer_Render(t *testing.T) {
	renderer := notification.NewRenderer(language.English, notification.DefaultTemplates()...)

	t.Run("should render currency with grouping and suffix", func(t *testing.T) {
		msg, err := renderer.Render(string(notification.OrderReady), map[string]notification.Variable{
			"order_number": notification.TextVariable("ORD-1A2B3C4D"),
			"total":        notification.CurrencyVariable(decimal.NewFromInt(125000), "IDR"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Your order ORD-1A2B3C4D is ready. Total: 125,000 IDR.", msg)
	})

	t.Run("should drop the fractional part of currency amounts", func(t *testing.T) {
		text := renderer.FormatCurrency(notification.CurrencyVariable(decimal.RequireFromString("1234567.89"), "USD"))
		assert.Equal(t, "1,234,567 USD", text)
	})

	t.Run("should render unknown formats as plain text", func(t *testing.T) {
		msg, err := renderer.Render(string(notification.OrderServed), map[string]notification.Variable{
			"order_number": {Format: "emoji", Text: "ORD-9"},
			"total":        notification.TextVariable("free"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Your order ORD-9 was served. Thank you! Total paid: free.", msg)
	})

	t.Run("should fail with template error on missing variable", func(t *testing.T) {
		_, err := renderer.Render(string(notification.OrderReady), map[string]notification.Variable{
			"order_number": notification.TextVariable("ORD-1"),
		})

		require.ErrorIs(t, err, notification.ErrTemplate)
		var templateErr *notification.TemplateError
		require.ErrorAs(t, err, &templateErr)
		assert.Equal(t, "total", templateErr.Variable)
		assert.Equal(t, "template error: template order_ready, variable total (cause: missing required variable)", err.Error())
	})

	t.Run("should fail for unregistered template", func(t *testing.T) {
		_, err := renderer.Render("order_lost", nil)
		require.ErrorIs(t, err, notification.ErrTemplate)
	})

	t.Run("should group according to language", func(t *testing.T) {
		german := notification.NewRenderer(language.German)
		assert.Equal(t, "125.000 EUR", german.FormatCurrency(notification.CurrencyVariable(decimal.NewFromInt(125000), "EUR")))
	})
}

func TestTemplate_Placeholders(t *testing.T) {
	tmpl := notification.Template{ID: "x", Body: "{a} and {b} then {a} again, {Not} {c_1}"}
	assert.Equal(t, []string{"a", "b", "c_1"}, tmpl.Placeholders())
}

func TestRecipient_AddressFor(t *testing.T) {
	r := notification.Recipient{Phone: "+62811", PushToken: "tok"}

	assert.Equal(t, "+62811", r.AddressFor(notification.SMS))
	assert.Equal(t, "tok", r.AddressFor(notification.Push))
	assert.Empty(t, r.AddressFor(notification.Email))
	assert.Empty(t, r.AddressFor("fax"))
}

func TestChannel_Validate(t *testing.T) {
	require.NoError(t, notification.SMS.Validate())
	require.Error(t, notification.Channel("fax").Validate())
}

func TestRequestID_IsStablePerOrderAndType(t *testing.T) {
	orderID := kernel.NewUUID()

	assert.True(t, notification.RequestID(orderID, notification.OrderReady).
		IsEqual(notification.RequestID(orderID, notification.OrderReady)))
	assert.False(t, notification.RequestID(orderID, notification.OrderReady).
		IsEqual(notification.RequestID(orderID, notification.OrderServed)))
}
