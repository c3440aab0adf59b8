package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSwagger(t *testing.T) {
	doc, err := GetSwagger()
	require.NoError(t, err)

	for _, path := range []string{
		"/api/v1/orders",
		"/api/v1/orders/{orderId}",
		"/api/v1/orders/{orderId}/transitions",
		"/api/v1/orders/{orderId}/tickets",
		"/api/v1/kitchen/tickets/{ticketId}/items/{itemIndex}",
		"/api/v1/menu/items/{menuItemId}",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
}
