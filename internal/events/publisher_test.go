package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ojha-sweta/ShopVault/internal/cart"
	"github.com/ojha-sweta/ShopVault/internal/order"
)

func TestOrderMessage_PayloadShape(t *testing.T) {
	o := &order.Order{
		ID:     "ORD-1767225600000",
		UserID: "user_1",
		Items: []cart.Line{
			{ProductID: 5, Quantity: 2},
		},
		Subtotal: 50,
		Tax:      4,
		Total:    54,
		Status:   order.StatusProcessing,
		Date:     time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	msg, err := orderMessage(o)
	require.NoError(t, err)

	assert.Equal(t, []byte("user_1"), msg.Key)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &payload))

	assert.Equal(t, "ORD-1767225600000", payload["order_id"])
	assert.Equal(t, "user_1", payload["user_id"])
	assert.Equal(t, 54.0, payload["total"])
	assert.Equal(t, "Processing", payload["status"])
	assert.Contains(t, payload, "items")
	assert.Contains(t, payload, "placed_at")
}

func TestNop_OrderPlaced(t *testing.T) {
	err := Nop{}.OrderPlaced(context.Background(), &order.Order{ID: "ORD-1"})
	assert.NoError(t, err)
}
