package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_String(t *testing.T) {
	assert.Equal(t, "PLACED", OrderStatusPlaced.String())
	assert.Equal(t, "ACCEPTED", OrderStatusAccepted.String())
	assert.Equal(t, "SHIPPED", OrderStatusShipped.String())
	assert.Equal(t, "COMPLETED", OrderStatusCompleted.String())
	assert.Equal(t, "CANCELLED", OrderStatusCancelled.String())
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("SHIPPED")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("TELEPORTED")
	assert.Error(t, err)
}

func TestCanTransition_FarmerForwardOnly(t *testing.T) {
	// Legal forward steps
	assert.True(t, CanTransition(OrderStatusPlaced, OrderStatusAccepted, RoleFarmer))
	assert.True(t, CanTransition(OrderStatusAccepted, OrderStatusShipped, RoleFarmer))
	assert.True(t, CanTransition(OrderStatusShipped, OrderStatusCompleted, RoleFarmer))

	// No skipping
	assert.False(t, CanTransition(OrderStatusPlaced, OrderStatusShipped, RoleFarmer))
	assert.False(t, CanTransition(OrderStatusPlaced, OrderStatusCompleted, RoleFarmer))
	assert.False(t, CanTransition(OrderStatusAccepted, OrderStatusCompleted, RoleFarmer))

	// No going back
	assert.False(t, CanTransition(OrderStatusAccepted, OrderStatusPlaced, RoleFarmer))
	assert.False(t, CanTransition(OrderStatusShipped, OrderStatusAccepted, RoleFarmer))

	// Farmers do not cancel
	assert.False(t, CanTransition(OrderStatusPlaced, OrderStatusCancelled, RoleFarmer))
}

func TestCanTransition_BuyerCancelsPlacedOnly(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPlaced, OrderStatusCancelled, RoleBuyer))

	assert.False(t, CanTransition(OrderStatusAccepted, OrderStatusCancelled, RoleBuyer))
	assert.False(t, CanTransition(OrderStatusShipped, OrderStatusCancelled, RoleBuyer))
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusCancelled, RoleBuyer))

	// Buyers never advance orders
	assert.False(t, CanTransition(OrderStatusPlaced, OrderStatusAccepted, RoleBuyer))
}

func TestCanTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		for _, target := range []OrderStatus{OrderStatusPlaced, OrderStatusAccepted, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled} {
			if terminal == target {
				continue
			}
			assert.False(t, CanTransition(terminal, target, RoleFarmer), "%s -> %s", terminal, target)
			assert.False(t, CanTransition(terminal, target, RoleBuyer), "%s -> %s", terminal, target)
		}
	}
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.False(t, OrderStatusPlaced.IsTerminal())
	assert.False(t, OrderStatusAccepted.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
	assert.True(t, OrderStatusCompleted.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
}

func TestOrderStatus_JSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, `"SHIPPED"`, string(data))

	var status OrderStatus
	require.NoError(t, json.Unmarshal([]byte(`"ACCEPTED"`), &status))
	assert.Equal(t, OrderStatusAccepted, status)

	// Numeric form is accepted for backward compatibility
	require.NoError(t, json.Unmarshal([]byte(`2`), &status))
	assert.Equal(t, OrderStatusShipped, status)
}
