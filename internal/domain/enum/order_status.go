package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus int

const (
	OrderStatusPlaced    OrderStatus = 0
	OrderStatusAccepted  OrderStatus = 1
	OrderStatusShipped   OrderStatus = 2
	OrderStatusCompleted OrderStatus = 3
	OrderStatusCancelled OrderStatus = 4
)

var orderStatusNames = [...]string{"PLACED", "ACCEPTED", "SHIPPED", "COMPLETED", "CANCELLED"}

// forward-only chain; cancellation is handled separately
var nextOrderStatus = map[OrderStatus]OrderStatus{
	OrderStatusPlaced:   OrderStatusAccepted,
	OrderStatusAccepted: OrderStatusShipped,
	OrderStatusShipped:  OrderStatusCompleted,
}

func (s OrderStatus) String() string {
	if s < OrderStatusPlaced || int(s) >= len(orderStatusNames) {
		return "UNKNOWN"
	}
	return orderStatusNames[s]
}

// ParseOrderStatus converts a status name into an OrderStatus
func ParseOrderStatus(name string) (OrderStatus, error) {
	for i, n := range orderStatusNames {
		if n == name {
			return OrderStatus(i), nil
		}
	}
	return OrderStatusPlaced, fmt.Errorf("unknown order status %q", name)
}

// IsTerminal reports whether no further transition is allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanAdvance reports whether next is the immediate forward successor of s.
// Skipping, reversing, and moving out of a terminal state are all illegal.
func (s OrderStatus) CanAdvance(next OrderStatus) bool {
	succ, ok := nextOrderStatus[s]
	return ok && succ == next
}

// CanCancel reports whether the order may still be cancelled by the buyer
func (s OrderStatus) CanCancel() bool {
	return s == OrderStatusPlaced
}

// CanTransition is the single legality predicate over the state machine:
// farmers may only advance one step forward, buyers may only cancel from PLACED.
func CanTransition(from, to OrderStatus, role Role) bool {
	switch role {
	case RoleFarmer:
		return from.CanAdvance(to)
	case RoleBuyer:
		return to == OrderStatusCancelled && from.CanCancel()
	default:
		return false
	}
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = OrderStatus(i)
		return nil
	}
	parsed, err := ParseOrderStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPlaced
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
