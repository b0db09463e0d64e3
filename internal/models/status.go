package models

import "fmt"

// OrderStatus is the fulfillment lifecycle of an order. The happy path is
// linear; cancellation is possible until the order has shipped.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusInProgress OrderStatus = "in_progress"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// transitions maps each status to the statuses a seller may move it to.
// Terminal statuses map to an empty set.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled},
	StatusConfirmed:  {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

var statusLabels = map[OrderStatus]string{
	StatusPending:    "Pendiente",
	StatusConfirmed:  "Confirmado",
	StatusInProgress: "En preparación",
	StatusShipped:    "Enviado",
	StatusDelivered:  "Entregado",
	StatusCancelled:  "Cancelado",
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no further transition is permitted from s.
func (s OrderStatus) Terminal() bool {
	return len(transitions[s]) == 0 && s.Valid()
}

// Label returns the human-readable status label shown in notifications.
func (s OrderStatus) Label() string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// NextStatuses returns a copy of the statuses reachable from s.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := transitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether moving from s to target is legal.
func (s OrderStatus) CanTransition(target OrderStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// Transition validates and returns the target status, or an error
// describing the illegal move.
func (s OrderStatus) Transition(target OrderStatus) (OrderStatus, error) {
	if !target.Valid() {
		return s, fmt.Errorf("unknown order status %q", target)
	}
	if !s.CanTransition(target) {
		return s, fmt.Errorf("illegal transition from %q to %q", s, target)
	}
	return target, nil
}
