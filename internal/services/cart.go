package services

import (
	"math"

	"github.com/google/uuid"

	"github.com/example/feria/internal/models"
)

// StoreGroup is the subset of a cart belonging to one store, with its
// computed totals. Shipping is a flat fee per store represented, so a cart
// spanning N stores pays N times the fee.
type StoreGroup struct {
	StoreID  uuid.UUID         `json:"store_id"`
	Items    []models.CartItem `json:"items"`
	Subtotal float64           `json:"subtotal"`
	Shipping float64           `json:"shipping"`
	Total    float64           `json:"total"`
}

// GroupByStore partitions cart items by store and computes per-group
// totals. Groups are returned in first-seen store order; the union of all
// groups equals the input. Pure function, no side effects.
func GroupByStore(items []models.CartItem, shippingFee float64) []StoreGroup {
	groups := make([]StoreGroup, 0)
	index := make(map[uuid.UUID]int)

	for _, item := range items {
		i, ok := index[item.StoreID]
		if !ok {
			i = len(groups)
			index[item.StoreID] = i
			groups = append(groups, StoreGroup{StoreID: item.StoreID, Shipping: shippingFee})
		}
		groups[i].Items = append(groups[i].Items, item)
		groups[i].Subtotal += item.UnitPrice * float64(item.Quantity)
	}

	for i := range groups {
		groups[i].Subtotal = round2(groups[i].Subtotal)
		groups[i].Total = round2(groups[i].Subtotal + groups[i].Shipping)
	}

	return groups
}

// GrandTotal sums the per-store totals at display precision.
func GrandTotal(groups []StoreGroup) float64 {
	var total float64
	for _, group := range groups {
		total += group.Total
	}
	return round2(total)
}

// round2 keeps amounts exact at display precision (two decimals).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
