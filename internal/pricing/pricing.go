// Package pricing reconstructs order cost from a session's menu snapshot.
// Everything here is a pure function: orders are priced against the snapshot
// the session captured, never the live menu, so historical prices stay
// correct no matter how the menu changes afterwards.
package pricing

import (
	"strings"

	"github.com/sideorder/sideorder/internal/model"
)

// PriceOf computes one order's price from the snapshot. The menu item is
// matched by name, not id: the order stores a denormalized name and must
// price correctly even if the live item was later renamed or deleted, as
// long as the snapshot still holds the name it had then.
//
// ok is false when the price is unknown: the item is missing from the
// snapshot or has no base cost. Unknown is distinct from zero and must never
// be rendered as a free item.
func PriceOf(o *model.Order, snapshot *model.MenuSnapshot) (price float64, ok bool) {
	if o == nil || snapshot == nil {
		return 0, false
	}

	var item *model.MenuItem
	for i := range snapshot.Items {
		if snapshot.Items[i].Name == o.ItemName {
			item = &snapshot.Items[i]
			break
		}
	}
	if item == nil || item.BaseCost == nil {
		return 0, false
	}

	total := *item.BaseCost

	if o.Customizations.Grouped() {
		for groupID, names := range o.Customizations.Selections() {
			group := groupByID(snapshot, groupID)
			if group == nil {
				continue
			}
			for _, name := range names {
				total += additiveFor(group, name)
			}
		}
	} else {
		// Legacy flat fields resolve to a group by name, case-insensitively.
		for key, name := range o.Customizations.LegacyFields() {
			group := groupByName(snapshot, key)
			if group == nil {
				continue
			}
			total += additiveFor(group, name)
		}
	}

	return total, true
}

// TotalRevenue sums the known prices over the orders. Orders with an unknown
// price are excluded from the sum, not counted as zero; ok is false only
// when no order has a known price.
func TotalRevenue(orders []model.Order, snapshot *model.MenuSnapshot) (total float64, ok bool) {
	for i := range orders {
		price, known := PriceOf(&orders[i], snapshot)
		if known {
			total += price
			ok = true
		}
	}
	if !ok {
		return 0, false
	}
	return total, true
}

func groupByID(snapshot *model.MenuSnapshot, id string) *model.ModifierGroup {
	for i := range snapshot.ModifierGroups {
		if snapshot.ModifierGroups[i].ID == id {
			return &snapshot.ModifierGroups[i]
		}
	}
	return nil
}

func groupByName(snapshot *model.MenuSnapshot, name string) *model.ModifierGroup {
	for i := range snapshot.ModifierGroups {
		if strings.EqualFold(snapshot.ModifierGroups[i].Name, name) {
			return &snapshot.ModifierGroups[i]
		}
	}
	return nil
}

func additiveFor(group *model.ModifierGroup, optionName string) float64 {
	for _, opt := range group.Options {
		if opt.Name == optionName {
			if opt.PriceAdditive != nil && *opt.PriceAdditive > 0 {
				return *opt.PriceAdditive
			}
			return 0
		}
	}
	return 0
}
