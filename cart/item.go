package cart

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"foodcart/entity"
)

// Item is one cart line. The same menu item with different options is a
// different line, so ID is generated rather than taken from the product.
type Item struct {
	ID               string                   `json:"id"`
	MenuItem         entity.MenuItem          `json:"menuItem"`
	Quantity         int                      `json:"quantity"`
	Options          map[uint]uint            `json:"options"`
	Notes            string                   `json:"notes,omitempty"`
	AdditionalPieces []entity.AdditionalPiece `json:"additionalPieces,omitempty"`

	// base price + option modifiers + add-ons, fixed when the line was created
	UnitPrice int64 `json:"unitPrice"`
}

// TotalPrice is computed, never stored, so it cannot drift from the quantity.
func (it Item) TotalPrice() int64 {
	return it.UnitPrice * int64(it.Quantity)
}

func (it Item) MarshalJSON() ([]byte, error) {
	type plain Item
	return json.Marshal(struct {
		plain
		TotalPrice int64 `json:"totalPrice"`
	}{plain(it), it.TotalPrice()})
}

func (it Item) clone() Item {
	out := it
	out.Options = make(map[uint]uint, len(it.Options))
	for k, v := range it.Options {
		out.Options[k] = v
	}
	if it.AdditionalPieces != nil {
		out.AdditionalPieces = append([]entity.AdditionalPiece(nil), it.AdditionalPieces...)
	}
	return out
}

// resolveOptions keeps only selections that exist on the product and fills
// single-select groups the caller left empty with their first value.
func resolveOptions(product entity.MenuItem, selected map[uint]uint) (map[uint]uint, int64) {
	out := make(map[uint]uint, len(product.OptionGroups))
	var modifiers int64
	for i := range product.OptionGroups {
		g := &product.OptionGroups[i]
		if vid, ok := selected[g.ID]; ok {
			if v, ok := g.Value(vid); ok {
				out[g.ID] = v.ID
				modifiers += v.PriceModifier
				continue
			}
		}
		if g.SingleSelect {
			if v, ok := g.DefaultValue(); ok {
				out[g.ID] = v.ID
				modifiers += v.PriceModifier
			}
		}
	}
	return out, modifiers
}

func piecesPrice(pieces []entity.AdditionalPiece) int64 {
	var sum int64
	for _, p := range pieces {
		sum += p.Price * int64(p.Quantity)
	}
	return sum
}

// lineKey identifies lines that should merge: same product, same options,
// same add-ons.
func lineKey(menuItemID uint, options map[uint]uint, pieces []entity.AdditionalPiece) string {
	groups := make([]uint, 0, len(options))
	for g := range options {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i] < groups[j] })

	var b strings.Builder
	b.WriteString(strconv.FormatUint(uint64(menuItemID), 10))
	b.WriteByte('|')
	for _, g := range groups {
		b.WriteString(strconv.FormatUint(uint64(g), 10))
		b.WriteByte('=')
		b.WriteString(strconv.FormatUint(uint64(options[g]), 10))
		b.WriteByte(';')
	}
	b.WriteByte('|')
	for _, p := range pieces {
		b.WriteString(p.Name)
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(p.Price, 10))
		b.WriteByte('x')
		b.WriteString(strconv.Itoa(p.Quantity))
		b.WriteByte(';')
	}
	return b.String()
}
