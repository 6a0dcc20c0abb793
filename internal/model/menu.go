package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type Category struct {
	BaseModel
	Name      string `db:"name" json:"name"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
	Available bool   `db:"available" json:"available"`
}

type MenuItem struct {
	BaseModel
	Name             string     `db:"name" json:"name"`
	CategoryID       string     `db:"category_id" json:"categoryId"`
	BaseCost         *float64   `db:"base_cost" json:"baseCost,omitempty"`
	Available        bool       `db:"available" json:"available"`
	ModifierGroupIDs StringList `db:"modifier_group_ids" json:"modifierGroupIds"`
	SortOrder        int        `db:"sort_order" json:"sortOrder"`
}

type ModifierOption struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Available     bool     `json:"available"`
	PriceAdditive *float64 `json:"priceAdditive,omitempty"`
}

type ModifierGroup struct {
	BaseModel
	Name        string             `db:"name" json:"name"`
	Options     ModifierOptionList `db:"options" json:"options"`
	MultiSelect bool               `db:"multi_select" json:"multiSelect"`
	Required    bool               `db:"required" json:"required"`
	Available   bool               `db:"available" json:"available"`
	SortOrder   int                `db:"sort_order" json:"sortOrder"`
}

// LegacyCustomizationOption is the pre-modifier-group option shape. The table
// is retained so snapshots written before the modifier group migration stay
// loadable; nothing writes to it anymore.
type LegacyCustomizationOption struct {
	ID           string   `db:"id" json:"id"`
	Category     string   `db:"category" json:"category"`
	Name         string   `db:"name" json:"name"`
	CostModifier *float64 `db:"cost_modifier" json:"costModifier,omitempty"`
	Available    bool     `db:"available" json:"available"`
}

// MenuSnapshot is the deep copy of the available menu embedded in a session
// at start time. It never shares references with the live menu.
type MenuSnapshot struct {
	Items          []MenuItem      `json:"items"`
	ModifierGroups []ModifierGroup `json:"modifierGroups"`
	Categories     []Category      `json:"categories"`

	// Present only in snapshots written before the modifier group migration.
	Customizations []LegacyCustomizationOption `json:"customizations,omitempty"`
}

func (s MenuSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *MenuSnapshot) Scan(src interface{}) error {
	return scanJSON(src, s, "MenuSnapshot")
}

// StringList is a []string persisted as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Contains(v string) bool {
	for _, s := range l {
		if s == v {
			return true
		}
	}
	return false
}

func (l StringList) Without(v string) StringList {
	out := make(StringList, 0, len(l))
	for _, s := range l {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l, "StringList")
}

// ModifierOptionList is the options column of a modifier group, persisted as
// a JSON array in a TEXT column.
type ModifierOptionList []ModifierOption

func (l ModifierOptionList) Value() (driver.Value, error) {
	if l == nil {
		l = ModifierOptionList{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *ModifierOptionList) Scan(src interface{}) error {
	return scanJSON(src, l, "ModifierOptionList")
}

func scanJSON(src, dst interface{}, typeName string) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into %s", src, typeName)
	}
}
