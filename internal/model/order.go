package model

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
)

// Order records one drink against a session. ItemName and ItemCategory are
// denormalized copies taken at order time, not live foreign keys, so the
// order stays interpretable against the session snapshot after menu edits.
type Order struct {
	ID             string         `db:"id" json:"id"`
	SessionID      string         `db:"session_id" json:"sessionId"`
	Timestamp      int64          `db:"timestamp" json:"timestamp"`
	ItemName       string         `db:"item_name" json:"itemName"`
	ItemCategory   string         `db:"item_category" json:"itemCategory"`
	Customizations Customizations `db:"customizations" json:"customizations"`
	Notes          string         `db:"notes" json:"notes"`
}

// Customizations holds an order's selections in either of two coexisting
// shapes. The grouped shape maps a modifier group id to the selected option
// names. The legacy shape maps one of four fixed keys (temperature, milk,
// syrup, size) to a single option name. Both must remain readable
// indefinitely; no migration rewrites order rows.
type Customizations map[string]json.RawMessage

// NewGroupedCustomizations builds a grouped-format value.
func NewGroupedCustomizations(selections map[string][]string) Customizations {
	c := make(Customizations, len(selections))
	for groupID, names := range selections {
		if names == nil {
			names = []string{}
		}
		b, _ := json.Marshal(names)
		c[groupID] = b
	}
	return c
}

// NewLegacyCustomizations builds a legacy-format value.
func NewLegacyCustomizations(fields map[string]string) Customizations {
	c := make(Customizations, len(fields))
	for key, name := range fields {
		b, _ := json.Marshal(name)
		c[key] = b
	}
	return c
}

// Grouped reports whether the value is in the grouped format: every value is
// a JSON array. An empty record counts as grouped by convention.
func (c Customizations) Grouped() bool {
	for _, raw := range c {
		t := bytes.TrimLeft(raw, " \t\r\n")
		if len(t) == 0 || t[0] != '[' {
			return false
		}
	}
	return true
}

// Selections returns the grouped view: group id to selected option names.
// Call only when Grouped() is true; malformed values are skipped.
func (c Customizations) Selections() map[string][]string {
	out := make(map[string][]string, len(c))
	for groupID, raw := range c {
		var names []string
		if err := json.Unmarshal(raw, &names); err != nil {
			continue
		}
		out[groupID] = names
	}
	return out
}

// LegacyFields returns the legacy view: fixed key to single option name.
// Empty values are dropped.
func (c Customizations) LegacyFields() map[string]string {
	out := make(map[string]string, len(c))
	for key, raw := range c {
		var name string
		if err := json.Unmarshal(raw, &name); err != nil || name == "" {
			continue
		}
		out[key] = name
	}
	return out
}

func (c Customizations) Value() (driver.Value, error) {
	if c == nil {
		c = Customizations{}
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Customizations) Scan(src interface{}) error {
	return scanJSON(src, c, "Customizations")
}
