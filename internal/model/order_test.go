package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomizationsFormatClassification(t *testing.T) {
	// Empty means grouped; a round-trip through JSON must not change that.
	empty := Customizations{}
	assert.True(t, empty.Grouped())

	legacy := NewLegacyCustomizations(map[string]string{"temperature": "Hot"})
	assert.False(t, legacy.Grouped())

	grouped := NewGroupedCustomizations(map[string][]string{"group-size": {"Large (16oz)"}})
	assert.True(t, grouped.Grouped())

	// Mixed shapes classify as legacy; a single non-array value is enough.
	mixed := Customizations{
		"group-size":  json.RawMessage(`["Large (16oz)"]`),
		"temperature": json.RawMessage(`"Hot"`),
	}
	assert.False(t, mixed.Grouped())
}

func TestCustomizationsViews(t *testing.T) {
	grouped := NewGroupedCustomizations(map[string][]string{
		"group-size":   {"Large (16oz)"},
		"group-syrups": {"Vanilla", "Caramel"},
		"group-temp":   nil,
	})
	assert.Equal(t, map[string][]string{
		"group-size":   {"Large (16oz)"},
		"group-syrups": {"Vanilla", "Caramel"},
		"group-temp":   {},
	}, grouped.Selections())

	legacy := NewLegacyCustomizations(map[string]string{
		"milk": "Oat",
		"size": "",
	})
	// Blank legacy values are dropped from the view.
	assert.Equal(t, map[string]string{"milk": "Oat"}, legacy.LegacyFields())
}

func TestCustomizationsScanRoundTrip(t *testing.T) {
	original := NewLegacyCustomizations(map[string]string{"temperature": "Iced"})

	value, err := original.Value()
	require.NoError(t, err)

	var loaded Customizations
	require.NoError(t, loaded.Scan(value))

	assert.False(t, loaded.Grouped())
	assert.Equal(t, map[string]string{"temperature": "Iced"}, loaded.LegacyFields())
}
