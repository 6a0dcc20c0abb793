package model

// Setting is a single key-value pair in the app settings store.
type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Setting keys in use.
const (
	SettingShopName = "shopName"
	SettingTheme    = "theme"
)

// DefaultShopName is used when no shop name has been saved.
const DefaultShopName = "Side Order"
