package storefront

import (
	"encoding/json"

	"simplemarket/internal/localstore"
)

// BuyerInfo is the buyer profile persisted between visits so the checkout
// form comes prefilled.
type BuyerInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

func saveBuyerInfo(store localstore.Store, info BuyerInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return err
	}
	return store.Set(localstore.KeyBuyerInfo, string(raw))
}

// loadBuyerInfo returns the stored profile; corrupt or absent state reads
// as an empty profile.
func loadBuyerInfo(store localstore.Store) BuyerInfo {
	var info BuyerInfo
	raw, ok := store.Get(localstore.KeyBuyerInfo)
	if !ok {
		return info
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return BuyerInfo{}
	}
	return info
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

func saveTheme(store localstore.Store, theme string) error {
	return store.Set(localstore.KeyTheme, theme)
}

func loadTheme(store localstore.Store) string {
	theme, ok := store.Get(localstore.KeyTheme)
	if !ok || (theme != ThemeLight && theme != ThemeDark) {
		return ThemeLight
	}
	return theme
}
