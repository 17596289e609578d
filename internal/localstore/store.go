// Package localstore is the client-side persistence layer: a small
// key-value store mirroring the browser storage the storefront state
// lives in. Values are plain strings; corrupt persisted state reads as
// absent, never as an error.
package localstore

// Storage keys shared by the storefront components.
const (
	KeySession    = "simplemarket_session"
	KeyUserRole   = "userRole"
	KeyUsername   = "username"
	KeyRememberMe = "rememberMe"
	KeyCart       = "simplemarket_cart"
	KeyBuyerInfo  = "simplemarket_buyer_info"
	KeyTheme      = "simplemarket_theme"
)

type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	Clear() error
}
