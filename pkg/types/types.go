// Package domain defines the core types shared by the groceries client and
// the mock grocery API.
package domain

// Item is a single entry on the grocery list. IDs are assigned by the
// remote service and never generated by the client.
type Item struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Purchased bool   `json:"purchased,omitempty"`
}

// ItemList is the body returned by GET /item.
type ItemList struct {
	Items []Item `json:"items"`
}

// Credentials is the body sent to POST /login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"` //nolint:gosec // request field, never logged
}

// TokenResponse is the body returned by a successful POST /login.
type TokenResponse struct {
	Token string `json:"token"`
}

// FindByName returns the first item whose name matches exactly.
func FindByName(items []Item, name string) (Item, bool) {
	for i := range items {
		if items[i].Name == name {
			return items[i], true
		}
	}
	return Item{}, false
}
