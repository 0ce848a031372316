// Package vault defines the canonical, provider-agnostic representation of a
// credential entry and the pure normalization functions the deduplication
// pipeline keys on. Provider plugins map their CSV shapes into and out of
// this model; everything downstream (detection aside) speaks only vault.Item.
package vault

import (
	"maps"
	"slices"
	"strings"
	"time"
)

// ItemType is the canonical item type for all vault items.
type ItemType string

// Canonical item types.
const (
	TypeLogin    ItemType = "login"
	TypeNote     ItemType = "note"
	TypeCard     ItemType = "card"
	TypeIdentity ItemType = "identity"
	TypeOther    ItemType = "other"
)

// ParseItemType maps a provider's raw type string onto a canonical ItemType.
// Unrecognized values map to TypeOther, empty values to TypeLogin.
func ParseItemType(raw string) ItemType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "login":
		return TypeLogin
	case "note", "securenote", "secure note":
		return TypeNote
	case "card", "creditcard", "credit card":
		return TypeCard
	case "identity":
		return TypeIdentity
	default:
		return TypeOther
	}
}

// Item is the canonical internal representation of a credential entry.
//
// String fields are always present (empty, never absent); optional scalars use
// the zero value as "no value". Timestamps are epoch milliseconds in UTC with
// 0 meaning unknown, which comparisons treat as the oldest possible time.
// Extra holds every provider-specific column with no canonical home, keyed by
// the original (possibly provider-prefixed) column name.
type Item struct {
	// Identity / provenance. Never mutated after creation.
	Type       ItemType `json:"item_type"`
	Source     string   `json:"source,omitempty"`
	SourceID   string   `json:"source_id,omitempty"`
	InternalID string   `json:"internal_id,omitempty"`

	// Core login fields.
	Title    string `json:"title"`
	Username string `json:"username"`
	Password string `json:"password"`

	// URL / site info.
	PrimaryURL    string   `json:"primary_url,omitempty"`
	SecondaryURLs []string `json:"secondary_urls,omitempty"`

	// Human notes. Accumulates merge annotations.
	Notes string `json:"notes"`

	// Organization / flags.
	Folder   string   `json:"folder,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Favorite bool     `json:"favorite,omitempty"`

	// OTP / 2FA. URI and secret are mutually informative, not required to agree.
	TOTPURI    string `json:"totp_uri,omitempty"`
	TOTPSecret string `json:"totp_secret,omitempty"`

	// Timestamps, epoch milliseconds UTC. 0 = unknown.
	CreatedAt int64 `json:"created_at,omitempty"`
	UpdatedAt int64 `json:"updated_at,omitempty"`

	// Catch-all for provider-specific data.
	Extra map[string]string `json:"extra,omitempty"`
}

// Clone returns a deep copy of the item. Slices and the Extra map are copied
// so that mutations of the clone never leak into the original.
func (it Item) Clone() Item {
	out := it
	out.SecondaryURLs = slices.Clone(it.SecondaryURLs)
	out.Tags = slices.Clone(it.Tags)
	if it.Extra != nil {
		out.Extra = make(map[string]string, len(it.Extra))
		maps.Copy(out.Extra, it.Extra)
	}
	return out
}

// AddSecondaryURL appends a URL to SecondaryURLs unless already present.
// Order of first appearance is preserved.
func (it *Item) AddSecondaryURL(url string) {
	if url == "" || slices.Contains(it.SecondaryURLs, url) {
		return
	}
	it.SecondaryURLs = append(it.SecondaryURLs, url)
}

// SetExtra records a provider-specific value, allocating the map on first use.
func (it *Item) SetExtra(key, value string) {
	if it.Extra == nil {
		it.Extra = make(map[string]string)
	}
	it.Extra[key] = value
}

// GetExtra returns the provider-specific value for key, or "".
func (it Item) GetExtra(key string) string {
	return it.Extra[key]
}

// Timestamp returns the best known modification instant for ordering
// purposes: UpdatedAt when set, else CreatedAt, else 0 (oldest).
func (it Item) Timestamp() int64 {
	if it.UpdatedAt != 0 {
		return it.UpdatedAt
	}
	return it.CreatedAt
}

// Now returns the current time in UTC as epoch milliseconds.
func Now() int64 {
	return time.Now().UTC().UnixMilli()
}

// emailExtraKeys are the provider columns treated as email-bearing fields, in
// the order they are consulted. Keys come from the providers that distinguish
// email from username (Proton Pass, NordPass, Dashlane).
var emailExtraKeys = []string{
	"proton_email",
	"email",
	"Email",
}

// EmailValue returns the record's email-bearing field, if any: the first
// known provider email column found in Extra, else the username when it looks
// like an email address.
func EmailValue(it Item) string {
	for _, key := range emailExtraKeys {
		if v := strings.TrimSpace(it.Extra[key]); v != "" {
			return v
		}
	}
	if strings.Contains(it.Username, "@") {
		return strings.TrimSpace(it.Username)
	}
	return ""
}
