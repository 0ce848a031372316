package dedupe

import (
	"slices"
	"strings"

	"github.com/taggedzi/creddedupe/pkg/vault"
)

// totpValue returns the item's TOTP material, URI preferred over bare secret.
func totpValue(it vault.Item) string {
	if it.TOTPURI != "" {
		return it.TOTPURI
	}
	return it.TOTPSecret
}

// vaultOrFolder returns the item's source container: the canonical folder, or
// the provider vault name preserved in Extra.
func vaultOrFolder(it vault.Item) string {
	if it.Folder != "" {
		return it.Folder
	}
	return it.GetExtra("proton_vault")
}

// exactDuplicates reports whether every member of a cluster agrees on all
// important fields plus type, folder, and favorite, timestamps excepted.
// Such clusters are safe to collapse without review; anything less goes to
// Pending so no distinct value is dropped without an explicit decision.
func exactDuplicates(members []vault.Item) bool {
	base := members[0]
	for _, other := range members[1:] {
		if other.Type != base.Type ||
			other.Title != base.Title ||
			other.PrimaryURL != base.PrimaryURL ||
			!slices.Equal(other.SecondaryURLs, base.SecondaryURLs) ||
			other.Username != base.Username ||
			vault.EmailValue(other) != vault.EmailValue(base) ||
			other.Password != base.Password ||
			other.Notes != base.Notes ||
			other.Folder != base.Folder ||
			other.Favorite != base.Favorite ||
			other.TOTPURI != base.TOTPURI ||
			other.TOTPSecret != base.TOTPSecret {
			return false
		}
	}
	return true
}

// countImportant counts the non-empty important fields of an item, the
// secondary signal for preferred-record selection.
func countImportant(it vault.Item) int {
	count := 0
	for _, v := range []string{
		it.Title,
		it.PrimaryURL,
		it.Username,
		vault.EmailValue(it),
		it.Password,
		it.Notes,
		totpValue(it),
	} {
		if strings.TrimSpace(v) != "" {
			count++
		}
	}
	if len(it.SecondaryURLs) > 0 {
		count++
	}
	return count
}

// selectPreferred picks the index of the cluster member to survive a merge.
// The order is total and deterministic: greatest modification timestamp (an
// unknown timestamp is oldest), then greatest count of non-empty important
// fields, then first in encounter order.
func selectPreferred(members []vault.Item) int {
	best := 0
	bestTS := members[0].Timestamp()
	bestCount := countImportant(members[0])

	for i, it := range members[1:] {
		ts := it.Timestamp()
		count := countImportant(it)
		if ts > bestTS || (ts == bestTS && count > bestCount) {
			best = i + 1
			bestTS = ts
			bestCount = count
		}
	}
	return best
}

// noteCategory is one labeled list in the merged-notes block.
type noteCategory struct {
	label  string
	values func(vault.Item) []string
}

func one(f func(vault.Item) string) func(vault.Item) []string {
	return func(it vault.Item) []string { return []string{f(it)} }
}

func allURLs(it vault.Item) []string {
	return append([]string{it.PrimaryURL}, it.SecondaryURLs...)
}

var noteCategories = []noteCategory{
	{"Alternative titles", one(func(it vault.Item) string { return it.Title })},
	{"Alternative URLs", allURLs},
	{"Alternative emails", one(vault.EmailValue)},
	{"Alternative usernames", one(func(it vault.Item) string { return it.Username })},
	{"Alternative passwords", one(func(it vault.Item) string { return it.Password })},
	{"Alternative TOTP secrets", one(totpValue)},
	{"Original vaults", one(vaultOrFolder)},
}

// MergeNotes builds the notes text the preferred record carries after a
// merge: one labeled list per field category holding the distinct non-preferred
// values in first-seen order, followed by every distinct original notes value
// separated by blank lines. The construction is purely additive; no field
// other than the preferred record's notes is ever altered by a merge.
func MergeNotes(c *Cluster) string {
	preferred := c.Members[c.Preferred]

	var lines []string
	for _, cat := range noteCategories {
		var chosen []string
		for _, v := range cat.values(preferred) {
			chosen = append(chosen, strings.TrimSpace(v))
		}
		var alts []string
		for _, it := range c.Members {
			for _, raw := range cat.values(it) {
				v := strings.TrimSpace(raw)
				if v != "" && !slices.Contains(chosen, v) && !slices.Contains(alts, v) {
					alts = append(alts, v)
				}
			}
		}
		if len(alts) > 0 {
			lines = append(lines, "- "+cat.label+": "+strings.Join(alts, ", "))
		}
	}

	var notes []string
	for _, it := range c.Members {
		n := strings.TrimSpace(it.Notes)
		if n != "" && !slices.Contains(notes, n) {
			notes = append(notes, n)
		}
	}

	var parts []string
	if len(lines) > 0 {
		parts = append(parts, "Merged from duplicates:\n"+strings.Join(lines, "\n"))
	}
	parts = append(parts, notes...)

	return strings.Join(parts, "\n\n")
}
