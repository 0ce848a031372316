// Package provider defines the plugin contract shared by every supported
// password-manager CSV format and the registry that holds the plugins.
//
// A Plugin owns exactly one provider format: it publishes the header
// fingerprint used for detection, maps rows into canonical vault items on
// import, and serializes items back into its documented column set on export.
// The registry is an explicit value constructed once at startup and passed by
// reference to consumers; it is never a package-level singleton, so tests can
// build isolated registries with any subset of plugins.
package provider

import (
	"slices"
	"strings"

	"github.com/taggedzi/creddedupe/pkg/vault"
)

// ID is the stable identifier of a provider format.
type ID string

// String returns the string representation of a provider ID.
func (id ID) String() string {
	return string(id)
}

// Known provider IDs.
const (
	ProtonPass     ID = "protonpass"
	LastPass       ID = "lastpass"
	Bitwarden      ID = "bitwarden"
	Dashlane       ID = "dashlane"
	RoboForm       ID = "roboform"
	NordPass       ID = "nordpass"
	ApplePasswords ID = "applepasswords"
	Kaspersky      ID = "kaspersky"
	Firefox        ID = "firefox"
	Chromium       ID = "chromium"

	// Unknown is returned by detection when no provider fits.
	Unknown ID = "unknown"
)

// HeaderSpec describes a provider's header fingerprint: the columns that must
// be present for a file to belong to the format, and the columns that may be.
type HeaderSpec struct {
	Required []string
	Optional []string
}

// NormalizedRequired returns the required column names in normalized form.
func (s HeaderSpec) NormalizedRequired() []string {
	return normalizeAll(s.Required)
}

// NormalizedOptional returns the optional column names in normalized form.
func (s HeaderSpec) NormalizedOptional() []string {
	return normalizeAll(s.Optional)
}

func normalizeAll(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		out = append(out, NormalizeHeader(h))
	}
	return out
}

// NormalizeHeader normalizes a CSV header token for fingerprint comparison:
// surrounding whitespace and quotes are stripped, the token is lower-cased,
// and one trailing ':' is removed.
func NormalizeHeader(header string) string {
	h := strings.TrimSpace(header)
	h = strings.Trim(h, `"'`)
	h = strings.ToLower(h)
	h = strings.TrimSuffix(h, ":")
	return h
}

// Plugin converts between one provider's CSV rows and canonical vault items.
type Plugin interface {
	// ID returns the provider's stable identifier, unique across a registry.
	ID() ID

	// Headers returns the provider's header fingerprint.
	Headers() HeaderSpec

	// Columns returns the provider's documented export column set, in its
	// documented order. ExportRow emits exactly these keys.
	Columns() []string

	// ImportRow converts one raw CSV row (column name -> value) into a vault
	// item. It fails with a MissingColumnError when any required column is
	// absent from the row. Unknown columns are preserved verbatim in Extra.
	ImportRow(row map[string]string) (vault.Item, error)

	// ExportRow converts a vault item into the provider's row shape. Every
	// documented column is present; fields with no canonical source are
	// emitted empty, not omitted.
	ExportRow(it vault.Item) map[string]string
}

// missingRequired returns the required columns of spec absent from row, in
// the spec's declared order.
func missingRequired(row map[string]string, spec HeaderSpec) []string {
	var missing []string
	for _, col := range spec.Required {
		if _, ok := row[col]; !ok {
			missing = append(missing, col)
		}
	}
	return missing
}

// preserveUnknown copies every row column that is not in known into the
// item's Extra map under its original name, verbatim.
func preserveUnknown(it *vault.Item, row map[string]string, known []string) {
	for key, value := range row {
		if !slices.Contains(known, key) {
			it.SetExtra(key, value)
		}
	}
}
