package provider

import (
	"strconv"

	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Firefox about:logins CSV columns. Timestamps are epoch milliseconds.
var firefoxColumns = []string{
	"url", "username", "password", "httpRealm", "formActionOrigin",
	"guid", "timeCreated", "timeLastUsed", "timePasswordChanged",
}

var firefoxWriteback = []string{"httpRealm", "formActionOrigin", "timeLastUsed"}

const (
	firefoxExtraTimeCreated         = "firefox_timeCreated"
	firefoxExtraTimePasswordChanged = "firefox_timePasswordChanged"
)

type firefox struct{}

// NewFirefox returns the plugin for the Firefox about:logins CSV format.
func NewFirefox() Plugin { return &firefox{} }

func (p *firefox) ID() ID { return Firefox }

func (p *firefox) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"url", "username", "password"},
		Optional: []string{
			"httpRealm", "formActionOrigin", "guid",
			"timeCreated", "timeLastUsed", "timePasswordChanged",
		},
	}
}

func (p *firefox) Columns() []string { return firefoxColumns }

func (p *firefox) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(Firefox.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     Firefox.String(),
		SourceID:   row["guid"],
		Username:   row["username"],
		Password:   row["password"],
		PrimaryURL: row["url"],
	}

	if ms, ok := vault.ParseTimestamp(row["timeCreated"]); ok {
		it.CreatedAt = ms
	}
	// Password changes are the meaningful modification signal; fall back to
	// last use when absent.
	if ms, ok := vault.ParseTimestamp(row["timePasswordChanged"]); ok {
		it.UpdatedAt = ms
	} else if ms, ok := vault.ParseTimestamp(row["timeLastUsed"]); ok {
		it.UpdatedAt = ms
	}

	it.SetExtra(firefoxExtraTimeCreated, row["timeCreated"])
	it.SetExtra(firefoxExtraTimePasswordChanged, row["timePasswordChanged"])
	for _, col := range firefoxWriteback {
		if v, ok := row[col]; ok {
			it.SetExtra(col, v)
		}
	}
	preserveUnknown(&it, row, firefoxColumns)
	return it, nil
}

func (p *firefox) ExportRow(it vault.Item) map[string]string {
	timeCreated, ok := it.Extra[firefoxExtraTimeCreated]
	if !ok {
		timeCreated = strconv.FormatInt(it.CreatedAt, 10)
	}
	timeChanged, ok := it.Extra[firefoxExtraTimePasswordChanged]
	if !ok {
		timeChanged = strconv.FormatInt(it.UpdatedAt, 10)
	}

	return map[string]string{
		"url":                 it.PrimaryURL,
		"username":            it.Username,
		"password":            it.Password,
		"httpRealm":           it.GetExtra("httpRealm"),
		"formActionOrigin":    it.GetExtra("formActionOrigin"),
		"guid":                it.SourceID,
		"timeCreated":         timeCreated,
		"timeLastUsed":        it.GetExtra("timeLastUsed"),
		"timePasswordChanged": timeChanged,
	}
}
