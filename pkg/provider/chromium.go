package provider

import (
	"github.com/taggedzi/creddedupe/pkg/errors"
	"github.com/taggedzi/creddedupe/pkg/vault"
)

// Chromium-based browsers (Chrome, Edge, Brave, Opera) share one CSV shape.
var chromiumColumns = []string{"name", "url", "username", "password", "note"}

type chromium struct{}

// NewChromium returns the plugin for Chromium-based browser CSV formats.
func NewChromium() Plugin { return &chromium{} }

func (p *chromium) ID() ID { return Chromium }

func (p *chromium) Headers() HeaderSpec {
	return HeaderSpec{
		Required: []string{"name", "url", "username", "password"},
		Optional: []string{"note"},
	}
}

func (p *chromium) Columns() []string { return chromiumColumns }

func (p *chromium) ImportRow(row map[string]string) (vault.Item, error) {
	if missing := missingRequired(row, p.Headers()); len(missing) > 0 {
		return vault.Item{}, errors.NewMissingColumnError(Chromium.String(), -1, missing...)
	}

	it := vault.Item{
		Type:       vault.TypeLogin,
		Source:     Chromium.String(),
		Title:      row["name"],
		Username:   row["username"],
		Password:   row["password"],
		PrimaryURL: row["url"],
		Notes:      row["note"],
	}

	preserveUnknown(&it, row, chromiumColumns)
	return it, nil
}

func (p *chromium) ExportRow(it vault.Item) map[string]string {
	name := it.Title
	if name == "" && it.Source != Chromium.String() {
		name = it.PrimaryURL
	}

	return map[string]string{
		"name":     name,
		"url":      it.PrimaryURL,
		"username": it.Username,
		"password": it.Password,
		"note":     it.Notes,
	}
}
